package report

import (
	"fmt"
	"strings"
)

const summaryStyle = `<style>
table { border-collapse:collapse; }
th, td { border:1px solid #ccc; padding:7px 14px; font-size:1em; text-align:center; }
th { background:#f4f6fa; color:#4B2354; }
.ok { background:#d4efdf; color:#229954; font-weight:600; }
.warning { background:#fff6cc; color:#ff9900; font-weight:600; }
.critical { background:#fadbd8; color:#c0392b; font-weight:700; }
.up { background:#d4efdf; color:#229954; font-weight:600; }
.down { background:#fadbd8; color:#c0392b; font-weight:700; }
.partial { background:#fff6cc; color:#ff9900; font-weight:600; }
.na { background:#f8f9f9; color:#aaa; font-weight:600; }
a { text-decoration:underline; color:inherit; font-weight:700; }
</style>`

// ServiceSummary is the ternary fleet-table aggregate over one server's
// services: UP when nothing is down, DOWN when everything is, PARTIAL in
// between, N/A when no services were checked.
func ServiceSummary(services map[string]string) (text, class string) {
	if len(services) == 0 {
		return "N/A", "na"
	}
	down := 0
	for _, state := range services {
		if ServiceStatus(state) == StatusCritical {
			down++
		}
	}
	switch {
	case down == 0:
		return "UP", "up"
	case down == len(services):
		return "DOWN", "down"
	default:
		return "PARTIAL", "partial"
	}
}

// summaryMetric computes the summary-cell status for one metric kind; a
// missing metric reads as OK, matching the optimistic defaults of the
// parsers.
func summaryMetric(metric string, c Checks) Status {
	switch metric {
	case "cpu":
		if c.CPU == nil {
			return StatusOK
		}
		return Classify("cpu", c.CPU.Usage())
	case "memory":
		if c.Memory.Empty() || c.Memory.Mem == nil {
			return StatusOK
		}
		return Classify("memory", Pct(c.Memory.Mem.Used, c.Memory.Mem.Total))
	case "disk":
		return DiskStatus(c.Disk)
	}
	return StatusOK
}

// ReportFilename is the per-server detail file the summary cells link to.
func ReportFilename(hostname string) string {
	return hostname + "_report.html"
}

func statusCell(st Status, link string) string {
	if st == StatusOK {
		return "<td class='ok'>OK</td>"
	}
	return fmt.Sprintf("<td class='%s'><a href='%s'>%s</a></td>", st, esc(link), st.Upper())
}

// SummaryTable renders the fleet summary mailed to admins and the ops team:
// one row per server with per-metric status cells and the aggregated
// services cell. Non-OK cells link to that server's detail report file.
// Unreachable servers render four N/A cells plus an explanatory row with
// the error text. The caller picks the record subset (one admin's servers
// vs the whole fleet).
func SummaryTable(records []Record) string {
	var b strings.Builder
	b.WriteString("<html><head>")
	b.WriteString(summaryStyle)
	b.WriteString("</head><body>\n<h2>Server Health Summary</h2>\n<table>\n")
	b.WriteString("<tr><th>Hostname</th><th>IP Address</th><th>CPU</th><th>Disk</th><th>Memory</th><th>Services</th></tr>\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td>", esc(rec.DisplayName), esc(rec.Hostname))

		if rec.Failed() {
			reason := esc(rec.Error)
			for i := 0; i < 4; i++ {
				fmt.Fprintf(&b, "<td class='na' title='%s'>N/A</td>", reason)
			}
			b.WriteString("</tr>\n")
			fmt.Fprintf(&b, "<tr><td colspan='6' class='na' style='font-size:0.95em'>%s</td></tr>\n", reason)
			continue
		}

		link := ReportFilename(rec.Hostname)
		b.WriteString(statusCell(summaryMetric("cpu", rec.Checks), link))
		b.WriteString(statusCell(summaryMetric("disk", rec.Checks), link))
		b.WriteString(statusCell(summaryMetric("memory", rec.Checks), link))

		svcText, svcClass := ServiceSummary(rec.Checks.Services)
		if svcText == "UP" || svcText == "N/A" {
			fmt.Fprintf(&b, "<td class='%s'>%s</td>", svcClass, svcText)
		} else {
			fmt.Fprintf(&b, "<td class='%s'><a href='%s'>%s</a></td>", svcClass, esc(link), svcText)
		}
		b.WriteString("</tr>\n")
	}

	b.WriteString("</table>\n")
	b.WriteString("<p style='font-size:0.95em;'><b>Instructions:</b> Click any <span style='color:#ff9900;'>WARNING</span> or <span style='color:#c0392b;'>CRITICAL</span> status to open the attached detailed HTML report for that server.<br>If clicking does not work, open the corresponding HTML file from the attachments in your mail client.</p>\n")
	b.WriteString("</body></html>\n")
	return b.String()
}
