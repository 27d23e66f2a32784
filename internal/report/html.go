package report

import (
	"fmt"
	"html"
	"strings"
)

// All markup output is self-contained (inline styling, no external assets)
// so the documents survive mail clients and plain file viewing.

const detailStyle = `<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1 { color: #2E86C1; }
h2 { color: #2874A6; border-bottom: 1px solid #ddd; }
.critical { color: #d63031; font-weight: bold; }
.warning { color: #fdcb6e; font-weight: bold; }
.ok { color: #00b894; font-weight: bold; }
table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; }
th { background-color: #f2f2f2; }
tr.critical { background: #fff0f0; }
tr.warning { background: #fffbe6; }
</style>`

// Values longer than this are suppressed from the fallback listing to avoid
// dumping blobs into the document.
const maxFallbackLen = 200

func esc(s string) string {
	return html.EscapeString(s)
}

// title upper-cases the first letter of each space-separated word, for
// column headers and fallback captions.
func title(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func writeErrorBox(b *strings.Builder, errText string) {
	b.WriteString("<div style='background:#fff0f0;border-radius:8px;padding:18px 22px;margin:30px 0;border-left:8px solid #d63031;'>\n")
	b.WriteString("<span style='color:#d63031;font-size:2em;font-weight:bold;display:block;margin-bottom:10px'>&#9888; ERROR: Could not connect</span>\n")
	fmt.Fprintf(b, "<div style='font-size:1.15em;color:#c0392b;font-weight:600;'>%s</div>\n", esc(errText))
	b.WriteString("</div>\n")
}

func writeAlertBoxes(b *strings.Builder, criticals, warnings []string) {
	if len(criticals) > 0 {
		b.WriteString("<div style='background:#fff0f0;border-radius:8px;padding:16px 22px;margin-bottom:18px;border-left:8px solid #d63031;'>\n")
		b.WriteString("<span style='color:#d63031;font-size:2em;font-weight:bold;display:block;margin-bottom:10px'>&#9888; Critical Alerts!</span>\n")
		b.WriteString("<ul style='font-size:1.25em;color:#c0392b;font-weight:600;margin:0 0 0 30px;'>\n")
		for _, msg := range criticals {
			fmt.Fprintf(b, "<li style='margin-bottom:7px'>%s</li>\n", esc(msg))
		}
		b.WriteString("</ul></div>\n")
	}
	if len(warnings) > 0 {
		b.WriteString("<div style='background:#fffbe6;border-radius:8px;padding:16px 22px;margin-bottom:18px;border-left:8px solid #fdcb6e;'>\n")
		b.WriteString("<span style='color:#b8860b;font-size:2em;font-weight:bold;display:block;margin-bottom:10px'>&#9888; Warnings</span>\n")
		b.WriteString("<ul style='font-size:1.15em;color:#b8860b;font-weight:600;margin:0 0 0 30px;'>\n")
		for _, msg := range warnings {
			fmt.Fprintf(b, "<li style='margin-bottom:7px'>%s</li>\n", esc(msg))
		}
		b.WriteString("</ul></div>\n")
	}
}

func writeServerInfo(b *strings.Builder, display, tags, uptime string) {
	b.WriteString("<div style='background:#f4f8fb;border-radius:8px;padding:14px 20px;margin-bottom:20px;border-left:5px solid #2E86C1;'>\n")
	b.WriteString("<h2 style='margin:0 0 12px 0;font-size:1.2em;color:#154360'>Server Info</h2>\n")
	fmt.Fprintf(b, "<b>Server:</b> %s<br>\n", esc(display))
	fmt.Fprintf(b, "<b>Tags:</b> %s<br>\n", esc(tags))
	if uptime != "" {
		fmt.Fprintf(b, "<b>Uptime:</b> %s<br>\n", esc(uptime))
	}
	b.WriteString("</div>\n")
}

// memoryHeaders is the fixed column order of the memory table; only the
// columns present in either row are emitted.
func memoryHeaders(info *MemoryInfo) []string {
	if info.Mem != nil {
		return []string{"total", "used", "free", "shared", "buff/cache", "available"}
	}
	return []string{"total", "used", "free"}
}

func memCell(row *MemRow, col string) string {
	switch col {
	case "total":
		return fmt.Sprintf("%d", row.Total)
	case "used":
		return fmt.Sprintf("%d", row.Used)
	case "free":
		return fmt.Sprintf("%d", row.Free)
	case "shared":
		return fmt.Sprintf("%d", row.Shared)
	case "buff/cache":
		return fmt.Sprintf("%d", row.BuffCache)
	case "available":
		return fmt.Sprintf("%d", row.Available)
	}
	return ""
}

func swapCell(row *SwapRow, col string) string {
	switch col {
	case "total":
		return fmt.Sprintf("%d", row.Total)
	case "used":
		return fmt.Sprintf("%d", row.Used)
	case "free":
		return fmt.Sprintf("%d", row.Free)
	}
	return ""
}

// writeCheckTables emits one table per recognized metric in fixed order
// (memory, cpu, disk, services), each row tagged with its computed status
// class, then the short-string fallback listing for unrecognized checks.
func writeCheckTables(b *strings.Builder, c Checks) {
	if !c.Memory.Empty() {
		headers := memoryHeaders(c.Memory)
		b.WriteString("<h3>Memory Usage</h3>\n<table><tr><th></th>")
		for _, h := range headers {
			fmt.Fprintf(b, "<th>%s</th>", esc(h))
		}
		b.WriteString("<th>Status</th></tr>\n")
		if mem := c.Memory.Mem; mem != nil {
			pct := Pct(mem.Used, mem.Total)
			st := Classify("memory", pct)
			fmt.Fprintf(b, "<tr class='%s'><td>Mem:</td>", st)
			for _, h := range headers {
				fmt.Fprintf(b, "<td>%s</td>", memCell(mem, h))
			}
			fmt.Fprintf(b, "<td><span class='%s'>%.0f%%</span></td></tr>\n", st, pct)
		}
		if swap := c.Memory.Swap; swap != nil {
			pct := Pct(swap.Used, swap.Total)
			st := Classify("swap", pct)
			fmt.Fprintf(b, "<tr class='%s'><td>Swap:</td>", st)
			for _, h := range headers {
				fmt.Fprintf(b, "<td>%s</td>", swapCell(swap, h))
			}
			fmt.Fprintf(b, "<td><span class='%s'>%.0f%%</span></td></tr>\n", st, pct)
		}
		b.WriteString("</table>\n")
	}

	if c.CPU != nil {
		usage := c.CPU.Usage()
		st := Classify("cpu", usage)
		b.WriteString("<h3>CPU Usage</h3>\n")
		fmt.Fprintf(b, "<table><tr><th>CPU Usage</th><th>Status</th></tr><tr><td>%.1f%%</td><td class='%s'>%s</td></tr></table>\n", usage, st, st.Title())
	}

	if len(c.Disk) > 0 {
		b.WriteString("<h3>Disk Usage</h3>\n<table><tr>")
		for _, col := range c.Disk[0].Columns {
			fmt.Fprintf(b, "<th>%s</th>", esc(title(col)))
		}
		b.WriteString("<th>Status</th></tr>\n")
		for _, mount := range c.Disk {
			pct := mount.UsedPercent()
			st := Classify("disk", float64(pct))
			fmt.Fprintf(b, "<tr class='%s'>", st)
			for _, col := range mount.Columns {
				fmt.Fprintf(b, "<td>%s</td>", esc(mount.Fields[col]))
			}
			fmt.Fprintf(b, "<td><span class='%s'>%d%%</span></td></tr>\n", st, pct)
		}
		b.WriteString("</table>\n")
	}

	if len(c.Services) > 0 {
		b.WriteString("<h3>Services</h3>\n<table><tr><th>Service</th><th>Status</th></tr>\n")
		for _, name := range c.ServiceNames() {
			state := c.Services[name]
			fmt.Fprintf(b, "<tr><td>%s</td><td class='%s'>%s</td></tr>\n", esc(name), ServiceStatus(state), esc(state))
		}
		b.WriteString("</table>\n")
	}

	for _, extra := range c.Extra {
		s, ok := extra.Value.(string)
		if !ok || len(s) >= maxFallbackLen {
			continue
		}
		fmt.Fprintf(b, "<p><b>%s:</b> <pre>%s</pre></p>\n", esc(title(extra.Name)), esc(s))
	}
}

// HTML renders the single-server detail document.
func (r Record) HTML() string {
	var b strings.Builder
	b.WriteString("<html>\n<head>\n")
	b.WriteString(detailStyle)
	b.WriteString("\n</head><body>\n<h1>Server Health Report</h1>\n")

	if r.Failed() {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", esc(r.Label))
		writeErrorBox(&b, r.Error)
		b.WriteString("</body></html>\n")
		return b.String()
	}

	fmt.Fprintf(&b, "<h2>Server: %s</h2>\n", esc(r.Label))
	criticals, warnings := ExtractAlerts(r)
	writeAlertBoxes(&b, criticals, warnings)
	writeServerInfo(&b, r.Label, r.Tags, r.Checks.Uptime)
	writeCheckTables(&b, r.Checks)
	b.WriteString("</body></html>\n")
	return b.String()
}
