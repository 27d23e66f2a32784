package report

import (
	"fmt"
	"strings"
)

// CombinedHTML renders the fleet-wide detail document: one card per server
// in the order the records were built, with the same alert boxes and metric
// tables as the single-server view.
func CombinedHTML(records []Record) string {
	var b strings.Builder
	b.WriteString("<html>\n<head>\n")
	b.WriteString(detailStyle)
	b.WriteString("\n</head><body>\n<h1>Multi-Server Health Report</h1>\n")

	for _, rec := range records {
		b.WriteString("<div class='server-card'>\n")
		fmt.Fprintf(&b, "<h2>%s</h2>\n", esc(rec.Label))
		fmt.Fprintf(&b, "<p><b>Tags:</b> %s</p>\n", esc(rec.Tags))

		if rec.Failed() {
			writeErrorBox(&b, rec.Error)
			b.WriteString("</div>\n")
			continue
		}

		criticals, warnings := ExtractAlerts(rec)
		writeAlertBoxes(&b, criticals, warnings)
		writeServerInfo(&b, rec.Server, rec.Tags, rec.Checks.Uptime)
		writeCheckTables(&b, rec.Checks)
		b.WriteString("</div>\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}
