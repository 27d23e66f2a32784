package report

import (
	"fmt"
	"strings"
)

const directorStyle = `<style>
body { font-family: Arial, sans-serif; margin: 32px; background: #f6f8fa; }
h1 { color: #2E86C1; margin-bottom: 18px; }
.server-card { background: #fff; border: 1px solid #ddd; border-radius: 10px; padding: 22px; margin-bottom: 32px; }
.server-title { color: #2E86C1; font-size: 1.3em; font-weight: bold; margin-bottom: 2px; }
.tags { color: #555; margin-bottom: 10px; }
.critical { color: #d63031; font-weight: bold; }
.warning { color: #b8860b; font-weight: bold; }
.alert-box { background: #fff0f0; border-left: 6px solid #d63031; border-radius: 8px; padding: 13px 20px; margin-bottom: 12px; }
.warn-box { background: #fffbe6; border-left: 6px solid #b8860b; border-radius: 8px; padding: 13px 20px; margin-bottom: 12px; }
.allok { color: #27ae60; font-weight: bold; margin-top: 10px; }
ul { margin: 0 0 0 28px; }
li { margin-bottom: 7px; font-size: 1.09em; }
</style>`

// DirectorHTML renders the executive summary: one card per server carrying
// only its alert and warning lists. Healthy servers get an explicit all-OK
// line instead of metric tables; unreachable servers get the connect-error
// box. Alert wording comes from ExtractAlerts so this view can never
// disagree with the detail reports.
func DirectorHTML(records []Record) string {
	var b strings.Builder
	b.WriteString("<html>\n<head>\n")
	b.WriteString(directorStyle)
	b.WriteString("\n</head><body>\n<h1>Server Health Summary</h1>\n")

	for _, rec := range records {
		b.WriteString("<div class='server-card'>\n")
		fmt.Fprintf(&b, "<div class='server-title'>%s</div>\n", esc(rec.Label))
		fmt.Fprintf(&b, "<div class='tags'><b>Tags:</b> %s</div>\n", esc(rec.Tags))

		if rec.Failed() {
			writeErrorBox(&b, rec.Error)
			b.WriteString("</div>\n")
			continue
		}

		criticals, warnings := ExtractAlerts(rec)
		if len(criticals) > 0 {
			b.WriteString("<div class='alert-box'><b style='font-size:1.15em;'>&#9888; Critical Alerts</b><ul>\n")
			for _, msg := range criticals {
				fmt.Fprintf(&b, "<li class='critical'>%s</li>\n", esc(msg))
			}
			b.WriteString("</ul></div>\n")
		}
		if len(warnings) > 0 {
			b.WriteString("<div class='warn-box'><b style='font-size:1.1em;'>&#9888; Warnings</b><ul>\n")
			for _, msg := range warnings {
				fmt.Fprintf(&b, "<li class='warning'>%s</li>\n", esc(msg))
			}
			b.WriteString("</ul></div>\n")
		}
		if len(criticals) == 0 && len(warnings) == 0 {
			b.WriteString("<div class='allok'>&#10003; All major systems OK</div>\n")
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}
