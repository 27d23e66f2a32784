package report

import (
	"fmt"
	"sort"
	"strings"
)

// Text renders the single-server plain-text view for terminals and mail
// clients that strip markup. Memory gets the compact "Mem:"/"Swap:"
// key-value lines; every other section gets an upper-cased
// "=== SECTION ===" header. Sections are separated by blank lines and
// walked in the same fixed order as the other renderers.
func (r Record) Text() string {
	var b strings.Builder
	section := func(name string, lines ...string) {
		fmt.Fprintf(&b, "=== %s ===\n", strings.ToUpper(name))
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("server", r.Server)
	section("serverlabel", r.Label)
	section("tags", r.Tags)

	if r.Failed() {
		section("error", r.Error)
		return b.String()
	}

	c := r.Checks
	if c.Uptime != "" {
		section("uptime", c.Uptime)
	}

	if !c.Memory.Empty() {
		if mem := c.Memory.Mem; mem != nil {
			fmt.Fprintf(&b, "Mem: total %d used %d free %d shared %d buff/cache %d available %d\n",
				mem.Total, mem.Used, mem.Free, mem.Shared, mem.BuffCache, mem.Available)
		}
		if swap := c.Memory.Swap; swap != nil {
			fmt.Fprintf(&b, "Swap: total %d used %d free %d\n", swap.Total, swap.Used, swap.Free)
		}
		b.WriteString("\n")
	}

	if c.CPU != nil {
		keys := make([]string, 0, len(c.CPU))
		for k := range c.CPU {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf(" %s: %v", k, c.CPU[k]))
		}
		section("cpu", lines...)
	}

	if len(c.Disk) > 0 {
		lines := make([]string, 0, len(c.Disk))
		for _, m := range c.Disk {
			row := make([]string, 0, len(m.Columns))
			for _, col := range m.Columns {
				row = append(row, m.Fields[col])
			}
			lines = append(lines, " "+strings.Join(row, " "))
		}
		section("disk", lines...)
	}

	if len(c.Services) > 0 {
		lines := make([]string, 0, len(c.Services))
		for _, name := range c.ServiceNames() {
			lines = append(lines, fmt.Sprintf(" %s: %s", name, c.Services[name]))
		}
		section("services", lines...)
	}

	for _, extra := range c.Extra {
		section(extra.Name, fmt.Sprintf("%v", extra.Value))
	}

	return b.String()
}
