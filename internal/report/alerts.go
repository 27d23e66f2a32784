package report

import "fmt"

// ExtractAlerts derives the critical and warning message lists of a record.
// This is the single source of truth for alert wording and bucketing; every
// renderer that surfaces alerts consumes it so the three views can never
// drift apart. Checks are walked in a fixed order (memory, cpu, disk, swap,
// services) and an ok status contributes no message. Failed records have no
// alerts; their error is rendered separately.
func ExtractAlerts(rec Record) (criticals, warnings []string) {
	if rec.Failed() {
		return nil, nil
	}

	add := func(st Status, msg string) {
		switch st {
		case StatusCritical:
			criticals = append(criticals, msg)
		case StatusWarning:
			warnings = append(warnings, msg)
		}
	}

	if mem := rec.Checks.Memory; mem != nil && mem.Mem != nil {
		pct := Pct(mem.Mem.Used, mem.Mem.Total)
		st := Classify("memory", pct)
		add(st, fmt.Sprintf("Memory usage is %s (%.0f%%)", st.Upper(), pct))
	}

	if cpu := rec.Checks.CPU; cpu != nil {
		usage := cpu.Usage()
		st := Classify("cpu", usage)
		add(st, fmt.Sprintf("CPU usage is %s (%.0f%%)", st.Upper(), usage))
	}

	for _, mount := range rec.Checks.Disk {
		pct := mount.UsedPercent()
		st := Classify("disk", float64(pct))
		add(st, fmt.Sprintf("Disk usage is %s on %s (%d%%)", st.Upper(), mount.Point(), pct))
	}

	if mem := rec.Checks.Memory; mem != nil && mem.Swap != nil {
		pct := Pct(mem.Swap.Used, mem.Swap.Total)
		st := Classify("swap", pct)
		add(st, fmt.Sprintf("Swap usage is %s (%.0f%%)", st.Upper(), pct))
	}

	for _, name := range rec.Checks.ServiceNames() {
		if ServiceStatus(rec.Checks.Services[name]) == StatusCritical {
			criticals = append(criticals, fmt.Sprintf("Service %s is DOWN", name))
		}
	}

	return criticals, warnings
}
