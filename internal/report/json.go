package report

import "encoding/json"

// checksMap flattens Checks into plain maps so encoding/json emits every
// level with sorted keys, matching the archival contract (alphabetical
// ordering, native number types).
func checksMap(c Checks) map[string]any {
	out := map[string]any{}
	if c.Uptime != "" {
		out["uptime"] = c.Uptime
	}
	if c.CPU != nil {
		out["cpu"] = map[string]any(c.CPU)
	}
	if !c.Memory.Empty() {
		mem := map[string]any{}
		if c.Memory.Mem != nil {
			mem["Mem"] = map[string]int64{
				"total":      c.Memory.Mem.Total,
				"used":       c.Memory.Mem.Used,
				"free":       c.Memory.Mem.Free,
				"shared":     c.Memory.Mem.Shared,
				"buff/cache": c.Memory.Mem.BuffCache,
				"available":  c.Memory.Mem.Available,
			}
		}
		if c.Memory.Swap != nil {
			mem["Swap"] = map[string]int64{
				"total": c.Memory.Swap.Total,
				"used":  c.Memory.Swap.Used,
				"free":  c.Memory.Swap.Free,
			}
		}
		out["memory"] = mem
	}
	if c.Disk != nil {
		disks := make([]map[string]string, 0, len(c.Disk))
		for _, m := range c.Disk {
			disks = append(disks, m.Fields)
		}
		out["disk"] = disks
	}
	if c.Services != nil {
		out["services"] = c.Services
	}
	for _, extra := range c.Extra {
		out[extra.Name] = extra.Value
	}
	return out
}

// JSON renders the record as a key-sorted, 4-space indented document.
// Failed records carry only the server identity, the error text and empty
// checks.
func (r Record) JSON() (string, error) {
	doc := map[string]any{
		"Server":      r.Server,
		"ServerLabel": r.Label,
		"DisplayName": r.DisplayName,
		"Hostname":    r.Hostname,
		"Tags":        r.Tags,
	}
	if r.Failed() {
		doc["Error"] = r.Error
		doc["Checks"] = map[string]any{}
	} else {
		doc["Checks"] = checksMap(r.Checks)
	}
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CombinedJSON aggregates every record into one document keyed by
// "host:port", for automation and archival.
func CombinedJSON(records []Record) (string, error) {
	combined := map[string]any{}
	for _, rec := range records {
		entry := map[string]any{"tags": rec.Tags}
		if rec.Failed() {
			entry["error"] = rec.Error
			entry["checks"] = map[string]any{}
		} else {
			entry["checks"] = checksMap(rec.Checks)
		}
		combined[rec.Server] = entry
	}
	b, err := json.MarshalIndent(combined, "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
