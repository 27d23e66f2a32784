package report

import (
	"strconv"
	"strings"
)

// MemRow is the "Mem:" line of `free -m` output, all values in the unit
// the command was invoked with.
type MemRow struct {
	Total     int64 `json:"total"`
	Used      int64 `json:"used"`
	Free      int64 `json:"free"`
	Shared    int64 `json:"shared"`
	BuffCache int64 `json:"buff/cache"`
	Available int64 `json:"available"`
}

// SwapRow is the "Swap:" line of `free -m` output.
type SwapRow struct {
	Total int64 `json:"total"`
	Used  int64 `json:"used"`
	Free  int64 `json:"free"`
}

// MemoryInfo holds the parsed memory table. Either section may be nil when
// the source text lacked it.
type MemoryInfo struct {
	Mem  *MemRow  `json:"Mem,omitempty"`
	Swap *SwapRow `json:"Swap,omitempty"`
}

func (m *MemoryInfo) Empty() bool {
	return m == nil || (m.Mem == nil && m.Swap == nil)
}

// ParseMemory parses `free -m` style output. A line starting with "Mem:"
// needs at least 7 whitespace-separated tokens, "Swap:" at least 4; lines
// that match neither prefix, or match with too few tokens, are ignored.
// Malformed input yields a partially-empty or fully-empty result, never an
// error.
func ParseMemory(raw string) *MemoryInfo {
	out := &MemoryInfo{}
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		parts := strings.Fields(line)
		switch {
		case strings.HasPrefix(line, "Mem:") && len(parts) >= 7:
			vals, ok := parseInts(parts[1:7])
			if !ok {
				continue
			}
			out.Mem = &MemRow{
				Total:     vals[0],
				Used:      vals[1],
				Free:      vals[2],
				Shared:    vals[3],
				BuffCache: vals[4],
				Available: vals[5],
			}
		case strings.HasPrefix(line, "Swap:") && len(parts) >= 4:
			vals, ok := parseInts(parts[1:4])
			if !ok {
				continue
			}
			out.Swap = &SwapRow{Total: vals[0], Used: vals[1], Free: vals[2]}
		}
	}
	return out
}

func parseInts(tokens []string) ([]int64, bool) {
	vals := make([]int64, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = n
	}
	return vals, true
}

// CPUStats maps a top stat label ("us", "sy", "id", ...) to its percentage.
// Values are float64 when the token parsed as a number and the raw string
// otherwise, so callers reading a stat as a float must guard the type.
type CPUStats map[string]any

// Idle returns the idle percentage, defaulting to 100 (0% usage) when the
// "id" stat is missing or non-numeric.
func (c CPUStats) Idle() float64 {
	if v, ok := c["id"]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 100.0
}

// Usage is 100 minus idle.
func (c CPUStats) Usage() float64 {
	return 100.0 - c.Idle()
}

// ParseCPU parses a `top -bn1` Cpu(s) line. Everything after the first ":"
// splits on "," into stat tokens of the form "<value> <label>"; tokens with
// any other shape are skipped. Input without a ":" yields an empty result.
func ParseCPU(raw string) CPUStats {
	cpu := CPUStats{}
	idx := strings.Index(raw, ":")
	if idx < 0 {
		return cpu
	}
	for _, stat := range strings.Split(raw[idx+1:], ",") {
		parts := strings.Fields(stat)
		if len(parts) != 2 {
			continue
		}
		val, key := parts[0], parts[1]
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cpu[key] = f
		} else {
			cpu[key] = val
		}
	}
	return cpu
}

// Mount is one row of a `df` table. Columns preserves the header order for
// rendering; Fields maps lower-cased column header to cell value. A row
// always has exactly as many fields as the table has headers.
type Mount struct {
	Columns []string
	Fields  map[string]string
}

// DiskTable is the ordered mount list of one `df` invocation.
type DiskTable []Mount

// Spellings of the usage column seen across df variants.
var usageKeys = []string{"use%", "use_percent", "capacity"}

// UsedPercent parses the usage column, stripping a trailing "%". A key
// whose value does not parse falls through to the next spelling; when no
// spelling yields a number the usage reads as 0 (treated as healthy
// downstream).
func (m Mount) UsedPercent() int {
	for _, key := range usageKeys {
		n, err := strconv.Atoi(strings.TrimSuffix(m.Fields[key], "%"))
		if err != nil {
			continue
		}
		return n
	}
	return 0
}

// Keys for the mountpoint column tried in order before falling back to the
// first path-looking value. df output diverges across operating systems and
// locales, hence the shotgun.
var mountKeys = []string{"mounted", "mounted on", "mountpoint", "mount"}

// Point resolves the filesystem mount path of the record, or "unknown".
func (m Mount) Point() string {
	for _, key := range mountKeys {
		if v, ok := m.Fields[key]; ok {
			return v
		}
	}
	for _, col := range m.Columns {
		if v := m.Fields[col]; strings.HasPrefix(v, "/") {
			return v
		}
	}
	return "unknown"
}

// ParseDisk parses `df -h` style output. The first line is the header row,
// tokenized and lower-cased into column keys. Data lines with more tokens
// than headers (a mount path containing spaces) have the excess rejoined
// into the final column, so every record has exactly len(headers) fields.
// Fewer than two lines yields an empty table.
func ParseDisk(raw string) DiskTable {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 {
		return nil
	}
	headers := strings.Fields(strings.ToLower(lines[0]))
	if len(headers) == 0 {
		return nil
	}
	var table DiskTable
	for _, line := range lines[1:] {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > len(headers) {
			tail := strings.Join(parts[len(headers)-1:], " ")
			parts = append(parts[:len(headers)-1], tail)
		}
		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(parts) {
				fields[h] = parts[i]
			} else {
				fields[h] = ""
			}
		}
		table = append(table, Mount{Columns: headers, Fields: fields})
	}
	return table
}
