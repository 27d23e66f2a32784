package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fleetmon/fleetmon/pkg/models"
)

// ExtraCheck is an unrecognized key from the raw check bag, passed through
// verbatim for fallback display.
type ExtraCheck struct {
	Name  string
	Value any
}

// Checks holds the normalized, parsed checks of one reachable server. Any
// field may be zero when the corresponding check was absent from the bag.
type Checks struct {
	Uptime   string
	CPU      CPUStats
	Memory   *MemoryInfo
	Disk     DiskTable
	Services map[string]string
	Extra    []ExtraCheck
}

// ServiceNames returns the monitored service names in sorted order so every
// renderer walks them identically.
func (c Checks) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Record is the normalized per-server snapshot consumed by all renderers.
// It is built once per polling cycle and never mutated; a record is either
// in connection-failed shape (Error set, Checks empty) or connected shape
// (Error empty). Renderers branch on Failed() before touching Checks.
type Record struct {
	Server      string
	Label       string
	DisplayName string
	Hostname    string
	Tags        string
	Error       string
	Checks      Checks
}

func (r Record) Failed() bool {
	return r.Error != ""
}

// Build assembles a Record from a raw check bag and its server descriptor.
// A bag carrying an "error" key short-circuits into the failed shape with
// no parsing attempted. Otherwise keys are case-normalized exactly once:
// memory, cpu and disk raw strings are parsed here, uptime and services
// pass through, and anything unrecognized lands in Extra (sorted by name)
// for fallback display.
func Build(srv models.Server, raw models.RawResult) Record {
	rec := Record{
		Server:      srv.Addr(),
		Label:       srv.Label(),
		DisplayName: srv.DisplayName,
		Hostname:    srv.Hostname,
		Tags:        srv.TagString(),
	}

	if errText := raw.ConnectError(); errText != "" {
		rec.Error = errText
		return rec
	}

	for key, val := range raw {
		switch strings.ToLower(key) {
		case "uptime":
			if s, ok := val.(string); ok {
				rec.Checks.Uptime = s
			}
		case "memory":
			if s, ok := val.(string); ok {
				rec.Checks.Memory = ParseMemory(s)
			}
		case "cpu":
			if s, ok := val.(string); ok {
				rec.Checks.CPU = ParseCPU(s)
			}
		case "disk":
			if s, ok := val.(string); ok {
				rec.Checks.Disk = ParseDisk(s)
			}
		case "services":
			switch svc := val.(type) {
			case map[string]string:
				rec.Checks.Services = svc
			case map[string]any:
				states := make(map[string]string, len(svc))
				for name, state := range svc {
					states[name] = fmt.Sprintf("%v", state)
				}
				rec.Checks.Services = states
			}
		default:
			rec.Checks.Extra = append(rec.Checks.Extra, ExtraCheck{Name: key, Value: val})
		}
	}

	sort.Slice(rec.Checks.Extra, func(i, j int) bool {
		return rec.Checks.Extra[i].Name < rec.Checks.Extra[j].Name
	})
	return rec
}
