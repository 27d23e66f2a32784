package models

import (
	"fmt"
	"strings"
)

// Server describes one monitored host from the fleet inventory.
// Identity is hostname+port; instances are immutable once loaded.
type Server struct {
	Hostname    string   `koanf:"hostname" json:"hostname"`
	DisplayName string   `koanf:"display_name" json:"display_name"`
	Port        int      `koanf:"port" json:"port"`
	Username    string   `koanf:"username" json:"-"`
	Password    string   `koanf:"password" json:"-"`
	SSHKey      string   `koanf:"ssh_key" json:"-"`
	Services    []string `koanf:"services" json:"services"`
	Tags        []string `koanf:"tags" json:"tags"`
	AdminEmail  string   `koanf:"admin_email" json:"admin_email"`
}

// Validate checks the inventory entry and fills defaults. Invalid entries
// are skipped by the loader rather than aborting the whole fleet.
func (s *Server) Validate() error {
	if s.Hostname == "" {
		return fmt.Errorf("hostname must be a non-empty string")
	}
	if s.Username == "" {
		return fmt.Errorf("username must be a non-empty string")
	}
	if s.Password == "" && s.SSHKey == "" {
		return fmt.Errorf("either password or ssh_key must be provided")
	}
	if s.Port == 0 {
		s.Port = 22
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", s.Port)
	}
	if s.DisplayName == "" {
		s.DisplayName = s.Hostname
	}
	return nil
}

// Label is the display label used consistently across every renderer:
// "{display}: {hostname}" when a distinct display name is set, else the
// bare hostname.
func (s Server) Label() string {
	if s.DisplayName != "" && s.DisplayName != s.Hostname {
		return s.DisplayName + ": " + s.Hostname
	}
	return s.Hostname
}

// Addr returns the "host:port" identity string.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Hostname, s.Port)
}

// TagString renders the tag set for reports; "None" when empty.
func (s Server) TagString() string {
	if len(s.Tags) == 0 {
		return "None"
	}
	return strings.Join(s.Tags, ", ")
}

// FilterByTags returns the subset of servers carrying the given tag.
func FilterByTags(servers []Server, tag string) []Server {
	var out []Server
	for _, s := range servers {
		for _, t := range s.Tags {
			if t == tag {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// RawResult is the per-poll check bag for one server. Keys are check names
// ("uptime", "cpu", "memory", "disk", "services"), possibly mixed-case.
// Values are raw command output strings, except "services" which maps
// service name to its reported state. A bag carrying the "error" key marks
// an unreachable host; all metric values are nil in that case.
type RawResult map[string]any

// ConnectError returns the connection error text, or "" for a reachable host.
func (r RawResult) ConnectError() string {
	for k, v := range r {
		if strings.EqualFold(k, "error") {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
			return "Unknown error"
		}
	}
	return ""
}
