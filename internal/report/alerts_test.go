package report

import (
	"reflect"
	"testing"

	"github.com/fleetmon/fleetmon/pkg/models"
)

func TestExtractAlertsBucketing(t *testing.T) {
	raw := models.RawResult{
		"memory":   "Mem: 100 93 7 0 0 7\nSwap: 100 30 70",
		"cpu":      "Cpu(s): 25.0 id",
		"disk":     "Filesystem Use% Mounted on\n/dev/sda1 95% /",
		"services": map[string]string{"nginx": "inactive", "sshd": "active"},
	}
	rec := Build(testServer(), raw)

	criticals, warnings := ExtractAlerts(rec)

	wantCriticals := []string{
		"Memory usage is CRITICAL (93%)",
		"Disk usage is CRITICAL on / (95%)",
		"Service nginx is DOWN",
	}
	wantWarnings := []string{
		"CPU usage is WARNING (75%)",
		"Swap usage is WARNING (30%)",
	}
	if !reflect.DeepEqual(criticals, wantCriticals) {
		t.Fatalf("criticals = %q, want %q", criticals, wantCriticals)
	}
	if !reflect.DeepEqual(warnings, wantWarnings) {
		t.Fatalf("warnings = %q, want %q", warnings, wantWarnings)
	}
}

func TestExtractAlertsHealthy(t *testing.T) {
	raw := models.RawResult{
		"memory":   freeOutput,
		"cpu":      "Cpu(s):  1.5 us,  0.5 sy, 98.0 id",
		"disk":     "Filesystem      Size  Used Avail Use% Mounted on\n/dev/sda1        50G   15G   33G  31% /",
		"services": map[string]string{"nginx": "active", "sshd": "running"},
	}
	rec := Build(testServer(), raw)
	criticals, warnings := ExtractAlerts(rec)
	if len(criticals) != 0 || len(warnings) != 0 {
		t.Fatalf("healthy record produced alerts: %q / %q", criticals, warnings)
	}
}

func TestExtractAlertsFailedRecord(t *testing.T) {
	rec := Build(testServer(), models.RawResult{"error": "No SSH connection"})
	criticals, warnings := ExtractAlerts(rec)
	if criticals != nil || warnings != nil {
		t.Fatalf("failed record must have no alerts, got %q / %q", criticals, warnings)
	}
}

func TestExtractAlertsEachServiceDownListed(t *testing.T) {
	raw := models.RawResult{
		"services": map[string]string{"redis": "failed", "nginx": "inactive"},
	}
	criticals, _ := ExtractAlerts(Build(testServer(), raw))
	want := []string{"Service nginx is DOWN", "Service redis is DOWN"}
	if !reflect.DeepEqual(criticals, want) {
		t.Fatalf("criticals = %q, want %q (sorted by name)", criticals, want)
	}
}
