package report

import "testing"

const freeOutput = "              total        used        free      shared  buff/cache   available\n" +
	"Mem:           7984        2016        5968          12        1200        6500\n" +
	"Swap:          2048           0        2048"

func TestParseMemory(t *testing.T) {
	info := ParseMemory(freeOutput)
	if info.Mem == nil {
		t.Fatal("Mem section missing")
	}
	if info.Mem.Total != 7984 || info.Mem.Used != 2016 || info.Mem.Free != 5968 {
		t.Fatalf("Mem row parsed wrong: %+v", info.Mem)
	}
	if info.Mem.Shared != 12 || info.Mem.BuffCache != 1200 || info.Mem.Available != 6500 {
		t.Fatalf("Mem row parsed wrong: %+v", info.Mem)
	}
	if info.Swap == nil {
		t.Fatal("Swap section missing")
	}
	if info.Swap.Total != 2048 || info.Swap.Used != 0 || info.Swap.Free != 2048 {
		t.Fatalf("Swap row parsed wrong: %+v", info.Swap)
	}
}

func TestParseMemoryShortLinesOmitted(t *testing.T) {
	// Mem line with only 6 tokens must be dropped, not error.
	info := ParseMemory("Mem: 7984 2016 5968 12 1200\nSwap: 2048 0 2048")
	if info.Mem != nil {
		t.Fatalf("short Mem line should be omitted, got %+v", info.Mem)
	}
	if info.Swap == nil || info.Swap.Total != 2048 {
		t.Fatalf("Swap should still parse, got %+v", info.Swap)
	}
}

func TestParseMemoryGarbage(t *testing.T) {
	info := ParseMemory("total used free\nno match here at all")
	if !info.Empty() {
		t.Fatalf("garbage input should yield empty result, got %+v", info)
	}
}

func TestParseCPU(t *testing.T) {
	cpu := ParseCPU("Cpu(s):  1.5 us,  0.5 sy, 98.0 id")
	if got := cpu["us"]; got != 1.5 {
		t.Fatalf("us = %v, want 1.5", got)
	}
	if got := cpu["id"]; got != 98.0 {
		t.Fatalf("id = %v, want 98.0", got)
	}
	if got := cpu.Idle(); got != 98.0 {
		t.Fatalf("Idle() = %v, want 98.0", got)
	}
	if got := cpu.Usage(); got != 2.0 {
		t.Fatalf("Usage() = %v, want 2.0", got)
	}
}

func TestParseCPUNoColon(t *testing.T) {
	cpu := ParseCPU("no separator here")
	if len(cpu) != 0 {
		t.Fatalf("expected empty stats, got %v", cpu)
	}
	if got := cpu.Idle(); got != 100.0 {
		t.Fatalf("Idle() without id stat = %v, want 100.0", got)
	}
}

func TestParseCPUNonNumericKeepsRaw(t *testing.T) {
	cpu := ParseCPU("Cpu(s): n/a id, 3.0 us")
	if got, ok := cpu["id"].(string); !ok || got != "n/a" {
		t.Fatalf("id = %v, want raw string n/a", cpu["id"])
	}
	// Non-numeric idle falls back to the optimistic default.
	if got := cpu.Idle(); got != 100.0 {
		t.Fatalf("Idle() = %v, want 100.0", got)
	}
}

const dfOutput = "Filesystem      Size  Used Avail Use% Mounted on\n" +
	"/dev/sda1        50G   15G   33G  31% /\n" +
	"/dev/sdb1       100G   95G    5G  95% /mnt/backup disk 2"

func TestParseDisk(t *testing.T) {
	disks := ParseDisk(dfOutput)
	if len(disks) != 2 {
		t.Fatalf("got %d mounts, want 2", len(disks))
	}
	for i, m := range disks {
		if len(m.Fields) != len(m.Columns) {
			t.Fatalf("mount %d: %d fields for %d headers", i, len(m.Fields), len(m.Columns))
		}
	}
	if got := disks[0].Point(); got != "/" {
		t.Fatalf("mountpoint = %q, want /", got)
	}
	if got := disks[0].UsedPercent(); got != 31 {
		t.Fatalf("usage = %d, want 31", got)
	}
	// Excess tokens from the space-containing path collapse into the
	// final column.
	if got := disks[1].Fields["on"]; got != "disk 2" {
		t.Fatalf("final column = %q, want \"disk 2\"", got)
	}
	if got := disks[1].Fields["mounted"]; got != "/mnt/backup" {
		t.Fatalf("mounted = %q, want /mnt/backup", got)
	}
}

func TestParseDiskTooShort(t *testing.T) {
	if got := ParseDisk("Filesystem Size Used"); got != nil {
		t.Fatalf("header-only input should yield empty table, got %v", got)
	}
	if got := ParseDisk(""); got != nil {
		t.Fatalf("empty input should yield empty table, got %v", got)
	}
}

func TestMountPointVariants(t *testing.T) {
	cases := []struct {
		name  string
		mount Mount
		want  string
	}{
		{"mounted", Mount{Columns: []string{"mounted"}, Fields: map[string]string{"mounted": "/var"}}, "/var"},
		{"mountpoint", Mount{Columns: []string{"mountpoint"}, Fields: map[string]string{"mountpoint": "/srv"}}, "/srv"},
		{"fallback path value", Mount{Columns: []string{"filesystem", "target"}, Fields: map[string]string{"filesystem": "tmpfs", "target": "/tmp"}}, "/tmp"},
		{"nothing", Mount{Columns: []string{"a"}, Fields: map[string]string{"a": "b"}}, "unknown"},
	}
	for _, tc := range cases {
		if got := tc.mount.Point(); got != tc.want {
			t.Fatalf("%s: Point() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestUsedPercentParseFailure(t *testing.T) {
	m := Mount{Columns: []string{"use%"}, Fields: map[string]string{"use%": "n/a"}}
	if got := m.UsedPercent(); got != 0 {
		t.Fatalf("unparseable usage = %d, want 0", got)
	}
	m = Mount{Columns: []string{"capacity"}, Fields: map[string]string{"capacity": "42%"}}
	if got := m.UsedPercent(); got != 42 {
		t.Fatalf("capacity usage = %d, want 42", got)
	}
	// An unparseable value falls through to the next spelling.
	m = Mount{
		Columns: []string{"use%", "capacity"},
		Fields:  map[string]string{"use%": "-", "capacity": "42%"},
	}
	if got := m.UsedPercent(); got != 42 {
		t.Fatalf("fallthrough usage = %d, want 42", got)
	}
}
