package poller

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"golang.org/x/exp/slog"

	"github.com/fleetmon/fleetmon/pkg/models"
)

type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	closed  bool
}

func (f *fakeRunner) Run(cmd string) (string, error) {
	if err, ok := f.errs[cmd]; ok {
		return f.outputs[cmd], err
	}
	out, ok := f.outputs[cmd]
	if !ok {
		return "", fmt.Errorf("unexpected command %q", cmd)
	}
	return out, nil
}

func (f *fakeRunner) Close() error {
	f.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServer() models.Server {
	return models.Server{
		Hostname: "192.168.1.10",
		Port:     22,
		Username: "root",
		Password: "secret",
		Services: []string{"sshd", "httpd"},
	}
}

func cannedOutputs() map[string]string {
	return map[string]string{
		"uptime":                    "15:12:34 up 1 day,  4:20,  3 users,  load average: 0.01, 0.05, 0.02",
		"top -bn1 | grep 'Cpu(s)'":  "Cpu(s):  1.5 us,  0.5 sy, 98.0 id",
		"free -m":                   "Mem: 7984 2016 5968 12 1200 6500\nSwap: 2048 0 2048",
		"df -h":                     "Filesystem      Size  Used Avail Use% Mounted on\n/dev/sda1        50G   15G   33G  31% /",
		"systemctl is-active sshd":  "active",
		"systemctl is-active httpd": "inactive",
	}
}

func TestPollGathersAllChecks(t *testing.T) {
	fake := &fakeRunner{
		outputs: cannedOutputs(),
		// systemctl exits non-zero for inactive units but still
		// prints the state.
		errs: map[string]error{"systemctl is-active httpd": errors.New("exit status 3")},
	}
	p := New(testLogger(), Opts{})
	p.connect = func(models.Server) (runner, error) { return fake, nil }

	res, err := p.Poll(testServer())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	for _, key := range []string{"uptime", "cpu", "memory", "disk", "services"} {
		if _, ok := res[key]; !ok {
			t.Fatalf("result missing %q: %v", key, res)
		}
	}
	services := res["services"].(map[string]string)
	if services["sshd"] != "active" || services["httpd"] != "inactive" {
		t.Fatalf("services = %v", services)
	}
	if !fake.closed {
		t.Fatal("connection not closed")
	}
}

func TestPollCommandFailureDegrades(t *testing.T) {
	outputs := cannedOutputs()
	delete(outputs, "free -m")
	fake := &fakeRunner{
		outputs: outputs,
		errs:    map[string]error{"free -m": errors.New("command timed out")},
	}
	p := New(testLogger(), Opts{})
	p.connect = func(models.Server) (runner, error) { return fake, nil }

	res, err := p.Poll(testServer())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	mem, ok := res["memory"].(string)
	if !ok || mem != "Error: command timed out" {
		t.Fatalf("memory = %v, want Error: command timed out", res["memory"])
	}
	if res["uptime"] == "" {
		t.Fatal("other checks must still run")
	}
}

func TestPollConnectFailure(t *testing.T) {
	p := New(testLogger(), Opts{})
	p.connect = func(models.Server) (runner, error) { return nil, errors.New("dial tcp: refused") }

	if _, err := p.Poll(testServer()); err == nil {
		t.Fatal("expected connect error")
	}
}

func TestErrorResultShape(t *testing.T) {
	res := ErrorResult("No SSH connection (after 3 retries)")
	if got := res.ConnectError(); got != "No SSH connection (after 3 retries)" {
		t.Fatalf("ConnectError = %q", got)
	}
	for _, key := range []string{"cpu", "memory", "disk", "services"} {
		v, ok := res[key]
		if !ok || v != nil {
			t.Fatalf("%s should be present and nil, got %v", key, v)
		}
	}
}
