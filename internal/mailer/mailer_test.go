package mailer

import (
	"io"
	"testing"

	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnabled(t *testing.T) {
	if New(testLogger(), Opts{}).Enabled() {
		t.Fatal("mailer without host must be disabled")
	}
	if !New(testLogger(), Opts{Host: "smtp.example.com"}).Enabled() {
		t.Fatal("mailer with host must be enabled")
	}
}

func TestSendRequiresRecipients(t *testing.T) {
	m := New(testLogger(), Opts{Host: "smtp.example.com", Port: 587, Username: "x@example.com"})
	if err := m.Send("subject", "body", "", nil, nil); err == nil {
		t.Fatal("expected error for empty recipient list")
	}
}

func TestDefaultFromName(t *testing.T) {
	m := New(testLogger(), Opts{Host: "smtp.example.com"})
	if m.opts.FromName != "Server Monitor" {
		t.Fatalf("FromName = %q", m.opts.FromName)
	}
}
