// Package poller runs the health checks against one server over SSH and
// returns the raw command output bag the report builder consumes.
package poller

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/exp/slog"

	"github.com/fleetmon/fleetmon/pkg/models"
)

type Opts struct {
	ConnectTimeout time.Duration
}

// checkCommands is the fixed check set, in the order results are gathered.
// Services are handled separately, one systemctl invocation per configured
// service.
var checkCommands = []struct {
	label string
	cmd   string
}{
	{"uptime", "uptime"},
	{"cpu", "top -bn1 | grep 'Cpu(s)'"},
	{"memory", "free -m"},
	{"disk", "df -h"},
}

// runner abstracts one established remote session so tests can substitute
// canned command output for a live SSH connection.
type runner interface {
	Run(cmd string) (string, error)
	Close() error
}

type Poller struct {
	lo      *slog.Logger
	opts    Opts
	connect func(srv models.Server) (runner, error)
}

func New(lo *slog.Logger, opts Opts) *Poller {
	p := &Poller{lo: lo, opts: opts}
	p.connect = p.sshConnect
	return p
}

// Poll connects to the server and runs every check. A connection failure is
// returned as an error so the caller can retry; per-command failures degrade
// to "Error: ..." values inside the bag instead.
func (p *Poller) Poll(srv models.Server) (models.RawResult, error) {
	conn, err := p.connect(srv)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", srv.Addr(), err)
	}
	defer conn.Close()

	res := models.RawResult{}
	for _, check := range checkCommands {
		p.lo.Debug("running check", "host", srv.Hostname, "check", check.label)
		out, err := conn.Run(check.cmd)
		if err != nil {
			p.lo.Warn("check failed", "host", srv.Hostname, "check", check.label, "error", err)
			res[check.label] = fmt.Sprintf("Error: %v", err)
			continue
		}
		res[check.label] = out
	}

	services := make(map[string]string, len(srv.Services))
	for _, svc := range srv.Services {
		out, err := conn.Run("systemctl is-active " + svc)
		if err != nil {
			// systemctl exits non-zero for inactive units; the state
			// word is still on stdout.
			if out == "" {
				services[svc] = fmt.Sprintf("Error: %v", err)
				continue
			}
		}
		services[svc] = out
	}
	res["services"] = services

	return res, nil
}

// ErrorResult is the bag shape for a host that stayed unreachable after all
// retries.
func ErrorResult(reason string) models.RawResult {
	return models.RawResult{
		"error":    reason,
		"cpu":      nil,
		"memory":   nil,
		"disk":     nil,
		"services": nil,
	}
}

type sshRunner struct {
	client *ssh.Client
}

func (r *sshRunner) Run(cmd string) (string, error) {
	session, err := r.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	out, err := session.Output(cmd)
	return strings.TrimSpace(string(out)), err
}

func (r *sshRunner) Close() error {
	return r.client.Close()
}

func (p *Poller) sshConnect(srv models.Server) (runner, error) {
	auth, err := authMethod(srv)
	if err != nil {
		return nil, err
	}

	cfg := &ssh.ClientConfig{
		User:            srv.Username,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         p.opts.ConnectTimeout,
	}

	client, err := ssh.Dial("tcp", srv.Addr(), cfg)
	if err != nil {
		return nil, err
	}
	return &sshRunner{client: client}, nil
}

func authMethod(srv models.Server) (ssh.AuthMethod, error) {
	if srv.SSHKey != "" {
		key, err := os.ReadFile(srv.SSHKey)
		if err != nil {
			return nil, fmt.Errorf("reading ssh key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing ssh key: %w", err)
		}
		return ssh.PublicKeys(signer), nil
	}
	return ssh.Password(srv.Password), nil
}
