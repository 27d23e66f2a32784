package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/fleetmon/fleetmon/internal/mailer"
	"github.com/fleetmon/fleetmon/internal/poller"
	"github.com/fleetmon/fleetmon/internal/report"
	"github.com/fleetmon/fleetmon/pkg/models"
)

type App struct {
	lo   *slog.Logger
	opts Opts

	fleet  []models.Server
	poller *poller.Poller
	mailer *mailer.Mailer
}

type Opts struct {
	MaxRetries    int
	RetryInterval time.Duration
	Interval      time.Duration
	MaxWorkers    int
	RunOnce       bool

	OutputDir          string
	AdminEmail         string
	OpsRecipients      []string
	DirectorRecipients []string
}

// RunCycle polls the whole fleet once, builds one record per server, writes
// the report files and runs the three mailings. Results keep inventory
// order regardless of which host answered first, so generated reports are
// diff-stable across runs.
func (app *App) RunCycle(ctx context.Context) {
	app.lo.Info("starting monitoring cycle", "servers", len(app.fleet), "workers", app.opts.MaxWorkers)

	var (
		wg      = &sync.WaitGroup{}
		sem     = make(chan struct{}, app.opts.MaxWorkers)
		results = make([]models.RawResult, len(app.fleet))
	)
	for i, srv := range app.fleet {
		wg.Add(1)
		go func(i int, srv models.Server) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = app.pollWithRetry(ctx, srv)
		}(i, srv)
	}
	wg.Wait()

	records := make([]report.Record, len(app.fleet))
	for i, srv := range app.fleet {
		records[i] = report.Build(srv, results[i])
	}

	app.writeReports(records)
	app.sendAdminSummaries(records)
	app.sendDirectorSummary(records)
	app.sendOpsSummary(records)

	app.lo.Info("monitoring cycle complete")
}

func (app *App) pollWithRetry(ctx context.Context, srv models.Server) models.RawResult {
	for attempt := 1; attempt <= app.opts.MaxRetries; attempt++ {
		res, err := app.poller.Poll(srv)
		if err == nil {
			app.lo.Info("poll succeeded", "host", srv.Hostname, "attempt", attempt)
			return res
		}
		app.lo.Warn("poll failed", "host", srv.Hostname, "attempt", attempt, "error", err)

		if attempt < app.opts.MaxRetries {
			select {
			case <-time.After(app.opts.RetryInterval):
			case <-ctx.Done():
				return poller.ErrorResult(fmt.Sprintf("No SSH connection (after %d retries)", attempt))
			}
		}
	}
	return poller.ErrorResult(fmt.Sprintf("No SSH connection (after %d retries)", app.opts.MaxRetries))
}

// writeReports persists per-server and combined reports to the output
// directory for archival and for the summary-table hyperlinks.
func (app *App) writeReports(records []report.Record) {
	if err := os.MkdirAll(app.outDir(), 0o755); err != nil {
		app.lo.Error("failed to create output dir", "dir", app.outDir(), "error", err)
		return
	}

	for _, rec := range records {
		app.writeFile(report.ReportFilename(rec.Hostname), rec.HTML())
		app.writeFile(rec.Hostname+"_report.txt", rec.Text())
		if doc, err := rec.JSON(); err == nil {
			app.writeFile(rec.Hostname+"_report.json", doc)
		} else {
			app.lo.Error("failed to serialize report", "host", rec.Hostname, "error", err)
		}
	}

	app.writeFile("combined_report.html", report.CombinedHTML(records))
	if doc, err := report.CombinedJSON(records); err == nil {
		app.writeFile("combined_report.json", doc)
	} else {
		app.lo.Error("failed to serialize combined report", "error", err)
	}
	app.writeFile("director_summary.html", report.DirectorHTML(records))
}

func (app *App) outDir() string {
	if app.opts.OutputDir == "" {
		return "."
	}
	return app.opts.OutputDir
}

func (app *App) path(name string) string {
	return filepath.Join(app.outDir(), name)
}

func (app *App) writeFile(name, content string) {
	if err := os.WriteFile(app.path(name), []byte(content), 0o644); err != nil {
		app.lo.Error("failed to write report file", "file", name, "error", err)
	}
}

// sendAdminSummaries mails each admin contact a summary table of their own
// servers, with the detail reports attached.
func (app *App) sendAdminSummaries(records []report.Record) {
	if !app.mailer.Enabled() {
		return
	}

	byAdmin := map[string][]report.Record{}
	for i, srv := range app.fleet {
		admin := srv.AdminEmail
		if admin == "" {
			admin = app.opts.AdminEmail
		}
		if admin == "" {
			continue
		}
		byAdmin[admin] = append(byAdmin[admin], records[i])
	}

	admins := make([]string, 0, len(byAdmin))
	for admin := range byAdmin {
		admins = append(admins, admin)
	}
	sort.Strings(admins)

	for _, admin := range admins {
		recs := byAdmin[admin]
		attachments := make([]string, 0, len(recs))
		for _, rec := range recs {
			attachments = append(attachments, app.path(report.ReportFilename(rec.Hostname)))
		}
		err := app.mailer.Send(
			"Your Server Health Summary",
			"See attached HTML reports for your servers.",
			report.SummaryTable(recs),
			[]string{admin},
			attachments,
		)
		if err != nil {
			app.lo.Error("failed to send admin summary", "admin", admin, "error", err)
		}
	}
}

func (app *App) sendDirectorSummary(records []report.Record) {
	if !app.mailer.Enabled() || len(app.opts.DirectorRecipients) == 0 {
		return
	}
	err := app.mailer.Send(
		"Director Summary: Critical/Warning Server States",
		"See attached for a summary of only CRITICAL and WARNING states.",
		report.DirectorHTML(records),
		app.opts.DirectorRecipients,
		[]string{app.path("director_summary.html")},
	)
	if err != nil {
		app.lo.Error("failed to send director summary", "error", err)
	}
}

// sendOpsSummary mails the full-fleet table to the ops team with every
// detail report and the combined JSON attached for automation.
func (app *App) sendOpsSummary(records []report.Record) {
	if !app.mailer.Enabled() || len(app.opts.OpsRecipients) == 0 {
		return
	}
	attachments := make([]string, 0, len(records)+1)
	for _, rec := range records {
		attachments = append(attachments, app.path(report.ReportFilename(rec.Hostname)))
	}
	attachments = append(attachments, app.path("combined_report.json"))

	err := app.mailer.Send(
		"Full Server Health Summary (All Servers)",
		"See attached HTML files for all servers and a combined JSON for automation.",
		report.SummaryTable(records),
		app.opts.OpsRecipients,
		attachments,
	)
	if err != nil {
		app.lo.Error("failed to send ops summary", "error", err)
	}
}
