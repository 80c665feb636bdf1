package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"pkgshift/internal/config"
	"pkgshift/internal/envstore"
	"pkgshift/internal/logx"
	"pkgshift/internal/migrate"
	"pkgshift/internal/paths"
	"pkgshift/internal/toolchain"
	"pkgshift/internal/verify"
)

type options struct {
	target     string
	dryRun     bool
	verifyOnly bool
	assumeYes  bool
	jsonOut    bool
	configPath string
}

// runner owns one invocation: mode selection, configuration, verification,
// and reporting. All collaborators are injected so tests can script the
// whole flow.
type runner struct {
	opts     options
	specs    []toolchain.Spec
	store    envstore.Store
	prompter Prompter
	query    func(ctx context.Context, spec toolchain.Spec) (string, error)
	log      *logrus.Logger
	out      io.Writer
}

func (r *runner) run(ctx context.Context) error {
	cfg, err := config.Load(r.opts.configPath)
	if err != nil {
		return err
	}
	specs := cfg.Apply(r.specs)

	mode := r.resolveMode()
	if mode == modeQuit {
		fmt.Fprintln(r.out, "Nothing changed.")
		return nil
	}

	layout, err := r.resolveLayout(cfg)
	if err != nil {
		return err
	}

	if r.log == nil {
		if r.opts.dryRun {
			r.log = logx.Discard()
		} else {
			if err := layout.EnsureLogsDir(); err != nil {
				return err
			}
			r.log = logx.New(cfg.Log, layout.LogsDir)
		}
	}
	r.log.WithFields(logrus.Fields{
		"root":    layout.Root,
		"dry_run": r.opts.dryRun,
		"mode":    modeName(mode),
	}).Info("run started")

	installed := toolchain.DetectInstalled(specs)
	if len(installed) == 0 {
		fmt.Fprintln(r.out, "No supported package-manager tool-chains detected.")
		return nil
	}
	for _, spec := range installed {
		r.log.WithField("toolchain", spec.Name).Info("detected")
	}

	var records []migrate.Record
	if mode == modeConfigure {
		records = r.configure(installed, layout)
		r.offerDeletion(records)
	}

	// Dry-run without --verify previews only; everything else gets verified.
	if r.opts.dryRun && !r.opts.verifyOnly {
		fmt.Fprintln(r.out, "\nDry run complete. Re-run without --dry-run to apply, or with --verify to check state.")
		return nil
	}

	verifier := &verify.Verifier{Store: r.store, Query: r.query, Log: r.log}
	report := verifier.Run(ctx, installed, layout.Root)

	if r.opts.jsonOut {
		return writeJSONReport(r.out, report, records, r.opts.dryRun)
	}
	renderReport(r.out, report)
	return nil
}

// resolveMode applies the run-mode state machine: an explicit --verify flag
// wins; otherwise prior persisted configuration triggers the interactive
// choice, and a clean machine goes straight to configure.
func (r *runner) resolveMode() runMode {
	if r.opts.verifyOnly {
		return modeVerify
	}
	if r.priorConfigured() {
		return chooseMode(r.prompter)
	}
	return modeConfigure
}

func (r *runner) priorConfigured() bool {
	for _, spec := range r.specs {
		if _, ok, err := r.store.Get(spec.EnvVar); err == nil && ok {
			return true
		}
	}
	return false
}

func (r *runner) resolveLayout(cfg config.Config) (paths.Layout, error) {
	root := r.opts.target
	if root == "" {
		root = cfg.TargetRoot
	}
	if root == "" {
		var err error
		root, err = askRoot(r.prompter)
		if err != nil {
			return paths.Layout{}, err
		}
	}
	return paths.Resolve(root)
}

// configure walks the installed tool-chains in registry order: target
// directory, persistent variable, cache migration. Failures are reported and
// the loop moves on; nothing here aborts the run.
func (r *runner) configure(installed []toolchain.Spec, layout paths.Layout) []migrate.Record {
	var records []migrate.Record

	for _, spec := range installed {
		target := spec.TargetPath(layout.Root)
		value := spec.EnvValue(layout.Root)
		log := r.log.WithField("toolchain", spec.Name)

		fmt.Fprintf(r.out, "%s\n", spec.Name)

		if r.opts.dryRun {
			fmt.Fprintf(r.out, "  would create %s\n", target)
		} else if err := os.MkdirAll(target, 0o755); err != nil {
			fmt.Fprintf(r.out, "  error creating %s: %v\n", target, err)
			log.WithError(err).Error("create target dir failed")
			continue
		}

		changed, err := envstore.SetPersistent(r.store, spec.EnvVar, value, r.opts.dryRun)
		switch {
		case err != nil:
			fmt.Fprintf(r.out, "  error setting %s=%s: %v (is this an elevated shell?)\n", spec.EnvVar, value, err)
			log.WithError(err).Error("set variable failed")
		case changed && r.opts.dryRun:
			fmt.Fprintf(r.out, "  would set %s=%s\n", spec.EnvVar, value)
		case changed:
			fmt.Fprintf(r.out, "  set %s=%s\n", spec.EnvVar, value)
			log.WithField("variable", spec.EnvVar).Info("variable set")
		default:
			fmt.Fprintf(r.out, "  %s already set\n", spec.EnvVar)
		}

		legacy, ok := paths.FirstExistingDir(spec.LegacyPaths())
		if !ok {
			fmt.Fprintln(r.out, "  no legacy cache found")
			continue
		}

		outcome, err := migrate.Migrate(legacy, target, r.opts.dryRun)
		if err != nil {
			fmt.Fprintf(r.out, "  error migrating %s: %v\n", legacy, err)
			log.WithError(err).Error("migration failed")
			continue
		}
		if !outcome.Copied {
			fmt.Fprintf(r.out, "  nothing to migrate in %s\n", legacy)
			continue
		}

		if r.opts.dryRun {
			fmt.Fprintf(r.out, "  would copy %s (%s) -> %s\n", legacy, humanize.Bytes(uint64(outcome.SourceBytes)), target)
			continue
		}

		fmt.Fprintf(r.out, "  copied %s (%s) -> %s\n", legacy, humanize.Bytes(uint64(outcome.SourceBytes)), target)
		if outcome.SizeMismatch {
			fmt.Fprintf(r.out, "  warning: destination holds %s of %s expected; check %s before deleting the old cache\n",
				humanize.Bytes(uint64(outcome.DestBytes)), humanize.Bytes(uint64(outcome.SourceBytes)), target)
			log.WithFields(logrus.Fields{
				"source_bytes": outcome.SourceBytes,
				"dest_bytes":   outcome.DestBytes,
			}).Warn("copy size mismatch")
		}
		records = append(records, migrate.Record{Source: legacy, Bytes: outcome.SourceBytes})
		log.WithField("source", legacy).Info("cache migrated")
	}

	return records
}

// offerDeletion lets the operator remove the migrated legacy directories in
// bulk. Declining, or a dry run, leaves the old data in place.
func (r *runner) offerDeletion(records []migrate.Record) {
	if len(records) == 0 || r.opts.dryRun {
		return
	}

	var total uint64
	for _, rec := range records {
		total += uint64(rec.Bytes)
	}

	confirmed, err := r.prompter.Confirm(
		fmt.Sprintf("Delete %d migrated legacy cache directories (%s)?", len(records), humanize.Bytes(total)),
		false,
	)
	if err != nil || !confirmed {
		fmt.Fprintln(r.out, "Legacy caches left in place.")
		return
	}

	for _, rec := range records {
		if err := os.RemoveAll(rec.Source); err != nil {
			fmt.Fprintf(r.out, "error deleting %s: %v\n", rec.Source, err)
			r.log.WithError(err).WithField("source", rec.Source).Error("delete failed")
			continue
		}
		fmt.Fprintf(r.out, "deleted %s (%s freed)\n", rec.Source, humanize.Bytes(uint64(rec.Bytes)))
		r.log.WithField("source", rec.Source).Info("legacy cache deleted")
	}
}

func modeName(m runMode) string {
	switch m {
	case modeConfigure:
		return "configure"
	case modeVerify:
		return "verify"
	default:
		return "quit"
	}
}
