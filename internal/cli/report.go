package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"pkgshift/internal/migrate"
	"pkgshift/internal/verify"
)

func renderReport(out io.Writer, report verify.Report) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, bold.Render("Verification:")+" "+report.Root)
	fmt.Fprintln(out)

	for _, tr := range report.Tools {
		var headline string
		switch tr.Status {
		case verify.EnvPassed:
			headline = green.Render("✓") + " " + bold.Render(tr.Name)
		case verify.EnvWrongTarget:
			headline = red.Render("✗") + " " + bold.Render(tr.Name) + red.Render(" ("+tr.Variable+" points outside the destination root)")
		case verify.EnvNotSet:
			headline = red.Render("✗") + " " + bold.Render(tr.Name) + red.Render(" ("+tr.Variable+" not set)")
		}
		fmt.Fprintln(out, headline)

		detail := tr.Variable + " → " + tr.Expected
		if tr.Actual != "" && tr.Actual != tr.Expected {
			detail += " (currently " + tr.Actual + ")"
		}
		fmt.Fprintln(out, faint.Render("  "+detail))

		if tr.TargetExists {
			fmt.Fprintln(out, faint.Render("  "+tr.TargetDir+" · "+humanize.Bytes(uint64(tr.TargetBytes))))
		} else {
			fmt.Fprintln(out, yellow.Render("  target directory missing: "+tr.TargetDir))
		}

		switch tr.Agreement {
		case verify.AgreementOK:
			fmt.Fprintln(out, faint.Render("  tool-chain agrees with configured path"))
		case verify.AgreementPendingRestart:
			fmt.Fprintln(out, yellow.Render("  tool-chain "+tr.AgreementDetail))
		case verify.AgreementUnknown:
			fmt.Fprintln(out, faint.Render("  tool-chain query inconclusive: "+tr.AgreementDetail))
		}
		fmt.Fprintln(out)
	}

	var overall string
	switch report.Overall {
	case verify.OverallPass:
		overall = green.Render(string(report.Overall))
	case verify.OverallWarn:
		overall = yellow.Render(string(report.Overall))
	default:
		overall = red.Render(string(report.Overall))
	}
	fmt.Fprintln(out, bold.Render("Overall:")+" "+overall)
}

func writeJSONReport(out io.Writer, report verify.Report, records []migrate.Record, dryRun bool) error {
	payload := struct {
		DryRun   bool             `json:"dry_run"`
		Migrated []migrate.Record `json:"migrated,omitempty"`
		Report   verify.Report    `json:"report"`
	}{
		DryRun:   dryRun,
		Migrated: records,
		Report:   report,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
