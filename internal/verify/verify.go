package verify

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"pkgshift/internal/envstore"
	"pkgshift/internal/migrate"
	"pkgshift/internal/toolchain"
)

// EnvStatus classifies a tool-chain's persisted environment variable.
type EnvStatus string

const (
	EnvPassed      EnvStatus = "passed"
	EnvWrongTarget EnvStatus = "wrong-target"
	EnvNotSet      EnvStatus = "not-set"
)

// Agreement is the external-agreement state for the queryable tool-chain.
type Agreement string

const (
	AgreementNone           Agreement = ""
	AgreementOK             Agreement = "ok"
	AgreementPendingRestart Agreement = "pending-restart"
	AgreementUnknown        Agreement = "unknown"
)

// Overall is the aggregate verification status.
type Overall string

const (
	OverallPass Overall = "PASS"
	OverallWarn Overall = "WARN"
	OverallFail Overall = "FAIL"
)

// ToolResult is the verification outcome for one installed tool-chain.
type ToolResult struct {
	Name            string    `json:"name"`
	Variable        string    `json:"variable"`
	Expected        string    `json:"expected"`
	Actual          string    `json:"actual,omitempty"`
	Status          EnvStatus `json:"status"`
	TargetDir       string    `json:"target_dir"`
	TargetExists    bool      `json:"target_exists"`
	TargetBytes     int64     `json:"target_bytes,omitempty"`
	Agreement       Agreement `json:"agreement,omitempty"`
	AgreementDetail string    `json:"agreement_detail,omitempty"`
}

// Report aggregates one run's verification. Built fresh each run, never
// persisted.
type Report struct {
	Root    string       `json:"root"`
	Tools   []ToolResult `json:"tools"`
	Overall Overall      `json:"overall"`
}

// Verifier re-checks persisted configuration and on-disk state.
type Verifier struct {
	Store envstore.Store
	// Query overrides the external cache-path query; nil uses
	// toolchain.EffectiveCachePath.
	Query func(ctx context.Context, spec toolchain.Spec) (string, error)
	Log   *logrus.Logger
}

// Run builds the verification report for the installed tool-chains against
// the chosen destination root.
func (v *Verifier) Run(ctx context.Context, specs []toolchain.Spec, root string) Report {
	report := Report{Root: root}

	for _, spec := range specs {
		result := v.checkTool(ctx, spec, root)
		report.Tools = append(report.Tools, result)
		v.logf(logrus.Fields{
			"toolchain": result.Name,
			"variable":  result.Variable,
			"status":    string(result.Status),
			"agreement": string(result.Agreement),
		}, "verified tool-chain")
	}

	report.Overall = overall(report.Tools)
	return report
}

func (v *Verifier) checkTool(ctx context.Context, spec toolchain.Spec, root string) ToolResult {
	result := ToolResult{
		Name:      spec.Name,
		Variable:  spec.EnvVar,
		Expected:  spec.EnvValue(root),
		TargetDir: spec.TargetPath(root),
	}

	actual, present, err := v.Store.Get(spec.EnvVar)
	if err != nil {
		// An unreadable store is indistinguishable from an unset variable
		// for classification; the message still reaches the report.
		present = false
		result.AgreementDetail = err.Error()
	}
	result.Actual = actual
	result.Status = Classify(actual, present, result.Expected, root)

	if size, err := migrate.TreeSize(result.TargetDir); err == nil {
		result.TargetExists = true
		result.TargetBytes = size
	}

	if spec.Queryable() {
		result.Agreement, result.AgreementDetail = v.checkAgreement(ctx, spec, root)
	}

	return result
}

// Classify applies the three-way environment comparison. A value under the
// destination root that differs from the expected subdirectory still passes;
// that leniency is deliberate (see DESIGN.md) and mirrors trailing-slash and
// case drift in practice.
func Classify(actual string, present bool, expected, root string) EnvStatus {
	if !present {
		return EnvNotSet
	}
	if normalizePath(actual) == normalizePath(expected) {
		return EnvPassed
	}
	if underRoot(actual, root) {
		return EnvPassed
	}
	return EnvWrongTarget
}

func (v *Verifier) checkAgreement(ctx context.Context, spec toolchain.Spec, root string) (Agreement, string) {
	query := v.Query
	if query == nil {
		query = toolchain.EffectiveCachePath
	}

	reported, err := query(ctx, spec)
	if err != nil {
		return AgreementUnknown, err.Error()
	}

	target := spec.TargetPath(root)
	if normalizePath(reported) == normalizePath(target) || underRoot(reported, root) {
		return AgreementOK, ""
	}
	// The tool still sees its old cache: machine scope is written but the
	// current session has not picked it up.
	return AgreementPendingRestart, "reports " + reported + "; re-run after restart"
}

func overall(tools []ToolResult) Overall {
	for _, tr := range tools {
		if tr.Status == EnvNotSet {
			return OverallFail
		}
	}
	for _, tr := range tools {
		if tr.Status == EnvWrongTarget || !tr.TargetExists || tr.Agreement == AgreementPendingRestart {
			return OverallWarn
		}
	}
	return OverallPass
}

// underRoot reports whether value lives under the destination root, ignoring
// case and separator style.
func underRoot(value, root string) bool {
	value = normalizePath(value)
	root = normalizePath(root)
	if root == "" {
		return false
	}
	return value == root || strings.HasPrefix(value, root+"/")
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimRight(p, "/")
	return strings.ToLower(filepath.ToSlash(p))
}

func (v *Verifier) logf(fields logrus.Fields, msg string) {
	if v.Log == nil {
		return
	}
	v.Log.WithFields(fields).Info(msg)
}
