package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pkgshift/internal/envstore"
	"pkgshift/internal/toolchain"
)

var (
	targetRoot string
	dryRun     bool
	verifyOnly bool
	assumeYes  bool
	outputJSON bool
	configPath string
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkgshift",
		Short: "Relocate package-manager caches to a faster volume",
		Long: "pkgshift detects installed package-manager tool-chains, copies their caches\n" +
			"to a chosen destination root, and points each tool-chain at the new location\n" +
			"through persistent machine-scope environment variables.",
		SilenceUsage: true,
		RunE:         runRoot,
	}

	cmd.Flags().StringVar(&targetRoot, "target", "", "Destination root for relocated caches")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report intended actions without writing anything")
	cmd.Flags().BoolVar(&verifyOnly, "verify", false, "Skip configuration; only verify current state")
	cmd.Flags().BoolVar(&assumeYes, "yes", false, "Answer prompts affirmatively (for scripted runs)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.Flags().StringVar(&configPath, "config", "pkgshift.yaml", "Path to optional config file")

	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	r := &runner{
		opts: options{
			target:     targetRoot,
			dryRun:     dryRun,
			verifyOnly: verifyOnly,
			assumeYes:  assumeYes,
			jsonOut:    outputJSON,
			configPath: configPath,
		},
		specs:    toolchain.Registry(),
		store:    envstore.System(),
		prompter: newHuhPrompter(assumeYes),
		out:      cmd.OutOrStdout(),
	}
	return r.run(cmd.Context())
}
