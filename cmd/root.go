package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evanmaar/gitpick/internal/git"
	"github.com/evanmaar/gitpick/internal/models"
	"github.com/evanmaar/gitpick/internal/ui"
)

// selectorFunc runs the interactive loop; tests script it.
type selectorFunc func([]models.Branch) (ui.Outcome, error)

var (
	localOnly bool
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "gitpick",
	Short: "Interactively check out a git branch",
	Long: `gitpick lists local and remote-tracking branches and checks out the one you pick.

It never fetches: remote-tracking entries are as stale as your last fetch.
Picking a remote-tracking branch creates a local branch tracking it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLogger, err := newLogger(debug)
		if err != nil {
			return err
		}
		defer closeLogger()

		return pick(git.NewCLI(logger), ui.Run, localOnly, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().BoolVar(&localOnly, "local", false, "hide remote-tracking branches")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write a debug log to the temp directory")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pick is the whole program: list, select, check out. Every error aborts
// the invocation; listing errors abort before the loop ever starts.
func pick(svc git.Service, selectBranch selectorFunc, localOnly bool, stdout io.Writer) error {
	branches, err := svc.ListBranches()
	if err != nil {
		return err
	}

	if localOnly {
		local := branches[:0]
		for _, b := range branches {
			if !b.IsRemote {
				local = append(local, b)
			}
		}
		branches = local
	}

	if len(branches) == 0 {
		fmt.Fprintln(stdout, "No branches found.")
		return nil
	}

	outcome, err := selectBranch(branches)
	if err != nil {
		return err
	}
	if outcome.Cancelled {
		return nil
	}

	// The selector has restored the terminal by now; git's own output
	// goes straight to the user.
	return svc.Checkout(*outcome.Branch)
}

// newLogger builds the --debug command log. The TUI owns the terminal, so
// debug output goes to a file rather than stderr.
func newLogger(debug bool) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{filepath.Join(os.TempDir(), "gitpick-debug.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}
