package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var applyKeys bool

var applyCmd = &cobra.Command{
	Use:   "apply <token>...",
	Short: "Apply tokens to a solved puzzle and print the result",
	Long: `Apply each argument as a complete notation token to a solved puzzle and
print the resulting state.

With --keys the arguments are typed key by key instead, exactly as in the
interactive mode: rejected keys are reported and skipped.`,
	Example: `  puzzled apply "[ru]" "{fr}2"
  puzzled apply --keys "r[u/f]2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyKeys, "keys", false, "Type the arguments as keys")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, session, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	var errs []error
	for _, arg := range args {
		if applyKeys {
			err = session.Type(arg)
		} else {
			err = session.Apply(arg)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, newRenderer(cfg, session.Topology(), out, logger).Render(session.Puzzle().Stickers()))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "History: %s\n", strings.Join(session.History(), " "))
	if pending := session.Pending(); pending != "" {
		fmt.Fprintf(out, "Pending: %s\n", pending)
	}
	fmt.Fprintf(out, "Solved: %t\n", session.Puzzle().Solved())

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("some input was rejected: %w", err)
	}
	return nil
}
