package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/puzzled"
)

var expandCmd = &cobra.Command{
	Use:   "expand <token>",
	Short: "Print the basic turns a token performs",
	Long: `Parse a token and print its normalized form and the flattened sequence of
single-face turns it performs when executed forward and reversed.`,
	Example: `  puzzled expand "{[ru]f}"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	_, session, _, err := setup(cmd)
	if err != nil {
		return err
	}

	root, err := session.Parser().Parse(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Token:   %s\n", root.Inner())
	fmt.Fprintf(out, "Turns:   %d\n", puzzled.Turns(root))

	p := puzzled.NewPuzzle(session.Topology())
	fmt.Fprintf(out, "Forward: %s\n", strings.Join(p.Execute(root, false), " "))
	p.Reset()
	fmt.Fprintf(out, "Reverse: %s\n", strings.Join(p.Execute(root, true), " "))
	return nil
}
