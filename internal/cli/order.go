package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/puzzled"
)

const defaultOrderLimit = 10000

var orderLimit int

var orderCmd = &cobra.Command{
	Use:   "order <token>",
	Short: "Count how many applications of a token return to solved",
	Long: `Apply a token to a solved puzzle repeatedly until it is solved again and
print the number of applications. Gives up after --limit applications.`,
	Example: `  puzzled order "[ru]"
  puzzled order --limit 200 ru`,
	Args: cobra.ExactArgs(1),
	RunE: runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.Flags().IntVar(&orderLimit, "limit", defaultOrderLimit, "Maximum number of applications")
}

func runOrder(cmd *cobra.Command, args []string) error {
	_, session, _, err := setup(cmd)
	if err != nil {
		return err
	}

	root, err := session.Parser().Parse(args[0])
	if err != nil {
		return err
	}

	order, ok := Order(session.Topology(), root, orderLimit)
	if !ok {
		return fmt.Errorf("not solved after %d applications", orderLimit)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s has order %d\n", root.Inner(), order)
	return nil
}

// Order applies root to a solved puzzle until it returns to solved and
// reports the number of applications. Tokens performing no turns have
// order 1.
func Order(topo *puzzled.Topology, root puzzled.Node, limit int) (int, bool) {
	p := puzzled.NewPuzzle(topo)
	for i := 1; i <= limit; i++ {
		p.Execute(root, false)
		if p.Solved() {
			return i, true
		}
	}
	return 0, false
}
