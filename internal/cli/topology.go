package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topologyStickers bool

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Describe the configured puzzle topology",
	Long:  `Print the faces of the configured puzzle with their neighbor cycles and opposites.`,
	RunE:  runTopology,
}

func init() {
	rootCmd.AddCommand(topologyCmd)
	topologyCmd.Flags().BoolVar(&topologyStickers, "stickers", false, "List every sticker location")
}

func runTopology(cmd *cobra.Command, args []string) error {
	_, session, _, err := setup(cmd)
	if err != nil {
		return err
	}
	topo := session.Topology()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Faces:    %d\n", topo.FaceCount())
	fmt.Fprintf(out, "Period:   %d\n", topo.FacePeriod())
	fmt.Fprintf(out, "Stickers: %d\n", topo.StickerCount())
	fmt.Fprintln(out)

	for _, f := range topo.Faces() {
		var nb strings.Builder
		for _, n := range topo.Neighbors(f) {
			nb.WriteString(n.String())
		}
		fmt.Fprintf(out, "  %s  neighbors %s  opposite %s\n", f, nb.String(), topo.Opposite(f))
	}

	if topologyStickers {
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Join(topo.Locations(), " "))
	}
	return nil
}
