package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/render"
)

var (
	curveFrom uint32
	curveTo   uint32
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the XP curve",
	Long: `Print the XP needed for each level and the running total from level 1.

  curve --from 1 --to 20`,
	Args: cobra.NoArgs,
	RunE: printCurve,
}

func init() {
	curveCmd.Flags().Uint32Var(&curveFrom, "from", 1, "first level")
	curveCmd.Flags().Uint32Var(&curveTo, "to", 20, "last level")
}

func printCurve(cmd *cobra.Command, _ []string) error {
	if curveFrom == 0 || curveTo < curveFrom {
		return errors.InvalidArgumentf("invalid level range %d..%d", curveFrom, curveTo)
	}

	curve := policies.Curve.OrDefault()

	var total uint64
	for l := uint32(1); l < curveFrom; l++ {
		total += curve.Required(l)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "LEVEL\tREQUIRED\tTOTAL\t")
	for l := curveFrom; l <= curveTo; l++ {
		required := curve.Required(l)
		total += required
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", l, render.Thousands(required), render.Thousands(total))
	}
	return tw.Flush()
}
