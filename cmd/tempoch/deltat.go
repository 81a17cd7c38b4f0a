package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Siderust/tempoch"
)

func newDeltaTCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deltat JD...",
		Short: "Print ΔT = TT − UT at Julian Dates on the UT axis",
		Long: `deltat prints, for each Julian Date on the UT axis, the modelled
value of ΔT in seconds and the regime of the model that produced it
(ancient, medieval, tabulated, observed, or extrapolated).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jds, err := parseValues(tempoch.ScaleUT, args)
			if err != nil {
				return err
			}
			for _, jd := range jds {
				dt, regime := tempoch.DeltaTModel(jd)
				if regime == tempoch.DeltaTExtrapolated {
					a.log.Warn("ΔT is extrapolated", "jd", jd)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", strconv.FormatFloat(jd, 'f', -1, 64), dt, regime)
			}
			return nil
		},
	}
}
