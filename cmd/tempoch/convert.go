package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Siderust/tempoch"
)

func newConvertCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert --from SCALE --to SCALE VALUE...",
		Short: "Convert instants from one time scale to another",
		Example: `  tempoch convert --from JD --to MJD 2451545.0
  tempoch convert --from UNIX --to TT 946728000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := tempoch.ParseScale(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			dst, err := tempoch.ParseScale(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			vals, err := parseValues(src, args)
			if err != nil {
				return err
			}
			a.log.Debug("converting", "from", src, "to", dst, "n", len(vals))
			for _, v := range vals {
				out := tempoch.ConvertValue(src, dst, v)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", dst, strconv.FormatFloat(out, 'f', -1, 64))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "JD", "scale of the input values")
	cmd.Flags().StringVar(&to, "to", "", "scale to convert to")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// parseValues parses finite day counts on scale id.
func parseValues(id tempoch.ScaleID, args []string) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("argument %d: %w", i+1, &tempoch.NonFiniteError{Scale: id.String(), Value: v})
		}
		vals[i] = v
	}
	return vals, nil
}
