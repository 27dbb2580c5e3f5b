package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/correct"
	"github.com/readwell/readwell/internal/engine"
)

var checkTarget float64

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <foreground> <background>",
	Short: "Check one colour pairing and suggest a repair",
	Long: `Check the contrast ratio of a single foreground and background pairing.
Colours accept hex (#1a2b3c) and rgb()/rgba() forms. When the pairing
fails the target, the closest passing foreground is suggested.

Examples:
  readwell check "#777777" "#ffffff"
  readwell check "rgb(120, 120, 120)" "#fff" --target 7`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Float64VarP(&checkTarget, "target", "t", engine.DefaultTarget, "contrast target ratio")
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	fg, err := parseOpaque(args[0])
	if err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	bg, err := parseOpaque(args[1])
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	out := cmd.OutOrStdout()
	ratio := colour.ContrastRatio(fg, bg)
	fmt.Fprintf(out, "contrast %s on %s: %.2f (target %.2f)\n", fg.Hex(), bg.Hex(), ratio, checkTarget)

	if ratio >= checkTarget {
		fmt.Fprintln(out, "passes")
		return nil
	}

	result, outcome := correct.Correct(fg, bg, checkTarget, false)
	switch outcome {
	case correct.OutcomeCorrected:
		fmt.Fprintf(out, "fails; suggest %s (%.2f, delta-E %.2f)\n",
			result.Colour.Hex(), result.Contrast,
			colour.DeltaE2000(colour.RGBToLab(fg), colour.RGBToLab(result.Colour)))
	case correct.OutcomeInfeasible:
		fmt.Fprintln(out, "fails; no foreground reaches the target on this background")
	default:
		fmt.Fprintln(out, "fails")
	}
	return nil
}

// parseOpaque parses a CSS colour and rejects non-painting values.
func parseOpaque(s string) (colour.RGB, error) {
	layer, err := colour.ParseCSS(s)
	if err != nil {
		return colour.RGB{}, err
	}
	return layer.Colour, nil
}
