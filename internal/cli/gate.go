package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/readwell/readwell/internal/advisory"
	"github.com/readwell/readwell/internal/colour"
)

// latencyResolution keeps reported probe latencies readable.
const latencyResolution = 100 * time.Microsecond

var gateSample bool

// gateCmd represents the gate command
var gateCmd = &cobra.Command{
	Use:   "gate <endpoint>...",
	Short: "Probe comfort oracle endpoints",
	Long: `Probe one or more comfort oracle endpoints and report their health and
latency. With --sample, each healthy endpoint is also sent a reference
judgement request so its verdict format can be inspected.

Examples:
  readwell gate http://localhost:5000
  readwell gate --sample http://localhost:5000 http://oracle.internal:5000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGate,
}

func init() {
	gateCmd.Flags().BoolVar(&gateSample, "sample", false, "send a reference judgement to each healthy endpoint")
}

// runGate executes the gate command.
func runGate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := newLogger()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := []advisory.HTTPOption{advisory.WithLogger(log.Named("oracle"))}
	if cfg.Gate.Timeout > 0 {
		opts = append(opts, advisory.WithTimeout(cfg.Gate.Timeout))
	}

	table := NewTable([]string{"ENDPOINT", "STATUS", "LATENCY", "VERDICT"})
	unhealthy := 0

	for _, endpoint := range args {
		g := advisory.NewHTTPGate([]string{endpoint}, opts...)

		latency, err := g.Healthy(ctx, endpoint)
		if err != nil {
			table.AddRow(endpoint, "unreachable", "", "")
			unhealthy++
			continue
		}

		verdict := ""
		if gateSample {
			d, err := g.Judge(ctx, sampleJudgement())
			if err != nil {
				verdict = "judge failed: " + err.Error()
			} else {
				verdict = fmt.Sprintf("comfortable=%v confidence=%.2f", d.Comfortable, d.Confidence)
			}
		}
		table.AddRow(endpoint, "healthy", latency.Round(latencyResolution).String(), verdict)
	}

	fmt.Fprint(out, table.Render())
	if unhealthy > 0 {
		return fmt.Errorf("gate: %d of %d endpoints unreachable", unhealthy, len(args))
	}
	return nil
}

// sampleJudgement is a mid-grey paragraph on white, deliberately near the
// AA boundary so oracle disagreement is visible.
func sampleJudgement() advisory.Request {
	return advisory.Request{
		Foreground:  colour.RGB{R: 118, G: 118, B: 118},
		Background:  colour.RGB{R: 255, G: 255, B: 255},
		Contrast:    4.54,
		ElementType: "p",
		FontSize:    16,
		FontWeight:  400,
		TextLength:  120,
		UserScale:   0.5,
	}
}
