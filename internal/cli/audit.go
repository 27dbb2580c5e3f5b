package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/readwell/readwell/internal/advisory"
	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/config"
	"github.com/readwell/readwell/internal/engine"
	"github.com/readwell/readwell/internal/host"
	"github.com/readwell/readwell/internal/host/rodhost"
	"github.com/readwell/readwell/internal/host/snapshot"
	"github.com/readwell/readwell/internal/record"
)

// scaleFlag is a comfort scale value validated at parse time.
type scaleFlag float64

func (s *scaleFlag) String() string { return strconv.FormatFloat(float64(*s), 'g', -1, 64) }

func (s *scaleFlag) Set(v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	if f < 0 || f > 1 {
		return fmt.Errorf("comfort scale %v out of [0, 1]", f)
	}
	*s = scaleFlag(f)
	return nil
}

func (s *scaleFlag) Type() string { return "float" }

var _ pflag.Value = (*scaleFlag)(nil)

var (
	auditLive      bool
	auditTarget    float64
	auditScale     scaleFlag = 0.5
	auditDark      bool
	auditFormat    string
	auditStore     string
	auditGates     []string
	auditThreshold float64
	auditPlugin    string
	auditGenAI     bool
	auditVerify    bool
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <snapshot.json | url>",
	Short: "Audit a page and repair failing text colours",
	Long: `Audit every text element of a page against a contrast target and repair
the failing ones with the closest passing colour.

The input is a style snapshot file by default, or a URL opened in headless
Chrome with --live. Corrections are reported per element; with --store
they are also persisted for later comparison.

Examples:
  # Audit an offline snapshot at the default target
  readwell audit page.json

  # Audit a live page at WCAG AAA
  readwell audit --live --target 7 https://example.com

  # Let a comfort oracle veto borderline corrections
  readwell audit --gate http://localhost:5000 page.json

  # Persist the corrections of a live audit
  readwell audit --live --store audits.db https://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditLive, "live", false, "treat the argument as a URL and audit it in headless Chrome")
	auditCmd.Flags().Float64VarP(&auditTarget, "target", "t", 0, "contrast target ratio (default from config or comfort scale)")
	auditCmd.Flags().Var(&auditScale, "scale", "comfort scale in [0, 1] used when --target is not set")
	auditCmd.Flags().BoolVar(&auditDark, "dark", false, "page uses a dark background theme")
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", "table", "output format (table, json)")
	auditCmd.Flags().StringVar(&auditStore, "store", "", "SQLite file to persist corrections into")
	auditCmd.Flags().StringArrayVar(&auditGates, "gate", nil, "comfort oracle endpoint (repeatable)")
	auditCmd.Flags().Float64Var(&auditThreshold, "gate-threshold", 0, "oracle confidence needed to veto (default from config)")
	auditCmd.Flags().StringVar(&auditPlugin, "oracle-plugin", "", "path to an external oracle plugin binary")
	auditCmd.Flags().BoolVar(&auditGenAI, "genai", false, "use the Gemini oracle (needs GOOGLE_API_KEY)")
	auditCmd.Flags().BoolVar(&auditVerify, "verify", false, "screenshot the live page and compare corrected pixels")
}

// runAudit executes the audit command.
func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target := resolveTarget(cmd, cfg)
	threshold := auditThreshold
	if !cmd.Flags().Changed("gate-threshold") {
		threshold = cfg.Gate.Threshold
	}

	gate, closeGate, err := buildGate(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGate()

	var (
		h       host.Host
		rodHost *rodhost.Host
	)
	if auditLive {
		rodHost, err = rodhost.Open(ctx, args[0], rodhost.Options{Logger: log.Named("rodhost")})
		if err != nil {
			return err
		}
		defer rodHost.Close()
		h = rodHost
	} else {
		h, err = snapshot.Load(args[0])
		if err != nil {
			return err
		}
	}

	eng := engine.New(h, gate, log.Named("engine"))
	records := engine.NewRecords()
	report, err := eng.Pass(ctx, records, engine.Options{
		Target:        target,
		BatchSize:     cfg.Pass.BatchSize,
		YieldDelay:    cfg.Pass.YieldDelay,
		GateThreshold: threshold,
		UserScale:     float64(auditScale),
	})
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if auditVerify {
		if rodHost == nil {
			return fmt.Errorf("audit: --verify requires --live")
		}
		if err := verifyCorrections(cmd, rodHost, records); err != nil {
			log.Warn("pixel verification failed", "error", err)
		}
	}

	if auditStore != "" {
		store, err := record.Open(auditStore)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(ctx, args[0], records); err != nil {
			return err
		}
		log.Info("corrections stored", "path", auditStore, "count", records.Len())
	}

	return renderReport(cmd, report, target)
}

// resolveTarget picks the contrast target: explicit flag, then comfort
// scale when given, then the configured per-theme default.
func resolveTarget(cmd *cobra.Command, cfg config.Config) float64 {
	if cmd.Flags().Changed("target") {
		return auditTarget
	}
	if cmd.Flags().Changed("scale") {
		return config.TargetFor(float64(auditScale), auditDark)
	}
	if auditDark {
		return cfg.Target.Dark
	}
	return cfg.Target.Light
}

// buildGate constructs the advisory oracle from flags and config. The
// returned func releases oracle resources; it is always safe to call.
func buildGate(ctx context.Context, cfg config.Config, log hclog.Logger) (advisory.Gate, func(), error) {
	noop := func() {}

	if auditPlugin != "" {
		g := advisory.NewPluginGate(auditPlugin, log.Named("oracle"))
		return g, g.Close, nil
	}
	if auditGenAI {
		model := cfg.Gate.GenAIModel
		if model == "" {
			model = advisory.DefaultGenAIModel
		}
		g, err := advisory.NewGenAIGate(ctx, model)
		if err != nil {
			return nil, noop, err
		}
		return g, noop, nil
	}

	endpoints := auditGates
	if len(endpoints) == 0 {
		endpoints = cfg.Gate.Endpoints
	}
	if len(endpoints) == 0 {
		return advisory.Noop{}, noop, nil
	}

	opts := []advisory.HTTPOption{advisory.WithLogger(log.Named("oracle"))}
	if cfg.Gate.Timeout > 0 {
		opts = append(opts, advisory.WithTimeout(cfg.Gate.Timeout))
	}
	return advisory.NewHTTPGate(endpoints, opts...), noop, nil
}

// verifyCorrections re-samples the rendered pixel at the centre of each
// corrected element and reports where the raster disagrees with the
// applied colour. Disagreement is informational: overlapping content
// legitimately changes the rendered pixel.
func verifyCorrections(cmd *cobra.Command, h *rodhost.Host, records *engine.Records) error {
	ctx := cmd.Context()
	sampler, err := h.Capture(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records.All() {
		style, err := h.ComputedStyle(ctx, rec.Element)
		if err != nil {
			continue
		}
		x, y := style.Bounds.Center()
		rendered, ok := sampler.At(x, y)
		if !ok {
			continue
		}
		if rendered != rec.Corrected {
			fmt.Fprintf(cmd.ErrOrStderr(), "verify: %s centre renders %s, applied %s\n",
				rec.Element, rendered.Hex(), rec.Corrected.Hex())
		}
	}
	return nil
}

// renderReport prints the pass outcome in the selected format.
func renderReport(cmd *cobra.Command, report engine.Report, target float64) error {
	out := cmd.OutOrStdout()

	switch strings.ToLower(auditFormat) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reportJSON(report, target))

	case "table":
		table := NewTable([]string{"ELEMENT", "STATUS", "BEFORE", "AFTER", "COLOUR"})
		for _, res := range report.Results {
			after := ""
			applied := ""
			if res.Status == engine.StatusCorrected {
				after = fmt.Sprintf("%.2f", res.Achieved)
				applied = res.Corrected.Hex()
			}
			detail := string(res.Status)
			if res.Reason != "" {
				detail = fmt.Sprintf("%s (%s)", res.Status, res.Reason)
			}
			table.AddRow(string(res.Element), detail, fmt.Sprintf("%.2f", res.Before), after, applied)
		}
		fmt.Fprint(out, table.Render())
		fmt.Fprintf(out, "\ntarget %.2f: %d corrected, %d compliant, %d skipped, %d unresolved, %d vetoed, %d infeasible, %d errors\n",
			target,
			report.Count(engine.StatusCorrected),
			report.Count(engine.StatusCompliant),
			report.Count(engine.StatusSkipped),
			report.Count(engine.StatusUnresolved),
			report.Count(engine.StatusVetoed),
			report.Count(engine.StatusInfeasible),
			report.Count(engine.StatusError))
		return nil

	default:
		return fmt.Errorf("audit: unknown format %q", auditFormat)
	}
}

// elementJSON is the JSON shape of one audited element.
type elementJSON struct {
	Element   string      `json:"element"`
	Status    string      `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	Original  *colour.RGB `json:"original,omitempty"`
	Corrected *colour.RGB `json:"corrected,omitempty"`
	Before    float64     `json:"before"`
	Achieved  float64     `json:"achieved,omitempty"`
	Error     string      `json:"error,omitempty"`
}

type auditJSON struct {
	Target   float64       `json:"target"`
	Elements []elementJSON `json:"elements"`
}

func reportJSON(report engine.Report, target float64) auditJSON {
	out := auditJSON{Target: target, Elements: make([]elementJSON, 0, len(report.Results))}
	for _, res := range report.Results {
		el := elementJSON{
			Element: string(res.Element),
			Status:  string(res.Status),
			Reason:  string(res.Reason),
			Before:  res.Before,
		}
		if res.Status == engine.StatusCorrected {
			orig, corr := res.Original, res.Corrected
			el.Original = &orig
			el.Corrected = &corr
			el.Achieved = res.Achieved
		}
		if res.Err != nil {
			el.Error = res.Err.Error()
		}
		out.Elements = append(out.Elements, el)
	}
	return out
}
