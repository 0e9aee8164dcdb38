// main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger; silent until the CLI builds a real one
	logger = zap.NewNop()
)

// renderFlags are shared by render, watch and export-state.
type renderFlags struct {
	statePath         string
	exposuresText     string
	interventionsText string
	preset            string
	toggleLevels      []int
	editLevels        []string
	removeLevels      []int
	addLevels         []string
	logScale          bool
	decimals          int

	outDir     string
	format     string
	engine     string
	width      float64
	height     float64
	pixelRatio float64
	quality    int
	variants   []string

	bulkList string
}

var flags renderFlags

// --- Main Program Logic ---

var rootCmd = &cobra.Command{
	Use:   "waterfall",
	Short: "Render exposure waterfall charts",
	Long: `waterfall draws cumulative exposure charts: exposures raise a running
total, interventions lower it, and reference bands mark health tiers.

Three charts are produced from one input: the full waterfall, exposures only,
and interventions only.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the charts once",
	Long: `Reads the chart state (or the built-in demo state), applies bulk text
and preset options, and writes one file per chart (svg, png, jpg) or a single
HTML page with all charts.

Example:
  waterfall render --state home.json --format png --pixel-ratio 2 -o out/`,
	RunE: runRender,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render whenever the input files change",
	RunE:  runWatch,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in exposure presets and their reference bands",
	RunE:  runPresets,
}

var exportStateCmd = &cobra.Command{
	Use:   "export-state",
	Short: "Print the effective chart state as JSON",
	RunE:  runExportState,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML render configuration file")

	for _, cmd := range []*cobra.Command{renderCmd, watchCmd, exportStateCmd} {
		f := cmd.Flags()
		f.StringVar(&flags.statePath, "state", "", "Chart state JSON file (default: demo data)")
		f.StringVar(&flags.exposuresText, "exposures-text", "", "Bulk exposures file in Name123 form")
		f.StringVar(&flags.interventionsText, "interventions-text", "", "Bulk interventions file in Name123 form")
		f.StringVar(&flags.preset, "preset", "", "Switch to a built-in preset (or Custom)")
		f.IntSliceVar(&flags.toggleLevels, "toggle-level", nil, "Toggle the enabled flag of the band at this index (repeatable)")
		f.StringArrayVar(&flags.editLevels, "edit-level", nil, `Replace a band, as "index:Name=Value[:color]" (repeatable)`)
		f.IntSliceVar(&flags.removeLevels, "remove-level", nil, "Remove the band at this index (repeatable)")
		f.StringArrayVar(&flags.addLevels, "add-level", nil, `Append a band, as "Name=Value[:color]" (repeatable)`)
		f.BoolVar(&flags.logScale, "log-scale", false, "Use a logarithmic y axis")
		f.IntVar(&flags.decimals, "decimals", 0, "Decimal places for bar values (0-3)")
	}
	for _, cmd := range []*cobra.Command{renderCmd, watchCmd} {
		f := cmd.Flags()
		f.StringVarP(&flags.outDir, "out-dir", "o", "", "Output directory")
		f.StringVarP(&flags.format, "format", "f", "", "Output format: svg, png, jpg, html")
		f.StringVar(&flags.engine, "engine", "", "Raster engine: native or browser")
		f.Float64Var(&flags.width, "width", 0, "Chart width in logical pixels")
		f.Float64Var(&flags.height, "height", 0, "Chart height in logical pixels")
		f.Float64Var(&flags.pixelRatio, "pixel-ratio", 0, "Device pixel ratio for raster output")
		f.IntVar(&flags.quality, "quality", 0, "JPEG quality (1-100)")
		f.StringSliceVar(&flags.variants, "variant", nil, "Variants to render: full, exposures, interventions")
	}

	exportStateCmd.Flags().StringVar(&flags.bulkList, "bulk", "", "Print one list (exposures or interventions) in Name123 form instead of JSON")

	rootCmd.AddCommand(renderCmd, watchCmd, presetsCmd, exportStateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// --- Command Handlers ---

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return renderOnce(cmd.Context(), cmd, cfg)
}

func renderOnce(ctx context.Context, cmd *cobra.Command, cfg Config) error {
	state, err := resolveState(cmd)
	if err != nil {
		return err
	}
	logger.Info("rendering charts",
		zap.String("preset", state.SelectedPreset),
		zap.Int("exposures", len(state.Exposures)),
		zap.Int("interventions", len(state.Interventions)),
		zap.String("format", cfg.Format),
		zap.String("engine", cfg.Engine),
	)
	results, page, err := RenderAll(ctx, state, cfg)
	for _, r := range results {
		if r.Err == nil && r.Path != "" {
			fmt.Fprintln(cmd.OutOrStdout(), r.Path)
		}
	}
	if page != "" {
		fmt.Fprintln(cmd.OutOrStdout(), page)
	}
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	paths := inputPaths()
	if len(paths) == 0 {
		return fmt.Errorf("watch needs --state, --exposures-text or --interventions-text")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	render := func(ctx context.Context) error { return renderOnce(ctx, cmd, cfg) }
	if err := render(ctx); err != nil {
		logger.Error("initial render failed", zap.Error(err))
	}

	w, err := newInputWatcher(paths, cfg.WatchDebounce, render)
	if err != nil {
		return err
	}
	logger.Info("watching inputs", zap.Strings("paths", paths), zap.Duration("debounce", cfg.WatchDebounce))
	return w.Run(ctx)
}

func runPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, p := range exposurePresets {
		if p.Name == CustomPreset {
			fmt.Fprintf(tw, "%s\t(hand-edited bands)\n", p.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Units)
		for _, l := range p.Levels {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", l.Name, formatBandValue(l.Value), l.Color)
		}
	}
	return tw.Flush()
}

func runExportState(cmd *cobra.Command, args []string) error {
	state, err := resolveState(cmd)
	if err != nil {
		return err
	}
	switch strings.ToLower(flags.bulkList) {
	case "":
	case "exposures":
		_, err = fmt.Fprintln(cmd.OutOrStdout(), formatBulkEntries(state.Exposures))
		return err
	case "interventions":
		_, err = fmt.Fprintln(cmd.OutOrStdout(), formatBulkEntries(state.Interventions))
		return err
	default:
		return fmt.Errorf("unknown bulk list %q (exposures or interventions)", flags.bulkList)
	}

	data, err := marshalChartState(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// --- Input Resolution ---

// resolveConfig loads the config file and layers explicitly set flags on top.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return Config{}, err
	}
	f := cmd.Flags()
	var o configOverrides
	if f.Changed("width") {
		o.Width = &flags.width
	}
	if f.Changed("height") {
		o.Height = &flags.height
	}
	if f.Changed("pixel-ratio") {
		o.PixelRatio = &flags.pixelRatio
	}
	if f.Changed("format") {
		o.Format = &flags.format
	}
	if f.Changed("engine") {
		o.Engine = &flags.engine
	}
	if f.Changed("quality") {
		o.JPEGQuality = &flags.quality
	}
	if f.Changed("out-dir") {
		o.OutDir = &flags.outDir
	}
	o.Variants = flags.variants

	cfg = o.apply(cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveState builds the chart state from the state file, bulk text files,
// preset selection and display flags, in that order.
func resolveState(cmd *cobra.Command) (ChartState, error) {
	state := defaultChartState()
	if flags.statePath != "" {
		var err error
		if state, err = loadChartState(flags.statePath); err != nil {
			return ChartState{}, err
		}
	}

	var err error
	if state.Exposures, err = readBulkFile(flags.exposuresText, state.Exposures); err != nil {
		return ChartState{}, err
	}
	if state.Interventions, err = readBulkFile(flags.interventionsText, state.Interventions); err != nil {
		return ChartState{}, err
	}

	if flags.preset != "" {
		if state, err = state.selectPreset(flags.preset); err != nil {
			return ChartState{}, err
		}
	}
	set, err := applyLevelFlags(state.levelSet())
	if err != nil {
		return ChartState{}, err
	}
	state = state.withLevelSet(set)

	f := cmd.Flags()
	var logScale *bool
	if f.Changed("log-scale") {
		logScale = &flags.logScale
	}
	var decimals *int
	if f.Changed("decimals") {
		decimals = &flags.decimals
	}
	state.IsLogScale = getBool(logScale, state.IsLogScale)
	state.DecimalPlaces = min(max(getInt(decimals, state.DecimalPlaces), 0), maxDecimalPlaces)

	return state, state.validate()
}

// applyLevelFlags runs the band flags in a fixed order: toggles, edits,
// removals, then additions. Every index refers to the list as it stood before
// the removals. Any change other than a toggle moves the set to Custom.
func applyLevelFlags(set LevelSet) (LevelSet, error) {
	var err error
	for _, idx := range flags.toggleLevels {
		if set, err = set.WithToggled(idx); err != nil {
			return set, err
		}
	}
	for _, spec := range flags.editLevels {
		idx, band, err := parseLevelEdit(spec)
		if err != nil {
			return set, err
		}
		// Edits keep the enabled flag, and the color unless a new one is given.
		if levels := set.Levels(); idx >= 0 && idx < len(levels) {
			band.Enabled = levels[idx].Enabled
			if band.Color == "" {
				band.Color = levels[idx].Color
			}
		}
		if set, err = set.WithEdited(idx, band); err != nil {
			return set, err
		}
	}
	removals := slices.Clone(flags.removeLevels)
	slices.Sort(removals)
	removals = slices.Compact(removals)
	slices.Reverse(removals)
	for _, idx := range removals {
		if set, err = set.WithRemoved(idx); err != nil {
			return set, err
		}
	}
	for _, spec := range flags.addLevels {
		band, err := parseLevelSpec(spec)
		if err != nil {
			return set, err
		}
		set = set.WithAdded(band)
	}
	return set, nil
}

// readBulkFile replaces current with the entries parsed from path, if given.
func readBulkFile(path string, current []Contribution) ([]Contribution, error) {
	if path == "" {
		return current, nil
	}
	logger.Info("reading bulk entries", zap.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bulk file '%s': %w", path, err)
	}
	entries, err := parseBulkEntries(string(data))
	if err != nil {
		return nil, fmt.Errorf("bulk file '%s': %w", path, err)
	}
	return entries, nil
}

func inputPaths() []string {
	var paths []string
	for _, p := range []string{flags.statePath, flags.exposuresText, flags.interventionsText} {
		if strings.TrimSpace(p) != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
