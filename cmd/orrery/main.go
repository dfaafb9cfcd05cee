package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/observability"
	"github.com/san-kum/orrery/internal/tui"
)

var (
	configFile   string
	preset       string
	seed         int64
	speedMax     float64
	fps          int
	theme        string
	bodies       []string
	holdDirected bool
	logLevel     string
	logFile      string
	metricsAddr  string
	hideOrbits   bool

	scriptFile string
	every      int
	runs       int
	outFile    string
	portrait   bool
	trajectory bool
	save       bool
	runsDir    string
	jsonOut    bool
	fromRun    string
	live       bool
	pace       bool
	gifOut     bool
	gifEvery   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "orrery",
		Short:        "interactive solar system in the terminal",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed for initial phases")
	pf.Float64Var(&speedMax, "speed-max", 5, "upper bound for speed overrides")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme (dark, light)")
	pf.StringSliceVar(&bodies, "bodies", nil, "subset of bodies to show")
	pf.BoolVar(&holdDirected, "hold-directed", false, "keep framed camera poses until reset")
	pf.StringVar(&logLevel, "log-level", "info", "log level")
	pf.StringVar(&logFile, "log-file", "", "log file (the interactive view logs nowhere without one)")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	pf.StringVar(&runsDir, "runs-dir", "runs", "directory for archived runs")

	rootCmd.Flags().BoolVar(&hideOrbits, "hide-orbits", false, "start with orbit rings hidden")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headless and print body positions",
		RunE:  runHeadless,
	}
	runCmd.Flags().Int("frames", config.DefaultFrames, "frames to simulate")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "input script to replay (yaml)")
	runCmd.Flags().IntVar(&every, "every", 60, "print a row every n frames")
	runCmd.Flags().BoolVar(&save, "save", false, "archive the run under --runs-dir")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full result as json instead of a table")
	runCmd.Flags().BoolVar(&live, "live", false, "draw the run in the terminal while it executes")
	runCmd.Flags().BoolVar(&pace, "pace", true, "with --live, run no faster than real time")
	runCmd.Flags().Int("width", 100, "live canvas width in cells")
	runCmd.Flags().Int("height", 30, "live canvas height in cells")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the body catalog",
		RunE:  listBodies,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [body]",
		Short: "plot a body's x coordinate over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotBody,
	}
	plotCmd.Flags().Int("frames", 3000, "frames to simulate")
	plotCmd.Flags().BoolVar(&portrait, "portrait", false, "also draw a top-down view of every orbit")
	plotCmd.Flags().StringVar(&fromRun, "run", "", "plot an archived run instead of simulating")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	periodCmd := &cobra.Command{
		Use:   "period [body]",
		Short: "estimate orbital periods from the spectrum of simulated traces",
		Args:  cobra.MaximumNArgs(1),
		RunE:  estimatePeriods,
	}
	periodCmd.Flags().Int("frames", 12000, "frames to simulate")
	periodCmd.Flags().IntVar(&runs, "runs", 4, "independent seeds to average over")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to svg",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Int("frames", 120, "frames to simulate before capturing")
	snapshotCmd.Flags().StringVar(&outFile, "out", "orrery.svg", "output file")
	snapshotCmd.Flags().Int("width", 120, "canvas width in cells")
	snapshotCmd.Flags().Int("height", 40, "canvas height in cells")
	snapshotCmd.Flags().BoolVar(&trajectory, "trajectories", false, "draw top-down trajectories instead of the camera view")
	snapshotCmd.Flags().BoolVar(&gifOut, "gif", false, "record an animated gif of the whole run")
	snapshotCmd.Flags().IntVar(&gifEvery, "gif-every", 4, "with --gif, capture every n frames")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-6s %d bodies\n", p, len(cfg.Catalog()))
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, runsCmd, bodiesCmd, plotCmd, periodCmd, snapshotCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("speed-max") {
		cfg.SpeedMax = speedMax
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if flags.Changed("hold-directed") {
		cfg.Camera.HoldDirected = holdDirected
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	// Each subcommand carries its own frame default; a config file only
	// wins over that default, never over an explicit flag.
	if f := flags.Lookup("frames"); f != nil && (f.Changed || configFile == "") {
		cfg.Frames, _ = flags.GetInt("frames")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startMetrics serves metrics when an address is configured. The collector is
// nil otherwise, which records nothing.
func startMetrics(ctx context.Context, cfg *config.Config, log logging.Logger) (*observability.FrameCollector, error) {
	if cfg.MetricsAddr == "" {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	collector, err := observability.NewFrameCollector(reg)
	if err != nil {
		return nil, err
	}
	done, err := observability.Serve(ctx, cfg.MetricsAddr, collector.Handler())
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	go func() {
		if err := <-done; err != nil {
			log.Error(ctx, "metrics server stopped", logging.Err(err))
		}
	}()
	log.Info(ctx, "serving metrics", logging.String("addr", cfg.MetricsAddr))
	return collector, nil
}

// canvasSize reads the per-command --width and --height flags.
func canvasSize(cmd *cobra.Command) (int, int) {
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	return max(w, 1), max(h, 1)
}

func openLogger(cfg *config.Config, fallback io.Writer) (logging.Logger, func() error, error) {
	log, closeLog, err := logging.Open(cfg.Log, fallback)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log, closeLog, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the renderer, so only log to a file.
	log, closeLog, err := openLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	metrics, err := startMetrics(ctx, cfg, log)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Config:     cfg.Simulation(),
		Light:      cfg.LightTheme(),
		FPS:        cfg.FPS,
		HideOrbits: hideOrbits,
		Logger:     log,
		Metrics:    metrics,
	})
}
