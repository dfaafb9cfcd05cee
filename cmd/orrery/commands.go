package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/analysis"
	"github.com/san-kum/orrery/internal/automation"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/tui"
	"github.com/san-kum/orrery/internal/viz"
)

// headless builds a simulation for the non-interactive commands, logging to
// stderr. scene may be nil.
func headless(cmd *cobra.Command, scene control.Scene) (*config.Config, *sim.Runner, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, closeLog, err := openLogger(cfg, os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	metrics, err := startMetrics(ctx, cfg, log)
	if err != nil {
		stop()
		closeLog()
		return nil, nil, nil, err
	}

	s, err := control.New(cfg.Simulation(), scene, nil,
		control.WithLogger(log),
		control.WithMetrics(metrics))
	if err != nil {
		stop()
		closeLog()
		return nil, nil, nil, err
	}
	if cfg.LightTheme() {
		s.ToggleTheme()
	}

	cmd.SetContext(ctx)
	return cfg, sim.NewRunner(s, log), func() { stop(); closeLog() }, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	width, height := canvasSize(cmd)
	var scene *viz.Scene
	var collab control.Scene
	if live {
		scene = viz.NewScene(width, height, viz.ThemeDark, 0)
		collab = scene
	}
	cfg, runner, done, err := headless(cmd, collab)
	if err != nil {
		return err
	}
	defer done()

	if live {
		pw, ph := scene.Resize(width, height)
		runner.Simulation().Resize(pw, ph)
		renderer := tui.NewLiveRenderer(os.Stdout, scene, cfg.FPS, pace)
		renderer.Start()
		defer renderer.Stop()
		runner.AddObserver(renderer)
	}

	if scriptFile != "" {
		script, err := automation.LoadScript(scriptFile)
		if err != nil {
			return err
		}
		runner.AddHook(automation.NewPlayer(script, nil))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	table := !jsonOut && !live
	if table {
		fmt.Fprintln(w, "FRAME\tT\tSTATE\tCAMERA\tHOVER\tBODY\tX\tZ\tSPEED")
	}
	if every > 0 && table {
		runner.AddObserver(sim.ObserverFunc(func(frame int, t float64, snap control.Snapshot) {
			if (frame+1)%every != 0 {
				return
			}
			hover := "-"
			for _, b := range snap.Bodies {
				if snap.HasHover && b.ID == snap.Hovered {
					hover = b.Name()
				}
			}
			for _, b := range snap.Bodies {
				p := b.Position()
				fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
					frame+1, t, snap.State, snap.CameraMode, hover, b.Name(), p.X(), p.Z(), b.Speed)
			}
		}))
	}

	result, err := runner.Run(cmd.Context(), sim.Config{Frames: cfg.Frames, Dt: cfg.Dt()})
	if err != nil {
		return err
	}
	if jsonOut {
		if err := storage.WriteJSON(os.Stdout, result); err != nil {
			return err
		}
	} else if table {
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d frames, %.2fs simulated, %s\n", result.Final.Frame, result.Final.Elapsed, result.Final.State)
	}

	if save {
		st := storage.New(runsDir)
		if err := st.Init(); err != nil {
			return err
		}
		name := preset
		if name == "" {
			name = "run"
		}
		runID, err := st.Save(name, cfg.Seed, cfg.Dt(), result, periodMetrics(result, cfg.Dt()))
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", runID)
	}
	return nil
}

// periodMetrics estimates each body's period from its x trace. Bodies whose
// trace is too short for an estimate are left out.
func periodMetrics(result *sim.Result, dt float64) map[string]float64 {
	metrics := make(map[string]float64)
	for _, name := range result.Names {
		if p, err := analysis.EstimatePeriod(result.X(name), dt); err == nil {
			metrics["period_"+strings.ToLower(name)] = p
		}
	}
	return metrics
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(runsDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tSEED\tFRAMES\tELAPSED\tBODIES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2fs\t%d\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Seed, r.Frames, r.Elapsed, len(r.Bodies))
	}
	return w.Flush()
}

func listBodies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISTANCE\tRADIUS\tSPEED\tSIM PERIOD\tREAL PERIOD\tREAL DISTANCE")
	for _, s := range cfg.Catalog() {
		fmt.Fprintf(w, "%s\t%.0f\t%.1f\t%.2f\t%.1fs\t%s\t%s\n",
			s.Name, s.Distance, s.Radius, s.Speed,
			analysis.AnalyticPeriod(s.Speed, cfg.Kinematics.OrbitRate),
			s.RealPeriod, s.RealDistance)
	}
	return w.Flush()
}

func bodyArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "Earth"
}

func plotBody(cmd *cobra.Command, args []string) error {
	var result *sim.Result
	if fromRun != "" {
		loaded, err := storage.New(runsDir).LoadResult(fromRun)
		if err != nil {
			return err
		}
		result = loaded
	} else {
		cfg, runner, done, err := headless(cmd, nil)
		if err != nil {
			return err
		}
		defer done()

		result, err = runner.Run(cmd.Context(), sim.Config{Frames: cfg.Frames, Dt: cfg.Dt()})
		if err != nil {
			return err
		}
	}

	name := ""
	for _, n := range result.Names {
		if strings.EqualFold(n, bodyArg(args)) {
			name = n
		}
	}
	if name == "" {
		return fmt.Errorf("%w: %q", control.ErrUnknownBody, bodyArg(args))
	}
	if len(result.Times) == 0 {
		return fmt.Errorf("no samples for %s", name)
	}

	fmt.Printf("body: %s\n", name)
	fmt.Printf("samples: %d over %.1fs\n\n", len(result.Times), result.Times[len(result.Times)-1])

	graph := asciigraph.Plot(result.X(name),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s x position", strings.ToLower(name))),
	)
	fmt.Println(graph)

	if portrait {
		fmt.Println()
		fmt.Print(analysis.PortraitToASCII(analysis.NewPortrait(result.Positions...), 80, 30))
	}
	return nil
}

func estimatePeriods(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := bodyArg(args)
	var spec *orbit.Spec
	for _, s := range cfg.Catalog() {
		if strings.EqualFold(s.Name, name) {
			spec = &s
			break
		}
	}
	if spec == nil {
		return fmt.Errorf("%w: %q", control.ErrUnknownBody, name)
	}

	dt := cfg.Dt()
	log.Info(ctx, "estimating period", logging.String("body", spec.Name), logging.Int("runs", runs), logging.Int("frames", cfg.Frames))
	results, err := sim.NewEnsemble(cfg.Simulation(), max(runs, 1), cfg.Seed).Run(ctx, sim.Config{Frames: cfg.Frames, Dt: dt})
	if err != nil {
		return err
	}

	var spectral, crossing []float64
	for _, r := range results {
		xs := r.X(spec.Name)
		if p, err := analysis.EstimatePeriod(xs, dt); err == nil {
			spectral = append(spectral, p)
		}
		if p, err := analysis.CrossingPeriod(analysis.Crossings(xs, r.Times, 0)); err == nil {
			crossing = append(crossing, p)
		}
	}

	ps, _ := analysis.PowerSpectrum(results[0].X(spec.Name))
	if n := len(ps) / 16; n > 1 {
		fmt.Println(asciigraph.Plot(ps[:n],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s x)", strings.ToLower(spec.Name))),
		))
		fmt.Println()
	}

	analytic := analysis.AnalyticPeriod(spec.Speed, cfg.Kinematics.OrbitRate)
	fmt.Printf("body:      %s\n", spec.Name)
	fmt.Printf("analytic:  %.3fs\n", analytic)
	printEstimate("spectral", spectral, analytic)
	printEstimate("crossing", crossing, analytic)
	return nil
}

func printEstimate(label string, values []float64, analytic float64) {
	if len(values) == 0 {
		fmt.Printf("%-10s n/a (trace too short)\n", label+":")
		return
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	rel := math.Abs(mean-analytic) / analytic * 100
	fmt.Printf("%-10s %.3fs  (%.2f%% off, %d runs)\n", label+":", mean, rel, len(values))
}

func snapshot(cmd *cobra.Command, args []string) error {
	width, height := canvasSize(cmd)
	scene := viz.NewScene(width, height, viz.ThemeDark, 0)
	cfg, runner, done, err := headless(cmd, scene)
	if err != nil {
		return err
	}
	defer done()

	pw, ph := scene.Resize(width, height)
	runner.Simulation().Resize(pw, ph)
	scene.SetTheme(viz.ThemeFor(cfg.LightTheme()))

	var rec *viz.Recorder
	if gifOut {
		// gif delays are in hundredths of a second.
		delay := int(math.Round(float64(max(gifEvery, 1)) * cfg.Dt() * 100))
		rec = viz.NewRecorder(scene.Theme(), delay)
		runner.AddObserver(sim.ObserverFunc(func(frame int, t float64, snap control.Snapshot) {
			if frame%max(gifEvery, 1) == 0 {
				rec.Capture(scene.Canvas())
			}
		}))
	}

	result, err := runner.Run(cmd.Context(), sim.Config{Frames: max(cfg.Frames, 1), Dt: cfg.Dt()})
	if err != nil {
		return err
	}

	if rec != nil {
		path := outFile
		if !cmd.Flags().Changed("out") {
			path = "orrery.gif"
		}
		if err := rec.Save(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d frames captured, t=%.2fs)\n", path, rec.Len(), result.Final.Elapsed)
		return nil
	}

	t := viz.ThemeFor(result.Final.LightTheme)
	scene.SetTheme(t)
	var svg string
	if trajectory {
		trs := make([]export.Trajectory, len(result.Names))
		for i, name := range result.Names {
			b := result.Final.Bodies[i]
			trs[i] = export.Trajectory{Name: name, Color: b.Info.Color, Points: result.Positions[i]}
		}
		svg = export.TrajectoryToSVG(trs, width*8, height*16, string(t.Background))
	} else {
		scene.Render(result.Final.Pose)
		svg = export.CanvasToSVG(scene.Canvas(), 4, string(t.Background))
	}

	if err := export.WriteFile(outFile, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames, t=%.2fs)\n", outFile, result.Final.Frame, result.Final.Elapsed)
	return nil
}
