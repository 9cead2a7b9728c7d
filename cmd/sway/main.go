package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sway/internal/config"
	"github.com/san-kum/sway/internal/export"
	"github.com/san-kum/sway/internal/limb"
	"github.com/san-kum/sway/internal/scene"
	"github.com/san-kum/sway/internal/sim"
	"github.com/san-kum/sway/internal/trace"
	"github.com/san-kum/sway/internal/tui"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	frameRate  int
	halfWidth  float64
	halfHeight float64
	iterations int
	cellSize   float64
	configFile string
	preset     string
	sceneFile  string
	outFile    string
	nodeIndex  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sway",
		Short: "procedural creature animation sandbox",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the interactive TUI when no command given.
			p := tea.NewProgram(tui.NewInteractiveApp(config.DefaultDt), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sway", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a headless simulation and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "sample rate")
	runCmd.Flags().Float64Var(&halfWidth, "half-width", config.DefaultHalfWidth, "playground half width")
	runCmd.Flags().Float64Var(&halfHeight, "half-height", config.DefaultHalfHeight, "playground half height")
	runCmd.Flags().IntVar(&iterations, "iterations", config.DefaultConstraintIterations, "constraint solver rounds")
	runCmd.Flags().Float64Var(&cellSize, "cell-size", config.DefaultCellSize, "collision grid cell size")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&sceneFile, "scene-file", "", "load scene from JSON instead of a preset")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := scene.Preset(args[0]); err != nil {
				return err
			}
			p := tea.NewProgram(tui.NewLiveApp(args[0], dt), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a node's trajectory from a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&nodeIndex, "node", 0, "node index to plot")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available config presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.PresetNames() {
				fmt.Println(name)
			}
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "export a built-in scene as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportScene,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "validate a scene file and summarize its contents",
		Args:  cobra.ExactArgs(1),
		RunE:  importScene,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded node trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&nodeIndex, "node", 0, "node index to render")
	svgCmd.Flags().StringVar(&outFile, "out", "trajectory.svg", "output file")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, presetsCmd, scenesCmd, exportCmd, importCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	sceneName := args[0]

	if preset != "" {
		cfg := config.GetPreset(sceneName, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sceneName))
		}
		// CLI flags override preset values.
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("fps") {
			frameRate = cfg.FrameRate
		}
		if !cmd.Flags().Changed("iterations") {
			iterations = cfg.ConstraintIterations
		}
		if !cmd.Flags().Changed("cell-size") {
			cellSize = cfg.CellSize
		}
		if !cmd.Flags().Changed("half-width") {
			halfWidth = cfg.World.HalfWidth
		}
		if !cmd.Flags().Changed("half-height") {
			halfHeight = cfg.World.HalfHeight
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// CLI flags override config file values.
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("fps") {
			frameRate = cfg.FrameRate
		}
		if !cmd.Flags().Changed("iterations") {
			iterations = cfg.ConstraintIterations
		}
		if !cmd.Flags().Changed("cell-size") {
			cellSize = cfg.CellSize
		}
		if !cmd.Flags().Changed("half-width") {
			halfWidth = cfg.World.HalfWidth
		}
		if !cmd.Flags().Changed("half-height") {
			halfHeight = cfg.World.HalfHeight
		}
	}

	data, err := loadScene(sceneName)
	if err != nil {
		return err
	}

	st := trace.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(world.NewPlayground(vec.New(halfWidth, halfHeight)))
	s.SetConstraintIterations(iterations)
	s.SetCellSize(cellSize)

	sets := make(map[world.Handle]*limb.Set)
	scene.Spawn(s.World(), sets, data)
	for body, set := range sets {
		s.LimbSets()[body] = set
	}
	s.Play()

	sampleEvery := int(1 / (dt * float64(frameRate)))
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	steps := int(duration / dt)

	fmt.Printf("running %s for %.1fs...\n", sceneName, duration)
	start := time.Now()

	rec := &trace.Recording{}
	for i := 0; i < steps; i++ {
		if err := s.Step(dt); err != nil {
			return err
		}
		if i%sampleEvery == 0 {
			rec.Sample(s)
		}
	}

	elapsed := time.Since(start)

	runID, err := st.Save(sceneName, dt, duration, s.World().NodeCount(), rec)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d, frames: %d\n", steps, len(rec.Frames))

	return nil
}

// loadScene resolves a preset name, or a JSON file when --scene-file
// is set.
func loadScene(name string) (scene.SceneData, error) {
	if sceneFile != "" {
		raw, err := os.ReadFile(sceneFile)
		if err != nil {
			return scene.SceneData{}, err
		}
		return scene.Decode(raw)
	}
	return scene.Preset(name)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tNODES\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Nodes,
			run.Frames,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := trace.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if nodeIndex < 0 || nodeIndex >= meta.Nodes {
		return fmt.Errorf("node index %d out of range (run has %d nodes)", nodeIndex, meta.Nodes)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	for i, frame := range frames {
		if nodeIndex*2+1 < len(frame.Positions) {
			xs[i] = frame.Positions[nodeIndex*2]
			ys[i] = frame.Positions[nodeIndex*2+1]
		}
	}

	fmt.Println(asciigraph.Plot(xs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("node %d x position", nodeIndex)),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("node %d y position", nodeIndex)),
	))

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if nodeIndex < 0 || nodeIndex >= meta.Nodes {
		return fmt.Errorf("node index %d out of range (run has %d nodes)", nodeIndex, meta.Nodes)
	}

	points := export.NodePath(frames, nodeIndex)
	svg := export.TrajectoryToSVG(points, 800, 600, "#00ff00")
	if svg == "" {
		return fmt.Errorf("not enough samples to render")
	}

	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("trajectory written to %s\n", outFile)
	return nil
}

func exportScene(cmd *cobra.Command, args []string) error {
	data, err := scene.Preset(args[0])
	if err != nil {
		return err
	}

	raw, err := scene.Encode(data)
	if err != nil {
		return err
	}

	if outFile == "" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(outFile, raw, 0644); err != nil {
		return err
	}
	fmt.Printf("scene written to %s\n", outFile)
	return nil
}

func importScene(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	data, err := scene.Decode(raw)
	if err != nil {
		return err
	}

	// Spawn into a scratch world so dangling references surface.
	w := world.New()
	sets := make(map[world.Handle]*limb.Set)
	scene.Spawn(w, sets, data)

	fmt.Printf("nodes: %d\n", w.NodeCount())
	fmt.Printf("constraints: %d (of %d declared)\n", len(w.Constraints()), len(data.Constraints))
	fmt.Printf("limb sets: %d\n", len(sets))
	return nil
}
