package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/folio3d/internal/config"
	"github.com/san-kum/folio3d/internal/logging"
	"github.com/san-kum/folio3d/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string

	theme     string
	particles int
	seed      int64
	frameRate int

	// run
	noSave   bool
	ensemble int
	// export
	outPath string
	// snapshot
	frames  int
	svgPath string
	scale   float64
	// bench
	counts      []int
	benchFrames int
	// content seed
	dbPath    string
	useSample bool
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

// main registers the folio3d commands and opens the interactive browser when
// no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "folio3d",
		Short:             "portfolio scene generator and animator",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = logger.Sync() },
		RunE:              runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".folio3d", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "performance preset (full, low, medium, high)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.StringVar(&logFile, "log-file", "", "log file; interactive modes log nowhere without one")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "scene theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.IntVar(&particles, "particles", 0, "particle count")
	pf.Int64Var(&seed, "seed", 0, "random seed; 0 picks one from the clock")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the animated scene",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scripted scenario headless and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().IntVar(&ensemble, "ensemble", 0, "run this many consecutive seeds concurrently")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot frame cost and particle count of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the frame cost chart of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "advance the scene headless and print the last frame",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", 60, "frames to advance")
	snapshotCmd.Flags().StringVar(&svgPath, "svg", "", "write the frame as SVG instead of printing it")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "SVG pixels per dot")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frame cost across particle counts",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	benchCmd.Flags().IntSliceVar(&counts, "counts", []int{200, 500, 1000, 2000, 5000}, "particle counts")
	benchCmd.Flags().IntVar(&benchFrames, "frames", 120, "frames per count")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list performance presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	contentCmd := &cobra.Command{
		Use:   "content",
		Short: "show the portfolio content the scene is decorated with",
		Args:  cobra.NoArgs,
		RunE:  showContent,
	}
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "create and fill a content database",
		Args:  cobra.NoArgs,
		RunE:  seedContent,
	}
	seedCmd.Flags().StringVar(&dbPath, "db", "content.db", "database path")
	seedCmd.Flags().BoolVar(&useSample, "sample", false, "seed the larger sample portfolio")
	contentCmd.AddCommand(seedCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, snapshotCmd, benchCmd, presetsCmd, contentCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// setup resolves the config (preset, then file, then changed flags) and
// builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if preset != "" && !config.ApplyPreset(cfg, preset) {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("particles") {
		cfg.Field.ParticleCount = particles
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("log-level") || cfg.Log.Level == "" {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	if interactive(cmd) {
		logger, err = logging.ForTUI(cfg.Log.Level, cfg.Log.File)
	} else {
		logger, err = logging.New(cfg.Log.Level, cfg.Log.File)
	}
	if err != nil {
		return err
	}
	logger.Debug("config resolved",
		zap.String("theme", cfg.Theme),
		zap.Int("particles", cfg.Field.ParticleCount),
		zap.Int("fps", cfg.FPS),
		zap.String("preset", preset),
	)
	return nil
}

func interactive(cmd *cobra.Command) bool {
	return cmd.Name() == "live" || !cmd.HasParent()
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("  %-7s particles=%d wireframe=%t simple=%t fps=%d\n",
			name, p.Field.ParticleCount, p.Shapes.Wireframe, p.Shapes.Simple, p.FPS)
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "folio3d.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
