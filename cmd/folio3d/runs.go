package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/folio3d/internal/automation"
	"github.com/san-kum/folio3d/internal/config"
	"github.com/san-kum/folio3d/internal/content"
	"github.com/san-kum/folio3d/internal/export"
	"github.com/san-kum/folio3d/internal/scene"
	"github.com/san-kum/folio3d/internal/storage"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if ensemble > 0 {
		return runEnsemble(cmd, sc)
	}
	opts, err := cfg.SceneOptions()
	if err != nil {
		return err
	}

	fmt.Printf("running scenario %s...\n", sc.Name)
	start := time.Now()
	res, err := automation.Run(cmd.Context(), sc, logger, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", len(res.Samples))
	fmt.Printf("final state: %s (%s, %d particles)\n", res.Final, res.Detail, res.Particles)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res.Metadata(sc), res.Samples)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	for name, val := range res.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, sc *automation.Scenario) error {
	start := sc.Seed
	if start == 0 {
		start = time.Now().UnixNano()
	}
	fmt.Printf("running scenario %s over %d seeds...\n", sc.Name, ensemble)
	results, err := automation.RunEnsemble(cmd.Context(), sc, ensemble, start, logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTATE\tDETAIL\tPARTICLES\tVISIBLE\tRUN")
	for _, r := range results {
		runID := "-"
		if !noSave {
			member := *sc
			member.Seed = r.Seed
			if runID, err = st.Save(r.Result.Metadata(&member), r.Result.Samples); err != nil {
				return err
			}
		}
		last := r.Result.Samples[len(r.Result.Samples)-1]
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", r.Seed, r.Result.Final, r.Result.Detail, r.Result.Particles, last.Visible, runID)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFRAMES\tPARTICLES\tTHEME\tSTATE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.ParticleCount,
			run.Theme,
			run.FinalState,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(samples))

	cost := make([]float64, len(samples))
	count := make([]float64, len(samples))
	visible := make([]float64, len(samples))
	for i, s := range samples {
		cost[i] = s.FrameMS
		count[i] = float64(s.Particles)
		visible[i] = float64(s.Visible)
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{cost, "frame cost (ms)"},
		{count, "particle count"},
		{visible, "visible particles"},
	} {
		fmt.Println(asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return export.WriteJSON(os.Stdout, *meta, samples)
	}
	if err := export.ExportJSON(outPath, *meta, samples); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	ui, err := scene.Theme(cfg.Theme).Colors()
	if err != nil {
		return err
	}
	svg := export.SeriesToSVG(export.FrameTimeSeries(samples), 800, 300, ui.Palette.Primary.Hex())

	path := outPath
	if path == "" {
		path = args[0] + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

// snapshot advances a headless scene built from the resolved config and
// prints or saves its last frame.
func snapshot(cmd *cobra.Command, args []string) error {
	opts, err := cfg.SceneOptions()
	if err != nil {
		return err
	}
	sc := &automation.Scenario{
		Name:          "snapshot",
		Seed:          cfg.Seed,
		Theme:         cfg.Theme,
		ParticleCount: cfg.Field.ParticleCount,
		FPS:           cfg.FPS,
		Frames:        frames,
		Width:         automation.DefaultWidth,
		Height:        automation.DefaultHeight,
		Steps:         configSteps(cfg),
	}
	if err := sc.Validate(); err != nil {
		return err
	}
	res, err := automation.Run(cmd.Context(), sc, logger, opts...)
	if err != nil {
		return err
	}

	if svgPath == "" {
		fmt.Println(res.Canvas.String())
		return nil
	}
	colors, err := scene.Theme(cfg.Theme).Colors()
	if err != nil {
		return err
	}
	svg := export.CanvasToSVG(res.Canvas, scale, colors.Background, colors.Palette.Primary)
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgPath)
	return nil
}

// configSteps turns the shape settings of cfg into frame-zero steps.
func configSteps(cfg *config.Config) []automation.Step {
	var steps []automation.Step
	if cfg.Shapes.Simple {
		steps = append(steps, automation.Step{Action: automation.ActionSimpleShapes})
	}
	if cfg.Shapes.Wireframe {
		steps = append(steps, automation.Step{Action: automation.ActionWireframe, Enabled: true})
	}
	if cfg.Performance.Optimize != "" {
		steps = append(steps, automation.Step{Action: automation.ActionOptimize, Level: cfg.Performance.Optimize})
	}
	return steps
}

func bench(cmd *cobra.Command, args []string) error {
	sw := &automation.Sweep{
		Counts: counts,
		Frames: benchFrames,
		Seed:   cfg.Seed,
	}
	if sw.Seed == 0 {
		sw.Seed = time.Now().UnixNano()
	}

	fmt.Printf("benchmarking %d counts over %d frames\n\n", len(counts), benchFrames)
	results, err := automation.RunSweep(cmd.Context(), sw, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tMEAN FRAME\tVISIBLE\tFRAMES/SEC")
	for _, r := range results {
		fps := 0.0
		if r.MeanFrameMS > 0 {
			fps = 1000 / r.MeanFrameMS
		}
		fmt.Fprintf(w, "%d\t%.3fms\t%d\t%.0f\n", r.Count, r.MeanFrameMS, r.Visible, fps)
	}
	return w.Flush()
}

func showContent(cmd *cobra.Command, args []string) error {
	b, err := loadBundle(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", b.About.Title)
	if b.About.Subtitle != "" {
		fmt.Printf("%s\n", b.About.Subtitle)
	}
	fmt.Println()

	levels := content.SkillLevels(b)
	for _, cat := range content.Categories(levels) {
		fmt.Printf("%s:\n", content.CategoryTitle(cat))
		for _, s := range levels[cat] {
			fmt.Printf("  %-20s %3d%%\n", s.Name, s.Level)
		}
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tCATEGORY\tYEAR\tSTATUS\tLINKS")
	for _, p := range content.ProjectCards(b) {
		kinds := make([]string, len(p.Links))
		for i, l := range p.Links {
			kinds[i] = l.Kind
		}
		title := p.Title
		if p.Featured {
			title += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", title, p.Category, p.Year, p.Status, strings.Join(kinds, ","))
	}
	return w.Flush()
}

func seedContent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := content.OpenSQLStore(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	b := content.Fallback()
	if useSample {
		b = content.Sample()
	}
	if err := st.Seed(ctx, b); err != nil {
		return err
	}
	logger.Info("content seeded", zap.String("db", st.Path()), zap.Bool("sample", useSample))
	fmt.Printf("seeded %s\n", st.Path())
	return nil
}
