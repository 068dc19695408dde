package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/folio3d/internal/config"
	"github.com/san-kum/folio3d/internal/content"
	"github.com/san-kum/folio3d/internal/metrics"
	"github.com/san-kum/folio3d/internal/scene"
	"github.com/san-kum/folio3d/internal/viz"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, closeSrc, err := contentSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	var anims []*scene.Animator
	defer func() {
		for _, a := range anims {
			a.Dispose()
		}
	}()
	launch := func() (viz.Model, error) {
		m, a, err := newLive(cfg, nil)
		if err != nil {
			return viz.Model{}, err
		}
		anims = append(anims, a)
		return m, nil
	}

	return viz.RunInteractive(ctx, content.Fallback(), launch, viz.RunOptions{
		ConfigPath:     configFile,
		Content:        src,
		ContentTimeout: cfg.Content.Timeout,
		Logger:         logger,
	})
}

func runLive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, closeSrc, err := contentSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	m, a, err := newLive(cfg, content.Fallback())
	if err != nil {
		return err
	}
	defer a.Dispose()

	return viz.Run(ctx, m, viz.RunOptions{
		ConfigPath:     configFile,
		Content:        src,
		ContentTimeout: cfg.Content.Timeout,
		Logger:         logger,
	})
}

// newLive builds an initialized animator on a canvas surface and wraps it in
// the live view. Startup downgrades are queued before the first frame.
func newLive(cfg *config.Config, bundle *content.Bundle) (viz.Model, *scene.Animator, error) {
	surface := viz.NewCanvasSurface(80, 24)
	opts, err := cfg.SceneOptions()
	if err != nil {
		return viz.Model{}, nil, err
	}
	opts = append(opts, scene.WithLogger(logger))

	a, err := scene.New(surface, opts...)
	if err != nil {
		return viz.Model{}, nil, err
	}
	if err := a.Init(); err != nil {
		a.Dispose()
		return viz.Model{}, nil, err
	}
	if err := startupSignals(a, cfg); err != nil {
		a.Dispose()
		return viz.Model{}, nil, err
	}

	m := viz.NewModel(viz.LiveOptions{
		Animator: a,
		Surface:  surface,
		Monitor:  metrics.NewMonitor(logger),
		Config:   cfg,
		Bundle:   bundle,
		Logger:   logger,
	})
	return m, a, nil
}

func startupSignals(a *scene.Animator, cfg *config.Config) error {
	if err := cfg.Apply(a); err != nil {
		return err
	}
	if cfg.Performance.AutoDetect {
		dev := metrics.DetectDevice()
		if sig, ok := metrics.LowEndSignal(dev); ok {
			logger.Info("low-end device detected", zap.Int("cores", dev.Cores))
			if err := a.ApplyPerformance(sig); err != nil {
				return err
			}
		}
	}
	if cfg.Performance.Optimize != "" {
		sig, err := metrics.Optimize(cfg.Performance.Optimize)
		if err != nil {
			return err
		}
		return a.ApplyPerformance(sig)
	}
	return nil
}

// contentSource picks the configured content backend. The returned close
// func is always safe to call.
func contentSource(ctx context.Context, cfg *config.Config) (content.Source, func(), error) {
	switch {
	case cfg.Content.DB != "":
		st, err := content.OpenSQLStore(ctx, cfg.Content.DB)
		if err != nil {
			return nil, func() {}, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				logger.Warn("failed to close content database", zap.Error(err))
			}
		}, nil
	case cfg.Content.URL != "":
		return content.NewHTTPSource(cfg.Content.URL), func() {}, nil
	}
	return nil, func() {}, nil
}

// loadBundle fetches content synchronously for the non-interactive commands.
func loadBundle(ctx context.Context, cfg *config.Config) (*content.Bundle, error) {
	src, closeSrc, err := contentSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeSrc()
	return content.Load(ctx, src, cfg.Content.Timeout, logger), nil
}
