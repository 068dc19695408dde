package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/san-kum/folio3d/internal/automation"
	"github.com/san-kum/folio3d/internal/config"
	"github.com/san-kum/folio3d/internal/content"
)

func TestConfigSteps(t *testing.T) {
	cfg := config.GetPreset("high")
	cfg.Performance.Optimize = "medium"

	steps := configSteps(cfg)
	want := []automation.Action{automation.ActionSimpleShapes, automation.ActionWireframe, automation.ActionOptimize}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i, a := range want {
		if steps[i].Action != a || steps[i].Frame != 0 {
			t.Errorf("step %d: expected %s at frame 0, got %s at %d", i, a, steps[i].Action, steps[i].Frame)
		}
	}
	if !steps[1].Enabled || steps[2].Level != "medium" {
		t.Errorf("unexpected step fields %+v", steps)
	}

	if steps := configSteps(config.DefaultConfig()); len(steps) != 0 {
		t.Errorf("default config should add no steps, got %v", steps)
	}
}

func TestContentSource(t *testing.T) {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	src, closeSrc, err := contentSource(ctx, cfg)
	if err != nil || src != nil {
		t.Fatalf("expected no source, got %v %v", src, err)
	}
	closeSrc()

	cfg.Content.URL = "http://localhost:1"
	src, closeSrc, err = contentSource(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*content.HTTPSource); !ok {
		t.Errorf("expected HTTP source, got %T", src)
	}
	closeSrc()

	cfg.Content.DB = filepath.Join(t.TempDir(), "content.db")
	src, closeSrc, err = contentSource(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closeSrc()
	if _, ok := src.(*content.SQLStore); !ok {
		t.Errorf("database should take precedence, got %T", src)
	}
}

func TestNewLiveAppliesStartupSignals(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	cfg.Field.ParticleCount = 300
	cfg.Performance.AutoDetect = false
	cfg.Performance.Optimize = "high"

	m, a, err := newLive(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Dispose()
	if a.Pending() == 0 {
		t.Error("optimize signal should be queued before the first frame")
	}
	if m.View() == "" {
		t.Error("expected a view")
	}
}
