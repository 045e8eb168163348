package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/glow/pkg/glow"
)

const sampleConfig = `
effect:
  intensity: 2.5
  blur_iterations: 3
scene:
  background: "#101010"
objects:
  - name: red box
    shape: rect
    x: 100
    y: 120
    width: 60
    glow: "#ff0000"
  - name: ring
    shape: circle
    radius: 30
    glow: "#00ff0080"
    fade: true
`

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.Effect.Intensity != 2.5 {
		t.Errorf("Intensity = %v, want 2.5", cfg.Effect.Intensity)
	}
	if cfg.Effect.BlurSpread != glow.DefaultBlurSpread {
		t.Errorf("BlurSpread = %v, want default %v", cfg.Effect.BlurSpread, glow.DefaultBlurSpread)
	}
	if cfg.Effect.FadeRate != glow.DefaultFadeRate {
		t.Errorf("FadeRate = %v, want default %v", cfg.Effect.FadeRate, glow.DefaultFadeRate)
	}
	if len(cfg.Objects) != 2 {
		t.Fatalf("objects = %d, want 2", len(cfg.Objects))
	}

	box := cfg.Objects[0]
	if box.Height != 60 {
		t.Errorf("rect height = %v, want width 60", box.Height)
	}
	if box.Fill != "#808080" {
		t.Errorf("default fill = %q", box.Fill)
	}
	ring := cfg.Objects[1]
	if !ring.Fade || ring.Shape != ShapeCircle {
		t.Errorf("ring = %+v", ring)
	}

	p := cfg.Parameters()
	if p.BlurIterations != 3 || p.Intensity != 2.5 {
		t.Errorf("Parameters() = %+v", p)
	}
}

// TestParseConfigExplicitZero 显式写出的 0 不被默认值覆盖
func TestParseConfigExplicitZero(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		wantIntensity float64
		wantFadeRate  float64
	}{
		{"强度为 0", "effect:\n  intensity: 0\n", 0, glow.DefaultFadeRate},
		{"未写强度", "effect:\n  fade_rate: 2\n", glow.DefaultIntensity, 2},
		{"空文件", "", glow.DefaultIntensity, glow.DefaultFadeRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseConfig: %v", err)
			}
			if got := cfg.Parameters().Intensity; got != tt.wantIntensity {
				t.Errorf("Parameters().Intensity = %v, want %v", got, tt.wantIntensity)
			}
			if cfg.Effect.FadeRate != tt.wantFadeRate {
				t.Errorf("FadeRate = %v, want %v", cfg.Effect.FadeRate, tt.wantFadeRate)
			}
			if cfg.Scene.Background != "#1e2230" {
				t.Errorf("Background = %q, want default", cfg.Scene.Background)
			}
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"YAML 格式错误", "effect: [", "解析配置文件失败"},
		{"未知形状", "objects:\n  - name: x\n    shape: star\n", "unknown shape"},
		{"颜色错误", "objects:\n  - name: x\n    glow: \"#zzzzzz\"\n", "glow"},
		{"背景色错误", "scene:\n  background: red\n", "scene.background"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want glow.Color
	}{
		{"#ff0000", glow.Red},
		{"#fff", glow.White},
		{"#0000ff80", glow.Color{B: 1, A: 128.0 / 255}},
		{" #00ff00 ", glow.Green},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if !got.ApproxEqual(tt.want) {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseColor("not-a-color"); err == nil {
		t.Error("invalid color should fail")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glow.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Objects[0].Name != "red box" {
		t.Errorf("first object = %q", cfg.Objects[0].Name)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
