// Package config 提供发光演示的配置加载
//
// 配置文件为 YAML：效果参数 + 场景物体列表。
// 颜色使用十六进制字符串（如 "#ff3030"），由 go-colorful 解析。
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/decker502/glow/pkg/glow"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 默认配置文件路径（相对嵌入资源根目录）
const DefaultConfigPath = "data/glow.yaml"

// 支持的形状类型
const (
	ShapeRect    = "rect"
	ShapeCircle  = "circle"
	ShapePolygon = "polygon"
	ShapeCross   = "cross"
)

// GlowConfig 发光演示完整配置
type GlowConfig struct {
	Effect  EffectConfig   `yaml:"effect"`
	Scene   SceneConfig    `yaml:"scene"`
	Objects []ObjectConfig `yaml:"objects"`
}

// EffectConfig 效果参数
type EffectConfig struct {
	Intensity      float64 `yaml:"intensity"`
	BlurIterations int     `yaml:"blur_iterations"`
	BlurSpread     float64 `yaml:"blur_spread"`
	FadeRate       float64 `yaml:"fade_rate"` // 渐变速率（每秒）
}

// SceneConfig 场景配置
type SceneConfig struct {
	Background string `yaml:"background"` // 背景色（十六进制）
}

// ObjectConfig 场景物体
type ObjectConfig struct {
	Name      string  `yaml:"name"`
	Shape     string  `yaml:"shape"` // rect / circle / polygon / cross
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Radius    float64 `yaml:"radius"`
	Sides     int     `yaml:"sides"` // polygon 边数
	Fill      string  `yaml:"fill"`  // 填充色（十六进制）
	GlowColor string  `yaml:"glow"`  // 发光色（十六进制），可带透明度 "#rrggbbaa"
	Fade      bool    `yaml:"fade"`
	Pinned    bool    `yaml:"pinned"` // 启动时即发光
}

// LoadConfig 从文件加载配置
func LoadConfig(path string) (*GlowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return ParseConfig(data)
}

// DefaultConfig 返回默认配置（无物体）
func DefaultConfig() *GlowConfig {
	return &GlowConfig{
		Effect: EffectConfig{
			Intensity:      glow.DefaultIntensity,
			BlurIterations: glow.DefaultBlurIterations,
			BlurSpread:     glow.DefaultBlurSpread,
			FadeRate:       glow.DefaultFadeRate,
		},
		Scene: SceneConfig{Background: "#1e2230"},
	}
}

// ParseConfig 解析配置数据并填充默认值
// 效果参数在默认值之上解码，显式写出的 0 保持为 0
func ParseConfig(data []byte) (*GlowConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults 补全物体的缺省字段
func (c *GlowConfig) applyDefaults() {
	if c.Scene.Background == "" {
		c.Scene.Background = "#1e2230"
	}

	for i := range c.Objects {
		o := &c.Objects[i]
		if o.Name == "" {
			o.Name = fmt.Sprintf("object%d", i)
		}
		if o.Shape == "" {
			o.Shape = ShapeRect
		}
		if o.Width == 0 {
			o.Width = 80
		}
		if o.Height == 0 {
			o.Height = o.Width
		}
		if o.Radius == 0 {
			o.Radius = 40
		}
		if o.Sides == 0 {
			o.Sides = 6
		}
		if o.Fill == "" {
			o.Fill = "#808080"
		}
		if o.GlowColor == "" {
			o.GlowColor = "#ffffff"
		}
	}
}

// Validate 检查形状类型与颜色格式
func (c *GlowConfig) Validate() error {
	if _, err := ParseColor(c.Scene.Background); err != nil {
		return fmt.Errorf("scene.background: %w", err)
	}
	for _, o := range c.Objects {
		switch o.Shape {
		case ShapeRect, ShapeCircle, ShapePolygon, ShapeCross:
		default:
			return fmt.Errorf("object %q: unknown shape %q", o.Name, o.Shape)
		}
		if _, err := ParseColor(o.Fill); err != nil {
			return fmt.Errorf("object %q fill: %w", o.Name, err)
		}
		if _, err := ParseColor(o.GlowColor); err != nil {
			return fmt.Errorf("object %q glow: %w", o.Name, err)
		}
	}
	return nil
}

// Parameters 转换为效果参数（已归一化）
func (c *GlowConfig) Parameters() glow.Parameters {
	return glow.Parameters{
		Intensity:      c.Effect.Intensity,
		BlurIterations: c.Effect.BlurIterations,
		BlurSpread:     c.Effect.BlurSpread,
	}.Normalize()
}

// ParseColor 解析 "#rgb"、"#rrggbb" 或 "#rrggbbaa"
func ParseColor(s string) (glow.Color, error) {
	s = strings.TrimSpace(s)
	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return glow.Color{}, fmt.Errorf("invalid alpha in %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return glow.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return glow.Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}
