package glow

import "github.com/decker502/glow/pkg/utils"

// 效果参数默认值与范围
const (
	DefaultIntensity = 4.0
	MinIntensity     = 0.0
	MaxIntensity     = 10.0

	DefaultBlurIterations = 4
	MaxBlurIterations     = 16

	// DefaultBlurSpread 每次采样偏移 1.5 个半分辨率纹素
	DefaultBlurSpread = 1.5
	MaxBlurSpread     = 8.0

	DefaultFadeRate = 9.0
	MinFadeRate     = 0.1
	MaxFadeRate     = 99.0
)

// Parameters 效果参数
//
// Intensity 不会写入命令序列：合成着色器在执行时实时读取，
// 因此修改强度不需要重建。
type Parameters struct {
	Intensity      float64
	BlurIterations int
	BlurSpread     float64
}

// DefaultParameters 返回默认参数
func DefaultParameters() Parameters {
	return Parameters{
		Intensity:      DefaultIntensity,
		BlurIterations: DefaultBlurIterations,
		BlurSpread:     DefaultBlurSpread,
	}
}

// Normalize 返回限制在有效范围内的参数副本
// 零值字段使用默认值
func (p Parameters) Normalize() Parameters {
	p.Intensity = ClampIntensity(p.Intensity)
	if p.BlurIterations <= 0 {
		p.BlurIterations = DefaultBlurIterations
	}
	if p.BlurIterations > MaxBlurIterations {
		p.BlurIterations = MaxBlurIterations
	}
	if p.BlurSpread <= 0 {
		p.BlurSpread = DefaultBlurSpread
	}
	p.BlurSpread = utils.Clamp(p.BlurSpread, 0, MaxBlurSpread)
	return p
}

// ClampIntensity 将强度限制在 [0, 10]
func ClampIntensity(v float64) float64 {
	return utils.Clamp(v, MinIntensity, MaxIntensity)
}

// ClampFadeRate 将渐变速率限制在 [0.1, 99]
func ClampFadeRate(v float64) float64 {
	return utils.Clamp(v, MinFadeRate, MaxFadeRate)
}
