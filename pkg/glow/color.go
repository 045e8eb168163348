package glow

import (
	"fmt"
	"math"

	"github.com/decker502/glow/pkg/utils"
)

// colorEpsilon 颜色比较阈值
// 渐变在 Lerp 收敛到该范围内时视为到达目标颜色
const colorEpsilon = 1e-3

// Color 发光颜色（非预乘 alpha，各通道 0.0 ~ 1.0）
type Color struct {
	R, G, B, A float64
}

// 常用颜色
var (
	// Transparent 完全透明，渐隐的终点，等价于未激活
	Transparent = Color{}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
)

// RGBA 实现 color.Color 接口（返回预乘值）
func (c Color) RGBA() (r, g, b, a uint32) {
	cc := c.Clamp()
	a = uint32(cc.A * 0xffff)
	r = uint32(cc.R * cc.A * 0xffff)
	g = uint32(cc.G * cc.A * 0xffff)
	b = uint32(cc.B * cc.A * 0xffff)
	return
}

// Clamp 将各通道限制在 [0, 1]
func (c Color) Clamp() Color {
	return Color{
		R: utils.Clamp(c.R, 0, 1),
		G: utils.Clamp(c.G, 0, 1),
		B: utils.Clamp(c.B, 0, 1),
		A: utils.Clamp(c.A, 0, 1),
	}
}

// Lerp 线性插值，t 会被限制在 [0, 1]
func (c Color) Lerp(target Color, t float64) Color {
	t = utils.Clamp(t, 0, 1)
	return Color{
		R: utils.Lerp(c.R, target.R, t),
		G: utils.Lerp(c.G, target.G, t),
		B: utils.Lerp(c.B, target.B, t),
		A: utils.Lerp(c.A, target.A, t),
	}
}

// ApproxEqual 判断两个颜色是否在阈值内相等
func (c Color) ApproxEqual(o Color) bool {
	return math.Abs(c.R-o.R) < colorEpsilon &&
		math.Abs(c.G-o.G) < colorEpsilon &&
		math.Abs(c.B-o.B) < colorEpsilon &&
		math.Abs(c.A-o.A) < colorEpsilon
}

// Float32s 返回着色器 uniform 所需的 vec4
func (c Color) Float32s() []float32 {
	return []float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func (c Color) String() string {
	return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}
