package components

import "github.com/decker502/glow/pkg/glow"

// GlowComponent 发光组件
// 持有核心的发光实体，由 HoverSystem 切换、GlowSystem 推进渐变
type GlowComponent struct {
	Entity *glow.Entity
}
