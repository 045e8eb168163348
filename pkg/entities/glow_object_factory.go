// Package entities 提供演示场景的实体工厂
package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/glow/pkg/components"
	"github.com/decker502/glow/pkg/config"
	"github.com/decker502/glow/pkg/ecs"
	"github.com/decker502/glow/pkg/glow"
	"github.com/decker502/glow/pkg/utils"
)

// circleSegments 圆形近似的边数
const circleSegments = 32

// ObjectOptions 创建物体时覆盖配置的选项
type ObjectOptions struct {
	// ForceFade 为 true 时忽略配置中的 fade 字段，总是使用渐变
	ForceFade bool
	// FadeRate 渐变速率（<= 0 时使用默认值）
	FadeRate float64
}

// NewGlowObject 根据配置创建可悬停发光的形状实体
//
// 参数:
//   - em: 实体管理器
//   - reg: 发光注册方（通常是 glow.Coordinator）
//   - obj: 物体配置（已填充默认值）
//   - opts: 渐变选项
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败时为 0
//   - error: 配置无效时返回错误
func NewGlowObject(em *ecs.EntityManager, reg glow.Registrar, obj config.ObjectConfig, opts ObjectOptions) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if reg == nil {
		return 0, fmt.Errorf("glow registrar cannot be nil")
	}

	fill, err := config.ParseColor(obj.Fill)
	if err != nil {
		return 0, fmt.Errorf("object %q fill: %w", obj.Name, err)
	}
	glowColor, err := config.ParseColor(obj.GlowColor)
	if err != nil {
		return 0, fmt.Errorf("object %q glow: %w", obj.Name, err)
	}
	parts, err := shapeParts(obj, toRGBA(fill))
	if err != nil {
		return 0, err
	}

	pos := &components.PositionComponent{X: obj.X, Y: obj.Y}
	shape := &components.ShapeComponent{Name: obj.Name, Parts: parts}

	// 每个部件一个可绘制句柄，剪影按部件顺序绘制
	renderables := make([]glow.Renderable, len(parts))
	for i := range parts {
		renderables[i] = &components.ShapeRenderable{Position: pos, Shape: shape, Index: i}
	}

	entityOpts := []glow.EntityOption{glow.WithName(obj.Name)}
	if obj.Fade || opts.ForceFade {
		rate := opts.FadeRate
		if rate <= 0 {
			rate = glow.DefaultFadeRate
		}
		entityOpts = append(entityOpts, glow.WithFade(rate))
	}
	glowEntity := glow.NewEntity(reg, glowColor, renderables, entityOpts...)

	entityID := em.CreateEntity()
	em.AddComponent(entityID, pos)
	em.AddComponent(entityID, shape)
	em.AddComponent(entityID, &components.HoverComponent{Pinned: obj.Pinned})
	em.AddComponent(entityID, &components.GlowComponent{Entity: glowEntity})

	if obj.Pinned {
		if err := glowEntity.Enable(); err != nil {
			return entityID, fmt.Errorf("object %q: %w", obj.Name, err)
		}
	}
	return entityID, nil
}

// shapeParts 将配置形状转换为多边形部件
func shapeParts(obj config.ObjectConfig, fill color.RGBA) ([]components.ShapePart, error) {
	switch obj.Shape {
	case config.ShapeRect:
		return []components.ShapePart{{Points: utils.RectPolygon(obj.Width, obj.Height), Fill: fill}}, nil
	case config.ShapeCircle:
		return []components.ShapePart{{Points: utils.RegularPolygon(circleSegments, obj.Radius), Fill: fill}}, nil
	case config.ShapePolygon:
		return []components.ShapePart{{Points: utils.RegularPolygon(obj.Sides, obj.Radius), Fill: fill}}, nil
	case config.ShapeCross:
		// 十字由横竖两个矩形组成，对应两个子渲染器
		bar := obj.Width / 3
		return []components.ShapePart{
			{Points: utils.RectPolygon(obj.Width, bar), Fill: fill},
			{Points: utils.RectPolygon(bar, obj.Height), Fill: fill},
		}, nil
	}
	return nil, fmt.Errorf("object %q: unknown shape %q", obj.Name, obj.Shape)
}

func toRGBA(c glow.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
