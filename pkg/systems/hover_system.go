package systems

import (
	"log"

	"github.com/decker502/glow/pkg/components"
	"github.com/decker502/glow/pkg/ecs"
	"github.com/decker502/glow/pkg/input"
)

// PointerFunc 返回当前帧的指针状态
type PointerFunc func() input.State

// HoverSystem 悬停检测系统
// 指针进入形状时启用发光，离开时停止；点击切换固定状态
type HoverSystem struct {
	entityManager *ecs.EntityManager
	pointer       PointerFunc
}

// NewHoverSystem 创建悬停检测系统
// pointer 为 nil 时使用 input.GetState
func NewHoverSystem(em *ecs.EntityManager, pointer PointerFunc) *HoverSystem {
	if pointer == nil {
		pointer = input.GetState
	}
	return &HoverSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Update 更新悬停状态
func (s *HoverSystem) Update() {
	pointer := s.pointer()
	x, y := float64(pointer.X), float64(pointer.Y)

	entities := ecs.GetEntitiesWith4[*components.PositionComponent, *components.ShapeComponent,
		*components.HoverComponent, *components.GlowComponent](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		shape, _ := ecs.GetComponent[*components.ShapeComponent](s.entityManager, id)
		hover, _ := ecs.GetComponent[*components.HoverComponent](s.entityManager, id)
		glowComp, _ := ecs.GetComponent[*components.GlowComponent](s.entityManager, id)

		wasOn := hover.IsHovered || hover.Pinned
		hover.IsHovered = shape.Contains(pos, x, y)
		if hover.IsHovered && pointer.JustPressed {
			hover.Pinned = !hover.Pinned
		}
		isOn := hover.IsHovered || hover.Pinned
		if isOn == wasOn {
			continue
		}

		var err error
		if isOn {
			err = glowComp.Entity.Enable()
		} else {
			err = glowComp.Entity.Disable()
		}
		if err != nil {
			log.Printf("[HoverSystem] Entity %d (%s): %v", id, shape.Name, err)
		}
	}
}
