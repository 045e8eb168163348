package systems

import (
	"log"

	"github.com/decker502/glow/pkg/components"
	"github.com/decker502/glow/pkg/ecs"
	"github.com/decker502/glow/pkg/glow"
)

// GlowSystem 发光逻辑系统
//
// 每帧：
//  1. 推进所有渐变中的发光实体
//  2. 注销已销毁 ECS 实体残留的发光注册
//  3. 调用 Coordinator.Update 合并本帧的脏标记，最多重建一次
type GlowSystem struct {
	entityManager *ecs.EntityManager
	coordinator   *glow.Coordinator
	tracked       map[ecs.EntityID]*glow.Entity
	frame         uint64
}

// NewGlowSystem 创建发光逻辑系统
func NewGlowSystem(em *ecs.EntityManager, coordinator *glow.Coordinator) *GlowSystem {
	return &GlowSystem{
		entityManager: em,
		coordinator:   coordinator,
		tracked:       make(map[ecs.EntityID]*glow.Entity),
	}
}

// Update 更新发光状态，返回本帧是否重建了命令序列
func (s *GlowSystem) Update(dt float64) bool {
	s.frame++

	for _, id := range ecs.GetEntitiesWith1[*components.GlowComponent](s.entityManager) {
		glowComp, _ := ecs.GetComponent[*components.GlowComponent](s.entityManager, id)
		if glowComp.Entity == nil {
			continue
		}
		s.tracked[id] = glowComp.Entity
		glowComp.Entity.Tick(dt)
	}

	for id, e := range s.tracked {
		if s.entityManager.Exists(id) {
			continue
		}
		// 实体已销毁：直接注销，不经过渐出
		s.coordinator.Deregister(e)
		delete(s.tracked, id)
		log.Printf("[GlowSystem] Entity %d destroyed, glow deregistered", id)
	}

	return s.coordinator.Update(s.frame)
}

// Frame 返回当前帧号
func (s *GlowSystem) Frame() uint64 {
	return s.frame
}
