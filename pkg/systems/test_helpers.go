package systems

import (
	"github.com/decker502/glow/pkg/components"
	"github.com/decker502/glow/pkg/ecs"
	"github.com/decker502/glow/pkg/glow"
	"github.com/decker502/glow/pkg/input"
	"github.com/decker502/glow/pkg/utils"
)

// allShaders 测试用着色器库，所有程序都可解析
type allShaders struct{}

func (allShaders) ResolveShader(glow.ShaderName) error { return nil }

// newTestCoordinator 创建不依赖 GPU 的协调器
func newTestCoordinator() *glow.Coordinator {
	c, err := glow.NewCoordinator(glow.NewCamera("Test Camera"), allShaders{}, glow.DefaultParameters())
	if err != nil {
		panic(err)
	}
	return c
}

// createGlowingSquare 创建一个 20x20 的发光正方形实体
func createGlowingSquare(em *ecs.EntityManager, co *glow.Coordinator, x, y float64, opts ...glow.EntityOption) (ecs.EntityID, *glow.Entity) {
	id := em.CreateEntity()
	pos := &components.PositionComponent{X: x, Y: y}
	shape := &components.ShapeComponent{
		Name:  "square",
		Parts: []components.ShapePart{{Points: utils.RectPolygon(20, 20)}},
	}
	e := glow.NewEntity(co, glow.Red, []glow.Renderable{
		&components.ShapeRenderable{Position: pos, Shape: shape, Index: 0},
	}, opts...)
	em.AddComponent(id, pos)
	em.AddComponent(id, shape)
	em.AddComponent(id, &components.HoverComponent{})
	em.AddComponent(id, &components.GlowComponent{Entity: e})
	return id, e
}

// fixedPointer 返回可修改的指针状态
func fixedPointer(state *input.State) PointerFunc {
	return func() input.State { return *state }
}
