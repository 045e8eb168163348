package systems

import (
	"image"
	"image/color"

	"github.com/decker502/glow/pkg/components"
	"github.com/decker502/glow/pkg/ecs"
	"github.com/decker502/glow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderSystem 形状渲染系统
// 按实体 ID 顺序绘制所有形状部件
type RenderSystem struct {
	entityManager *ecs.EntityManager

	white    *ebiten.Image
	vertices []ebiten.Vertex
}

// NewRenderSystem 创建形状渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	whiteImage := ebiten.NewImage(3, 3)
	whiteImage.Fill(color.White)
	return &RenderSystem{
		entityManager: em,
		// 取中心像素，避免线性采样到边缘
		white: whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Draw 绘制所有形状
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.ShapeComponent](s.entityManager)
	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		shape, _ := ecs.GetComponent[*components.ShapeComponent](s.entityManager, id)
		for _, part := range shape.Parts {
			s.drawPart(screen, pos, part)
		}
	}
}

func (s *RenderSystem) drawPart(screen *ebiten.Image, pos *components.PositionComponent, part components.ShapePart) {
	is := utils.FanIndices(len(part.Points))
	if is == nil {
		return
	}
	r := float32(part.Fill.R) / 0xff
	g := float32(part.Fill.G) / 0xff
	b := float32(part.Fill.B) / 0xff
	a := float32(part.Fill.A) / 0xff

	s.vertices = s.vertices[:0]
	for _, p := range part.Points {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX:   float32(p.X + pos.X),
			DstY:   float32(p.Y + pos.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, is, s.white, op)
}
