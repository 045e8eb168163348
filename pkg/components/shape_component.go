package components

import (
	"fmt"
	"image/color"

	"github.com/decker502/glow/pkg/utils"
)

// ShapePart 形状的一个部件（相当于子渲染器）
// Points 为相对实体中心的凸多边形顶点
type ShapePart struct {
	Points []utils.Point
	Fill   color.RGBA
}

// ShapeComponent 可绘制形状组件
// 一个实体可以由多个部件组成，发光时每个部件单独绘制剪影
type ShapeComponent struct {
	Name  string
	Parts []ShapePart
}

// Contains 判断屏幕坐标是否落在任一部件内
func (s *ShapeComponent) Contains(pos *PositionComponent, x, y float64) bool {
	for _, part := range s.Parts {
		if utils.PolygonContains(utils.TranslatePolygon(part.Points, pos.X, pos.Y), x, y) {
			return true
		}
	}
	return false
}

// ShapeRenderable 形状部件的可绘制句柄
// 持有位置与形状的引用，渲染后端执行时读取当前几何，实体移动后无需重建
type ShapeRenderable struct {
	Position *PositionComponent
	Shape    *ShapeComponent
	Index    int
}

// RenderableName 实现 glow.Renderable
func (r *ShapeRenderable) RenderableName() string {
	return fmt.Sprintf("%s/part%d", r.Shape.Name, r.Index)
}

// Polygon 返回部件的屏幕坐标多边形
func (r *ShapeRenderable) Polygon() []utils.Point {
	if r.Index < 0 || r.Index >= len(r.Shape.Parts) {
		return nil
	}
	return utils.TranslatePolygon(r.Shape.Parts[r.Index].Points, r.Position.X, r.Position.Y)
}
