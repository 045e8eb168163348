package utils

import "math"

// Point 二维点
type Point struct {
	X, Y float64
}

// RectPolygon 以原点为中心的矩形（顺时针）
func RectPolygon(w, h float64) []Point {
	hw, hh := w/2, h/2
	return []Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
}

// RegularPolygon 以原点为中心的正多边形，segments 小于 3 时按 3 处理
// 段数足够多时可近似圆形
func RegularPolygon(segments int, radius float64) []Point {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point, segments)
	for i := range pts {
		a := 2*math.Pi*float64(i)/float64(segments) - math.Pi/2
		pts[i] = Point{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return pts
}

// TranslatePolygon 返回平移后的多边形副本
func TranslatePolygon(pts []Point, dx, dy float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{p.X + dx, p.Y + dy}
	}
	return out
}

// PolygonContains 判断点是否在多边形内（射线法，适用于凸/凹多边形）
func PolygonContains(pts []Point, x, y float64) bool {
	inside := false
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// FanIndices 三角扇索引（适用于凸多边形）
func FanIndices(n int) []uint16 {
	if n < 3 {
		return nil
	}
	is := make([]uint16, 0, (n-2)*3)
	for i := 1; i < n-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	return is
}
