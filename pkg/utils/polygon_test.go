package utils

import (
	"math"
	"testing"
)

// TestPolygonContains 测试点在多边形内的判断
func TestPolygonContains(t *testing.T) {
	rect := TranslatePolygon(RectPolygon(100, 50), 200, 100)
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"中心", 200, 100, true},
		{"靠近左边界内侧", 151, 100, true},
		{"左侧外部", 149, 100, false},
		{"上方外部", 200, 74, false},
		{"右下角内侧", 249, 124, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonContains(rect, tt.x, tt.y); got != tt.want {
				t.Errorf("PolygonContains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestRegularPolygon 测试正多边形顶点
func TestRegularPolygon(t *testing.T) {
	pts := RegularPolygon(32, 10)
	if len(pts) != 32 {
		t.Fatalf("len = %d, want 32", len(pts))
	}
	for i, p := range pts {
		if r := math.Hypot(p.X, p.Y); math.Abs(r-10) > 1e-9 {
			t.Errorf("point %d radius = %v, want 10", i, r)
		}
	}
	if len(RegularPolygon(1, 5)) != 3 {
		t.Error("segments < 3 should produce a triangle")
	}
}

// TestFanIndices 测试三角扇索引
func TestFanIndices(t *testing.T) {
	is := FanIndices(4)
	want := []uint16{0, 1, 2, 0, 2, 3}
	if len(is) != len(want) {
		t.Fatalf("len = %d, want %d", len(is), len(want))
	}
	for i := range want {
		if is[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, is[i], want[i])
		}
	}
	if FanIndices(2) != nil {
		t.Error("degenerate polygon should have no indices")
	}
}
