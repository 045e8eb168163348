package config

import (
	"math"
	"testing"
)

func TestGridPosition(t *testing.T) {
	cellWidth := (GameWindowWidth - 2*LayoutMarginX) / LayoutColumns

	tests := []struct {
		name  string
		index int
		wantX float64
		wantY float64
	}{
		{"第一个", 0, LayoutMarginX + cellWidth/2, LayoutMarginY + LayoutRowHeight/2},
		{"第一行末尾", LayoutColumns - 1, LayoutMarginX + cellWidth*(LayoutColumns-0.5), LayoutMarginY + LayoutRowHeight/2},
		{"换行", LayoutColumns, LayoutMarginX + cellWidth/2, LayoutMarginY + LayoutRowHeight*1.5},
		{"负数按0处理", -3, LayoutMarginX + cellWidth/2, LayoutMarginY + LayoutRowHeight/2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := GridPosition(tt.index)
			if math.Abs(x-tt.wantX) > 0.01 || math.Abs(y-tt.wantY) > 0.01 {
				t.Errorf("GridPosition(%d) = (%.2f, %.2f), want (%.2f, %.2f)", tt.index, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestApplyLayoutKeepsExplicitPositions(t *testing.T) {
	cfg := &GlowConfig{Objects: []ObjectConfig{
		{Name: "auto"},
		{Name: "fixed", X: 10, Y: 20},
	}}
	cfg.ApplyLayout()

	wantX, wantY := GridPosition(0)
	if cfg.Objects[0].X != wantX || cfg.Objects[0].Y != wantY {
		t.Errorf("auto object at (%.1f, %.1f), want (%.1f, %.1f)", cfg.Objects[0].X, cfg.Objects[0].Y, wantX, wantY)
	}
	if cfg.Objects[1].X != 10 || cfg.Objects[1].Y != 20 {
		t.Errorf("fixed object moved to (%.1f, %.1f)", cfg.Objects[1].X, cfg.Objects[1].Y)
	}
}
