package config

// 布局配置常量
// 窗口尺寸为逻辑分辨率，Ebitengine 负责缩放到实际窗口
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// WindowTitle 窗口标题
	WindowTitle = "Glow Outline Demo"

	// LayoutColumns 未指定坐标的物体按网格自动排布时的列数
	LayoutColumns = 4

	// LayoutMarginX 网格左右留白
	LayoutMarginX = 60.0

	// LayoutMarginY 网格上下留白（顶部留给状态文字）
	LayoutMarginY = 80.0

	// LayoutRowHeight 网格行高
	LayoutRowHeight = 160.0
)

// GridPosition 返回第 index 个自动排布物体的中心坐标
func GridPosition(index int) (float64, float64) {
	if index < 0 {
		index = 0
	}
	cellWidth := (GameWindowWidth - 2*LayoutMarginX) / LayoutColumns
	col := index % LayoutColumns
	row := index / LayoutColumns
	x := LayoutMarginX + cellWidth*float64(col) + cellWidth/2
	y := LayoutMarginY + LayoutRowHeight*float64(row) + LayoutRowHeight/2
	return x, y
}

// ApplyLayout 为未指定坐标（x 与 y 均为 0）的物体分配网格位置
func (c *GlowConfig) ApplyLayout() {
	for i := range c.Objects {
		o := &c.Objects[i]
		if o.X == 0 && o.Y == 0 {
			o.X, o.Y = GridPosition(i)
		}
	}
}
