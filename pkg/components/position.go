package components

// PositionComponent 实体在屏幕上的位置（形状中心）
type PositionComponent struct {
	X float64
	Y float64
}
