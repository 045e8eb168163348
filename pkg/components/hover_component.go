package components

// HoverComponent 悬停检测组件
// 指针进入形状时激活发光，离开时停止
type HoverComponent struct {
	// IsHovered 当前帧指针是否在形状内
	IsHovered bool

	// Pinned 点击固定发光，指针离开后保持
	Pinned bool
}
