package glow

import "fmt"

// Renderable 可绘制对象的不透明句柄
// 核心只负责排序与引用，具体几何由渲染后端通过类型断言解释
type Renderable interface {
	RenderableName() string
}

// Registrar 实体向效果注册/注销的窄接口，由 Coordinator 实现
type Registrar interface {
	Register(e *Entity)
	Deregister(e *Entity)
	// MarkDirty 通知颜色已变化，需要重建命令序列
	MarkDirty()
}

// State 发光实体状态
type State int

const (
	StateInactive State = iota
	StateActive
	StateFadingIn
	StateFadingOut
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "Inactive"
	case StateActive:
		return "Active"
	case StateFadingIn:
		return "FadingIn"
	case StateFadingOut:
		return "FadingOut"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Entity 一个需要发光的对象
//
// 状态机：
//   - 立即模式：Inactive <-> Active，切换时注册/注销
//   - 渐变模式：Inactive -> FadingIn -> Active -> FadingOut -> Inactive
//     每个 Tick 按 dt*fadeRate 向目标颜色插值，渐隐到透明后注销
type Entity struct {
	name        string
	registrar   Registrar
	renderables []Renderable

	glowColor Color
	color     Color
	target    Color
	state     State

	fade     bool
	fadeRate float64
}

// EntityOption 实体构造选项
type EntityOption func(*Entity)

// WithFade 启用渐变模式，rate 会被限制在 [0.1, 99]
func WithFade(rate float64) EntityOption {
	return func(e *Entity) {
		e.fade = true
		e.fadeRate = ClampFadeRate(rate)
	}
}

// WithName 设置实体名称（仅用于日志与命令序列输出）
func WithName(name string) EntityOption {
	return func(e *Entity) {
		e.name = name
	}
}

// NewEntity 创建发光实体
//
// 参数：
//   - reg: 效果协调器，为 nil 时 Enable 返回 ErrNotInitialized
//   - glowColor: 发光颜色
//   - renderables: 要绘制剪影的对象，创建后不可变
func NewEntity(reg Registrar, glowColor Color, renderables []Renderable, opts ...EntityOption) *Entity {
	rs := make([]Renderable, len(renderables))
	copy(rs, renderables)
	e := &Entity{
		registrar:   reg,
		renderables: rs,
		glowColor:   glowColor,
		color:       glowColor,
		state:       StateInactive,
		fadeRate:    DefaultFadeRate,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fade {
		// 渐变模式从透明开始
		e.color = Transparent
	}
	return e
}

// Name 返回实体名称
func (e *Entity) Name() string {
	if e.name == "" {
		return fmt.Sprintf("entity@%p", e)
	}
	return e.name
}

// Color 返回当前发光颜色（渐变模式下为插值中的颜色）
func (e *Entity) Color() Color {
	return e.color
}

// GlowColor 返回配置的发光颜色
func (e *Entity) GlowColor() Color {
	return e.glowColor
}

// Renderables 返回可绘制对象
func (e *Entity) Renderables() []Renderable {
	return e.renderables
}

// State 返回当前状态
func (e *Entity) State() State {
	return e.state
}

// IsFade 是否为渐变模式
func (e *Entity) IsFade() bool {
	return e.fade
}

// FadeRate 返回渐变速率
func (e *Entity) FadeRate() float64 {
	return e.fadeRate
}

// Enable 开始发光（如鼠标进入）
func (e *Entity) Enable() error {
	if e.registrar == nil {
		return ErrNotInitialized
	}
	if !e.fade {
		if e.state == StateActive {
			return nil
		}
		e.state = StateActive
		e.color = e.glowColor
		e.registrar.Register(e)
		return nil
	}

	if e.state == StateActive || e.state == StateFadingIn {
		return nil
	}
	e.target = e.glowColor
	e.state = StateFadingIn
	// 从 FadingOut 返回时实体仍在集合中，Register 为空操作
	e.registrar.Register(e)
	return nil
}

// Disable 停止发光（如鼠标离开）
func (e *Entity) Disable() error {
	if e.registrar == nil {
		return ErrNotInitialized
	}
	if !e.fade {
		if e.state != StateActive {
			return nil
		}
		e.state = StateInactive
		e.registrar.Deregister(e)
		return nil
	}

	if e.state == StateInactive || e.state == StateFadingOut {
		return nil
	}
	e.target = Transparent
	e.state = StateFadingOut
	return nil
}

// Tick 推进渐变，dt 为秒
// 仅在 FadingIn/FadingOut 状态下有效果
func (e *Entity) Tick(dt float64) {
	if e.state != StateFadingIn && e.state != StateFadingOut {
		return
	}
	if e.registrar == nil {
		return
	}

	e.color = e.color.Lerp(e.target, dt*e.fadeRate)
	if !e.color.ApproxEqual(e.target) {
		e.registrar.MarkDirty()
		return
	}

	e.color = e.target
	if e.state == StateFadingOut {
		e.state = StateInactive
		e.registrar.Deregister(e)
		return
	}
	// 到达目标颜色：最后一次重建后不再逐帧重建
	e.state = StateActive
	e.registrar.MarkDirty()
}

// SetGlowColor 修改发光颜色
// 激活中的实体会立即（立即模式）或渐变地（渐变模式）切换到新颜色
func (e *Entity) SetGlowColor(c Color) {
	e.glowColor = c
	if e.registrar == nil {
		return
	}
	if !e.fade {
		e.color = c
		if e.state == StateActive {
			e.registrar.MarkDirty()
		}
		return
	}
	if e.state == StateActive || e.state == StateFadingIn {
		e.target = c
		e.state = StateFadingIn
	}
}
