package glow

// CameraEvent 命令序列在渲染管线中的注入点
type CameraEvent int

const (
	// BeforeImageEffects 场景绘制完成、图像后处理之前
	BeforeImageEffects CameraEvent = iota
)

// Camera 主相机
// 持有一个注入点上的命令序列，宿主渲染后端每帧读取并执行。
// 一个相机最多绑定一个 Coordinator。
type Camera struct {
	Name string

	coordinator *Coordinator
	commands    Sequence
}

// NewCamera 创建相机
func NewCamera(name string) *Camera {
	return &Camera{Name: name, commands: ClearSequence()}
}

// Coordinator 返回绑定的协调器，未绑定时返回 ErrNotInitialized
func (c *Camera) Coordinator() (*Coordinator, error) {
	if c.coordinator == nil {
		return nil, ErrNotInitialized
	}
	return c.coordinator, nil
}

// Submit 替换注入点上的命令序列
func (c *Camera) Submit(event CameraEvent, seq Sequence) {
	if event != BeforeImageEffects {
		return
	}
	c.commands = seq
}

// Commands 返回注入点上当前的命令序列
func (c *Camera) Commands(event CameraEvent) Sequence {
	if event != BeforeImageEffects {
		return nil
	}
	return c.commands
}

func (c *Camera) attach(co *Coordinator) error {
	if c.coordinator != nil {
		return ErrDuplicateInstance
	}
	c.coordinator = co
	return nil
}

func (c *Camera) detach(co *Coordinator) {
	if c.coordinator == co {
		c.coordinator = nil
		c.commands = ClearSequence()
	}
}
