package glow

import (
	"fmt"
	"log"
)

// Coordinator 发光效果的统一入口
//
// 启动阶段显式创建一次，并以引用方式传给每个 Entity。
// 创建时校验着色器程序并绑定到主相机；同一相机上的第二个
// Coordinator 会被拒绝（ErrDuplicateInstance）。
type Coordinator struct {
	camera    *Camera
	builder   *GraphBuilder
	intensity float64
	closed    bool
}

// NewCoordinator 创建协调器
//
// 参数：
//   - camera: 主相机，不能为 nil
//   - shaders: 着色器库，必须能解析全部 RequiredShaders
//   - params: 效果参数
//
// 返回：
//   - ErrMissingShaderProgram: 缺少着色器程序
//   - ErrDuplicateInstance: 相机已绑定协调器
func NewCoordinator(camera *Camera, shaders ShaderLibrary, params Parameters) (*Coordinator, error) {
	if camera == nil {
		return nil, fmt.Errorf("glow: nil camera")
	}
	if err := ResolveAll(shaders); err != nil {
		return nil, err
	}

	params = params.Normalize()
	c := &Coordinator{
		camera:    camera,
		builder:   NewGraphBuilder(params),
		intensity: params.Intensity,
	}
	if err := camera.attach(c); err != nil {
		log.Printf("[GlowCoordinator] Rejected second coordinator for camera %q", camera.Name)
		return nil, err
	}
	camera.Submit(BeforeImageEffects, c.builder.Commands())

	log.Printf("[GlowCoordinator] Attached to camera %q (intensity=%.2f, blur=%d×%.2f)",
		camera.Name, c.intensity, params.BlurIterations, params.BlurSpread)
	return c, nil
}

// Register 将实体加入发光集合
func (c *Coordinator) Register(e *Entity) {
	if c.closed {
		return
	}
	if c.builder.Add(e) {
		log.Printf("[GlowCoordinator] Register %s (%d glowing)", e.Name(), c.builder.Len())
	}
}

// Deregister 将实体移出发光集合
// 集合变空时命令序列立即清空
func (c *Coordinator) Deregister(e *Entity) {
	if c.closed {
		return
	}
	if !c.builder.Remove(e) {
		return
	}
	log.Printf("[GlowCoordinator] Deregister %s (%d glowing)", e.Name(), c.builder.Len())
	if c.builder.Len() == 0 {
		c.camera.Submit(BeforeImageEffects, c.builder.Commands())
	}
}

// MarkDirty 请求在本帧末重建
func (c *Coordinator) MarkDirty() {
	if c.closed {
		return
	}
	c.builder.MarkDirty()
}

// Update 每帧调用一次，在所有成员变化之后、宿主执行命令之前
// 返回本帧是否重建了命令序列
func (c *Coordinator) Update(frame uint64) bool {
	if c.closed {
		return false
	}
	if !c.builder.Flush(frame) {
		return false
	}
	c.camera.Submit(BeforeImageEffects, c.builder.Commands())
	return true
}

// SetIntensity 设置发光强度（0 ~ 10）
// 强度在合成时实时读取，不会触发重建
func (c *Coordinator) SetIntensity(v float64) {
	c.intensity = ClampIntensity(v)
}

// Intensity 返回当前发光强度
func (c *Coordinator) Intensity() float64 {
	return c.intensity
}

// SetParams 修改模糊参数，强度字段同时生效
func (c *Coordinator) SetParams(p Parameters) {
	c.builder.SetParams(p)
	c.SetIntensity(p.Intensity)
}

// MaterialFloat 读取着色器材质的浮点参数
// 渲染后端在执行合成命令时通过它获取实时强度
func (c *Coordinator) MaterialFloat(shader ShaderName, prop string) (float64, bool) {
	if shader == ShaderComposite && prop == PropIntensity {
		return c.intensity, true
	}
	return 0, false
}

// Commands 返回当前命令序列
func (c *Coordinator) Commands() Sequence {
	return c.builder.Commands()
}

// Builder 返回内部构建器（只读用途）
func (c *Coordinator) Builder() *GraphBuilder {
	return c.builder
}

// Camera 返回绑定的相机
func (c *Coordinator) Camera() *Camera {
	return c.camera
}

// Close 与相机解绑，之后的注册请求被忽略
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.camera.detach(c)
	log.Printf("[GlowCoordinator] Detached from camera %q", c.camera.Name)
}
