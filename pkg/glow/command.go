package glow

import "fmt"

// CommandKind 渲染命令类型
type CommandKind int

const (
	// CmdAllocTarget 从宿主的临时纹理池借出离屏目标
	CmdAllocTarget CommandKind = iota
	// CmdSetTarget 设置当前绘制目标
	CmdSetTarget
	// CmdClearTarget 用指定颜色清空当前目标
	CmdClearTarget
	// CmdSetColor 设置着色器颜色参数（_GlowColor）
	CmdSetColor
	// CmdSetTexelSize 设置模糊采样偏移（_BlurSize），执行时按当前输出尺寸换算
	CmdSetTexelSize
	// CmdBindTexture 将目标绑定为全局纹理参数，供合成着色器读取
	CmdBindTexture
	// CmdDrawRenderable 用剪影着色器把可绘制对象画到当前目标
	CmdDrawRenderable
	// CmdBlit 从源目标复制到目标，可选着色器与子通道
	CmdBlit
	// CmdReleaseTarget 归还离屏目标
	CmdReleaseTarget
)

var commandKindNames = map[CommandKind]string{
	CmdAllocTarget:    "AllocTarget",
	CmdSetTarget:      "SetTarget",
	CmdClearTarget:    "ClearTarget",
	CmdSetColor:       "SetColor",
	CmdSetTexelSize:   "SetTexelSize",
	CmdBindTexture:    "BindTexture",
	CmdDrawRenderable: "DrawRenderable",
	CmdBlit:           "Blit",
	CmdReleaseTarget:  "ReleaseTarget",
}

func (k CommandKind) String() string {
	if name, ok := commandKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// TargetID 离屏目标的逻辑标识
type TargetID string

// 目标标识
const (
	// TargetNone 表示命令没有该操作数
	TargetNone TargetID = ""
	// TargetCamera 相机的最终输出图像，由宿主提供，不参与分配与释放
	TargetCamera TargetID = "CameraTarget"

	TargetMask    TargetID = "_GlowPrePassTex"
	TargetBlur    TargetID = "_GlowBlurredTex"
	TargetScratch TargetID = "_TempTex0"
	TargetHDRTemp TargetID = "_TempTex1"
)

// Resolution 目标分辨率（相对当前输出尺寸）
type Resolution int

const (
	// ResFull 与输出同尺寸
	ResFull Resolution = iota
	// ResHalf 输出尺寸右移一位
	ResHalf
)

// Divisor 返回尺寸除数
func (r Resolution) Divisor() int {
	if r == ResHalf {
		return 2
	}
	return 1
}

// Size 按当前输出尺寸计算目标尺寸，最小为 1
func (r Resolution) Size(outW, outH int) (int, int) {
	w, h := outW, outH
	if r == ResHalf {
		w, h = outW>>1, outH>>1
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (r Resolution) String() string {
	if r == ResHalf {
		return "half"
	}
	return "full"
}

// Format 目标像素格式
type Format int

const (
	FormatDefault Format = iota
	// FormatHDR 高动态范围，依赖 HDR 颜色的后续效果（如 bloom）需要
	FormatHDR
)

func (f Format) String() string {
	if f == FormatHDR {
		return "HDR"
	}
	return "Default"
}

// 着色器参数名
const (
	PropGlowColor  = "_GlowColor"
	PropBlurSize   = "_BlurSize"
	PropIntensity  = "_Intensity"
	PropPrePassTex = "_GlowPrePassTex"
	PropBlurredTex = "_GlowBlurredTex"
)

// 模糊着色器子通道
const (
	PassHorizontal = 0
	PassVertical   = 1
	// PassComposite 合成着色器只有一个通道
	PassComposite = 0
)

// Command 单条渲染命令
// 每种命令只使用与其类型相关的字段
type Command struct {
	Kind CommandKind

	// Target 被分配/释放/设置/清空的目标，或 Blit 的目的地
	Target TargetID
	// Source Blit 的源目标，或 BindTexture 绑定的目标
	Source TargetID

	Resolution Resolution
	Format     Format

	// Shader 为空表示直接复制（无着色器）
	Shader ShaderName
	Pass   int

	// Param 参数名（SetColor / SetTexelSize / BindTexture）
	Param string
	Color Color
	// Spread 模糊偏移（以目标纹素为单位）
	Spread float64

	Renderable Renderable
}

func (c Command) String() string {
	switch c.Kind {
	case CmdAllocTarget:
		return fmt.Sprintf("%s %s (%s, %s)", c.Kind, c.Target, c.Resolution, c.Format)
	case CmdSetTarget, CmdReleaseTarget:
		return fmt.Sprintf("%s %s", c.Kind, c.Target)
	case CmdClearTarget:
		return fmt.Sprintf("%s %s", c.Kind, c.Color)
	case CmdSetColor:
		return fmt.Sprintf("%s %s = %s", c.Kind, c.Param, c.Color)
	case CmdSetTexelSize:
		return fmt.Sprintf("%s %s = %.2f/%s", c.Kind, c.Param, c.Spread, c.Resolution)
	case CmdBindTexture:
		return fmt.Sprintf("%s %s = %s", c.Kind, c.Param, c.Source)
	case CmdDrawRenderable:
		name := "<nil>"
		if c.Renderable != nil {
			name = c.Renderable.RenderableName()
		}
		return fmt.Sprintf("%s %s (%s)", c.Kind, name, c.Shader)
	case CmdBlit:
		if c.Shader == "" {
			return fmt.Sprintf("%s %s -> %s", c.Kind, c.Source, c.Target)
		}
		return fmt.Sprintf("%s %s -> %s (%s, pass %d)", c.Kind, c.Source, c.Target, c.Shader, c.Pass)
	}
	return c.Kind.String()
}
