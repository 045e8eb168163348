package glow

import "fmt"

// ShaderName 着色器程序的逻辑名称
type ShaderName string

const (
	// ShaderSilhouette 剪影着色器：忽略纹理与光照，几何覆盖处写入纯色
	ShaderSilhouette ShaderName = "Hidden/GlowShader"
	// ShaderBlur 可分离模糊：通道 0 水平，通道 1 垂直
	ShaderBlur ShaderName = "Hidden/Blur"
	// ShaderComposite 合成：模糊结果减去遮罩，按强度叠加到原图
	ShaderComposite ShaderName = "Hidden/GlowComposite"
)

// RequiredShaders 效果运行所需的全部着色器程序
var RequiredShaders = []ShaderName{ShaderSilhouette, ShaderBlur, ShaderComposite}

// ShaderLibrary 按逻辑名称解析着色器程序
// 由渲染后端实现（GPU 后端编译 Kage 程序，软件后端返回内置实现）
type ShaderLibrary interface {
	// ResolveShader 解析指定程序，无法解析时返回错误
	ResolveShader(name ShaderName) error
}

// ResolveAll 解析全部必需的着色器程序
// 任一程序缺失时返回包装了 ErrMissingShaderProgram 的错误
func ResolveAll(lib ShaderLibrary) error {
	if lib == nil {
		return fmt.Errorf("%w: no shader library", ErrMissingShaderProgram)
	}
	for _, name := range RequiredShaders {
		if err := lib.ResolveShader(name); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMissingShaderProgram, name, err)
		}
	}
	return nil
}

// MaterialProperties 渲染后端在执行时读取实时材质参数
type MaterialProperties interface {
	MaterialFloat(shader ShaderName, prop string) (float64, bool)
}

// FixedIntensity 固定强度的材质参数，用于离线渲染与测试
type FixedIntensity float64

// MaterialFloat 实现 MaterialProperties
func (f FixedIntensity) MaterialFloat(shader ShaderName, prop string) (float64, bool) {
	if shader == ShaderComposite && prop == PropIntensity {
		return ClampIntensity(float64(f)), true
	}
	return 0, false
}
