// Package shaders 内置发光效果所需的 Kage 着色器程序
package shaders

import (
	"embed"
	"fmt"
	"log"

	"github.com/decker502/glow/pkg/glow"
	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.kage
var sources embed.FS

var files = map[glow.ShaderName]string{
	glow.ShaderSilhouette: "silhouette.kage",
	glow.ShaderBlur:       "blur.kage",
	glow.ShaderComposite:  "composite.kage",
}

// Compiler 将 Kage 源码编译为着色器
type Compiler func(src []byte) (*ebiten.Shader, error)

// Source 返回着色器源码
func Source(name glow.ShaderName) ([]byte, error) {
	file, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("unknown shader %q", name)
	}
	return sources.ReadFile(file)
}

// Library 按逻辑名称编译并缓存着色器，实现 glow.ShaderLibrary
type Library struct {
	compile  Compiler
	compiled map[glow.ShaderName]*ebiten.Shader
}

// NewLibrary 使用 ebiten.NewShader 编译的着色器库
func NewLibrary() *Library {
	return NewLibraryWithCompiler(ebiten.NewShader)
}

// NewLibraryWithCompiler 使用自定义编译函数
func NewLibraryWithCompiler(compile Compiler) *Library {
	return &Library{
		compile:  compile,
		compiled: make(map[glow.ShaderName]*ebiten.Shader),
	}
}

// ResolveShader 实现 glow.ShaderLibrary，首次解析时编译
func (l *Library) ResolveShader(name glow.ShaderName) error {
	_, err := l.Shader(name)
	return err
}

// Shader 返回编译后的着色器
func (l *Library) Shader(name glow.ShaderName) (*ebiten.Shader, error) {
	if s, ok := l.compiled[name]; ok {
		return s, nil
	}
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	s, err := l.compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	l.compiled[name] = s
	log.Printf("[Shaders] Compiled %s (%d bytes)", name, len(src))
	return s, nil
}
