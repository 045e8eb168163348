package glow

import "fmt"

// testRenderable 测试用可绘制对象
type testRenderable struct {
	name string
}

func (r *testRenderable) RenderableName() string { return r.name }

func renderables(prefix string, n int) []Renderable {
	out := make([]Renderable, n)
	for i := range out {
		out[i] = &testRenderable{name: fmt.Sprintf("%s#%d", prefix, i)}
	}
	return out
}

// testShaderLibrary 按名称集合解析的着色器库
type testShaderLibrary map[ShaderName]bool

func (l testShaderLibrary) ResolveShader(name ShaderName) error {
	if !l[name] {
		return fmt.Errorf("shader %q not found", name)
	}
	return nil
}

func fullShaderLibrary() testShaderLibrary {
	return testShaderLibrary{ShaderSilhouette: true, ShaderBlur: true, ShaderComposite: true}
}

// recordingRegistrar 记录实体回调次数
type recordingRegistrar struct {
	set         *Set
	registers   int
	deregisters int
	dirty       int
}

func newRecordingRegistrar() *recordingRegistrar {
	return &recordingRegistrar{set: NewSet()}
}

func (r *recordingRegistrar) Register(e *Entity) {
	r.registers++
	r.set.Add(e)
}

func (r *recordingRegistrar) Deregister(e *Entity) {
	r.deregisters++
	r.set.Remove(e)
}

func (r *recordingRegistrar) MarkDirty() { r.dirty++ }

func newTestCoordinator(t interface{ Fatalf(string, ...any) }) *Coordinator {
	c, err := NewCoordinator(NewCamera("Main Camera"), fullShaderLibrary(), DefaultParameters())
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	return c
}
