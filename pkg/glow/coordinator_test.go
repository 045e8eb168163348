package glow

import (
	"errors"
	"reflect"
	"testing"
)

// TestNewCoordinatorMissingShader 缺少着色器程序时创建失败
func TestNewCoordinatorMissingShader(t *testing.T) {
	for _, missing := range RequiredShaders {
		t.Run(string(missing), func(t *testing.T) {
			lib := fullShaderLibrary()
			delete(lib, missing)
			cam := NewCamera("Main Camera")

			c, err := NewCoordinator(cam, lib, DefaultParameters())
			if !errors.Is(err, ErrMissingShaderProgram) {
				t.Fatalf("err = %v, want ErrMissingShaderProgram", err)
			}
			if c != nil {
				t.Error("coordinator should be nil on failure")
			}
			if _, err := cam.Coordinator(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("camera should stay unattached, got %v", err)
			}
		})
	}

	if _, err := NewCoordinator(NewCamera("cam"), nil, DefaultParameters()); !errors.Is(err, ErrMissingShaderProgram) {
		t.Errorf("nil library: err = %v", err)
	}
}

// TestNewCoordinatorDuplicate 同一相机上的第二个协调器被拒绝
func TestNewCoordinatorDuplicate(t *testing.T) {
	cam := NewCamera("Main Camera")
	first, err := NewCoordinator(cam, fullShaderLibrary(), DefaultParameters())
	if err != nil {
		t.Fatalf("first NewCoordinator: %v", err)
	}

	second, err := NewCoordinator(cam, fullShaderLibrary(), DefaultParameters())
	if !errors.Is(err, ErrDuplicateInstance) {
		t.Fatalf("err = %v, want ErrDuplicateInstance", err)
	}
	if second != nil {
		t.Error("second coordinator should be nil")
	}

	got, err := cam.Coordinator()
	if err != nil || got != first {
		t.Errorf("camera coordinator = %p (%v), want first %p", got, err, first)
	}

	// 解绑后可以重新创建
	first.Close()
	if _, err := NewCoordinator(cam, fullShaderLibrary(), DefaultParameters()); err != nil {
		t.Errorf("NewCoordinator after Close: %v", err)
	}
}

// TestCoordinatorSubmit Update 后相机持有最新序列
func TestCoordinatorSubmit(t *testing.T) {
	c := newTestCoordinator(t)
	cam := c.Camera()
	a := NewEntity(c, Red, renderables("A", 1))

	if err := a.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if !cam.Commands(BeforeImageEffects).IsEmpty() {
		t.Error("camera sequence should not change before Update")
	}
	if !c.Update(1) {
		t.Fatal("Update should rebuild")
	}
	if got := cam.Commands(BeforeImageEffects).Stats().Draws; got != 1 {
		t.Errorf("camera draws = %d, want 1", got)
	}

	// 最后一个实体移除后相机序列立即清空
	if err := a.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if !cam.Commands(BeforeImageEffects).IsEmpty() {
		t.Errorf("camera sequence should be empty, got:\n%s", cam.Commands(BeforeImageEffects))
	}
}

// TestCoordinatorIntensity 修改强度不会重建
func TestCoordinatorIntensity(t *testing.T) {
	c := newTestCoordinator(t)
	a := NewEntity(c, Red, renderables("A", 1))
	_ = a.Enable()
	c.Update(1)

	before := c.Commands()
	count := c.Builder().RebuildCount()

	c.SetIntensity(2.0)
	c.Update(2)
	c.SetIntensity(8.0)
	c.Update(3)

	if delta := c.Builder().RebuildCount() - count; delta != 0 {
		t.Errorf("intensity changes caused %d rebuilds, want 0", delta)
	}
	if !reflect.DeepEqual(before, c.Commands()) {
		t.Error("intensity changed the sequence structure")
	}
	if v, ok := c.MaterialFloat(ShaderComposite, PropIntensity); !ok || v != 8.0 {
		t.Errorf("MaterialFloat = %v, %v; want 8, true", v, ok)
	}
}

// TestCoordinatorIntensityClamp 强度限制在 [0, 10]
func TestCoordinatorIntensityClamp(t *testing.T) {
	c := newTestCoordinator(t)

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"默认范围内", 4, 4},
		{"超过上限", 12, 10},
		{"低于下限", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetIntensity(tt.in)
			if got := c.Intensity(); got != tt.want {
				t.Errorf("Intensity() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, ok := c.MaterialFloat(ShaderBlur, PropIntensity); ok {
		t.Error("blur shader has no intensity property")
	}
}

// TestCoordinatorClosed 解绑后忽略注册
func TestCoordinatorClosed(t *testing.T) {
	c := newTestCoordinator(t)
	c.Close()

	a := NewEntity(c, Red, renderables("A", 1))
	_ = a.Enable()
	if c.Update(1) {
		t.Error("closed coordinator should not rebuild")
	}
	if c.Builder().Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Builder().Len())
	}
}
