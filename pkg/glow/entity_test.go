package glow

import (
	"errors"
	"testing"
)

// TestEntityImmediate 立即模式：Inactive <-> Active
func TestEntityImmediate(t *testing.T) {
	reg := newRecordingRegistrar()
	e := NewEntity(reg, Red, renderables("A", 1))

	if e.State() != StateInactive {
		t.Fatalf("initial state = %s", e.State())
	}

	_ = e.Enable()
	_ = e.Enable()
	if e.State() != StateActive {
		t.Errorf("state = %s, want Active", e.State())
	}
	if reg.registers != 1 {
		t.Errorf("registers = %d, want 1", reg.registers)
	}
	if e.Color() != Red {
		t.Errorf("color = %s, want red", e.Color())
	}

	_ = e.Disable()
	_ = e.Disable()
	if e.State() != StateInactive {
		t.Errorf("state = %s, want Inactive", e.State())
	}
	if reg.deregisters != 1 {
		t.Errorf("deregisters = %d, want 1", reg.deregisters)
	}

	// Tick 对立即模式没有影响
	e.Tick(1)
	if reg.dirty != 0 {
		t.Errorf("dirty = %d, want 0", reg.dirty)
	}
}

// TestEntityNotInitialized 没有协调器时返回错误
func TestEntityNotInitialized(t *testing.T) {
	e := NewEntity(nil, Red, renderables("A", 1))
	if err := e.Enable(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Enable() = %v, want ErrNotInitialized", err)
	}
	if err := e.Disable(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Disable() = %v, want ErrNotInitialized", err)
	}
}

// TestEntityFade 渐变模式完整流程
func TestEntityFade(t *testing.T) {
	reg := newRecordingRegistrar()
	e := NewEntity(reg, Red, renderables("A", 1), WithFade(9))

	if e.Color() != Transparent {
		t.Fatalf("fade entity should start transparent, got %s", e.Color())
	}

	_ = e.Enable()
	if e.State() != StateFadingIn || reg.registers != 1 {
		t.Fatalf("after Enable: state=%s registers=%d", e.State(), reg.registers)
	}

	// 0.05 * 9 = 0.45
	e.Tick(0.05)
	if e.State() != StateFadingIn {
		t.Errorf("state = %s, want FadingIn", e.State())
	}
	if e.Color().R <= 0 || e.Color().R >= 1 {
		t.Errorf("color.R = %v, want between 0 and 1", e.Color().R)
	}
	if reg.dirty != 1 {
		t.Errorf("dirty = %d, want 1", reg.dirty)
	}

	// dt*rate >= 1 直接到达目标
	e.Tick(1)
	if e.State() != StateActive {
		t.Errorf("state = %s, want Active", e.State())
	}
	if e.Color() != Red {
		t.Errorf("color = %s, want red", e.Color())
	}
	if reg.dirty != 2 {
		t.Errorf("dirty = %d, want 2 (final rebuild)", reg.dirty)
	}

	// 稳定后不再请求重建
	e.Tick(0.016)
	if reg.dirty != 2 {
		t.Errorf("dirty = %d after settle, want 2", reg.dirty)
	}

	_ = e.Disable()
	if e.State() != StateFadingOut {
		t.Errorf("state = %s, want FadingOut", e.State())
	}
	e.Tick(0.05)
	if reg.deregisters != 0 {
		t.Error("deregistered before reaching transparent")
	}
	e.Tick(1)
	if e.State() != StateInactive || reg.deregisters != 1 {
		t.Errorf("after fade out: state=%s deregisters=%d", e.State(), reg.deregisters)
	}
	if e.Color() != Transparent {
		t.Errorf("color = %s, want transparent", e.Color())
	}
	if reg.set.Contains(e) {
		t.Error("entity should have left the set")
	}
}

// TestEntityFadeReverse 渐变途中反向切换
func TestEntityFadeReverse(t *testing.T) {
	reg := newRecordingRegistrar()
	e := NewEntity(reg, Blue, renderables("A", 1), WithFade(9))

	_ = e.Enable()
	e.Tick(0.05)
	_ = e.Disable()
	if e.State() != StateFadingOut {
		t.Errorf("state = %s, want FadingOut", e.State())
	}

	_ = e.Enable()
	if e.State() != StateFadingIn {
		t.Errorf("state = %s, want FadingIn", e.State())
	}
	if reg.set.Len() != 1 {
		t.Errorf("set len = %d, want 1", reg.set.Len())
	}
	e.Tick(1)
	if e.State() != StateActive || e.Color() != Blue {
		t.Errorf("state=%s color=%s", e.State(), e.Color())
	}
}

// TestEntityFadeRateClamp 渐变速率限制在 [0.1, 99]
func TestEntityFadeRateClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"默认", 9, 9},
		{"过小", 0, MinFadeRate},
		{"过大", 500, MaxFadeRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntity(nil, Red, nil, WithFade(tt.in))
			if e.FadeRate() != tt.want {
				t.Errorf("FadeRate() = %v, want %v", e.FadeRate(), tt.want)
			}
		})
	}
}

// TestEntitySetGlowColor 修改颜色后重新渐变
func TestEntitySetGlowColor(t *testing.T) {
	reg := newRecordingRegistrar()
	e := NewEntity(reg, Red, renderables("A", 1), WithFade(9))
	_ = e.Enable()
	e.Tick(1)

	e.SetGlowColor(Green)
	if e.State() != StateFadingIn {
		t.Errorf("state = %s, want FadingIn", e.State())
	}
	e.Tick(1)
	if e.Color() != Green {
		t.Errorf("color = %s, want green", e.Color())
	}

	imm := NewEntity(reg, Red, renderables("B", 1))
	_ = imm.Enable()
	dirty := reg.dirty
	imm.SetGlowColor(Blue)
	if imm.Color() != Blue || reg.dirty != dirty+1 {
		t.Errorf("immediate SetGlowColor: color=%s dirty=%d", imm.Color(), reg.dirty-dirty)
	}
}

// TestEntityFadeCoalescedWithCoordinator 多个实体同帧渐变只重建一次
func TestEntityFadeCoalescedWithCoordinator(t *testing.T) {
	c := newTestCoordinator(t)
	a := NewEntity(c, Red, renderables("A", 1), WithFade(9))
	b := NewEntity(c, Blue, renderables("B", 2), WithFade(9))

	_ = a.Enable()
	_ = b.Enable()

	var frame uint64
	for i := 0; i < 3; i++ {
		frame++
		a.Tick(0.016)
		b.Tick(0.016)
		c.Update(frame)
	}
	if got := c.Builder().RebuildCount(); got != 3 {
		t.Errorf("RebuildCount() = %d, want 3 (one per frame)", got)
	}

	_ = a.Disable()
	_ = b.Disable()
	for i := 0; i < 200 && c.Builder().Len() > 0; i++ {
		frame++
		a.Tick(0.1)
		b.Tick(0.1)
		c.Update(frame)
	}
	if c.Builder().Len() != 0 {
		t.Fatalf("entities still glowing: %d", c.Builder().Len())
	}
	if !c.Commands().IsEmpty() {
		t.Error("sequence should be empty after fade out")
	}
}
