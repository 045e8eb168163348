package systems

import (
	"errors"
	"strings"
	"testing"

	"github.com/decker502/glow/internal/shaders"
	"github.com/decker502/glow/pkg/glow"
)

func TestGlowRenderSystemEmptySequence(t *testing.T) {
	co := newTestCoordinator()
	s := NewGlowRenderSystem(co.Camera(), shaders.NewLibrary(), co)

	// 空序列不触碰任何图像
	if err := s.Execute(glow.ClearSequence(), nil); err != nil {
		t.Fatalf("Execute(empty) = %v", err)
	}
	live, idle, allocated := s.PoolStats()
	if live != 0 || idle != 0 || allocated != 0 {
		t.Errorf("pool = (%d, %d, %d), want zero", live, idle, allocated)
	}
}

func TestGlowRenderSystemRejectsInvalidSequence(t *testing.T) {
	co := newTestCoordinator()
	s := NewGlowRenderSystem(co.Camera(), shaders.NewLibrary(), co)

	seq := glow.Sequence{
		{Kind: glow.CmdReleaseTarget, Target: glow.TargetMask},
	}
	err := s.Execute(seq, nil)
	if err == nil {
		t.Fatal("invalid sequence should be rejected before execution")
	}
	if !strings.Contains(err.Error(), "invalid command sequence") {
		t.Errorf("error = %v", err)
	}
	if errors.Is(err, glow.ErrMissingShaderProgram) {
		t.Error("validation error should not be a shader error")
	}
}
