package glow

import (
	"fmt"
	"strings"
)

// Sequence 有序的渲染命令列表
// 每次重建整体重新生成，宿主每帧按顺序执行一次
type Sequence []Command

// Stats 命令序列统计
type Stats struct {
	Allocations    int
	Releases       int
	Clears         int
	ColorSets      int
	Draws          int
	Blits          int
	BlurBlits      int
	CompositeBlits int
}

// IsEmpty 是否为空序列（没有任何离屏工作）
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Stats 统计各类命令数量
func (s Sequence) Stats() Stats {
	var st Stats
	for _, c := range s {
		switch c.Kind {
		case CmdAllocTarget:
			st.Allocations++
		case CmdReleaseTarget:
			st.Releases++
		case CmdClearTarget:
			st.Clears++
		case CmdSetColor:
			st.ColorSets++
		case CmdDrawRenderable:
			st.Draws++
		case CmdBlit:
			st.Blits++
			switch c.Shader {
			case ShaderBlur:
				st.BlurBlits++
			case ShaderComposite:
				st.CompositeBlits++
			}
		}
	}
	return st
}

// String 以类似帧调试器的形式列出命令
func (s Sequence) String() string {
	if len(s) == 0 {
		return "<empty>"
	}
	var b strings.Builder
	for i, c := range s {
		fmt.Fprintf(&b, "%3d  %s\n", i, c)
	}
	return b.String()
}

type targetState struct {
	live    bool
	written bool
}

// Validate 检查资源平衡与读写顺序
//   - 每个分配的目标在序列内恰好释放一次
//   - 目标在同一序列中被写入之前不会被读取
//   - 不会使用未分配或已释放的目标
func (s Sequence) Validate() error {
	targets := make(map[TargetID]*targetState)
	var order []TargetID // 首次分配顺序
	current := TargetNone

	usable := func(i int, id TargetID) (*targetState, error) {
		if id == TargetCamera {
			return nil, nil
		}
		st, ok := targets[id]
		if !ok || !st.live {
			return nil, fmt.Errorf("command %d: target %q used while not allocated", i, id)
		}
		return st, nil
	}
	read := func(i int, id TargetID) error {
		st, err := usable(i, id)
		if err != nil {
			return err
		}
		if st != nil && !st.written {
			return fmt.Errorf("command %d: target %q read before write", i, id)
		}
		return nil
	}
	write := func(i int, id TargetID) error {
		st, err := usable(i, id)
		if err != nil {
			return err
		}
		if st != nil {
			st.written = true
		}
		return nil
	}

	for i, c := range s {
		switch c.Kind {
		case CmdAllocTarget:
			if c.Target == TargetCamera || c.Target == TargetNone {
				return fmt.Errorf("command %d: cannot allocate %q", i, c.Target)
			}
			st, ok := targets[c.Target]
			if !ok {
				st = &targetState{}
				targets[c.Target] = st
				order = append(order, c.Target)
			}
			if st.live {
				return fmt.Errorf("command %d: target %q allocated twice", i, c.Target)
			}
			st.live = true
			st.written = false
		case CmdReleaseTarget:
			st, ok := targets[c.Target]
			if !ok || !st.live {
				return fmt.Errorf("command %d: release of unallocated target %q", i, c.Target)
			}
			st.live = false
			if current == c.Target {
				current = TargetNone
			}
		case CmdSetTarget:
			if _, err := usable(i, c.Target); err != nil {
				return err
			}
			current = c.Target
		case CmdClearTarget, CmdDrawRenderable:
			if current == TargetNone {
				return fmt.Errorf("command %d: %s without render target", i, c.Kind)
			}
			if err := write(i, current); err != nil {
				return err
			}
		case CmdBindTexture:
			if err := read(i, c.Source); err != nil {
				return err
			}
		case CmdBlit:
			if err := read(i, c.Source); err != nil {
				return err
			}
			if err := write(i, c.Target); err != nil {
				return err
			}
		}
	}

	for _, id := range order {
		if targets[id].live {
			return fmt.Errorf("target %q never released", id)
		}
	}
	return nil
}
