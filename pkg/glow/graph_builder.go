package glow

import "log"

// GraphBuilder 维护发光集合并在成员变化时重建命令序列
//
// 成员变化只标记"需要重建"，真正的重建在 Flush 中进行，
// 同一帧内最多重建一次（帧计数门控），保证同一帧内多个实体
// 同时改变状态时不会重复构建。
type GraphBuilder struct {
	set    *Set
	params Parameters

	commands Sequence
	dirty    bool

	lastRebuildFrame uint64
	hasRebuilt       bool
	rebuildCount     int
}

// NewGraphBuilder 创建构建器，初始为空序列
func NewGraphBuilder(params Parameters) *GraphBuilder {
	return &GraphBuilder{
		set:      NewSet(),
		params:   params.Normalize(),
		commands: ClearSequence(),
	}
}

// Add 加入实体并请求重建
// 实体已在集合中时为空操作（不重建），返回 false
func (b *GraphBuilder) Add(e *Entity) bool {
	if !b.set.Add(e) {
		return false
	}
	b.dirty = true
	return true
}

// Remove 移除实体
// 集合变空时立即换成空序列（快速路径，无需重建）；否则请求重建。
// 移除非成员为空操作，返回 false。
func (b *GraphBuilder) Remove(e *Entity) bool {
	if !b.set.Remove(e) {
		return false
	}
	if b.set.Len() == 0 {
		b.commands = ClearSequence()
		b.dirty = false
		return true
	}
	b.dirty = true
	return true
}

// MarkDirty 请求重建（颜色变化时调用）
func (b *GraphBuilder) MarkDirty() {
	if b.set.Len() == 0 {
		return
	}
	b.dirty = true
}

// Dirty 是否有待处理的重建请求
func (b *GraphBuilder) Dirty() bool {
	return b.dirty
}

// Flush 在帧末处理重建请求
// 同一帧最多重建一次；本帧已重建过时请求保留到下一帧。
// 返回本次是否执行了重建。
func (b *GraphBuilder) Flush(frame uint64) bool {
	if !b.dirty {
		return false
	}
	if b.hasRebuilt && b.lastRebuildFrame == frame {
		return false
	}
	b.lastRebuildFrame = frame
	b.hasRebuilt = true
	b.Rebuild()
	return true
}

// Rebuild 立即按当前集合与参数重新生成命令序列
func (b *GraphBuilder) Rebuild() Sequence {
	b.commands = Build(b.set, b.params)
	b.dirty = false
	b.rebuildCount++
	log.Printf("[GlowBuilder] Rebuilt command sequence: %d entities, %d commands", b.set.Len(), len(b.commands))
	return b.commands
}

// Commands 返回当前命令序列
func (b *GraphBuilder) Commands() Sequence {
	return b.commands
}

// RebuildCount 返回累计重建次数
func (b *GraphBuilder) RebuildCount() int {
	return b.rebuildCount
}

// Params 返回构建参数
func (b *GraphBuilder) Params() Parameters {
	return b.params
}

// SetParams 修改构建参数
// 仅在影响序列结构的字段变化时请求重建，强度变化不会触发重建
func (b *GraphBuilder) SetParams(p Parameters) {
	p = p.Normalize()
	structural := p.BlurIterations != b.params.BlurIterations || p.BlurSpread != b.params.BlurSpread
	b.params = p
	if structural {
		b.MarkDirty()
	}
}

// Len 返回集合成员数量
func (b *GraphBuilder) Len() int {
	return b.set.Len()
}

// Contains 检查实体是否正在发光
func (b *GraphBuilder) Contains(e *Entity) bool {
	return b.set.Contains(e)
}

// Entities 返回集合成员副本
func (b *GraphBuilder) Entities() []*Entity {
	return b.set.Entities()
}
