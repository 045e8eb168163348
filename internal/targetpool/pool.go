// Package targetpool 提供按尺寸复用离屏目标的临时纹理池
//
// 命令序列在同一帧内借出并归还目标，池在帧之间保留空闲目标，
// 避免每帧重新分配 GPU 纹理。
package targetpool

import "fmt"

type size struct {
	w, h int
}

// Pool 按尺寸分组的目标池
type Pool[T comparable] struct {
	alloc   func(w, h int) T
	dispose func(T)

	free  map[size][]T
	sizes map[T]size
	live  map[T]bool

	allocated int
}

// New 创建目标池
//
// 参数：
//   - alloc: 分配新目标
//   - dispose: 释放目标底层资源，可为 nil
func New[T comparable](alloc func(w, h int) T, dispose func(T)) *Pool[T] {
	return &Pool[T]{
		alloc:   alloc,
		dispose: dispose,
		free:    make(map[size][]T),
		sizes:   make(map[T]size),
		live:    make(map[T]bool),
	}
}

// Acquire 借出指定尺寸的目标，优先复用空闲目标
func (p *Pool[T]) Acquire(w, h int) T {
	key := size{w, h}
	if list := p.free[key]; len(list) > 0 {
		t := list[len(list)-1]
		p.free[key] = list[:len(list)-1]
		p.live[t] = true
		return t
	}
	t := p.alloc(w, h)
	p.sizes[t] = key
	p.live[t] = true
	p.allocated++
	return t
}

// Release 归还目标
func (p *Pool[T]) Release(t T) error {
	if !p.live[t] {
		return fmt.Errorf("targetpool: release of target not acquired from pool")
	}
	delete(p.live, t)
	key := p.sizes[t]
	p.free[key] = append(p.free[key], t)
	return nil
}

// Purge 释放全部空闲目标（输出尺寸变化后调用）
// 借出中的目标不受影响
func (p *Pool[T]) Purge() int {
	n := 0
	for key, list := range p.free {
		for _, t := range list {
			if p.dispose != nil {
				p.dispose(t)
			}
			delete(p.sizes, t)
			n++
		}
		delete(p.free, key)
	}
	return n
}

// Live 借出中的目标数量
func (p *Pool[T]) Live() int {
	return len(p.live)
}

// Idle 空闲目标数量
func (p *Pool[T]) Idle() int {
	n := 0
	for _, list := range p.free {
		n += len(list)
	}
	return n
}

// Allocated 累计分配次数
func (p *Pool[T]) Allocated() int {
	return p.allocated
}
