package glow

import "slices"

// Set 当前处于发光状态的实体集合
// 按加入顺序保存（决定绘制顺序），按指针身份去重
type Set struct {
	entities []*Entity
}

// NewSet 创建集合
func NewSet(entities ...*Entity) *Set {
	s := &Set{}
	for _, e := range entities {
		s.Add(e)
	}
	return s
}

// Add 加入实体，已存在或为 nil 时返回 false
func (s *Set) Add(e *Entity) bool {
	if e == nil || s.Contains(e) {
		return false
	}
	s.entities = append(s.entities, e)
	return true
}

// Remove 移除实体，不存在时返回 false
func (s *Set) Remove(e *Entity) bool {
	i := s.indexOf(e)
	if i < 0 {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	return true
}

// Contains 检查实体是否在集合中
func (s *Set) Contains(e *Entity) bool {
	return s.indexOf(e) >= 0
}

// Len 返回成员数量
func (s *Set) Len() int {
	return len(s.entities)
}

// Entities 返回成员副本（按绘制顺序）
func (s *Set) Entities() []*Entity {
	out := make([]*Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

func (s *Set) indexOf(e *Entity) int {
	for i, m := range s.entities {
		if m == e {
			return i
		}
	}
	return -1
}
