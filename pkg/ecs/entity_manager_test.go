package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testGlowComponent struct {
	Active bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if !em.Exists(id2) {
		t.Error("Created entity should exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	// 泛型版本
	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos != retrieved {
		t.Error("generic GetComponent should return the same instance")
	}
	if _, ok := GetComponent[*testGlowComponent](em, id); ok {
		t.Error("missing component should not be found")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testGlowComponent](em, id) {
		t.Error("Should not have component before adding")
	}
	em.AddComponent(id, &testGlowComponent{})
	if !HasComponent[*testGlowComponent](em, id) {
		t.Error("Should have component after adding")
	}
	RemoveComponent[*testGlowComponent](em, id)
	if HasComponent[*testGlowComponent](em, id) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})

	em.DestroyEntity(id1)

	// 清理前实体仍存在
	if !em.Exists(id1) {
		t.Error("Entity should still exist before cleanup")
	}

	removed := em.RemoveMarkedEntities()
	if len(removed) != 1 || removed[0] != id1 {
		t.Errorf("removed = %v, want [%d]", removed, id1)
	}
	if em.Exists(id1) {
		t.Error("Entity should be removed after cleanup")
	}
	if !em.Exists(id2) {
		t.Error("Unmarked entity should survive cleanup")
	}

	// 重复清理不会再次返回
	if again := em.RemoveMarkedEntities(); len(again) != 0 {
		t.Errorf("second cleanup removed %v", again)
	}
}

func TestGetEntitiesWithOrdered(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testGlowComponent{})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testGlowComponent](em)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetEntitiesWith2 = %v, want %v", got, want)
	}

	if n := len(GetEntitiesWith1[*testPositionComponent](em)); n != 20 {
		t.Errorf("GetEntitiesWith1 returned %d entities, want 20", n)
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 500; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
		if i%3 == 0 {
			em.AddComponent(id, &testGlowComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testGlowComponent](em)
	}
}
