package ecs

import (
	"reflect"
	"testing"
)

// 测试组件：模拟花园里的植物与地块
type testPlantComponent struct {
	Growth float64
}

type testPlotComponent struct {
	Index int
}

var (
	plantType = reflect.TypeOf(&testPlantComponent{})
	plotType  = reflect.TypeOf(&testPlotComponent{})
)

func TestEntityIDsAreNeverReused(t *testing.T) {
	em := NewEntityManager()
	first := em.CreateEntity()
	if first != 1 {
		t.Fatalf("First entity ID should be 1, got %d", first)
	}

	em.DestroyEntity(first)
	em.RemoveMarkedEntities()

	// 被铲除植物的 ID 不能分配给新植物，否则旧的视觉句柄会指向新实体
	next := em.CreateEntity()
	if next <= first {
		t.Errorf("Expected a fresh ID greater than %d, got %d", first, next)
	}
}

func TestGetEntitiesWithAscendingOrder(t *testing.T) {
	em := NewEntityManager()

	var plants []EntityID
	for i := 0; i < 40; i++ {
		id := em.CreateEntity()
		if i%4 == 0 {
			em.AddComponent(id, &testPlotComponent{Index: i})
			continue
		}
		em.AddComponent(id, &testPlantComponent{})
		plants = append(plants, id)
	}

	// map 遍历顺序随机，多轮查询都必须得到同一个升序结果
	for round := 0; round < 10; round++ {
		got := em.GetEntitiesWith(plantType)
		if len(got) != len(plants) {
			t.Fatalf("Expected %d plants, got %d", len(plants), len(got))
		}
		for i := range got {
			if got[i] != plants[i] {
				t.Fatalf("Round %d: index %d expected ID %d, got %d", round, i, plants[i], got[i])
			}
		}
	}

	if got := em.GetEntitiesWith(plantType, plotType); len(got) != 0 {
		t.Errorf("No entity has both components, got %v", got)
	}
}

func TestGetEntitiesWithAfterRemoval(t *testing.T) {
	em := NewEntityManager()
	ids := make([]EntityID, 5)
	for i := range ids {
		ids[i] = em.CreateEntity()
		em.AddComponent(ids[i], &testPlantComponent{})
	}

	em.DestroyEntity(ids[1])
	em.DestroyEntity(ids[3])
	em.RemoveMarkedEntities()

	late := em.CreateEntity()
	em.AddComponent(late, &testPlantComponent{})

	expected := []EntityID{ids[0], ids[2], ids[4], late}
	got := em.GetEntitiesWith(plantType)
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, got)
		}
	}
}

func TestDeferredDestruction(t *testing.T) {
	tests := []struct {
		name         string
		cleanup      bool
		expectAlive  bool
		expectCount  int
		expectQueryN int
	}{
		{name: "标记后未清理", cleanup: false, expectAlive: true, expectCount: 2, expectQueryN: 2},
		{name: "标记后清理", cleanup: true, expectAlive: false, expectCount: 1, expectQueryN: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := NewEntityManager()
			dead := em.CreateEntity()
			em.AddComponent(dead, &testPlantComponent{})
			keep := em.CreateEntity()
			em.AddComponent(keep, &testPlantComponent{})

			em.DestroyEntity(dead)
			if tt.cleanup {
				em.RemoveMarkedEntities()
			}

			if em.IsAlive(dead) != tt.expectAlive {
				t.Errorf("Expected IsAlive=%v, got %v", tt.expectAlive, em.IsAlive(dead))
			}
			if !em.IsAlive(keep) {
				t.Error("Unmarked entity should stay alive")
			}
			if em.EntityCount() != tt.expectCount {
				t.Errorf("Expected %d entities, got %d", tt.expectCount, em.EntityCount())
			}
			if n := len(em.GetEntitiesWith(plantType)); n != tt.expectQueryN {
				t.Errorf("Expected %d plants from query, got %d", tt.expectQueryN, n)
			}
		})
	}
}

func TestDestroyTwiceThenCleanup(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPlantComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()

	if em.IsAlive(id) {
		t.Error("Entity should be gone after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.EntityCount())
	}

	// 第二次清理是空操作
	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.EntityCount())
	}
}

func TestComponentsOfRemovedEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPlantComponent{Growth: 0.4})
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()

	if _, found := em.GetComponent(id, plantType); found {
		t.Error("Removed entity should have no components")
	}

	// 向已清理的实体添加组件不会让它复活
	em.AddComponent(id, &testPlotComponent{})
	if em.IsAlive(id) || em.HasComponent(id, plotType) {
		t.Error("AddComponent must not resurrect a removed entity")
	}
}

func TestIsAliveUnknownID(t *testing.T) {
	em := NewEntityManager()
	if em.IsAlive(0) {
		t.Error("ID 0 is reserved and never alive")
	}
	if em.IsAlive(42) {
		t.Error("Unknown ID should not be alive")
	}
}
