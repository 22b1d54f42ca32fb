package systems

import (
	"log"

	"github.com/decker502/garden/pkg/components"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/types"
)

// PlotUnlockSystem 管理地块解锁进度
//
// 解锁规则：成熟植物数量 >= maturePlantsNeeded * 已解锁数量 时，
// 解锁下一个地块（索引 = 已解锁数量）。每帧最多解锁一个，每帧都重新评估。
type PlotUnlockSystem struct {
	entityManager      *ecs.EntityManager
	plots              []ecs.EntityID // 按索引排列的地块实体
	maturePlantsNeeded int
	unlockedCount      int
}

// NewPlotUnlockSystem 创建地块解锁系统
// 参数:
//   - em: EntityManager 实例
//   - plots: 按解锁顺序排列的地块实体
//   - maturePlantsNeeded: 每个已解锁地块需要的成熟植物数量
//   - initialUnlocked: 开局已解锁的地块数量
func NewPlotUnlockSystem(em *ecs.EntityManager, plots []ecs.EntityID, maturePlantsNeeded, initialUnlocked int) *PlotUnlockSystem {
	return &PlotUnlockSystem{
		entityManager:      em,
		plots:              plots,
		maturePlantsNeeded: maturePlantsNeeded,
		unlockedCount:      initialUnlocked,
	}
}

// UnlockedCount 返回解锁计数
func (s *PlotUnlockSystem) UnlockedCount() int {
	return s.unlockedCount
}

// RequiredMatureCount 返回解锁下一个地块所需的成熟植物数量
func (s *PlotUnlockSystem) RequiredMatureCount() int {
	return s.maturePlantsNeeded * s.unlockedCount
}

// Update 评估解锁条件
//
// 返回:
//   - int: 本帧解锁的地块索引
//   - bool: 本帧是否解锁了地块
func (s *PlotUnlockSystem) Update() (int, bool) {
	if s.unlockedCount >= len(s.plots) {
		return 0, false
	}

	matureCount := CountPlantsInStage(s.entityManager, types.StageMature)
	if matureCount < s.RequiredMatureCount() {
		return 0, false
	}

	index := s.unlockedCount
	s.unlockedCount++

	// 地块可能已经通过配置预先解锁，这里只保证它处于解锁状态
	if plot, ok := ecs.GetComponent[*components.PlotComponent](s.entityManager, s.plots[index]); ok {
		plot.Unlocked = true
	}

	log.Printf("[PlotUnlockSystem] Unlocked plot %d (mature=%d, required=%d, unlocked=%d/%d)",
		index, matureCount, s.maturePlantsNeeded*index, s.unlockedCount, len(s.plots))
	return index, true
}
