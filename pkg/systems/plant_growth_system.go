package systems

import (
	"log"

	"github.com/decker502/garden/pkg/components"
	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/types"
)

// IncomeRecorder 接收成熟植物产出的原始（未取整）收益
// 每株植物每帧调用一次，取整方式由实现决定
type IncomeRecorder interface {
	RecordIncome(amount float64)
}

// PlantGrowthSystem 推进所有植物的生长状态机
//
// 每帧对每株植物恰好推进一次：
//   - 种子/生长中：累积生长进度，首次越过 50% 时卡住等待浇水，到 100% 成熟
//   - 等待浇水：冻结
//   - 成熟：产出收益并消耗水分，水位耗尽即枯死
//   - 枯死：冻结，等待铲除
type PlantGrowthSystem struct {
	entityManager *ecs.EntityManager
	income        IncomeRecorder
}

// NewPlantGrowthSystem 创建植物生长系统
// 参数:
//   - em: EntityManager 实例
//   - income: 收益接收者（通常是计分器），可以为 nil
func NewPlantGrowthSystem(em *ecs.EntityManager, income IncomeRecorder) *PlantGrowthSystem {
	return &PlantGrowthSystem{
		entityManager: em,
		income:        income,
	}
}

// Update 推进所有植物一帧
func (s *PlantGrowthSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.PlantComponent](s.entityManager)

	for _, id := range entities {
		plant, ok := ecs.GetComponent[*components.PlantComponent](s.entityManager, id)
		if !ok {
			continue
		}

		before := plant.Stage
		income := AdvancePlant(plant, dt)
		if income > 0 && s.income != nil {
			s.income.RecordIncome(income)
		}

		if plant.Stage != before {
			switch plant.Stage {
			case types.StageNeedsWater:
				log.Printf("[PlantGrowthSystem] Plant %d (%s) needs water", id, plant.Type.ID)
			case types.StageMature:
				log.Printf("[PlantGrowthSystem] Plant %d (%s) is mature", id, plant.Type.ID)
			case types.StageDead:
				log.Printf("[PlantGrowthSystem] Plant %d (%s) died of thirst", id, plant.Type.ID)
			}
		}
	}
}

// AdvancePlant 按经过时间 dt 推进单株植物的状态机
//
// 返回:
//   - float64: 本帧产出的原始收益（仅成熟阶段非零）
func AdvancePlant(plant *components.PlantComponent, dt float64) float64 {
	switch plant.Stage {
	case types.StageSeed, types.StageGrowing:
		prev := plant.GrowthProgress
		plant.GrowthProgress += plant.Type.GrowthSpeed * dt * config.GrowthRateScale

		// 只在第一次越过 50% 时卡住（浇过水的植物已经在 50%，不会再次卡住）
		// 步长再大也不会一步越过等待浇水直接成熟
		if prev < config.NeedsWaterProgress && plant.GrowthProgress >= config.NeedsWaterProgress {
			plant.Stage = types.StageNeedsWater
			plant.GrowthProgress = config.NeedsWaterProgress
		} else if plant.GrowthProgress >= config.FullGrowthProgress {
			plant.Stage = types.StageMature
			plant.GrowthProgress = config.FullGrowthProgress
			plant.WaterLevel = config.FullWaterLevel
		}
		return 0

	case types.StageMature:
		// 枯死的这一帧仍然计入收益
		income := plant.Type.PointIncome * dt
		plant.WaterLevel -= plant.Type.MaintenanceRate * dt
		if plant.WaterLevel <= 0 {
			plant.Stage = types.StageDead
			plant.WaterLevel = 0
		}
		return income

	default:
		// 等待浇水和枯死阶段冻结
		return 0
	}
}

// WaterPlant 给植物浇水
//
// 返回:
//   - bool: 等待浇水（恢复生长，进度保持 50%）或成熟（补水 0.5，上限为满）时返回 true，
//     其他阶段不做任何修改并返回 false
func WaterPlant(plant *components.PlantComponent) bool {
	switch plant.Stage {
	case types.StageNeedsWater:
		plant.Stage = types.StageGrowing
		plant.GrowthProgress = config.NeedsWaterProgress
		return true
	case types.StageMature:
		plant.WaterLevel = min(config.FullWaterLevel, plant.WaterLevel+config.WaterRefillAmount)
		return true
	default:
		return false
	}
}

// CountPlantsInStage 统计处于指定阶段的植物数量
func CountPlantsInStage(em *ecs.EntityManager, stage types.PlantStage) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.PlantComponent](em) {
		plant, ok := ecs.GetComponent[*components.PlantComponent](em, id)
		if ok && plant.Stage == stage {
			count++
		}
	}
	return count
}
