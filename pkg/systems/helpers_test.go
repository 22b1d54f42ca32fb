package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/garden/pkg/components"
	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
)

// newTestPlantType 创建测试用的品种配置
func newTestPlantType(t *testing.T, growthSpeed, pointIncome, maintenanceRate float64) *config.PlantTypeConfig {
	t.Helper()
	pt, err := config.NewPlantType("test", color.RGBA{R: 255, G: 235, B: 4, A: 255}, growthSpeed, pointIncome, maintenanceRate)
	if err != nil {
		t.Fatalf("Failed to create plant type: %v", err)
	}
	return pt
}

// spawnTestPlant 在指定位置创建一株处于指定阶段的植物
func spawnTestPlant(em *ecs.EntityManager, pt *config.PlantTypeConfig, pos utils.Vec3, stage types.PlantStage) ecs.EntityID {
	id := em.CreateEntity()
	plant := components.NewPlantComponent(pt)
	plant.Stage = stage
	switch stage {
	case types.StageNeedsWater, types.StageGrowing:
		plant.GrowthProgress = config.NeedsWaterProgress
	case types.StageMature, types.StageDead:
		plant.GrowthProgress = config.FullGrowthProgress
	}
	if stage == types.StageDead {
		plant.WaterLevel = 0
	}
	ecs.AddComponent(em, id, plant)
	ecs.AddComponent(em, id, &components.PositionComponent{Pos: pos})
	ecs.AddComponent(em, id, &components.VisualComponent{Handle: components.VisualHandle(100 + id)})
	return id
}

// spawnTestPlot 创建一个地块，种植点与中心重合
func spawnTestPlot(em *ecs.EntityManager, index int, center utils.Vec3, unlocked bool) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PlotComponent{
		Index:         index,
		Unlocked:      unlocked,
		Center:        center,
		PlantPosition: center,
		CaptureRadius: config.DefaultPlotCaptureRadius,
	})
	return id
}

// defaultTestResolution 返回默认半径配置
func defaultTestResolution() config.ResolutionConfig {
	return config.ResolutionConfig{
		PlotCaptureRadius:   config.DefaultPlotCaptureRadius,
		HitPlotRange:        config.DefaultHitPlotRange,
		HitFallbackRange:    config.DefaultHitFallbackRange,
		WaterPointRange:     config.DefaultWaterPointRange,
		LookRayMaxDistance:  config.DefaultLookRayMaxDistance,
		PlotAtPositionRange: config.DefaultPlotAtPositionRange,
		InteractRange:       config.DefaultInteractRange,
		PlantHeightOffset:   config.DefaultPlantHeightOffset,
	}
}

// incomeCollector 记录所有收益，便于断言
type incomeCollector struct {
	total float64
	calls int
}

func (c *incomeCollector) RecordIncome(amount float64) {
	c.total += amount
	c.calls++
}
