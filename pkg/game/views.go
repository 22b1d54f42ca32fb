package game

import (
	"image/color"

	"github.com/decker502/garden/pkg/components"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
)

// NeedsWaterDarken 等待浇水时花朵颜色变暗的比例
const NeedsWaterDarken = 0.5

// PlantView 单株植物的只读状态，供表现层渲染
type PlantView struct {
	ID          ecs.EntityID
	TypeID      string
	DisplayName string
	Color       color.RGBA
	Position    utils.Vec3
	Stage       types.PlantStage
	Growth      float64 // 生长进度 [0, 1]
	Water       float64 // 水位 [0, 1]
	Darken      float64 // 建议的变暗比例 [0, 0.5]
	Visual      VisualHandle
}

// PlotView 单个地块的只读状态
type PlotView struct {
	ID            ecs.EntityID
	Index         int
	Center        utils.Vec3
	PlantPosition utils.Vec3
	CaptureRadius float64
	Unlocked      bool
	Occupied      bool // 捕获半径内有植物（包括枯死植物）
	HasDeadPlant  bool // 有待铲除的枯死植物（开局残留或枯死的 Plant）
}

// DarkenFor 根据生长状态计算颜色变暗比例
//   - 等待浇水：0.5
//   - 成熟且水位低于一半：水位 0.5 -> 0，变暗 0 -> 0.5
//   - 其他：0（枯死植物由表现层使用固定的褐色）
func DarkenFor(stage types.PlantStage, water float64) float64 {
	switch {
	case stage == types.StageNeedsWater:
		return NeedsWaterDarken
	case stage == types.StageMature && water < 0.5:
		return (1 - water*2) * NeedsWaterDarken
	default:
		return 0
	}
}

// newPlantView 从组件组装视图
func newPlantView(id ecs.EntityID, plant *components.PlantComponent, pos utils.Vec3, handle VisualHandle) PlantView {
	return PlantView{
		ID:          id,
		TypeID:      plant.Type.ID,
		DisplayName: plant.Type.Name(),
		Color:       plant.Type.Color(),
		Position:    pos,
		Stage:       plant.Stage,
		Growth:      plant.GrowthProgress,
		Water:       plant.WaterLevel,
		Darken:      DarkenFor(plant.Stage, plant.WaterLevel),
		Visual:      handle,
	}
}
