package components

import (
	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/types"
)

// PlantComponent 标识实体为花园中的一株植物
// 包含品种引用和生长状态机的全部状态
//
// 植物不持有模拟器的引用，只由 PlantGrowthSystem 推进
type PlantComponent struct {
	// Type 品种配置（同品种植物共享同一份，只读）
	Type *config.PlantTypeConfig
	// Stage 当前生长阶段
	Stage types.PlantStage
	// GrowthProgress 生长进度 [0, 1]
	// 等待浇水时恰好为 0.5，成熟时恰好为 1
	GrowthProgress float64
	// WaterLevel 水位 [0, 1]，只在成熟阶段有意义（逐帧衰减）
	WaterLevel float64
}

// NewPlantComponent 创建刚种下的植物状态
func NewPlantComponent(plantType *config.PlantTypeConfig) *PlantComponent {
	return &PlantComponent{
		Type:           plantType,
		Stage:          types.StageSeed,
		GrowthProgress: 0,
		WaterLevel:     config.FullWaterLevel,
	}
}
