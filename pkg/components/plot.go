package components

import "github.com/decker502/garden/pkg/utils"

// PlotComponent 标识实体为花园地块
//
// 地块是否被占用不存储在组件中，而是每次按捕获半径实时计算，
// 由 systems.TargetResolver.PlantOccupyingPlot 负责
type PlotComponent struct {
	// Index 地块在配置中的索引，解锁顺序按索引递增
	Index int
	// Unlocked 是否已解锁，锁定的地块拒绝所有动作
	Unlocked bool
	// HasDeadPlant 开局残留的枯死植物（不是 Plant 实体），需要铲除后才能种植
	HasDeadPlant bool
	// Center 地块中心坐标
	Center utils.Vec3
	// PlantPosition 新植物的种植点（地块表面上方）
	PlantPosition utils.Vec3
	// CaptureRadius 捕获半径，种植点此半径内的植物属于该地块
	CaptureRadius float64
}
