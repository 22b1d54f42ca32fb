// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// PlantStage 定义植物的生长阶段
type PlantStage int

const (
	// StageSeed 刚种下的种子，持续生长
	StageSeed PlantStage = iota
	// StageGrowing 生长中（浇水后从 50% 继续长到成熟）
	StageGrowing
	// StageNeedsWater 生长进度卡在 50%，等待玩家浇水
	StageNeedsWater
	// StageMature 完全成熟，持续产出分数并消耗水分
	StageMature
	// StageDead 枯死，只能用铲子清除
	StageDead
)

// String 返回生长阶段的字符串表示
func (s PlantStage) String() string {
	switch s {
	case StageSeed:
		return "Seed"
	case StageGrowing:
		return "Growing"
	case StageNeedsWater:
		return "NeedsWater"
	case StageMature:
		return "Mature"
	case StageDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// IsGrowing 种子和生长中两个阶段行为一致，都在累积生长进度
func (s PlantStage) IsGrowing() bool {
	return s == StageSeed || s == StageGrowing
}

// CanBeWatered 只有等待浇水和成熟阶段接受浇水
func (s PlantStage) CanBeWatered() bool {
	return s == StageNeedsWater || s == StageMature
}
