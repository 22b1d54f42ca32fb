package types

// ToolType 定义玩家手持的工具
type ToolType int

const (
	// ToolShovel 铲子：清除枯死植物
	ToolShovel ToolType = iota
	// ToolSeedPacket 种子包：在地块上种植
	ToolSeedPacket
	// ToolWateringCan 水壶：给植物浇水
	ToolWateringCan
)

// String 返回工具的字符串表示
func (t ToolType) String() string {
	switch t {
	case ToolShovel:
		return "Shovel"
	case ToolSeedPacket:
		return "SeedPacket"
	case ToolWateringCan:
		return "WateringCan"
	default:
		return "Unknown"
	}
}

// Next 按 铲子 -> 种子包 -> 水壶 的顺序循环切换
func (t ToolType) Next() ToolType {
	return (t + 1) % 3
}
