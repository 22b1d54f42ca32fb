package components

import "github.com/decker502/garden/pkg/utils"

// PositionComponent 实体的世界坐标
// 植物创建后位置不再改变
type PositionComponent struct {
	Pos utils.Vec3
}
