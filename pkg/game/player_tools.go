package game

import (
	"log"

	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
)

// PlayerTools 玩家当前手持的工具和选中的种子
//
// 宿主负责把输入转换为视线射线和命中列表（按距离排序），
// PlayerTools 负责按当前工具把它们分派给 GardenManager
type PlayerTools struct {
	manager       *GardenManager
	currentTool   types.ToolType
	selectedSeed  *config.PlantTypeConfig
	interactRange float64
}

// NewPlayerTools 创建玩家工具，默认手持铲子，选中配置中的第一个品种
func NewPlayerTools(manager *GardenManager) *PlayerTools {
	cfg := manager.Config()
	p := &PlayerTools{
		manager:       manager,
		currentTool:   types.ToolShovel,
		interactRange: cfg.Resolution.InteractRange,
	}
	if len(cfg.PlantTypes) > 0 {
		p.selectedSeed = cfg.PlantTypes[0]
	}
	return p
}

// CurrentTool 当前工具
func (p *PlayerTools) CurrentTool() types.ToolType {
	return p.currentTool
}

// SelectTool 切换工具
func (p *PlayerTools) SelectTool(tool types.ToolType) {
	p.currentTool = tool
}

// CycleTool 切换到下一个工具
func (p *PlayerTools) CycleTool() {
	p.currentTool = p.currentTool.Next()
}

// SelectedSeed 当前选中的品种
func (p *PlayerTools) SelectedSeed() *config.PlantTypeConfig {
	return p.selectedSeed
}

// SelectSeed 按品种ID选择种子，品种不存在时返回 false
func (p *PlayerTools) SelectSeed(id string) bool {
	pt, ok := p.manager.Config().PlantType(id)
	if !ok {
		return false
	}
	p.selectedSeed = pt
	return true
}

// InteractRange 工具交互距离
func (p *PlayerTools) InteractRange() float64 {
	return p.interactRange
}

// Use 使用当前工具
//
// 参数：
//   - ray: 玩家视线
//   - hits: 视线上交互距离内的命中结果，按距离由近到远排列
//
// 执行顺序：
//  1. 水壶先按视线查找植物，不依赖命中结果
//  2. 依次对每个命中结果执行当前工具的动作，直到某次成功
//  3. 水壶最后兜底：对第一个命中点（没有命中时取视线上交互距离一半处）浇水
func (p *PlayerTools) Use(ray utils.Ray, hits []Hit) bool {
	if p.currentTool == types.ToolWateringCan && p.manager.TryWaterPlantLookingAt(ray, p.interactRange) {
		return true
	}

	for _, hit := range hits {
		if p.apply(hit) {
			return true
		}
	}

	if p.currentTool != types.ToolWateringCan {
		return false
	}
	fallback := ray.PointAt(p.interactRange * 0.5)
	if len(hits) > 0 {
		fallback = hits[0].Point
	}
	if p.manager.Config().DebugWatering {
		log.Printf("[PlayerTools] Watering fallback at %v", fallback)
	}
	return p.manager.TryWaterPlantAtPoint(fallback)
}

// apply 对单个命中结果执行当前工具的动作
func (p *PlayerTools) apply(hit Hit) bool {
	switch p.currentTool {
	case types.ToolShovel:
		return p.manager.TryRemoveDeadPlant(hit)
	case types.ToolSeedPacket:
		return p.manager.TryPlantSeed(hit, p.selectedSeed)
	case types.ToolWateringCan:
		return p.manager.TryWaterPlantAtPoint(hit.Point)
	default:
		return false
	}
}
