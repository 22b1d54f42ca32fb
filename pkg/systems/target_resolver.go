package systems

import (
	"math"

	"github.com/decker502/garden/pkg/components"
	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/utils"
)

// Hit 宿主物理层给出的一次命中结果（已转换为世界坐标）
//
// Visual 和 Plot 为 0 时表示命中物不是植物/地块
type Hit struct {
	// Point 命中点
	Point utils.Vec3
	// Visual 命中的植物表现资源句柄
	Visual components.VisualHandle
	// Plot 命中物所属的地块实体
	Plot ecs.EntityID
}

// PlantFilter 植物筛选条件，nil 表示接受所有植物
type PlantFilter func(plant *components.PlantComponent) bool

// TargetResolver 将模糊的空间输入（命中结果、坐标点、视线）解析为具体的植物或地块
//
// 所有查询按实体ID升序遍历，距离严格更小才替换候选，
// 因此距离相同时总是选中ID最小（最早种下）的植物
type TargetResolver struct {
	entityManager *ecs.EntityManager
	resolution    config.ResolutionConfig
}

// NewTargetResolver 创建目标解析器
func NewTargetResolver(em *ecs.EntityManager, resolution config.ResolutionConfig) *TargetResolver {
	return &TargetResolver{
		entityManager: em,
		resolution:    resolution,
	}
}

// Resolution 返回解析器使用的半径配置
func (r *TargetResolver) Resolution() config.ResolutionConfig {
	return r.resolution
}

// PlantByVisual 按表现资源句柄查找植物
func (r *TargetResolver) PlantByVisual(handle components.VisualHandle) (ecs.EntityID, bool) {
	if handle == 0 {
		return 0, false
	}
	for _, id := range ecs.GetEntitiesWith2[*components.PlantComponent, *components.VisualComponent](r.entityManager) {
		visual, ok := ecs.GetComponent[*components.VisualComponent](r.entityManager, id)
		if ok && visual.Handle == handle {
			return id, true
		}
	}
	return 0, false
}

// NearestPlant 查找距离 point 不超过 radius 的最近植物
func (r *TargetResolver) NearestPlant(point utils.Vec3, radius float64, filter PlantFilter) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := math.MaxFloat64

	for _, id := range ecs.GetEntitiesWith2[*components.PlantComponent, *components.PositionComponent](r.entityManager) {
		plant, _ := ecs.GetComponent[*components.PlantComponent](r.entityManager, id)
		if filter != nil && !filter(plant) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.entityManager, id)

		d := utils.Distance(pos.Pos, point)
		if d <= radius && d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best, best != 0
}

// PlantInPlot 查找地块种植点 radius 范围内最近的植物
func (r *TargetResolver) PlantInPlot(plotID ecs.EntityID, radius float64) (ecs.EntityID, bool) {
	plot, ok := ecs.GetComponent[*components.PlotComponent](r.entityManager, plotID)
	if !ok {
		return 0, false
	}
	return r.NearestPlant(plot.PlantPosition, radius, nil)
}

// PlantOccupyingPlot 查找占用地块的植物（使用地块自身的捕获半径）
func (r *TargetResolver) PlantOccupyingPlot(plotID ecs.EntityID) (ecs.EntityID, bool) {
	plot, ok := ecs.GetComponent[*components.PlotComponent](r.entityManager, plotID)
	if !ok {
		return 0, false
	}
	return r.NearestPlant(plot.PlantPosition, plot.CaptureRadius, nil)
}

// PlotAtPosition 按坐标查找地块
// 按地块索引顺序返回第一个种植点位于 plotAtPositionRange 范围内的地块
func (r *TargetResolver) PlotAtPosition(point utils.Vec3) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestIndex := math.MaxInt

	for _, id := range ecs.GetEntitiesWith1[*components.PlotComponent](r.entityManager) {
		plot, _ := ecs.GetComponent[*components.PlotComponent](r.entityManager, id)
		if plot.Index >= bestIndex {
			continue
		}
		if utils.Distance(plot.PlantPosition, point) <= r.resolution.PlotAtPositionRange {
			best = id
			bestIndex = plot.Index
		}
	}
	return best, best != 0
}

// ResolvePlot 解析命中结果所在的地块
// 命中物直接关联地块时使用该地块，否则按命中点查找
func (r *TargetResolver) ResolvePlot(hit Hit) (ecs.EntityID, bool) {
	if hit.Plot != 0 && ecs.HasComponent[*components.PlotComponent](r.entityManager, hit.Plot) {
		return hit.Plot, true
	}
	return r.PlotAtPosition(hit.Point)
}

// ResolvePlant 按回退链解析命中结果对应的植物，找到候选即停止：
//  1. 命中物就是某株植物的表现资源：直接返回该植物
//  2. 命中物关联某个地块：在地块种植点 hitPlotRange 内找最近的植物
//  3. 兜底：在命中点 hitFallbackRange 内找最近的植物
func (r *TargetResolver) ResolvePlant(hit Hit) (ecs.EntityID, bool) {
	if id, ok := r.PlantByVisual(hit.Visual); ok {
		return id, true
	}

	if hit.Plot != 0 {
		if id, ok := r.PlantInPlot(hit.Plot, r.resolution.HitPlotRange); ok {
			return id, true
		}
	}

	return r.NearestPlant(hit.Point, r.resolution.HitFallbackRange, nil)
}

// PlantLookingAt 查找视线方向上最适合浇水的植物
//
// 只考虑可浇水（等待浇水或成熟）且距离射线起点不超过 maxRange 的植物，
// 丢弃位于起点后方的植物和垂直距离不小于 lookRayMaxDistance 的植物，
// 返回垂直距离最小者
func (r *TargetResolver) PlantLookingAt(ray utils.Ray, maxRange float64) (ecs.EntityID, bool) {
	if !ray.IsValid() {
		return 0, false
	}

	var best ecs.EntityID
	bestPerp := math.MaxFloat64

	for _, id := range ecs.GetEntitiesWith2[*components.PlantComponent, *components.PositionComponent](r.entityManager) {
		plant, _ := ecs.GetComponent[*components.PlantComponent](r.entityManager, id)
		if !plant.Stage.CanBeWatered() {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.entityManager, id)

		if utils.Distance(ray.Origin, pos.Pos) > maxRange {
			continue
		}

		along, perp := ray.Project(pos.Pos)
		if along < 0 {
			continue // 在身后
		}
		if perp < bestPerp && perp < r.resolution.LookRayMaxDistance {
			bestPerp = perp
			best = id
		}
	}
	return best, best != 0
}
