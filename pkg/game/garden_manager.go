package game

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/garden/pkg/components"
	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/systems"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
)

// Hit 宿主物理层给出的命中结果
type Hit = systems.Hit

// GardenManager 花园模拟器
//
// 职责：
//   - 持有全部植物和地块（ECS 实体）
//   - 每帧推进所有植物、结算分数、评估地块解锁
//   - 解析空间输入并执行玩家动作（种植、浇水、铲除），返回成功/失败
//
// 架构说明：
//   - 非单例，所有协作者在构造时注入
//   - 单线程使用：Tick 和动作方法由宿主循环顺序调用，不需要加锁
//   - 植物和地块不持有模拟器引用
type GardenManager struct {
	config        *config.GardenConfig
	entityManager *ecs.EntityManager
	score         *ScoreTracker
	timer         *GameTimer
	visuals       VisualAllocator

	growthSystem *systems.PlantGrowthSystem
	unlockSystem *systems.PlotUnlockSystem
	resolver     *systems.TargetResolver

	plots []ecs.EntityID // 按索引排列
}

// Option 构造选项
type Option func(*GardenManager)

// WithVisualAllocator 指定表现层资源分配器
func WithVisualAllocator(a VisualAllocator) Option {
	return func(m *GardenManager) {
		if a != nil {
			m.visuals = a
		}
	}
}

// NewGardenManager 创建花园模拟器
//
// 参数：
//   - cfg: 花园内容配置（会再次校验并填充默认值）
//   - opts: 构造选项
//
// 返回：
//   - *GardenManager: 模拟器实例
//   - error: 配置无效时返回错误
func NewGardenManager(cfg *config.GardenConfig, opts ...Option) (*GardenManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("garden config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid garden config: %w", err)
	}

	em := ecs.NewEntityManager()
	m := &GardenManager{
		config:        cfg,
		entityManager: em,
		score:         NewScoreTracker(cfg.ScoreMode),
		timer:         NewGameTimer(cfg.GameDurationSeconds),
		visuals:       NewSequentialVisualAllocator(),
	}
	for _, opt := range opts {
		opt(m)
	}

	lift := utils.V3(0, cfg.Resolution.PlantHeightOffset, 0)
	m.plots = make([]ecs.EntityID, 0, len(cfg.Plots))
	for i, pc := range cfg.Plots {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PlotComponent{
			Index:         i,
			Unlocked:      pc.Unlocked || i < cfg.InitialUnlockedPlots,
			HasDeadPlant:  pc.HasDeadPlant,
			Center:        pc.Center(),
			PlantPosition: pc.Center().Add(lift),
			CaptureRadius: pc.CaptureRadius,
		})
		m.plots = append(m.plots, id)
	}

	m.growthSystem = systems.NewPlantGrowthSystem(em, m.score)
	m.unlockSystem = systems.NewPlotUnlockSystem(em, m.plots, cfg.MaturePlantsNeededToUnlockPlot, cfg.InitialUnlockedPlots)
	m.resolver = systems.NewTargetResolver(em, cfg.Resolution)

	log.Printf("[GardenManager] Created garden: %d plots (%d unlocked), %d plant types, score mode %s",
		len(m.plots), cfg.InitialUnlockedPlots, len(cfg.PlantTypes), cfg.ScoreMode)
	return m, nil
}

// Tick 推进模拟一帧
// 顺序固定：倒计时 -> 所有植物推进一次（含计分） -> 评估地块解锁 -> 清理待删除实体
func (m *GardenManager) Tick(dt float64) {
	// 只接受有限正数：NaN 与 ±Inf 直接丢弃
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	m.timer.Update(dt)
	m.growthSystem.Update(dt)
	m.unlockSystem.Update()
	m.entityManager.RemoveMarkedEntities()
}

// TryPlantSeed 在命中的地块上种植指定品种
//
// 成功条件：品种不为空、地块已解锁、地块没有待铲除的枯死植物、捕获半径内没有任何植物。
// 新植物固定种在地块的种植点上。
func (m *GardenManager) TryPlantSeed(hit Hit, plantType *config.PlantTypeConfig) bool {
	if plantType == nil {
		return false
	}

	plotID, ok := m.resolver.ResolvePlot(hit)
	if !ok {
		return false
	}
	plot, _ := ecs.GetComponent[*components.PlotComponent](m.entityManager, plotID)
	if !plot.Unlocked || plot.HasDeadPlant {
		return false
	}

	// 每个地块最多一株植物
	if _, occupied := m.resolver.PlantOccupyingPlot(plotID); occupied {
		return false
	}

	id := m.entityManager.CreateEntity()
	plant := components.NewPlantComponent(plantType)
	ecs.AddComponent(m.entityManager, id, plant)
	ecs.AddComponent(m.entityManager, id, &components.PositionComponent{Pos: plot.PlantPosition})

	handle := m.visuals.CreateVisual(newPlantView(id, plant, plot.PlantPosition, 0))
	ecs.AddComponent(m.entityManager, id, &components.VisualComponent{Handle: handle})

	log.Printf("[GardenManager] Planted %s (plant %d) on plot %d", plantType.Name(), id, plot.Index)
	return true
}

// TryWaterPlant 给命中地块上的植物浇水
// 地块解析与种植相同：命中物关联的地块优先，否则按命中点查找
func (m *GardenManager) TryWaterPlant(hit Hit) bool {
	plotID, ok := m.resolver.ResolvePlot(hit)
	if !ok {
		return false
	}
	plot, _ := ecs.GetComponent[*components.PlotComponent](m.entityManager, plotID)
	if !plot.Unlocked {
		return false
	}

	plantID, ok := m.resolver.PlantInPlot(plotID, plot.CaptureRadius)
	return ok && m.waterPlant(plantID)
}

// TryWaterPlantAtPoint 给坐标点附近最近的植物浇水
func (m *GardenManager) TryWaterPlantAtPoint(point utils.Vec3) bool {
	plantID, found := m.resolver.NearestPlant(point, m.config.Resolution.WaterPointRange, nil)
	if m.config.DebugWatering {
		log.Printf("[GardenManager] Water at point %v: found=%v plants=%d", point, found, m.PlantCount())
	}
	return found && m.waterPlant(plantID)
}

// TryWaterPlantLookingAt 给视线方向上的植物浇水，不依赖命中结果
func (m *GardenManager) TryWaterPlantLookingAt(ray utils.Ray, maxRange float64) bool {
	plantID, found := m.resolver.PlantLookingAt(ray, maxRange)
	if m.config.DebugWatering {
		log.Printf("[GardenManager] Water looking at %v: found=%v", ray.Direction, found)
	}
	return found && m.waterPlant(plantID)
}

// waterPlant 对指定植物执行浇水规则
func (m *GardenManager) waterPlant(id ecs.EntityID) bool {
	plant, ok := ecs.GetComponent[*components.PlantComponent](m.entityManager, id)
	if !ok {
		return false
	}

	before := plant.Stage
	watered := systems.WaterPlant(plant)
	if m.config.DebugWatering {
		if watered {
			log.Printf("[GardenManager] Watered plant %d: %v -> %v (water=%.2f)", id, before, plant.Stage, plant.WaterLevel)
		} else {
			log.Printf("[GardenManager] Plant %d in wrong stage for watering: %v", id, plant.Stage)
		}
	}
	return watered
}

// TryRemoveDeadPlant 铲除命中的枯死植物，成功时奖励 RemovalBonus 分
//
// 先检查命中物关联的地块上是否有开局残留的枯死植物，
// 再按回退链解析植物，只有枯死的植物可以被铲除
func (m *GardenManager) TryRemoveDeadPlant(hit Hit) bool {
	if hit.Plot != 0 {
		if plot, ok := ecs.GetComponent[*components.PlotComponent](m.entityManager, hit.Plot); ok && plot.HasDeadPlant {
			if !plot.Unlocked {
				return false
			}
			plot.HasDeadPlant = false
			m.score.AddBonus(config.RemovalBonus)
			log.Printf("[GardenManager] Cleared withered remains on plot %d (+%d)", plot.Index, config.RemovalBonus)
			return true
		}
	}

	plantID, ok := m.resolver.ResolvePlant(hit)
	if !ok {
		return false
	}
	plant, _ := ecs.GetComponent[*components.PlantComponent](m.entityManager, plantID)
	if plant.Stage != types.StageDead {
		return false
	}

	if visual, ok := ecs.GetComponent[*components.VisualComponent](m.entityManager, plantID); ok {
		m.visuals.ReleaseVisual(visual.Handle)
	}
	m.entityManager.DestroyEntity(plantID)
	m.entityManager.RemoveMarkedEntities()
	m.score.AddBonus(config.RemovalBonus)

	log.Printf("[GardenManager] Removed dead %s (plant %d, +%d)", plant.Type.Name(), plantID, config.RemovalBonus)
	return true
}

// Score 当前分数
func (m *GardenManager) Score() int {
	return m.score.Score()
}

// Timer 对局倒计时
func (m *GardenManager) Timer() *GameTimer {
	return m.timer
}

// Config 花园内容配置
func (m *GardenManager) Config() *config.GardenConfig {
	return m.config
}

// UnlockedPlotCount 解锁计数
func (m *GardenManager) UnlockedPlotCount() int {
	return m.unlockSystem.UnlockedCount()
}

// PlantCount 当前植物数量（包括枯死植物）
func (m *GardenManager) PlantCount() int {
	return len(ecs.GetEntitiesWith1[*components.PlantComponent](m.entityManager))
}

// MatureCount 当前成熟植物数量
func (m *GardenManager) MatureCount() int {
	return systems.CountPlantsInStage(m.entityManager, types.StageMature)
}

// Plots 按索引排列的地块实体
func (m *GardenManager) Plots() []ecs.EntityID {
	out := make([]ecs.EntityID, len(m.plots))
	copy(out, m.plots)
	return out
}

// PlantView 查询单株植物的状态，植物不存在（例如已被铲除）时返回 false
func (m *GardenManager) PlantView(id ecs.EntityID) (PlantView, bool) {
	plant, ok := ecs.GetComponent[*components.PlantComponent](m.entityManager, id)
	if !ok {
		return PlantView{}, false
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](m.entityManager, id)
	var handle VisualHandle
	if visual, ok := ecs.GetComponent[*components.VisualComponent](m.entityManager, id); ok {
		handle = visual.Handle
	}
	return newPlantView(id, plant, pos.Pos, handle), true
}

// PlantViews 所有植物的状态（按种植顺序）
func (m *GardenManager) PlantViews() []PlantView {
	ids := ecs.GetEntitiesWith1[*components.PlantComponent](m.entityManager)
	views := make([]PlantView, 0, len(ids))
	for _, id := range ids {
		if v, ok := m.PlantView(id); ok {
			views = append(views, v)
		}
	}
	return views
}

// PlotViews 所有地块的状态（按索引）
func (m *GardenManager) PlotViews() []PlotView {
	views := make([]PlotView, 0, len(m.plots))
	for _, id := range m.plots {
		plot, _ := ecs.GetComponent[*components.PlotComponent](m.entityManager, id)
		view := PlotView{
			ID:            id,
			Index:         plot.Index,
			Center:        plot.Center,
			PlantPosition: plot.PlantPosition,
			CaptureRadius: plot.CaptureRadius,
			Unlocked:      plot.Unlocked,
			HasDeadPlant:  plot.HasDeadPlant,
		}
		if plantID, ok := m.resolver.PlantOccupyingPlot(id); ok {
			view.Occupied = true
			if plant, ok := ecs.GetComponent[*components.PlantComponent](m.entityManager, plantID); ok && plant.Stage == types.StageDead {
				view.HasDeadPlant = true
			}
		}
		views = append(views, view)
	}
	return views
}

// PlantAt 查询地块上的植物（使用地块的捕获半径）
func (m *GardenManager) PlantAt(plotID ecs.EntityID) (ecs.EntityID, bool) {
	return m.resolver.PlantOccupyingPlot(plotID)
}
