package config

// 花园玩法常量
// 本文件定义了植物生长状态机和玩家动作使用的固定参数

// Growth Configuration (生长配置)
const (
	// GrowthRateScale 生长速度缩放系数
	// 每秒生长进度 = growthSpeed * GrowthRateScale
	// growthSpeed = 1 时从种子长到 50% 需要 5 秒
	GrowthRateScale = 0.1

	// NeedsWaterProgress 等待浇水的生长进度阈值
	// 第一次越过此值时植物卡住，直到玩家浇水
	NeedsWaterProgress = 0.5

	// FullGrowthProgress 成熟所需的生长进度
	FullGrowthProgress = 1.0

	// FullWaterLevel 满水位（成熟时和种下时的水位）
	FullWaterLevel = 1.0

	// DefaultWaterCapacity 唯一允许的水容量
	DefaultWaterCapacity = 1.0
)

// Action Configuration (玩家动作配置)
const (
	// WaterRefillAmount 给成熟植物浇水时补充的水量（上限为满水位）
	WaterRefillAmount = 0.5

	// RemovalBonus 铲除一株枯死植物获得的分数
	RemovalBonus = 10
)

// Resolution Defaults (空间解析默认值，单位：世界坐标)
const (
	// DefaultPlotCaptureRadius 地块捕获半径
	// 植物位于地块种植点此半径内即视为属于该地块（占用判定）
	DefaultPlotCaptureRadius = 2.5

	// DefaultHitPlotRange 命中地块后查找植物的半径
	DefaultHitPlotRange = 2.0

	// DefaultHitFallbackRange 未命中植物或地块时，按命中点查找最近植物的半径
	DefaultHitFallbackRange = 2.5

	// DefaultWaterPointRange 按世界坐标点浇水时的查找半径
	// 命中点可能落在玩家身上或地块边缘，因此取值较宽松
	DefaultWaterPointRange = 4.0

	// DefaultLookRayMaxDistance 视线浇水时植物到视线的最大垂直距离
	DefaultLookRayMaxDistance = 2.0

	// DefaultPlotAtPositionRange 按世界坐标点查找地块的半径（2x2 地块）
	DefaultPlotAtPositionRange = 2.5

	// DefaultInteractRange 玩家工具的交互距离
	DefaultInteractRange = 5.0

	// DefaultPlantHeightOffset 种植点相对地块中心的高度偏移
	// 地块厚度 0.5 的一半再抬高 0.05，使植物立在地块表面之上
	DefaultPlantHeightOffset = 0.3
)

// Game Defaults (对局默认值)
const (
	// DefaultGameDurationSeconds 一局游戏的时长（秒）
	DefaultGameDurationSeconds = 180.0

	// DefaultMaturePlantsNeededToUnlockPlot 每个已解锁地块需要的成熟植物数量
	DefaultMaturePlantsNeededToUnlockPlot = 3

	// DefaultInitialUnlockedPlots 开局已解锁的地块数量
	DefaultInitialUnlockedPlots = 1
)
