package config

import (
	"fmt"
	"log"

	"github.com/decker502/garden/pkg/embedded"
	"github.com/decker502/garden/pkg/utils"
	"gopkg.in/yaml.v3"
)

// ScoreMode 成熟植物收益的计分方式
type ScoreMode string

const (
	// ScoreModePerTick 每帧、每株植物单独四舍五入（与原版一致，总分依赖帧率）
	ScoreModePerTick ScoreMode = "perTick"
	// ScoreModeFractional 累积小数收益，满 1 分才入账（与帧率无关）
	ScoreModeFractional ScoreMode = "fractional"
)

// ResolutionConfig 空间目标解析使用的各个半径
// 0 表示使用默认值
type ResolutionConfig struct {
	PlotCaptureRadius   float64 `yaml:"plotCaptureRadius"`   // 地块捕获半径（占用判定）
	HitPlotRange        float64 `yaml:"hitPlotRange"`        // 命中地块后查找植物的半径
	HitFallbackRange    float64 `yaml:"hitFallbackRange"`    // 兜底：按命中点查找植物的半径
	WaterPointRange     float64 `yaml:"waterPointRange"`     // 按坐标点浇水的查找半径
	LookRayMaxDistance  float64 `yaml:"lookRayMaxDistance"`  // 视线浇水的最大垂直距离
	PlotAtPositionRange float64 `yaml:"plotAtPositionRange"` // 按坐标点查找地块的半径
	InteractRange       float64 `yaml:"interactRange"`       // 工具交互距离
	PlantHeightOffset   float64 `yaml:"plantHeightOffset"`   // 种植点高度偏移
}

// PlotConfig 单个地块的配置
type PlotConfig struct {
	Position      []float64 `yaml:"position"`      // 地块中心坐标 [x, y, z]
	Unlocked      bool      `yaml:"unlocked"`      // 开局即解锁（索引小于 initialUnlockedPlots 的地块总是解锁）
	HasDeadPlant  bool      `yaml:"hasDeadPlant"`  // 开局带有一株需要铲除的枯死植物
	CaptureRadius float64   `yaml:"captureRadius"` // 捕获半径，0 表示使用 resolution.plotCaptureRadius
}

// Center 返回地块中心坐标
func (p PlotConfig) Center() utils.Vec3 {
	return utils.V3(p.Position[0], p.Position[1], p.Position[2])
}

// GardenConfig 花园内容配置文件结构
type GardenConfig struct {
	GameDurationSeconds            float64            `yaml:"gameDurationSeconds"`
	MaturePlantsNeededToUnlockPlot int                `yaml:"maturePlantsNeededToUnlockPlot"`
	InitialUnlockedPlots           int                `yaml:"initialUnlockedPlots"`
	ScoreMode                      ScoreMode          `yaml:"scoreMode"`
	DebugWatering                  bool               `yaml:"debugWatering"`
	Resolution                     ResolutionConfig   `yaml:"resolution"`
	PlantTypes                     []*PlantTypeConfig `yaml:"plantTypes"`
	Plots                          []PlotConfig       `yaml:"plots"`

	plantTypeIndex map[string]*PlantTypeConfig
}

// LoadGardenConfig 从 YAML 文件加载花园内容配置
// 参数：
//
//	filepath - 配置文件路径，"data/" 开头的路径从嵌入资源读取
//
// 返回：
//
//	*GardenConfig - 解析并校验后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadGardenConfig(filepath string) (*GardenConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read garden config file %s: %w", filepath, err)
	}

	config, err := ParseGardenConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid garden config %s: %w", filepath, err)
	}

	log.Printf("[GardenConfig] Loaded %s: %d plant types, %d plots", filepath, len(config.PlantTypes), len(config.Plots))
	return config, nil
}

// LoadDefaultGardenConfig 加载嵌入的默认花园内容
func LoadDefaultGardenConfig() (*GardenConfig, error) {
	return LoadGardenConfig(embedded.DefaultGardenPath)
}

// ParseGardenConfig 解析 YAML 内容并校验
func ParseGardenConfig(data []byte) (*GardenConfig, error) {
	var config GardenConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse garden YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate 校验配置并填充默认值
// 代码构造的配置在交给模拟器之前也必须调用此方法
func (c *GardenConfig) Validate() error {
	if c.GameDurationSeconds < 0 {
		return fmt.Errorf("gameDurationSeconds cannot be negative, got %v", c.GameDurationSeconds)
	}
	if c.GameDurationSeconds == 0 {
		c.GameDurationSeconds = DefaultGameDurationSeconds
	}

	if c.MaturePlantsNeededToUnlockPlot < 0 {
		return fmt.Errorf("maturePlantsNeededToUnlockPlot cannot be negative, got %d", c.MaturePlantsNeededToUnlockPlot)
	}
	if c.MaturePlantsNeededToUnlockPlot == 0 {
		c.MaturePlantsNeededToUnlockPlot = DefaultMaturePlantsNeededToUnlockPlot
	}

	switch c.ScoreMode {
	case "":
		c.ScoreMode = ScoreModePerTick
	case ScoreModePerTick, ScoreModeFractional:
	default:
		return fmt.Errorf("unknown scoreMode %q (expected %q or %q)", c.ScoreMode, ScoreModePerTick, ScoreModeFractional)
	}

	if err := c.Resolution.applyDefaults(); err != nil {
		return err
	}

	if len(c.PlantTypes) == 0 {
		return fmt.Errorf("at least one plant type is required")
	}
	c.plantTypeIndex = make(map[string]*PlantTypeConfig, len(c.PlantTypes))
	for i, pt := range c.PlantTypes {
		if pt == nil {
			return fmt.Errorf("plantTypes[%d] is empty", i)
		}
		if err := pt.validate(); err != nil {
			return err
		}
		if _, dup := c.plantTypeIndex[pt.ID]; dup {
			return fmt.Errorf("duplicate plant type id %q", pt.ID)
		}
		c.plantTypeIndex[pt.ID] = pt
	}

	if len(c.Plots) == 0 {
		return fmt.Errorf("at least one plot is required")
	}
	for i := range c.Plots {
		plot := &c.Plots[i]
		if len(plot.Position) != 3 {
			return fmt.Errorf("plot %d: position must have 3 components, got %d", i, len(plot.Position))
		}
		if plot.CaptureRadius < 0 {
			return fmt.Errorf("plot %d: captureRadius cannot be negative, got %v", i, plot.CaptureRadius)
		}
		if plot.CaptureRadius == 0 {
			plot.CaptureRadius = c.Resolution.PlotCaptureRadius
		}
	}

	if c.InitialUnlockedPlots == 0 {
		c.InitialUnlockedPlots = DefaultInitialUnlockedPlots
	}
	if c.InitialUnlockedPlots < 0 || c.InitialUnlockedPlots > len(c.Plots) {
		return fmt.Errorf("initialUnlockedPlots must be between 1 and %d, got %d", len(c.Plots), c.InitialUnlockedPlots)
	}

	return nil
}

// applyDefaults 为未设置的半径填充默认值
func (r *ResolutionConfig) applyDefaults() error {
	fields := []struct {
		name  string
		value *float64
		def   float64
	}{
		{"plotCaptureRadius", &r.PlotCaptureRadius, DefaultPlotCaptureRadius},
		{"hitPlotRange", &r.HitPlotRange, DefaultHitPlotRange},
		{"hitFallbackRange", &r.HitFallbackRange, DefaultHitFallbackRange},
		{"waterPointRange", &r.WaterPointRange, DefaultWaterPointRange},
		{"lookRayMaxDistance", &r.LookRayMaxDistance, DefaultLookRayMaxDistance},
		{"plotAtPositionRange", &r.PlotAtPositionRange, DefaultPlotAtPositionRange},
		{"interactRange", &r.InteractRange, DefaultInteractRange},
		{"plantHeightOffset", &r.PlantHeightOffset, DefaultPlantHeightOffset},
	}
	for _, f := range fields {
		if *f.value < 0 {
			return fmt.Errorf("resolution.%s cannot be negative, got %v", f.name, *f.value)
		}
		if *f.value == 0 {
			*f.value = f.def
		}
	}
	return nil
}

// PlantType 按ID查找品种配置
// 如果品种不存在，返回 nil 和 false
func (c *GardenConfig) PlantType(id string) (*PlantTypeConfig, bool) {
	pt, ok := c.plantTypeIndex[id]
	return pt, ok
}

// PlantTypeIDs 返回所有品种ID（保持配置文件中的顺序）
func (c *GardenConfig) PlantTypeIDs() []string {
	ids := make([]string, 0, len(c.PlantTypes))
	for _, pt := range c.PlantTypes {
		ids = append(ids, pt.ID)
	}
	return ids
}
