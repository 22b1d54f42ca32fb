package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/embedded"
	"github.com/decker502/garden/pkg/game"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
	"gopkg.in/yaml.v3"
)

var (
	configPath = flag.String("config", embedded.DefaultGardenPath, "花园内容配置文件路径")
	validate   = flag.Bool("validate", false, "只校验配置文件（严格模式：拒绝未知字段）")
	dt         = flag.Float64("dt", 1.0/60, "每帧模拟时长（秒）")
	duration   = flag.Float64("duration", 0, "模拟总时长（秒），0 表示使用配置中的对局时长")
	reportSecs = flag.Float64("report", 10, "时间线报告间隔（秒）")
	scoreMode  = flag.String("score-mode", "", "覆盖计分方式：perTick 或 fractional")
	verbose    = flag.Bool("verbose", false, "输出浇水诊断日志")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if *validate {
		if err := validateConfig(*configPath); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadGardenConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load garden config: %v", err)
	}
	if *scoreMode != "" {
		cfg.ScoreMode = config.ScoreMode(*scoreMode)
	}
	if *verbose {
		cfg.DebugWatering = true
	}

	manager, err := game.NewGardenManager(cfg)
	if err != nil {
		log.Fatalf("Failed to create garden: %v", err)
	}

	total := *duration
	if total <= 0 {
		total = cfg.GameDurationSeconds
	}
	if *dt <= 0 {
		log.Fatalf("dt must be positive, got %v", *dt)
	}

	result := runScenario(manager, total, *dt, *reportSecs)
	fmt.Printf("\n=== 模拟结束 ===\n")
	fmt.Printf("时长: %.1fs  步长: %.4fs  计分方式: %s\n", total, *dt, cfg.ScoreMode)
	fmt.Printf("最终分数: %d\n", manager.Score())
	fmt.Printf("解锁地块: %d/%d\n", manager.UnlockedPlotCount(), len(manager.Plots()))
	fmt.Printf("动作统计: 种植 %d  浇水 %d  铲除 %d  失败 %d\n",
		result.planted, result.watered, result.removed, result.failed)
}

// validateConfig 严格解析配置文件并打印摘要
func validateConfig(path string) error {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	var cfg config.GardenConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return fmt.Errorf("YAML 解析失败: %w", err)
	}
	fmt.Printf("✅ YAML 格式正确\n")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	fmt.Printf("✅ 品种数量: %d\n", len(cfg.PlantTypes))
	for _, pt := range cfg.PlantTypes {
		fmt.Printf("   - %-10s %-16s %s growth=%.2f income=%.2f maintenance=%.3f\n",
			pt.ID, pt.Name(), pt.ColorHex, pt.GrowthSpeed, pt.PointIncome, pt.MaintenanceRate)
	}
	fmt.Printf("✅ 地块数量: %d（开局解锁 %d，每个地块需要 %d 株成熟植物）\n",
		len(cfg.Plots), cfg.InitialUnlockedPlots, cfg.MaturePlantsNeededToUnlockPlot)
	for i, plot := range cfg.Plots {
		fmt.Printf("   - #%d %v unlocked=%v deadPlant=%v radius=%.2f\n",
			i, plot.Center(), plot.Unlocked || i < cfg.InitialUnlockedPlots, plot.HasDeadPlant, plot.CaptureRadius)
	}
	return nil
}

// scenarioResult 自动园丁的动作统计
type scenarioResult struct {
	planted, watered, removed, failed int
}

// runScenario 自动园丁：每帧检查每个已解锁地块，铲除枯死植物、补种、给口渴或缺水的植物浇水
func runScenario(m *game.GardenManager, total, dt, reportEvery float64) scenarioResult {
	var result scenarioResult
	species := m.Config().PlantTypes
	nextSeed := 0
	nextReport := 0.0

	for elapsed := 0.0; elapsed < total; elapsed += dt {
		for _, plot := range m.PlotViews() {
			if !plot.Unlocked {
				continue
			}
			hit := game.Hit{Point: plot.PlantPosition, Plot: plot.ID}

			switch chooseAction(m, plot) {
			case actionRemove:
				record(&result.removed, &result.failed, m.TryRemoveDeadPlant(hit))
			case actionPlant:
				ok := m.TryPlantSeed(hit, species[nextSeed%len(species)])
				if ok {
					nextSeed++
				}
				record(&result.planted, &result.failed, ok)
			case actionWater:
				// 交替使用三种浇水方式
				var ok bool
				switch result.watered % 3 {
				case 0:
					ok = m.TryWaterPlant(hit)
				case 1:
					ok = m.TryWaterPlantAtPoint(plot.PlantPosition)
				default:
					eye := plot.PlantPosition.Add(utils.V3(0, 1.5, -2))
					ok = m.TryWaterPlantLookingAt(utils.NewRay(eye, plot.PlantPosition.Sub(eye)), m.Config().Resolution.InteractRange)
				}
				record(&result.watered, &result.failed, ok)
			}
		}

		m.Tick(dt)

		if reportEvery > 0 && elapsed+dt >= nextReport {
			reportTimeline(m, elapsed+dt)
			nextReport += reportEvery
		}
	}
	return result
}

type gardenerAction int

const (
	actionNone gardenerAction = iota
	actionRemove
	actionPlant
	actionWater
)

// chooseAction 根据地块和植物的状态决定下一步动作
func chooseAction(m *game.GardenManager, plot game.PlotView) gardenerAction {
	if plot.HasDeadPlant {
		return actionRemove
	}
	plantID, ok := m.PlantAt(plot.ID)
	if !ok {
		return actionPlant
	}
	view, ok := m.PlantView(plantID)
	if !ok {
		return actionNone
	}
	switch {
	case view.Stage == types.StageNeedsWater:
		return actionWater
	case view.Stage == types.StageMature && view.Water < 0.5:
		return actionWater
	default:
		return actionNone
	}
}

func record(success, failed *int, ok bool) {
	if ok {
		*success++
	} else {
		*failed++
	}
}

// reportTimeline 打印当前时刻的花园状态
func reportTimeline(m *game.GardenManager, t float64) {
	counts := make(map[types.PlantStage]int)
	for _, plant := range m.PlantViews() {
		counts[plant.Stage]++
	}
	fmt.Printf("[%6.1fs] score=%-6d plots=%d seed=%d growing=%d thirsty=%d mature=%d dead=%d\n",
		t, m.Score(), m.UnlockedPlotCount(),
		counts[types.StageSeed], counts[types.StageGrowing], counts[types.StageNeedsWater],
		counts[types.StageMature], counts[types.StageDead])
}
