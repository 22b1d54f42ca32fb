package game

import (
	"image/color"
	"testing"

	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/types"
)

// newTestGardenConfig 创建测试用的花园配置
// 一个品种（生长速度 1，收益 5，耗水 0.1），地块沿 x 轴间隔 10 排列，互不重叠
func newTestGardenConfig(t *testing.T, plots int) *config.GardenConfig {
	t.Helper()
	pt, err := config.NewPlantType("yellow", color.RGBA{R: 255, G: 235, B: 4, A: 255}, 1, 5, 0.1)
	if err != nil {
		t.Fatalf("Failed to create plant type: %v", err)
	}

	cfg := &config.GardenConfig{
		PlantTypes: []*config.PlantTypeConfig{pt},
	}
	for i := 0; i < plots; i++ {
		cfg.Plots = append(cfg.Plots, config.PlotConfig{Position: []float64{float64(i) * 10, 0, 0}})
	}
	return cfg
}

// newTestGarden 用测试配置创建模拟器
func newTestGarden(t *testing.T, cfg *config.GardenConfig, opts ...Option) *GardenManager {
	t.Helper()
	m, err := NewGardenManager(cfg, opts...)
	if err != nil {
		t.Fatalf("NewGardenManager failed: %v", err)
	}
	return m
}

// plantOnPlot 在指定索引的地块上种植第一个品种，返回新植物ID
func plantOnPlot(t *testing.T, m *GardenManager, index int) ecs.EntityID {
	t.Helper()
	plotID := m.Plots()[index]
	if !m.TryPlantSeed(Hit{Plot: plotID}, m.Config().PlantTypes[0]) {
		t.Fatalf("Failed to plant on plot %d", index)
	}
	plantID, ok := m.PlantAt(plotID)
	if !ok {
		t.Fatalf("Planted plant not found on plot %d", index)
	}
	return plantID
}

// growToMature 把植物推进到成熟：5 秒到等待浇水，浇水，再 5 秒成熟
func growToMature(t *testing.T, m *GardenManager, plotIndex int) {
	t.Helper()
	m.Tick(5)
	if !m.TryWaterPlant(Hit{Plot: m.Plots()[plotIndex]}) {
		t.Fatalf("Failed to water plant on plot %d", plotIndex)
	}
	m.Tick(5)
}

// mustPlantView 查询植物状态，不存在时终止测试
func mustPlantView(t *testing.T, m *GardenManager, id ecs.EntityID) PlantView {
	t.Helper()
	view, ok := m.PlantView(id)
	if !ok {
		t.Fatalf("Plant %d not found", id)
	}
	return view
}

// assertStage 断言植物阶段
func assertStage(t *testing.T, view PlantView, want types.PlantStage) {
	t.Helper()
	if view.Stage != want {
		t.Errorf("Expected stage %v, got %v", want, view.Stage)
	}
}
