package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/garden/pkg/components"
	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/ecs"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
)

// TestAdvancePlantSeedGrows 测试种子阶段累积生长进度
func TestAdvancePlantSeedGrows(t *testing.T) {
	pt := newTestPlantType(t, 1, 5, 0.1)
	plant := components.NewPlantComponent(pt)

	if income := AdvancePlant(plant, 1); income != 0 {
		t.Errorf("Seed should not produce income, got %v", income)
	}
	if plant.Stage != types.StageSeed {
		t.Errorf("Expected stage Seed, got %v", plant.Stage)
	}
	if plant.GrowthProgress != 0.1 {
		t.Errorf("Expected growthProgress 0.1, got %v", plant.GrowthProgress)
	}
	if plant.WaterLevel != config.FullWaterLevel {
		t.Errorf("Freshly planted seed should have full water, got %v", plant.WaterLevel)
	}
}

// TestAdvancePlantLargeStepStopsAtNeedsWater 测试大步长不会越过等待浇水直接成熟
func TestAdvancePlantLargeStepStopsAtNeedsWater(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"恰好到达50%", 5},
		{"越过50%", 7},
		{"一步越过100%", 100},
		{"超大步长", 1e6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plant := components.NewPlantComponent(newTestPlantType(t, 1, 5, 0.1))
			AdvancePlant(plant, tt.dt)

			if plant.Stage != types.StageNeedsWater {
				t.Errorf("Expected stage NeedsWater, got %v", plant.Stage)
			}
			if plant.GrowthProgress != config.NeedsWaterProgress {
				t.Errorf("Expected growthProgress exactly 0.5, got %v", plant.GrowthProgress)
			}
		})
	}
}

// TestAdvancePlantCrossesHalfExactlyOnce 测试小步长推进时只在首次越过 50% 时卡住
func TestAdvancePlantCrossesHalfExactlyOnce(t *testing.T) {
	plant := components.NewPlantComponent(newTestPlantType(t, 1.3, 5, 0.1))
	const dt = 0.016

	needsWaterTransitions := 0
	prevProgress := plant.GrowthProgress
	for i := 0; i < 10000 && plant.Stage != types.StageMature; i++ {
		before := plant.Stage
		AdvancePlant(plant, dt)

		if plant.Stage.IsGrowing() || plant.Stage == types.StageNeedsWater {
			if plant.GrowthProgress < prevProgress {
				t.Fatalf("growthProgress decreased: %v -> %v", prevProgress, plant.GrowthProgress)
			}
		}
		if plant.GrowthProgress > config.FullGrowthProgress {
			t.Fatalf("growthProgress exceeded 1: %v", plant.GrowthProgress)
		}
		prevProgress = plant.GrowthProgress

		if plant.Stage == types.StageNeedsWater && before != types.StageNeedsWater {
			needsWaterTransitions++
			if plant.GrowthProgress != config.NeedsWaterProgress {
				t.Fatalf("Expected growthProgress exactly 0.5 on transition, got %v", plant.GrowthProgress)
			}
			if !WaterPlant(plant) {
				t.Fatal("Watering a NeedsWater plant should succeed")
			}
		}
	}

	if needsWaterTransitions != 1 {
		t.Errorf("Expected exactly 1 NeedsWater transition, got %d", needsWaterTransitions)
	}
	if plant.Stage != types.StageMature {
		t.Fatalf("Expected plant to reach Mature, got %v", plant.Stage)
	}
	if plant.GrowthProgress != config.FullGrowthProgress || plant.WaterLevel != config.FullWaterLevel {
		t.Errorf("Mature plant should have growth 1 and water 1, got growth=%v water=%v",
			plant.GrowthProgress, plant.WaterLevel)
	}
}

// TestGrowthProgressInvariantRandomized 随机步长下生长进度单调不减且不超过 1
func TestGrowthProgressInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		speed := 0.1 + rng.Float64()*3
		plant := components.NewPlantComponent(newTestPlantType(t, speed, 1, 0.1))

		prev := plant.GrowthProgress
		for step := 0; step < 2000 && plant.Stage != types.StageMature; step++ {
			AdvancePlant(plant, rng.Float64()*0.5)
			if plant.Stage == types.StageNeedsWater {
				if plant.GrowthProgress != config.NeedsWaterProgress {
					t.Fatalf("trial %d: NeedsWater with growthProgress %v", trial, plant.GrowthProgress)
				}
				WaterPlant(plant)
			}
			if plant.GrowthProgress < prev || plant.GrowthProgress > 1 {
				t.Fatalf("trial %d: growthProgress invariant violated: %v -> %v", trial, prev, plant.GrowthProgress)
			}
			prev = plant.GrowthProgress
		}
	}
}

// TestNeedsWaterIsFrozen 测试等待浇水阶段不随时间变化
func TestNeedsWaterIsFrozen(t *testing.T) {
	plant := components.NewPlantComponent(newTestPlantType(t, 1, 5, 0.1))
	AdvancePlant(plant, 5)

	for i := 0; i < 100; i++ {
		if income := AdvancePlant(plant, 1); income != 0 {
			t.Fatalf("NeedsWater plant should not produce income, got %v", income)
		}
	}
	if plant.Stage != types.StageNeedsWater || plant.GrowthProgress != config.NeedsWaterProgress {
		t.Errorf("NeedsWater plant changed: stage=%v growth=%v", plant.Stage, plant.GrowthProgress)
	}
}

// TestWateredPlantGrowsToMature 测试浇水后不会再次卡住，并从 50% 长到成熟
func TestWateredPlantGrowsToMature(t *testing.T) {
	plant := components.NewPlantComponent(newTestPlantType(t, 1, 5, 0.1))
	AdvancePlant(plant, 5)

	if !WaterPlant(plant) {
		t.Fatal("Watering NeedsWater plant should succeed")
	}
	if plant.Stage != types.StageGrowing || plant.GrowthProgress != config.NeedsWaterProgress {
		t.Fatalf("Expected Growing at 0.5, got %v at %v", plant.Stage, plant.GrowthProgress)
	}

	AdvancePlant(plant, 1)
	if plant.Stage != types.StageGrowing {
		t.Errorf("Watered plant must not re-freeze at 0.5, got %v", plant.Stage)
	}

	AdvancePlant(plant, 10)
	if plant.Stage != types.StageMature {
		t.Fatalf("Expected Mature, got %v (growth=%v)", plant.Stage, plant.GrowthProgress)
	}
	if plant.GrowthProgress != 1 || plant.WaterLevel != 1 {
		t.Errorf("Expected growth=1 water=1, got growth=%v water=%v", plant.GrowthProgress, plant.WaterLevel)
	}
}

// TestMaturePlantDiesAfterOneOverRate 测试无补水时成熟植物在 1/r 秒后枯死
func TestMaturePlantDiesAfterOneOverRate(t *testing.T) {
	plant := components.NewPlantComponent(newTestPlantType(t, 1, 5, 0.25))
	plant.Stage = types.StageMature
	plant.GrowthProgress = 1

	const dt = 0.5
	elapsed := 0.0
	totalIncome := 0.0
	for plant.Stage == types.StageMature && elapsed < 100 {
		totalIncome += AdvancePlant(plant, dt)
		elapsed += dt
	}

	if plant.Stage != types.StageDead {
		t.Fatalf("Expected plant to die, got %v", plant.Stage)
	}
	if elapsed != 4 {
		t.Errorf("Expected death after 1/r = 4s, got %vs", elapsed)
	}
	if plant.WaterLevel != 0 {
		t.Errorf("Dead plant water should be clamped to 0, got %v", plant.WaterLevel)
	}
	// 枯死那一帧也计入收益：8 帧 * 2.5
	if totalIncome != 20 {
		t.Errorf("Expected total income 20, got %v", totalIncome)
	}
}

// TestDeadPlantIsFrozen 测试枯死阶段冻结
func TestDeadPlantIsFrozen(t *testing.T) {
	plant := components.NewPlantComponent(newTestPlantType(t, 1, 5, 0.1))
	plant.Stage = types.StageDead
	plant.GrowthProgress = 1
	plant.WaterLevel = 0

	if income := AdvancePlant(plant, 10); income != 0 {
		t.Errorf("Dead plant should not produce income, got %v", income)
	}
	if plant.Stage != types.StageDead {
		t.Errorf("Dead plant should stay dead, got %v", plant.Stage)
	}
}

// TestWaterPlant 测试各阶段的浇水规则
func TestWaterPlant(t *testing.T) {
	pt := newTestPlantType(t, 1, 5, 0.1)

	tests := []struct {
		name       string
		stage      types.PlantStage
		growth     float64
		water      float64
		wantOK     bool
		wantStage  types.PlantStage
		wantGrowth float64
		wantWater  float64
	}{
		{"等待浇水恢复生长", types.StageNeedsWater, 0.5, 1, true, types.StageGrowing, 0.5, 1},
		{"成熟补水", types.StageMature, 1, 0.25, true, types.StageMature, 1, 0.75},
		{"成熟补水不超过上限", types.StageMature, 1, 0.75, true, types.StageMature, 1, 1},
		{"种子不能浇水", types.StageSeed, 0.2, 1, false, types.StageSeed, 0.2, 1},
		{"生长中不能浇水", types.StageGrowing, 0.7, 1, false, types.StageGrowing, 0.7, 1},
		{"枯死不能浇水", types.StageDead, 1, 0, false, types.StageDead, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plant := &components.PlantComponent{Type: pt, Stage: tt.stage, GrowthProgress: tt.growth, WaterLevel: tt.water}
			ok := WaterPlant(plant)
			if ok != tt.wantOK {
				t.Errorf("WaterPlant() = %v, want %v", ok, tt.wantOK)
			}
			if plant.Stage != tt.wantStage || plant.GrowthProgress != tt.wantGrowth || plant.WaterLevel != tt.wantWater {
				t.Errorf("Got stage=%v growth=%v water=%v, want stage=%v growth=%v water=%v",
					plant.Stage, plant.GrowthProgress, plant.WaterLevel, tt.wantStage, tt.wantGrowth, tt.wantWater)
			}
		})
	}
}

// TestPlantGrowthSystemScenario 完整场景：5 秒等待浇水 -> 浇水 -> 5 秒成熟 -> 10 秒后枯死
func TestPlantGrowthSystemScenario(t *testing.T) {
	em := ecs.NewEntityManager()
	income := &incomeCollector{}
	system := NewPlantGrowthSystem(em, income)

	pt := newTestPlantType(t, 1, 5, 0.1)
	id := spawnTestPlant(em, pt, utils.V3(0, 0, 0), types.StageSeed)
	plant, _ := ecs.GetComponent[*components.PlantComponent](em, id)

	system.Update(5)
	if plant.Stage != types.StageNeedsWater || plant.GrowthProgress != 0.5 {
		t.Fatalf("After 5s expected NeedsWater at 0.5, got %v at %v", plant.Stage, plant.GrowthProgress)
	}

	WaterPlant(plant)
	system.Update(5)
	if plant.Stage != types.StageMature || plant.WaterLevel != 1 {
		t.Fatalf("After watering + 5s expected Mature with water 1, got %v water=%v", plant.Stage, plant.WaterLevel)
	}
	if income.calls != 0 {
		t.Errorf("No income expected before maturity, got %d calls", income.calls)
	}

	system.Update(10)
	if income.total != 50 {
		t.Errorf("Expected income 50 after 10s mature, got %v", income.total)
	}
	if plant.Stage != types.StageDead {
		t.Errorf("Expected Dead after water depleted, got %v (water=%v)", plant.Stage, plant.WaterLevel)
	}
}

// TestCountPlantsInStage 测试按阶段统计
func TestCountPlantsInStage(t *testing.T) {
	em := ecs.NewEntityManager()
	pt := newTestPlantType(t, 1, 5, 0.1)
	spawnTestPlant(em, pt, utils.V3(0, 0, 0), types.StageMature)
	spawnTestPlant(em, pt, utils.V3(3, 0, 0), types.StageMature)
	spawnTestPlant(em, pt, utils.V3(6, 0, 0), types.StageDead)

	if got := CountPlantsInStage(em, types.StageMature); got != 2 {
		t.Errorf("Expected 2 mature plants, got %d", got)
	}
	if got := CountPlantsInStage(em, types.StageSeed); got != 0 {
		t.Errorf("Expected 0 seeds, got %d", got)
	}
}
