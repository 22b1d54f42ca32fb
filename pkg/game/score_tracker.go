package game

import (
	"math"

	"github.com/decker502/garden/pkg/config"
)

// ScoreTracker 累积分数
//
// 分数只增不减，只由 GardenManager 修改：
//   - 成熟植物的持续收益（RecordIncome，每株每帧一次）
//   - 离散奖励（铲除枯死植物 +10）
type ScoreTracker struct {
	score int
	mode  config.ScoreMode
	carry float64 // 小数计分模式下尚未入账的收益
}

// NewScoreTracker 创建计分器
func NewScoreTracker(mode config.ScoreMode) *ScoreTracker {
	if mode == "" {
		mode = config.ScoreModePerTick
	}
	return &ScoreTracker{mode: mode}
}

// Score 返回当前分数
func (s *ScoreTracker) Score() int {
	return s.score
}

// Mode 返回计分方式
func (s *ScoreTracker) Mode() config.ScoreMode {
	return s.mode
}

// RecordIncome 记录一株植物一帧的原始收益
//
// perTick 模式下立即按银行家舍入取整入账（0.5 舍入到偶数），总分依赖帧率；
// fractional 模式下累积小数，满 1 分才入账
func (s *ScoreTracker) RecordIncome(amount float64) {
	if !(amount > 0) {
		return
	}
	if math.IsInf(amount, 1) {
		s.add(amount)
		return
	}
	switch s.mode {
	case config.ScoreModeFractional:
		s.carry += amount
		whole := math.Floor(s.carry)
		s.carry -= whole
		s.add(whole)
	default:
		s.add(math.RoundToEven(amount))
	}
}

// AddBonus 增加离散奖励分数，非正数被忽略
func (s *ScoreTracker) AddBonus(points int) {
	if points > 0 {
		s.add(float64(points))
	}
}

// add 入账并在 math.MaxInt 处饱和，分数不会因溢出变为负数
func (s *ScoreTracker) add(points float64) {
	headroom := math.MaxInt - s.score
	if points >= float64(headroom) {
		s.score = math.MaxInt
		return
	}
	s.score += int(points)
}
