package game

// GameTimer 对局倒计时
// 到时只作为状态暴露，不会停止模拟
type GameTimer struct {
	duration  float64
	remaining float64
}

// NewGameTimer 创建倒计时
func NewGameTimer(durationSeconds float64) *GameTimer {
	return &GameTimer{
		duration:  durationSeconds,
		remaining: durationSeconds,
	}
}

// Update 扣除经过的时间，最低为 0
func (t *GameTimer) Update(dt float64) {
	t.remaining -= dt
	if t.remaining <= 0 {
		t.remaining = 0
	}
}

// Remaining 剩余秒数
func (t *GameTimer) Remaining() float64 {
	return t.remaining
}

// Duration 对局总时长
func (t *GameTimer) Duration() float64 {
	return t.duration
}

// IsTimeUp 倒计时是否结束
func (t *GameTimer) IsTimeUp() bool {
	return t.remaining <= 0
}
