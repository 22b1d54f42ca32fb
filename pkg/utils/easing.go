package utils

import "math"

// Easing Functions (缓动函数)
//
// 宿主程序用缓动函数把模拟状态（生长进度、水位）映射为显示尺寸。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，超出范围的输入先被截断。

// Clamp01 把 t 截断到 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（幼苗迅速冒头，接近成熟时变化放缓）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
