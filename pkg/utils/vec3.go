// Package utils 提供花园模拟中常用的工具函数
//
// vec3.go 提供三维向量与射线的最小实现，用于空间目标解析：
//   - **世界坐标**：Y 轴向上，地块平铺在 XZ 平面
//   - **射线**：起点 + 单位方向，方向在构造时归一化
package utils

import "math"

// Vec3 三维世界坐标
type Vec3 struct {
	X, Y, Z float64
}

// V3 构造一个 Vec3
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 标量乘法
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized 返回单位向量，零向量原样返回
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Distance 两点之间的直线距离
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// Ray 射线（瞄准方向）
// NewRay 会归一化 Direction；直接构造的射线在 PointAt/Project 中按单位方向处理，
// 零向量表示无效射线
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay 创建射线并归一化方向
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalized()}
}

// IsValid 方向为零向量的射线无法用于瞄准
func (r Ray) IsValid() bool {
	return r.Direction.Length() > 0
}

// PointAt 返回沿射线距离 t 处的点
func (r Ray) PointAt(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Normalized().Scale(t))
}

// Project 计算点到射线的投影
//
// 返回:
//   - along: 点在射线方向上的投影长度（负值表示点在射线起点后方）
//   - perp: 点到射线所在直线的垂直距离
func (r Ray) Project(p Vec3) (along, perp float64) {
	along = p.Sub(r.Origin).Dot(r.Direction.Normalized())
	perp = Distance(p, r.PointAt(along))
	return along, perp
}
