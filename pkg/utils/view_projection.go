package utils

import "math"

// ViewProjection 俯视投影：世界 XZ 平面 <-> 屏幕坐标
//
// 宿主程序用它把地块和植物画到屏幕上，并把鼠标/光标位置还原为世界坐标。
// 世界 X 向右，世界 Z 向下（屏幕 Y），高度 Y 被忽略。
type ViewProjection struct {
	OriginX, OriginY float64 // 世界原点在屏幕上的位置
	ScaleX, ScaleZ   float64 // 每个世界单位对应的屏幕单位（像素或终端格）
}

// FitProjection 创建投影，使世界矩形 [minX,maxX]x[minZ,maxZ] 居中于 width x height 的屏幕区域
func FitProjection(minX, maxX, minZ, maxZ, width, height, scaleX, scaleZ float64) ViewProjection {
	return ViewProjection{
		OriginX: width/2 - (minX+maxX)/2*scaleX,
		OriginY: height/2 - (minZ+maxZ)/2*scaleZ,
		ScaleX:  scaleX,
		ScaleZ:  scaleZ,
	}
}

// WorldToScreen 将世界坐标转换为屏幕坐标
func (p ViewProjection) WorldToScreen(w Vec3) (x, y float64) {
	return p.OriginX + w.X*p.ScaleX, p.OriginY + w.Z*p.ScaleZ
}

// WorldToCell 将世界坐标转换为整数格坐标（四舍五入）
func (p ViewProjection) WorldToCell(w Vec3) (col, row int) {
	x, y := p.WorldToScreen(w)
	return int(math.Round(x)), int(math.Round(y))
}

// ScreenToWorld 将屏幕坐标还原为地面（Y=0）上的世界坐标
func (p ViewProjection) ScreenToWorld(x, y int) Vec3 {
	return V3((float64(x)-p.OriginX)/p.ScaleX, 0, (float64(y)-p.OriginY)/p.ScaleZ)
}
