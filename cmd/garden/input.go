package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState 当前帧的指针输入，统一处理鼠标和触摸
type pointerState struct {
	JustPressed bool // 本帧刚刚点击/触摸
	X, Y        int  // 指针位置（用于悬停显示）
}

// readPointer 读取指针输入，优先检测触摸（移动设备）
func readPointer() pointerState {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pointerState{JustPressed: true, X: x, Y: y}
	}

	// 持续按住的触摸只用于悬停
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pointerState{X: x, Y: y}
	}

	x, y := ebiten.CursorPosition()
	return pointerState{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
	}
}
