// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 最近一次触摸位置。触摸释放事件本身不带坐标，释放时回读
var lastTouchX, lastTouchY int

// UpdateLastTouchPosition 记录当前触摸位置，应每帧调用一次
func UpdateLastTouchPosition() {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(ids[0])
	}
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(ids[0])
		return true, lastTouchX, lastTouchY
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// IsPointerJustReleased 检查是否刚刚释放指针（触摸或鼠标）
// 触摸释放时返回最近记录的触摸位置
func IsPointerJustReleased() (bool, int, int) {
	if ids := inpututil.AppendJustReleasedTouchIDs(nil); len(ids) > 0 {
		return true, lastTouchX, lastTouchY
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}
