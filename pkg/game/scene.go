package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the game (menu, lane). The scene manager
// drives the current scene once per tick.
type Scene interface {
	// Update advances scene logic.
	// deltaTime is the elapsed time since the last tick in seconds.
	Update(deltaTime float64)

	// Draw renders the scene onto the target image.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在退出前持久化状态
//
// 窗口关闭或程序被系统终止时，入口会对当前场景调用一次
// SaveOnExit。
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存，
	// false 表示保存失败，程序仍会正常退出
	SaveOnExit() bool
}
