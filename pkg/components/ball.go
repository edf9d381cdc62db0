package components

import "github.com/gonewx/bowling/pkg/physics"

// BallComponent 保龄球组件
//
// 球体的世界位置与运动状态都由物理刚体持有，
// 组件只保留刚体句柄和渲染需要的静态参数。
// Body 可能为 nil（物理创建失败的降级状态），使用前必须判空。
type BallComponent struct {
	// Body 物理刚体句柄
	Body *physics.Body

	// Radius 渲染半径（米），与刚体碰撞半径一致
	Radius float64
}
