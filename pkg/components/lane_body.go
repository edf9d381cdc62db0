package components

import "github.com/gonewx/bowling/pkg/physics"

// LaneComponent 球道组件
// 持有球道的静态刚体（提供地面摩擦与弹性参数）和渲染尺寸
type LaneComponent struct {
	// Body 静态刚体句柄
	Body *physics.Body

	// Length 球道纵深（米）
	Length float64

	// Width 球道宽度（米）
	Width float64
}
