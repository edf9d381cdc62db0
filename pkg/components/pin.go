package components

import "github.com/gonewx/bowling/pkg/physics"

// PinComponent 球瓶组件
//
// Index 是瓶位编号 0~9，按固定顺序摆放：0 号为最前的主瓶，
// 后续按行展开。整架重建时瓶位顺序不变，计分集合以此编号为键。
type PinComponent struct {
	// Index 瓶位编号（0~9），整个会话期间稳定
	Index int

	// Body 物理刚体句柄，可能为 nil（降级状态）
	Body *physics.Body

	// HalfHeight 质心高度（米），渲染瓶身长度用
	HalfHeight float64
}
