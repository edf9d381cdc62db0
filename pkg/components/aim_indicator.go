package components

// AimIndicatorComponent 瞄准指示箭头组件
//
// 箭头从球的出手点指向当前瞄准方向。
// 长度和颜色随蓄力进度变化：未蓄力时为最短的绿色，
// 满蓄力时为最长的红色。Rolling 阶段隐藏。
type AimIndicatorComponent struct {
	// Angle 当前指向角（弧度），0 为正对球道纵深
	Angle float64

	// Ratio 蓄力进度 0~1，驱动长度与颜色渐变
	Ratio float64

	// Visible 是否渲染
	Visible bool
}
