package game

// ThrowPhase 表示一次投球生命周期所处的阶段
//
// 阶段按固定顺序推进：瞄准 -> 蓄力 -> 滚动 -> 复位 -> 瞄准。
// 任何越阶转换（如蓄力直接到复位）都不允许，由 GameSession 的
// 状态守卫保证。
type ThrowPhase int

const (
	// PhaseAiming 瞄准中，准星角度随时间摆动
	PhaseAiming ThrowPhase = iota
	// PhaseCharging 蓄力中，力度随按住时长增长
	PhaseCharging
	// PhaseRolling 球已出手，等待物理世界静止
	PhaseRolling
	// PhaseResetting 正在摆放下一投，输入被忽略
	PhaseResetting
	// PhaseEnded 对局结束。当前没有任何流程会进入该阶段，
	// 保留给后续的回合计分规则使用
	PhaseEnded
)

// String 返回阶段的可读名称，用于日志和 HUD 显示
func (p ThrowPhase) String() string {
	switch p {
	case PhaseAiming:
		return "Aiming"
	case PhaseCharging:
		return "Charging"
	case PhaseRolling:
		return "Rolling"
	case PhaseResetting:
		return "Resetting"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}
