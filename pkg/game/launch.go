package game

import (
	"math"

	"github.com/gonewx/bowling/pkg/physics"
)

// OscillatedAim 返回 elapsed 时刻的摆动瞄准角（弧度）
//
// 角度按正弦在 [-maxAngle, maxAngle] 间往返，elapsed 取会话
// 绝对时间而非帧间隔，保证摆动相位与帧率无关。
//
// 参数:
//   - elapsed: 会话累计时间（秒）
//   - speed: 摆动角频率（弧度/秒）
//   - maxAngle: 摆动幅度（弧度）
//
// 返回: 当前瞄准角
func OscillatedAim(elapsed, speed, maxAngle float64) float64 {
	return math.Sin(elapsed*speed) * maxAngle
}

// ChargeRatio 返回蓄力进度，范围 [0, 1]
//
// 蓄力时长达到 maxDuration 后饱和为 1，继续按住不再增力。
func ChargeRatio(held, maxDuration float64) float64 {
	if maxDuration <= 0 {
		return 1
	}
	ratio := held / maxDuration
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// LaunchPower 由蓄力进度线性插值出击球力度
func LaunchPower(minForce, maxForce, ratio float64) float64 {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return minForce + (maxForce-minForce)*ratio
}

// LaunchDirection 由瞄准角计算水平出球方向（单位向量）
//
// 瞄准角为 0 时正对球瓶（+Z），正角度向左偏（-X）。
// 方向始终水平，垂直分量为零。
func LaunchDirection(aimAngle float64) physics.Vec3 {
	return physics.Vec3{
		X: -math.Sin(aimAngle),
		Y: 0,
		Z: math.Cos(aimAngle),
	}
}

// ComputeLaunch 计算一次出手的冲量向量
//
// 参数:
//   - aimAngle: 出手时锁定的瞄准角（弧度）
//   - ratio: 蓄力进度 [0, 1]
//   - minForce, maxForce: 力度区间
//
// 返回: 冲量向量与标量力度
func ComputeLaunch(aimAngle, ratio, minForce, maxForce float64) (physics.Vec3, float64) {
	power := LaunchPower(minForce, maxForce, ratio)
	return LaunchDirection(aimAngle).Times(power), power
}
