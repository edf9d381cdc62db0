package systems

import (
	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/game"
)

// SettleSystem 监测球是否停稳并驱动会话的静止判定
//
// 每帧把球的线速度和角速度与阈值比较，结果持续上报给会话。
// 会话侧的宽限计时把短暂的速度低谷过滤掉，这里只做采样。
// 速度比较使用平方量，避免每帧开方。
type SettleSystem struct {
	entityManager *ecs.EntityManager
	session       *game.GameSession
	world         game.PhysicsWorld

	// linearThresholdSq 线速度判静阈值的平方
	linearThresholdSq float64

	// angularThresholdSq 角速度判静阈值的平方
	angularThresholdSq float64
}

// NewSettleSystem 创建静止判定系统
//
// 参数:
//   - em: 实体管理器
//   - session: 游戏会话
//   - world: 物理世界访问接口
//   - linearThreshold: 线速度判静阈值（米/秒）
//   - angularThreshold: 角速度判静阈值（弧度/秒）
//
// 返回:
//   - *SettleSystem: 静止判定系统实例
func NewSettleSystem(em *ecs.EntityManager, session *game.GameSession, world game.PhysicsWorld, linearThreshold, angularThreshold float64) *SettleSystem {
	return &SettleSystem{
		entityManager:      em,
		session:            session,
		world:              world,
		linearThresholdSq:  linearThreshold * linearThreshold,
		angularThresholdSq: angularThreshold * angularThreshold,
	}
}

// Update 采样球的速度并上报静止状态
func (s *SettleSystem) Update() {
	if s.session.Phase() != game.PhaseRolling {
		return
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BallComponent](s.entityManager) {
		ball, ok := ecs.GetComponent[*components.BallComponent](s.entityManager, id)
		if !ok {
			continue
		}

		// 刚体缺失时接口返回零速度，视为已静止，
		// 保证降级状态下回合仍能正常轮转
		lin := s.world.LinearVelocity(ball.Body)
		ang := s.world.AngularVelocity(ball.Body)
		stopped := lin.MagnitudeSquared() <= s.linearThresholdSq &&
			ang.MagnitudeSquared() <= s.angularThresholdSq
		s.session.ReportBallStopped(stopped)
	}
}
