package systems

import (
	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/game"
)

// AimSystem 将会话的瞄准状态同步到指示箭头组件
//
// 箭头在瞄准和蓄力阶段可见：瞄准时角度跟随摆动，蓄力时角度
// 冻结在按键瞬间的值，长度和颜色随蓄力比例变化。滚动和复位
// 阶段箭头隐藏。
type AimSystem struct {
	entityManager *ecs.EntityManager
	session       *game.GameSession
}

// NewAimSystem 创建瞄准指示系统
//
// 参数:
//   - em: 实体管理器
//   - session: 游戏会话
//
// 返回:
//   - *AimSystem: 瞄准指示系统实例
func NewAimSystem(em *ecs.EntityManager, session *game.GameSession) *AimSystem {
	return &AimSystem{
		entityManager: em,
		session:       session,
	}
}

// Update 刷新所有指示箭头的姿态
func (s *AimSystem) Update() {
	phase := s.session.Phase()
	visible := phase == game.PhaseAiming || phase == game.PhaseCharging

	for _, id := range ecs.GetEntitiesWith1[*components.AimIndicatorComponent](s.entityManager) {
		indicator, ok := ecs.GetComponent[*components.AimIndicatorComponent](s.entityManager, id)
		if !ok {
			continue
		}
		indicator.Visible = visible
		indicator.Angle = s.session.AimAngle()
		indicator.Ratio = s.session.ChargeRatio()
	}
}
