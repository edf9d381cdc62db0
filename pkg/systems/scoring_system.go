package systems

import (
	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/game"
)

// ScoringSystem 检测球瓶倒伏并向会话记分
//
// 每帧扫描所有球瓶，倾斜量跌破阈值的瓶子按编号提交给会话。
// 记分的幂等性由会话的已倒集合保证，这里只负责检测；同一瓶
// 子在后续帧持续倒伏不会重复得分。只在滚动阶段工作。
type ScoringSystem struct {
	entityManager *ecs.EntityManager
	session       *game.GameSession
	audioManager  *game.AudioManager

	// tiltThreshold 判倒阈值，瓶身轴与竖直方向夹角余弦低于该值视为倒伏
	tiltThreshold float64
}

// NewScoringSystem 创建计分系统
//
// 参数:
//   - em: 实体管理器
//   - session: 游戏会话
//   - am: 音频管理器，可为 nil
//   - tiltThreshold: 判倒的倾斜余弦阈值
//
// 返回:
//   - *ScoringSystem: 计分系统实例
func NewScoringSystem(em *ecs.EntityManager, session *game.GameSession, am *game.AudioManager, tiltThreshold float64) *ScoringSystem {
	return &ScoringSystem{
		entityManager: em,
		session:       session,
		audioManager:  am,
		tiltThreshold: tiltThreshold,
	}
}

// Update 扫描球瓶姿态并提交新倒伏的瓶子
func (s *ScoringSystem) Update() {
	if s.session.Phase() != game.PhaseRolling {
		return
	}

	for _, id := range ecs.GetEntitiesWith1[*components.PinComponent](s.entityManager) {
		pin, ok := ecs.GetComponent[*components.PinComponent](s.entityManager, id)
		if !ok || pin.Body == nil {
			continue
		}
		if s.session.PinFallen(pin.Index) {
			continue
		}
		if pin.Body.TiltDot() >= s.tiltThreshold {
			continue
		}
		if s.session.CreditPin(pin.Index) && s.audioManager != nil {
			s.audioManager.PlaySound(game.SoundPinFall)
		}
	}
}
