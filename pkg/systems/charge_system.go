package systems

import (
	"github.com/gonewx/bowling/pkg/game"
)

// ChargeSystem 监听蓄力进度并在充满时播放提示音
//
// 提示音在单次蓄力中只播放一次，离开蓄力阶段后重新武装，
// 下一次蓄满会再次提示。
type ChargeSystem struct {
	session      *game.GameSession
	audioManager *game.AudioManager

	// notified 本次蓄力是否已播放过满蓄提示
	notified bool
}

// NewChargeSystem 创建蓄力提示系统
//
// 参数:
//   - session: 游戏会话
//   - am: 音频管理器，可为 nil
//
// 返回:
//   - *ChargeSystem: 蓄力提示系统实例
func NewChargeSystem(session *game.GameSession, am *game.AudioManager) *ChargeSystem {
	return &ChargeSystem{
		session:      session,
		audioManager: am,
	}
}

// Update 检查蓄力进度
func (s *ChargeSystem) Update() {
	if s.session.Phase() != game.PhaseCharging {
		s.notified = false
		return
	}

	if s.notified || s.session.ChargeRatio() < 1.0 {
		return
	}

	s.notified = true
	if s.audioManager != nil {
		s.audioManager.PlaySound(game.SoundChargeFull)
	}
}
