package systems

import (
	"log"

	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem 处理投球相关的用户输入
//
// 发射键（空格、鼠标左键或触摸）的按下与松开分别驱动蓄力
// 开始和出手，R 键触发整局重置，M 键切换音效开关。输入只做
// 边沿检测和转发，阶段守卫全部由会话负责。
type InputSystem struct {
	session         *game.GameSession
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager
}

// NewInputSystem 创建输入系统
//
// 参数:
//   - session: 游戏会话
//   - am: 音频管理器，可为 nil
//   - sm: 设置管理器，可为 nil（M 键静音不可用）
//
// 返回:
//   - *InputSystem: 输入系统实例
func NewInputSystem(session *game.GameSession, am *game.AudioManager, sm *game.SettingsManager) *InputSystem {
	return &InputSystem{
		session:         session,
		audioManager:    am,
		settingsManager: sm,
	}
}

// Update 检测本帧输入事件并转发给会话
func (s *InputSystem) Update() {
	utils.UpdateLastTouchPosition()

	// 发射键按下：进入蓄力
	pointerPressed, _, _ := utils.IsPointerJustPressed()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || pointerPressed {
		s.session.PressLaunch()
	}

	// 发射键松开：出手
	pointerReleased, _, _ := utils.IsPointerJustReleased()
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) || pointerReleased {
		if s.session.ReleaseLaunch() {
			s.playSound(game.SoundLaunch)
		}
	}

	// R 键：整局重置
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if s.session.ResetGame() {
			s.playSound(game.SoundRackReset)
		}
	}

	// M 键：切换音效开关
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.toggleSound()
	}
}

// toggleSound 切换音效开关并立即持久化
func (s *InputSystem) toggleSound() {
	if s.settingsManager == nil {
		return
	}

	enabled := !s.settingsManager.GetSettings().SoundEnabled
	s.settingsManager.SetSoundEnabled(enabled)
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[InputSystem] Warning: Failed to save settings: %v", err)
	}
	log.Printf("[InputSystem] Sound enabled: %v", enabled)
}

// playSound 播放音效，音频管理器缺失时忽略
func (s *InputSystem) playSound(soundID string) {
	if s.audioManager != nil {
		s.audioManager.PlaySound(soundID)
	}
}
