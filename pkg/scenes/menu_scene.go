package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 菜单配色
var (
	menuBackgroundColor = color.RGBA{R: 14, G: 14, B: 22, A: 255}
	menuLaneColor       = color.RGBA{R: 150, G: 112, B: 74, A: 255}
	menuPinColor        = color.RGBA{R: 236, G: 234, B: 224, A: 255}
	menuPinStripeColor  = color.RGBA{R: 204, G: 56, B: 56, A: 255}
	menuBallColor       = color.RGBA{R: 64, G: 96, B: 204, A: 255}
)

// MenuScene represents the main menu screen of the game.
// It displays when the game starts and lets the player enter the lane
// or toggle sound before playing.
type MenuScene struct {
	sceneManager    *game.SceneManager
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager

	elapsed float64
}

// NewMenuScene creates and returns a new MenuScene instance.
//
// Parameters:
//   - sm: The SceneManager instance used to switch between scenes.
//   - am: The AudioManager instance, may be nil in silent mode.
//   - settings: The SettingsManager instance, may be nil.
//
// Returns:
//   - A pointer to the newly created MenuScene.
func NewMenuScene(sm *game.SceneManager, am *game.AudioManager, settings *game.SettingsManager) *MenuScene {
	return &MenuScene{
		sceneManager:    sm,
		audioManager:    am,
		settingsManager: settings,
	}
}

// Update 处理菜单输入
//
// 空格、回车、鼠标左键或触摸进入球道，M 切换音效开关，
// 减号与等号键调整音量。
func (m *MenuScene) Update(deltaTime float64) {
	m.elapsed += deltaTime

	pointerPressed, _, _ := utils.IsPointerJustPressed()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		pointerPressed {
		if m.audioManager != nil {
			m.audioManager.PlaySound(game.SoundRackReset)
		}
		log.Printf("[MenuScene] Entering lane")
		m.sceneManager.LoadScene(game.SceneBowling)
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) && m.settingsManager != nil {
		enabled := !m.settingsManager.GetSettings().SoundEnabled
		m.settingsManager.SetSoundEnabled(enabled)
		if err := m.settingsManager.Save(); err != nil {
			log.Printf("[MenuScene] Warning: Failed to save settings: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		m.adjustVolume(-0.1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		m.adjustVolume(0.1)
	}
}

// adjustVolume 按步长调整音效音量并立即持久化
// 调整后播放一声提示音，让玩家直接听到新音量
func (m *MenuScene) adjustVolume(delta float64) {
	if m.settingsManager == nil {
		return
	}

	volume := m.settingsManager.GetSettings().SoundVolume + delta
	if m.audioManager != nil {
		m.audioManager.SetSoundVolume(volume)
	} else {
		m.settingsManager.SetSoundVolume(volume)
	}
	if err := m.settingsManager.Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save settings: %v", err)
	}
	if m.audioManager != nil {
		m.audioManager.PlaySound(game.SoundPinFall)
	}
}

// Draw 绘制菜单：装饰性瓶架、标题与操作提示
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackgroundColor)

	m.drawDecoration(screen)

	cx := config.GameWindowWidth / 2
	ebitenutil.DebugPrintAt(screen, "G O N E W X   B O W L I N G", cx-84, 150)
	ebitenutil.DebugPrintAt(screen, "one lane, ten pins, one ball", cx-84, 170)

	prompt := "PRESS SPACE OR CLICK TO PLAY"
	hint := "in game: hold SPACE to charge, release to roll, R for a new rack"
	if utils.IsMobile() {
		prompt = "TAP TO PLAY"
		hint = "in game: touch and hold to charge, release to roll"
	}

	// 开始提示按正弦节奏闪烁
	if math.Sin(m.elapsed*4) > -0.3 {
		ebitenutil.DebugPrintAt(screen, prompt, cx-len(prompt)*3, 300)
	}

	soundState := "ON"
	volume := 0.8
	if m.settingsManager != nil {
		settings := m.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			soundState = "OFF"
		}
		volume = settings.SoundVolume
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("M sound: %s   -/= volume: %.0f%%", soundState, volume*100), cx-84, 330)
	ebitenutil.DebugPrintAt(screen, hint, cx-len(hint)*3, config.GameWindowHeight-40)
}

// drawDecoration 用矢量图元拼一组瓶架和球的装饰画
func (m *MenuScene) drawDecoration(screen *ebiten.Image) {
	cx := float32(config.GameWindowWidth / 2)

	// 简化的球道梯形，逐行插值填充
	const laneTop, laneBottom = 60.0, 130.0
	const laneTopHalf, laneBottomHalf = 60.0, 110.0
	for y := laneTop; y <= laneBottom; y++ {
		t := (y - laneTop) / (laneBottom - laneTop)
		half := float32(laneTopHalf + (laneBottomHalf-laneTopHalf)*t)
		vector.DrawFilledRect(screen, cx-half, float32(y), half*2, 1, menuLaneColor, false)
	}

	// 四行十瓶的倒三角，靠上居中
	pinRows := [][]float32{
		{-45, -15, 15, 45},
		{-30, 0, 30},
		{-15, 15},
		{0},
	}
	y := float32(68)
	for _, row := range pinRows {
		for _, dx := range row {
			vector.DrawFilledCircle(screen, cx+dx, y, 7, menuPinColor, true)
			vector.DrawFilledCircle(screen, cx+dx, y-3, 2.5, menuPinStripeColor, true)
		}
		y += 16
	}

	// 球在瓶架正前方
	vector.DrawFilledCircle(screen, cx, 126, 10, menuBallColor, true)
}
