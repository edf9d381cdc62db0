// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"io"
	"log"

	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/embedded"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/scenes"
	"github.com/gonewx/bowling/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 音频采样率（Hz），合成音效以同一采样率生成
const audioSampleRate = 48000

// 设置存储的应用标识
const storageAppName = "gonewx_bowling"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Fullscreen 启动时直接进入全屏
	Fullscreen bool
	// SkipMenu 跳过主菜单，直接进入球道（用于 --play 参数）
	SkipMenu bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(audioSampleRate)

	// 打开跨平台设置存储，失败时降级为仅内存模式
	dataManager := openStorage()
	settingsManager, err := game.NewSettingsManager(dataManager)
	if err != nil {
		log.Printf("[App] Warning: settings load failed: %v", err)
	}
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized")

	// 读取保龄球调参：优先嵌入配置，缺失或非法时退回内置默认值
	bowlingConfig := loadBowlingConfig()

	// 创建场景管理器并注册场景工厂
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(sceneID string) game.Scene {
		switch sceneID {
		case game.SceneMenu:
			return scenes.NewMenuScene(sceneManager, audioManager, settingsManager)
		case game.SceneBowling:
			return scenes.NewBowlingScene(sceneManager, audioManager, settingsManager, bowlingConfig)
		default:
			log.Printf("[App] Unknown scene id: %s", sceneID)
			return nil
		}
	})

	if cfg.SkipMenu {
		log.Printf("[App] SkipMenu enabled, entering lane directly")
		sceneManager.LoadScene(game.SceneBowling)
	} else {
		sceneManager.LoadScene(game.SceneMenu)
	}

	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
	}, nil
}

// openStorage 打开 gdata 存储
// Android 上需要先确保存储目录就绪；任何失败都降级为 nil
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
		return nil
	}
	manager, err := gdata.Open(gdata.Config{AppName: storageAppName})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		return nil
	}
	return manager
}

// loadBowlingConfig 从嵌入资源读取调参
func loadBowlingConfig() *config.BowlingConfig {
	data, err := embedded.ReadFile("data/bowling.yaml")
	if err != nil {
		log.Printf("[App] Embedded bowling config missing, using defaults: %v", err)
		return config.DefaultBowlingConfig()
	}
	cfg, err := config.ParseBowlingConfig(data)
	if err != nil {
		log.Printf("[App] Invalid embedded bowling config, using defaults: %v", err)
		return config.DefaultBowlingConfig()
	}
	log.Printf("[App] Bowling config loaded from embedded data")
	return cfg
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，偏好随设置一起保存
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.rememberFullscreen(!isFullscreen)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// rememberFullscreen 把全屏偏好写回设置
func (a *App) rememberFullscreen(enabled bool) {
	if a.settingsManager == nil {
		return
	}
	a.settingsManager.SetFullscreen(enabled)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
