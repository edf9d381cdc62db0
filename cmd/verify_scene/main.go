// verify_scene 带窗口的整条球道冒烟验证
//
// 组装与正式场景相同的实体、物理与系统管线，默认由自动投手
// 连续投球，方便肉眼检查瞄准摆动、蓄力条、球瓶渲染与复位。
// 通过 -frames 可以在固定帧数后自动退出，供脚本化冒烟使用。
//
// 用法：
//
//	go run ./cmd/verify_scene
//	go run ./cmd/verify_scene -frames 1800
//	go run ./cmd/verify_scene -autoplay=false
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/entities"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/physics"
	"github.com/gonewx/bowling/pkg/systems"
)

var (
	frames   = flag.Int("frames", 0, "运行的帧数上限，0 表示手动退出")
	autoplay = flag.Bool("autoplay", true, "启动时开启自动投手")
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
)

// shotPlan 自动投手的一次出手脚本
type shotPlan struct {
	aimDelay  float64 // 进入瞄准后等待的秒数，决定锁定角度
	holdRatio float64 // 蓄力时长占满蓄的比例
}

// 循环使用的出手脚本，覆盖不同角度与力度
var shotPlans = []shotPlan{
	{aimDelay: 0.35, holdRatio: 1.0},
	{aimDelay: 0.80, holdRatio: 0.6},
	{aimDelay: 1.25, holdRatio: 0.85},
}

// VerifySceneGame 驱动一条完整球道的验证窗口
type VerifySceneGame struct {
	cfg     *config.BowlingConfig
	em      *ecs.EntityManager
	world   *physics.World
	session *game.GameSession

	inputSystem   *systems.InputSystem
	aimSystem     *systems.AimSystem
	chargeSystem  *systems.ChargeSystem
	scoringSystem *systems.ScoringSystem
	settleSystem  *systems.SettleSystem
	renderSystem  *systems.RenderSystem

	autoplay   bool
	planIndex  int
	phaseTimer float64
	throwCount int
	frameCount int
}

// BuildBall 实现 game.LaneBuilder
func (vg *VerifySceneGame) BuildBall() (ecs.EntityID, *physics.Body, error) {
	return entities.NewBallEntity(vg.em, vg.world, vg.cfg)
}

// BuildRack 实现 game.LaneBuilder
func (vg *VerifySceneGame) BuildRack() ([]ecs.EntityID, []*physics.Body, error) {
	return entities.NewPinRackEntities(vg.em, vg.world, vg.cfg)
}

// BuildIndicator 实现 game.LaneBuilder
func (vg *VerifySceneGame) BuildIndicator() (ecs.EntityID, error) {
	return entities.NewAimIndicatorEntity(vg.em)
}

func NewVerifySceneGame() (*VerifySceneGame, error) {
	cfg := config.DefaultBowlingConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("default config invalid: %w", err)
	}

	vg := &VerifySceneGame{
		cfg:      cfg,
		em:       ecs.NewEntityManager(),
		autoplay: *autoplay,
	}
	vg.world = physics.NewWorld(physics.WorldConfig{
		Gravity:        cfg.Physics.Gravity,
		CriticalTilt:   cfg.Physics.CriticalTilt,
		UprightRate:    cfg.Physics.UprightRate,
		ToppleRate:     cfg.Physics.ToppleRate,
		AngularDamping: cfg.Physics.AngularDamping,
	})

	if _, err := entities.NewLaneEntity(vg.em, vg.world, cfg); err != nil {
		return nil, fmt.Errorf("lane entity: %w", err)
	}

	vg.session = game.NewGameSession(cfg, vg.em, vg.world, vg)
	vg.inputSystem = systems.NewInputSystem(vg.session, nil, nil)
	vg.aimSystem = systems.NewAimSystem(vg.em, vg.session)
	vg.chargeSystem = systems.NewChargeSystem(vg.session, nil)
	vg.scoringSystem = systems.NewScoringSystem(vg.em, vg.session, nil, cfg.Scoring.TiltDotThreshold)
	vg.settleSystem = systems.NewSettleSystem(vg.em, vg.session, vg.world,
		cfg.Settle.LinearThreshold, cfg.Settle.AngularThreshold)
	vg.renderSystem = systems.NewRenderSystem(vg.em, vg.session, cfg)

	if !vg.session.ResetGame() {
		return nil, fmt.Errorf("initial rack setup rejected")
	}

	log.Println("╔════════════════════════════════════════════╗")
	log.Println("║           球道场景冒烟验证程序             ║")
	log.Println("╚════════════════════════════════════════════╝")
	log.Println()
	log.Println("【功能说明】")
	log.Println("  - 校验瞄准摆动、蓄力条与出手方向")
	log.Println("  - 校验球瓶碰撞、倒瓶变色与计分")
	log.Println("  - 校验静止判定与整架复位")
	log.Println()
	log.Println("【快捷键】")
	log.Println("  A         - 开启/关闭自动投手")
	log.Println("  空格/鼠标 - 手动蓄力与出手（自动投手关闭时）")
	log.Println("  R         - 整局重置")
	log.Println("  Q         - 退出程序")
	log.Println("════════════════════════════════════════════")

	return vg, nil
}

// updateAutoplay 按脚本推进自动投手
func (vg *VerifySceneGame) updateAutoplay(dt float64) {
	plan := shotPlans[vg.planIndex%len(shotPlans)]

	switch vg.session.Phase() {
	case game.PhaseAiming:
		vg.phaseTimer += dt
		if vg.phaseTimer >= plan.aimDelay {
			if vg.session.PressLaunch() {
				vg.phaseTimer = 0
			}
		}
	case game.PhaseCharging:
		vg.phaseTimer += dt
		if vg.phaseTimer >= plan.holdRatio*vg.cfg.Throw.MaxChargeSeconds() {
			if vg.session.ReleaseLaunch() {
				vg.phaseTimer = 0
				vg.planIndex++
				vg.throwCount++
				log.Printf("[VerifyScene] 自动投掷 #%d: 角度 %.2f rad, 力度 %.0f%%",
					vg.throwCount, vg.session.AimAngle(), plan.holdRatio*100)
			}
		}
	default:
		vg.phaseTimer = 0
	}
}

func (vg *VerifySceneGame) Update() error {
	dt := 1.0 / 60.0

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		log.Println("[VerifyScene] Exiting...")
		return fmt.Errorf("quit")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		vg.autoplay = !vg.autoplay
		if vg.autoplay {
			log.Println("[VerifyScene] Autoplay ENABLED")
		} else {
			log.Println("[VerifyScene] Autoplay DISABLED")
		}
	}

	if vg.autoplay {
		// 自动投手接管出手，R 重置仍然可用
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if vg.session.ResetGame() {
				log.Println("[VerifyScene] Full reset")
			}
		}
		vg.updateAutoplay(dt)
	} else {
		vg.inputSystem.Update()
	}

	vg.aimSystem.Update()
	vg.chargeSystem.Update()
	vg.scoringSystem.Update()
	vg.settleSystem.Update()
	vg.session.Update(dt)
	vg.world.Step(dt)
	vg.em.RemoveMarkedEntities()

	vg.frameCount++
	if *frames > 0 && vg.frameCount >= *frames {
		log.Printf("[VerifyScene] %d 帧运行完毕, 共 %d 次投掷, 得分 %d",
			vg.frameCount, vg.throwCount, vg.session.Score())
		return fmt.Errorf("quit")
	}
	return nil
}

func (vg *VerifySceneGame) Draw(screen *ebiten.Image) {
	vg.renderSystem.Draw(screen)

	mode := "AUTO"
	if !vg.autoplay {
		mode = "MANUAL"
	}
	status := fmt.Sprintf("%s  THROWS %d", mode, vg.throwCount)
	ebitenutil.DebugPrintAt(screen, status, config.GameWindowWidth-160, 16)
}

func (vg *VerifySceneGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(os.Stdout)
	}

	verifyGame, err := NewVerifySceneGame()
	if err != nil {
		log.Fatalf("Failed to create verify game: %v", err)
	}

	ebiten.SetWindowTitle("球道场景冒烟验证")
	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)

	if err := ebiten.RunGame(verifyGame); err != nil {
		if err.Error() != "quit" {
			log.Fatal(err)
		}
	}
}
