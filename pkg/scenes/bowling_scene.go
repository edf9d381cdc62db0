package scenes

import (
	"log"

	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/entities"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/physics"
	"github.com/gonewx/bowling/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BowlingScene 球道场景，承载完整的投球循环
//
// 场景持有物理世界、实体管理器和游戏会话，并按固定顺序驱动
// 各系统。场景自身实现 game.LaneBuilder，整局重置时会话通过
// 它重建球、瓶架和瞄准箭头。球道地面实体只在场景创建时建一
// 次，不参与重建。
type BowlingScene struct {
	sceneManager    *game.SceneManager
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager

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
}

// NewBowlingScene 创建球道场景
//
// 参数:
//   - sm: 场景管理器
//   - am: 音频管理器，可为 nil（无声模式）
//   - settings: 设置管理器，可为 nil
//   - cfg: 保龄球配置，需已通过校验
//
// 返回:
//   - *BowlingScene: 球道场景实例
func NewBowlingScene(sm *game.SceneManager, am *game.AudioManager, settings *game.SettingsManager, cfg *config.BowlingConfig) *BowlingScene {
	scene := &BowlingScene{
		sceneManager:    sm,
		audioManager:    am,
		settingsManager: settings,
		cfg:             cfg,
	}

	scene.em = ecs.NewEntityManager()
	scene.world = physics.NewWorld(physics.WorldConfig{
		Gravity:        cfg.Physics.Gravity,
		CriticalTilt:   cfg.Physics.CriticalTilt,
		UprightRate:    cfg.Physics.UprightRate,
		ToppleRate:     cfg.Physics.ToppleRate,
		AngularDamping: cfg.Physics.AngularDamping,
	})

	// 球道地面与场景同生命周期，整局重置不重建
	if _, err := entities.NewLaneEntity(scene.em, scene.world, cfg); err != nil {
		log.Printf("[BowlingScene] Failed to create lane entity: %v", err)
	}

	scene.session = game.NewGameSession(cfg, scene.em, scene.world, scene)

	scene.inputSystem = systems.NewInputSystem(scene.session, am, settings)
	scene.aimSystem = systems.NewAimSystem(scene.em, scene.session)
	scene.chargeSystem = systems.NewChargeSystem(scene.session, am)
	scene.scoringSystem = systems.NewScoringSystem(scene.em, scene.session, am, cfg.Scoring.TiltDotThreshold)
	scene.settleSystem = systems.NewSettleSystem(scene.em, scene.session, scene.world,
		cfg.Settle.LinearThreshold, cfg.Settle.AngularThreshold)
	scene.renderSystem = systems.NewRenderSystem(scene.em, scene.session, cfg)

	// 摆出第一架球瓶
	if !scene.session.ResetGame() {
		log.Printf("[BowlingScene] Initial rack setup rejected")
	}

	log.Printf("[BowlingScene] Lane ready")
	return scene
}

// BuildBall 建造保龄球实体，实现 game.LaneBuilder
func (s *BowlingScene) BuildBall() (ecs.EntityID, *physics.Body, error) {
	return entities.NewBallEntity(s.em, s.world, s.cfg)
}

// BuildRack 建造整架球瓶实体，实现 game.LaneBuilder
func (s *BowlingScene) BuildRack() ([]ecs.EntityID, []*physics.Body, error) {
	return entities.NewPinRackEntities(s.em, s.world, s.cfg)
}

// BuildIndicator 建造瞄准箭头实体，实现 game.LaneBuilder
func (s *BowlingScene) BuildIndicator() (ecs.EntityID, error) {
	return entities.NewAimIndicatorEntity(s.em)
}

// Update 按固定顺序推进一帧
//
// 顺序约定：输入先行，瞄准与蓄力反馈随后，然后基于上一帧的
// 物理状态做计分和静止采样，再推进会话时钟与物理积分，最后
// 清理被标记删除的实体。
func (s *BowlingScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[BowlingScene] Back to menu")
		s.sceneManager.LoadScene(game.SceneMenu)
		return
	}

	s.inputSystem.Update()
	s.aimSystem.Update()
	s.chargeSystem.Update()
	s.scoringSystem.Update()
	s.settleSystem.Update()

	s.session.Update(deltaTime)
	s.world.Step(deltaTime)

	s.em.RemoveMarkedEntities()
}

// Draw 绘制球道画面
func (s *BowlingScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
}

// SaveOnExit 在场景退出时保存设置，实现 game.Saveable
func (s *BowlingScene) SaveOnExit() bool {
	if s.settingsManager == nil {
		return true
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[BowlingScene] Failed to save settings on exit: %v", err)
		return false
	}
	return true
}
