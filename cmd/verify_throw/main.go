// verify_throw 无窗口验证完整投球循环
//
// 用真实的物理世界、实体工厂、会话和计分/静止系统跑若干次
// 脚本化投掷，校验阶段轮转、计分幂等和复位不变量。
// 任何一项违例都以非零退出码结束，适合在 CI 中运行。
//
// 用法：
//
//	go run ./cmd/verify_throw
//	go run ./cmd/verify_throw -throws 5 -verbose
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/entities"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/physics"
	"github.com/gonewx/bowling/pkg/systems"
)

var (
	throws  = flag.Int("throws", 3, "连续验证的投掷次数")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

const (
	frameDt = 1.0 / 60.0
	// 单次投掷的最长模拟时长（秒），超时视为静止判定失效
	throwTimeout = 30.0
)

// laneRig 组装一条可脚本驱动的球道
type laneRig struct {
	cfg     *config.BowlingConfig
	em      *ecs.EntityManager
	world   *physics.World
	session *game.GameSession

	scoring *systems.ScoringSystem
	settle  *systems.SettleSystem
}

// BuildBall 实现 game.LaneBuilder
func (r *laneRig) BuildBall() (ecs.EntityID, *physics.Body, error) {
	return entities.NewBallEntity(r.em, r.world, r.cfg)
}

// BuildRack 实现 game.LaneBuilder
func (r *laneRig) BuildRack() ([]ecs.EntityID, []*physics.Body, error) {
	return entities.NewPinRackEntities(r.em, r.world, r.cfg)
}

// BuildIndicator 实现 game.LaneBuilder
func (r *laneRig) BuildIndicator() (ecs.EntityID, error) {
	return entities.NewAimIndicatorEntity(r.em)
}

func newLaneRig() (*laneRig, error) {
	cfg := config.DefaultBowlingConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("default config invalid: %w", err)
	}

	world := physics.NewWorld(physics.WorldConfig{
		Gravity:        cfg.Physics.Gravity,
		CriticalTilt:   cfg.Physics.CriticalTilt,
		UprightRate:    cfg.Physics.UprightRate,
		ToppleRate:     cfg.Physics.ToppleRate,
		AngularDamping: cfg.Physics.AngularDamping,
	})
	r := &laneRig{
		cfg:   cfg,
		em:    ecs.NewEntityManager(),
		world: world,
	}
	if _, err := entities.NewLaneEntity(r.em, r.world, cfg); err != nil {
		return nil, fmt.Errorf("lane entity: %w", err)
	}

	r.session = game.NewGameSession(cfg, r.em, r.world, r)
	r.scoring = systems.NewScoringSystem(r.em, r.session, nil, cfg.Scoring.TiltDotThreshold)
	r.settle = systems.NewSettleSystem(r.em, r.session, r.world,
		cfg.Settle.LinearThreshold, cfg.Settle.AngularThreshold)

	if !r.session.ResetGame() {
		return nil, fmt.Errorf("initial rack setup rejected")
	}
	return r, nil
}

// step 推进一帧：计分与静止采样在前，会话时钟与物理在后
func (r *laneRig) step(dt float64) {
	r.scoring.Update()
	r.settle.Update()
	r.session.Update(dt)
	r.world.Step(dt)
	r.em.RemoveMarkedEntities()
}

// advanceTo 推进直到会话进入目标阶段，超时返回 false
func (r *laneRig) advanceTo(phase game.ThrowPhase, timeout float64) bool {
	for elapsed := 0.0; elapsed < timeout; elapsed += frameDt {
		if r.session.Phase() == phase {
			return true
		}
		r.step(frameDt)
	}
	return r.session.Phase() == phase
}

// alignAim 把会话时钟推到摆动正弦过零点，下一次按键锁定的角度即为 0
func (r *laneRig) alignAim() {
	speed := r.cfg.Throw.OscillationSpeed
	target := math.Pi / speed
	for target <= r.session.Elapsed() {
		target += math.Pi / speed
	}
	r.step(target - r.session.Elapsed())
}

// runThrow 执行一次居中满蓄投掷并校验回合闭环
func runThrow(r *laneRig, index int) error {
	s := r.session

	if !r.advanceTo(game.PhaseAiming, 2.0) {
		return fmt.Errorf("throw %d: never reached Aiming, stuck in %v", index, s.Phase())
	}
	scoreBefore := s.Score()

	r.alignAim()
	if !s.PressLaunch() {
		return fmt.Errorf("throw %d: PressLaunch rejected in %v", index, s.Phase())
	}
	if aim := s.AimAngle(); math.Abs(aim) > 1e-9 {
		return fmt.Errorf("throw %d: locked aim %.12f, want ~0", index, aim)
	}

	// 蓄满
	hold := r.cfg.Throw.MaxChargeSeconds() + 0.1
	for elapsed := 0.0; elapsed < hold; elapsed += frameDt {
		r.step(frameDt)
	}
	if ratio := s.ChargeRatio(); ratio != 1.0 {
		return fmt.Errorf("throw %d: charge ratio %.3f, want 1.0", index, ratio)
	}
	if !s.ReleaseLaunch() {
		return fmt.Errorf("throw %d: ReleaseLaunch rejected", index)
	}
	if s.Phase() != game.PhaseRolling {
		return fmt.Errorf("throw %d: phase after release %v, want Rolling", index, s.Phase())
	}

	// 滚动直到静止判定把回合带回 Aiming；途中抽查一次
	// 已倒瓶的重复记分必须被拒绝
	settleStart := s.Elapsed()
	probed := false
	for s.Phase() != game.PhaseAiming {
		if s.Elapsed()-settleStart > throwTimeout {
			return fmt.Errorf("throw %d: never settled, stuck in %v", index, s.Phase())
		}
		r.step(frameDt)
		if !probed && s.Phase() == game.PhaseRolling && s.FallenCount() > 0 {
			for i := 0; i < config.PinCount; i++ {
				if s.PinFallen(i) {
					if s.CreditPin(i) {
						return fmt.Errorf("throw %d: fallen pin %d credited twice", index, i)
					}
					probed = true
					break
				}
			}
		}
	}
	settleTime := s.Elapsed() - settleStart

	// 复位不变量：已倒集合清空、球回出手点且静止、得分单调
	if n := s.FallenCount(); n != 0 {
		return fmt.Errorf("throw %d: fallen set not cleared, %d left", index, n)
	}
	ball := s.BallBody()
	if ball == nil {
		return fmt.Errorf("throw %d: ball body missing after reset", index)
	}
	x, y, z := r.cfg.BallStartPosition()
	offset := ball.Position.Minus(physics.Vec3{X: x, Y: y, Z: z}).Magnitude()
	if offset > 1e-6 {
		return fmt.Errorf("throw %d: ball %.9f m away from start after reset", index, offset)
	}
	if !ball.Velocity.IsZero() {
		return fmt.Errorf("throw %d: ball still moving after reset: %+v", index, ball.Velocity)
	}
	if s.Score() < scoreBefore {
		return fmt.Errorf("throw %d: score dropped from %d to %d", index, scoreBefore, s.Score())
	}

	if s.Score() == scoreBefore {
		return fmt.Errorf("throw %d: head-on full-power roll toppled nothing", index)
	}

	fmt.Printf("  投掷 %d: 击倒 %d 瓶（累计 %d 分），%.1f 秒后停稳复位\n",
		index, s.Score()-scoreBefore, s.Score(), settleTime)
	return nil
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(os.Stdout)
	}

	fmt.Println("=== 投球循环验证 ===")

	r, err := newLaneRig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	for i := 1; i <= *throws; i++ {
		if err := runThrow(r, i); err != nil {
			fmt.Fprintf(os.Stderr, "验证失败: %v\n", err)
			os.Exit(1)
		}
	}

	// 整局重置后一切归零
	if !r.session.ResetGame() {
		fmt.Fprintln(os.Stderr, "验证失败: ResetGame rejected")
		os.Exit(1)
	}
	if !r.advanceTo(game.PhaseAiming, 2.0) {
		fmt.Fprintf(os.Stderr, "验证失败: full reset stuck in %v\n", r.session.Phase())
		os.Exit(1)
	}
	if got := r.session.Score(); got != 0 {
		fmt.Fprintf(os.Stderr, "验证失败: score %d after full reset, want 0\n", got)
		os.Exit(1)
	}
	if got := r.em.EntityCount(); got != 13 {
		fmt.Fprintf(os.Stderr, "验证失败: entity count %d after full reset, want 13\n", got)
		os.Exit(1)
	}

	fmt.Printf("通过: %d 次投掷全部闭环，整局重置正常\n", *throws)
}
