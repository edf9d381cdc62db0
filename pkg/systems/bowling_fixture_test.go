package systems

import (
	"testing"

	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/entities"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/physics"
)

// laneBuilder 测试用球道建造器
// 走真实的实体工厂和物理世界，并记录产出的刚体供测试直接操纵
type laneBuilder struct {
	em    *ecs.EntityManager
	world *physics.World
	cfg   *config.BowlingConfig

	ballBody  *physics.Body
	pinBodies []*physics.Body
}

func (b *laneBuilder) BuildBall() (ecs.EntityID, *physics.Body, error) {
	id, body, err := entities.NewBallEntity(b.em, b.world, b.cfg)
	b.ballBody = body
	return id, body, err
}

func (b *laneBuilder) BuildRack() ([]ecs.EntityID, []*physics.Body, error) {
	ids, bodies, err := entities.NewPinRackEntities(b.em, b.world, b.cfg)
	b.pinBodies = bodies
	return ids, bodies, err
}

func (b *laneBuilder) BuildIndicator() (ecs.EntityID, error) {
	return entities.NewAimIndicatorEntity(b.em)
}

// bowlingFixture 系统测试共用的对局环境
// 真实的物理世界、实体工厂与会话，不含渲染和输入
type bowlingFixture struct {
	cfg     *config.BowlingConfig
	em      *ecs.EntityManager
	world   *physics.World
	session *game.GameSession
	builder *laneBuilder
}

// newBowlingFixture 搭建一套已就绪（Aiming 阶段）的对局
func newBowlingFixture(t *testing.T) *bowlingFixture {
	t.Helper()

	cfg := config.DefaultBowlingConfig()
	em := ecs.NewEntityManager()
	world := physics.NewWorld(physics.WorldConfig{})
	builder := &laneBuilder{em: em, world: world, cfg: cfg}
	session := game.NewGameSession(cfg, em, world, builder)

	if !session.ResetGame() {
		t.Fatal("ResetGame failed during fixture setup")
	}
	session.Update(cfg.Settle.ResetSeconds() + 0.05)
	if session.Phase() != game.PhaseAiming {
		t.Fatalf("fixture phase: got %v, want Aiming", session.Phase())
	}

	return &bowlingFixture{cfg: cfg, em: em, world: world, session: session, builder: builder}
}

// roll 完成一次按住和松开，把会话推进到 Rolling 阶段
func (f *bowlingFixture) roll(t *testing.T, hold float64) {
	t.Helper()

	if !f.session.PressLaunch() {
		t.Fatal("PressLaunch failed")
	}
	f.session.Update(hold)
	if !f.session.ReleaseLaunch() {
		t.Fatal("ReleaseLaunch failed")
	}
	if f.session.Phase() != game.PhaseRolling {
		t.Fatalf("phase after release: got %v, want Rolling", f.session.Phase())
	}
}

// indicator 返回瞄准箭头组件，找不到或数量异常时直接失败
func (f *bowlingFixture) indicator(t *testing.T) *components.AimIndicatorComponent {
	t.Helper()

	ids := ecs.GetEntitiesWith1[*components.AimIndicatorComponent](f.em)
	if len(ids) != 1 {
		t.Fatalf("indicator entity count: got %d, want 1", len(ids))
	}
	comp, ok := ecs.GetComponent[*components.AimIndicatorComponent](f.em, ids[0])
	if !ok {
		t.Fatal("AimIndicatorComponent missing")
	}
	return comp
}

// silentAudio 返回无声模式的音频管理器，播放调用安全且恒返回 false
func silentAudio() *game.AudioManager {
	return game.NewAudioManager(nil, nil)
}
