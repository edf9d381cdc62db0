package scenes

import (
	"math"
	"testing"

	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/game"
)

// newTestBowlingScene 创建无声模式的球道场景
func newTestBowlingScene(t *testing.T) *BowlingScene {
	t.Helper()
	sm := game.NewSceneManager()
	scene := NewBowlingScene(sm, nil, nil, config.DefaultBowlingConfig())
	if scene == nil {
		t.Fatal("NewBowlingScene returned nil")
	}
	return scene
}

// advanceScene 以 60Hz 固定步长推进场景
func advanceScene(scene *BowlingScene, seconds float64) {
	const dt = 1.0 / 60.0
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		scene.Update(dt)
	}
}

// TestNewBowlingScene 测试场景创建后的初始状态
func TestNewBowlingScene(t *testing.T) {
	scene := newTestBowlingScene(t)

	// 球道 + 球 + 十只瓶 + 瞄准箭头
	if got := scene.em.EntityCount(); got != 13 {
		t.Errorf("entity count: got %d, want 13", got)
	}

	// 创建时的整局重置让会话停在 Resetting，等待过渡延迟
	if got := scene.session.Phase(); got != game.PhaseResetting {
		t.Errorf("initial phase: got %v, want Resetting", got)
	}

	advanceScene(scene, 0.5)
	if got := scene.session.Phase(); got != game.PhaseAiming {
		t.Errorf("phase after reset delay: got %v, want Aiming", got)
	}
}

// TestBowlingScene_ThrowCycleIntegration 全链路投球：
// 真实物理、真实计分、真实静止判定，从出手滚到自动复位
func TestBowlingScene_ThrowCycleIntegration(t *testing.T) {
	scene := newTestBowlingScene(t)
	session := scene.session
	advanceScene(scene, 0.5)
	if session.Phase() != game.PhaseAiming {
		t.Fatalf("phase: got %v, want Aiming", session.Phase())
	}

	// 把会话时钟推到摆动正弦的过零点，锁定的瞄准角即为 0，球直线冲向主瓶
	speed := scene.cfg.Throw.OscillationSpeed
	target := math.Pi / speed
	for target <= session.Elapsed() {
		target += math.Pi / speed
	}
	scene.Update(target - session.Elapsed())

	if !session.PressLaunch() {
		t.Fatal("PressLaunch failed")
	}
	if got := session.AimAngle(); math.Abs(got) > 1e-9 {
		t.Fatalf("locked aim angle: got %.12f, want ~0", got)
	}

	// 蓄满力出手
	advanceScene(scene, scene.cfg.Throw.MaxChargeSeconds()+0.1)
	if !session.ReleaseLaunch() {
		t.Fatal("ReleaseLaunch failed")
	}
	if session.Phase() != game.PhaseRolling {
		t.Fatalf("phase after release: got %v, want Rolling", session.Phase())
	}

	// 最多模拟 30 秒：球撞瓶、减速、停稳、宽限、复位
	const dt = 1.0 / 60.0
	for elapsed := 0.0; elapsed < 30.0; elapsed += dt {
		scene.Update(dt)
		if session.Phase() == game.PhaseAiming {
			break
		}
	}
	if session.Phase() != game.PhaseAiming {
		t.Fatalf("throw never settled, stuck in %v", session.Phase())
	}

	// 满力直线球必然击倒球瓶
	if session.Score() < 1 {
		t.Errorf("score after head-on full-power roll: got %d, want >= 1", session.Score())
	}

	// 复位后：已倒集合清空、得分保留、球回到出手点
	if got := session.FallenCount(); got != 0 {
		t.Errorf("fallen count after reset: got %d, want 0", got)
	}
	ball := session.BallBody()
	if ball == nil {
		t.Fatal("ball body missing after reset")
	}
	x, y, z := scene.cfg.BallStartPosition()
	if math.Abs(ball.Position.X-x) > 1e-9 ||
		math.Abs(ball.Position.Y-y) > 1e-9 ||
		math.Abs(ball.Position.Z-z) > 1e-9 {
		t.Errorf("ball position after reset: got %+v, want (%.3f, %.3f, %.3f)", ball.Position, x, y, z)
	}
	if !ball.Velocity.IsZero() {
		t.Errorf("ball velocity after reset: got %+v, want zero", ball.Velocity)
	}
}

// TestBowlingScene_FullResetRestoresRack 测试整局重置重建瓶架并清零得分
func TestBowlingScene_FullResetRestoresRack(t *testing.T) {
	scene := newTestBowlingScene(t)
	session := scene.session
	advanceScene(scene, 0.5)

	// 手动记一分后整局重置
	session.PressLaunch()
	advanceScene(scene, 0.3)
	session.ReleaseLaunch()
	if !session.CreditPin(0) {
		t.Fatal("CreditPin failed while rolling")
	}
	if session.Score() != 1 {
		t.Fatalf("score: got %d, want 1", session.Score())
	}

	if !session.ResetGame() {
		t.Fatal("ResetGame failed")
	}
	advanceScene(scene, 0.5)

	if got := session.Phase(); got != game.PhaseAiming {
		t.Errorf("phase after full reset: got %v, want Aiming", got)
	}
	if got := session.Score(); got != 0 {
		t.Errorf("score after full reset: got %d, want 0", got)
	}
	if got := scene.em.EntityCount(); got != 13 {
		t.Errorf("entity count after full reset: got %d, want 13", got)
	}
}

// TestBowlingScene_SaveOnExit 测试退出保存对缺失设置管理器的容错
func TestBowlingScene_SaveOnExit(t *testing.T) {
	scene := newTestBowlingScene(t)
	if !scene.SaveOnExit() {
		t.Error("SaveOnExit without settings manager should report success")
	}

	sm, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	scene.settingsManager = sm
	if !scene.SaveOnExit() {
		t.Error("SaveOnExit with nil-backed settings manager should report success")
	}
}
