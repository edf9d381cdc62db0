package systems

import (
	"testing"

	"github.com/gonewx/bowling/pkg/game"
)

// TestInputSystem_ToggleSound 测试 M 键音效开关的内部处理
func TestInputSystem_ToggleSound(t *testing.T) {
	f := newBowlingFixture(t)
	sm, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	is := NewInputSystem(f.session, silentAudio(), sm)

	if !sm.GetSettings().SoundEnabled {
		t.Fatal("sound should be enabled by default")
	}

	is.toggleSound()
	if sm.GetSettings().SoundEnabled {
		t.Error("first toggle should disable sound")
	}

	is.toggleSound()
	if !sm.GetSettings().SoundEnabled {
		t.Error("second toggle should re-enable sound")
	}
}

// TestInputSystem_NilManagers 测试音频和设置管理器缺失时输入系统不崩溃
func TestInputSystem_NilManagers(t *testing.T) {
	f := newBowlingFixture(t)
	is := NewInputSystem(f.session, nil, nil)

	is.toggleSound()
	is.playSound(game.SoundLaunch)

	// 无输入状态下的整帧更新也应安全通过
	is.Update()
	if f.session.Phase() != game.PhaseAiming {
		t.Errorf("phase after idle update: got %v, want Aiming", f.session.Phase())
	}
}
