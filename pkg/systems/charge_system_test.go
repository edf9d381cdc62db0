package systems

import (
	"testing"
)

// TestChargeSystem_NotifiesOnceAtFullCharge 测试满蓄提示只触发一次
func TestChargeSystem_NotifiesOnceAtFullCharge(t *testing.T) {
	f := newBowlingFixture(t)
	cs := NewChargeSystem(f.session, silentAudio())

	// 瞄准阶段不触发
	cs.Update()
	if cs.notified {
		t.Error("should not notify while aiming")
	}

	// 蓄力未满不触发
	f.session.PressLaunch()
	f.session.Update(f.cfg.Throw.MaxChargeSeconds() / 2)
	cs.Update()
	if cs.notified {
		t.Error("should not notify at half charge")
	}

	// 蓄满后触发并保持已触发状态
	f.session.Update(f.cfg.Throw.MaxChargeSeconds())
	cs.Update()
	if !cs.notified {
		t.Error("should notify at full charge")
	}
	cs.Update()
	if !cs.notified {
		t.Error("notification state should persist within one charge")
	}
}

// TestChargeSystem_RearmsAfterRelease 测试出手后提示重新武装
func TestChargeSystem_RearmsAfterRelease(t *testing.T) {
	f := newBowlingFixture(t)
	cs := NewChargeSystem(f.session, silentAudio())

	// 第一次蓄满
	f.session.PressLaunch()
	f.session.Update(f.cfg.Throw.MaxChargeSeconds() + 0.1)
	cs.Update()
	if !cs.notified {
		t.Fatal("should notify at full charge")
	}

	// 出手后离开蓄力阶段，提示解除
	f.session.ReleaseLaunch()
	cs.Update()
	if cs.notified {
		t.Error("notification should rearm after leaving charging phase")
	}
}

// TestChargeSystem_NilAudioManager 测试音频管理器缺失时不崩溃
func TestChargeSystem_NilAudioManager(t *testing.T) {
	f := newBowlingFixture(t)
	cs := NewChargeSystem(f.session, nil)

	f.session.PressLaunch()
	f.session.Update(f.cfg.Throw.MaxChargeSeconds() + 0.1)
	cs.Update()
	if !cs.notified {
		t.Error("notification should fire even without audio")
	}
}
