package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultBowlingConfigValid 测试内置默认配置通过自身校验
func TestDefaultBowlingConfigValid(t *testing.T) {
	cfg := DefaultBowlingConfig()
	if cfg == nil {
		t.Fatal("DefaultBowlingConfig() returned nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Throw.MaxForce != 150.0 {
		t.Errorf("MaxForce: got %v, want 150", cfg.Throw.MaxForce)
	}
	if cfg.Throw.MaxChargeDurationMs != 1500 {
		t.Errorf("MaxChargeDurationMs: got %v, want 1500", cfg.Throw.MaxChargeDurationMs)
	}
	if cfg.Settle.GraceDelayMs != 500 {
		t.Errorf("GraceDelayMs: got %v, want 500", cfg.Settle.GraceDelayMs)
	}
	if cfg.Scoring.TiltDotThreshold != 0.7 {
		t.Errorf("TiltDotThreshold: got %v, want 0.7", cfg.Scoring.TiltDotThreshold)
	}
}

// TestDurationAccessors 测试毫秒字段到秒的换算
func TestDurationAccessors(t *testing.T) {
	cfg := DefaultBowlingConfig()

	if got := cfg.Throw.MaxChargeSeconds(); got != 1.5 {
		t.Errorf("MaxChargeSeconds: got %v, want 1.5", got)
	}
	if got := cfg.Settle.GraceSeconds(); got != 0.5 {
		t.Errorf("GraceSeconds: got %v, want 0.5", got)
	}
	if got := cfg.Settle.ResetSeconds(); got != 0.4 {
		t.Errorf("ResetSeconds: got %v, want 0.4", got)
	}
}

// TestThresholdSquared 测试阈值平方换算
func TestThresholdSquared(t *testing.T) {
	cfg := DefaultBowlingConfig()
	want := cfg.Settle.LinearThreshold * cfg.Settle.LinearThreshold
	if got := cfg.Settle.LinearThresholdSquared(); math.Abs(got-want) > 1e-12 {
		t.Errorf("LinearThresholdSquared: got %v, want %v", got, want)
	}
	want = cfg.Settle.AngularThreshold * cfg.Settle.AngularThreshold
	if got := cfg.Settle.AngularThresholdSquared(); math.Abs(got-want) > 1e-12 {
		t.Errorf("AngularThresholdSquared: got %v, want %v", got, want)
	}
}

// TestAngularThresholdCoversRolling 测试角速度阈值与纯滚动运动学自洽
// 球线速度达到阈值时，对应滚动角速度必须同样低于角速度阈值
func TestAngularThresholdCoversRolling(t *testing.T) {
	cfg := DefaultBowlingConfig()
	rollingRate := cfg.Settle.LinearThreshold / cfg.Physics.Ball.Radius
	if cfg.Settle.AngularThreshold <= rollingRate {
		t.Errorf("AngularThreshold %v should exceed rolling rate %v",
			cfg.Settle.AngularThreshold, rollingRate)
	}
}

// TestValidateRejectsBadValues 测试非法配置被拒绝
func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BowlingConfig)
		errHas string
	}{
		{"maxForce below minForce", func(c *BowlingConfig) {
			c.Throw.MaxForce = c.Throw.MinForce - 1
		}, "maxForce"},
		{"negative minForce", func(c *BowlingConfig) {
			c.Throw.MinForce = -5
		}, "minForce"},
		{"zero charge duration", func(c *BowlingConfig) {
			c.Throw.MaxChargeDurationMs = 0
		}, "maxChargeDurationMs"},
		{"aim angle too wide", func(c *BowlingConfig) {
			c.Throw.MaxAimAngle = 2.0
		}, "maxAimAngle"},
		{"tilt threshold out of range", func(c *BowlingConfig) {
			c.Scoring.TiltDotThreshold = 1.2
		}, "tiltDotThreshold"},
		{"zero grace delay", func(c *BowlingConfig) {
			c.Settle.GraceDelayMs = 0
		}, "graceDelayMs"},
		{"pin halfHeight below radius", func(c *BowlingConfig) {
			c.Physics.Pin.HalfHeight = 0.01
		}, "halfHeight"},
		{"head pin beyond lane", func(c *BowlingConfig) {
			c.Lane.HeadPinZ = c.Lane.Length + 1
		}, "headPinZ"},
		{"pins overlapping", func(c *BowlingConfig) {
			c.Lane.PinSpacing = c.Physics.Pin.Radius
		}, "pinSpacing"},
	}

	for _, tt := range tests {
		cfg := DefaultBowlingConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.errHas) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.errHas)
		}
	}
}

// TestLoadBowlingConfigFromFile 测试从 yaml 文件加载
func TestLoadBowlingConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bowling.yaml")
	content := `
throw:
  minForce: 20.0
  maxForce: 100.0
  maxChargeDurationMs: 2000
  oscillationSpeed: 1.5
  maxAimAngle: 0.5
settle:
  linearThreshold: 0.1
  angularThreshold: 1.5
  graceDelayMs: 600
  resetDelayMs: 300
scoring:
  tiltDotThreshold: 0.6
physics:
  gravity: 9.81
  ball: {mass: 6.0, radius: 0.1, restitution: 0.3, friction: 0.4}
  pin: {mass: 1.5, radius: 0.06, halfHeight: 0.2, restitution: 0.4, friction: 0.5}
  laneSurface: {restitution: 0.3, friction: 1.0}
  criticalTilt: 0.26
  uprightRate: 18.0
  toppleRate: 10.0
  angularDamping: 1.2
lane:
  length: 20.0
  width: 1.5
  ballStartZ: 1.0
  headPinZ: 16.0
  pinSpacing: 0.3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadBowlingConfig(path)
	if err != nil {
		t.Fatalf("LoadBowlingConfig() error: %v", err)
	}
	if cfg.Throw.MaxForce != 100.0 {
		t.Errorf("MaxForce: got %v, want 100", cfg.Throw.MaxForce)
	}
	if cfg.Settle.GraceDelayMs != 600 {
		t.Errorf("GraceDelayMs: got %v, want 600", cfg.Settle.GraceDelayMs)
	}
}

// TestLoadBowlingConfigMissingFile 测试文件缺失时返回错误
func TestLoadBowlingConfigMissingFile(t *testing.T) {
	_, err := LoadBowlingConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("LoadBowlingConfig of missing file: got nil error")
	}
}

// TestParseBowlingConfigRejectsInvalidYaml 测试坏 yaml 与非法值都报错
func TestParseBowlingConfigRejectsInvalidYaml(t *testing.T) {
	if _, err := ParseBowlingConfig([]byte("throw: [broken")); err == nil {
		t.Error("ParseBowlingConfig of malformed yaml: got nil error")
	}

	// 语法正确但校验失败
	bad := `
throw: {minForce: 50.0, maxForce: 10.0, maxChargeDurationMs: 1500, oscillationSpeed: 2.0, maxAimAngle: 0.6}
`
	if _, err := ParseBowlingConfig([]byte(bad)); err == nil {
		t.Error("ParseBowlingConfig of invalid values: got nil error")
	}
}

// TestPinPositionLayout 测试十个瓶位的标准三角摆位
func TestPinPositionLayout(t *testing.T) {
	cfg := DefaultBowlingConfig()

	// 主瓶在球道中线上
	x, y, z, ok := cfg.PinPosition(0)
	if !ok {
		t.Fatal("PinPosition(0) not ok")
	}
	if x != 0 {
		t.Errorf("head pin X: got %v, want 0", x)
	}
	if y != cfg.Physics.Pin.HalfHeight {
		t.Errorf("head pin Y: got %v, want %v", y, cfg.Physics.Pin.HalfHeight)
	}
	if z != cfg.Lane.HeadPinZ {
		t.Errorf("head pin Z: got %v, want %v", z, cfg.Lane.HeadPinZ)
	}

	// 第二行左右对称
	x1, _, z1, _ := cfg.PinPosition(1)
	x2, _, z2, _ := cfg.PinPosition(2)
	if math.Abs(x1+x2) > 1e-12 {
		t.Errorf("row 2 not symmetric: x1=%v x2=%v", x1, x2)
	}
	if z1 != z2 || z1 <= cfg.Lane.HeadPinZ {
		t.Errorf("row 2 depth: z1=%v z2=%v, want equal and > %v", z1, z2, cfg.Lane.HeadPinZ)
	}

	// 末行最宽：9 号瓶在最右
	x9, _, z9, _ := cfg.PinPosition(9)
	want9 := 1.5 * cfg.Lane.PinSpacing
	if math.Abs(x9-want9) > 1e-12 {
		t.Errorf("pin 9 X: got %v, want %v", x9, want9)
	}
	if z9 <= z1 {
		t.Errorf("pin 9 Z: got %v, want > %v", z9, z1)
	}

	// 所有瓶位各不相同且在球道内
	seen := make(map[[2]float64]bool)
	for i := 0; i < PinCount; i++ {
		px, _, pz, ok := cfg.PinPosition(i)
		if !ok {
			t.Fatalf("PinPosition(%d) not ok", i)
		}
		key := [2]float64{px, pz}
		if seen[key] {
			t.Errorf("pin %d overlaps another pin at (%v, %v)", i, px, pz)
		}
		seen[key] = true
		if math.Abs(px) > cfg.Lane.Width/2 {
			t.Errorf("pin %d outside lane width: x=%v", i, px)
		}
		if pz >= cfg.Lane.Length {
			t.Errorf("pin %d beyond lane end: z=%v", i, pz)
		}
	}

	// 越界瓶位
	if _, _, _, ok := cfg.PinPosition(10); ok {
		t.Error("PinPosition(10): got ok, want false")
	}
	if _, _, _, ok := cfg.PinPosition(-1); ok {
		t.Error("PinPosition(-1): got ok, want false")
	}
}
