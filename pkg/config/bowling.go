package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// BowlingConfig 保龄球玩法调参
//
// 投掷、停稳、计分与物理的所有可调值都集中在这里。
// 配置文件位置: data/bowling.yaml；文件缺失或非法时
// 调用方应回退到 DefaultBowlingConfig()。
type BowlingConfig struct {
	Throw   ThrowConfig   `yaml:"throw"`
	Settle  SettleConfig  `yaml:"settle"`
	Scoring ScoringConfig `yaml:"scoring"`
	Physics PhysicsConfig `yaml:"physics"`
	Lane    LaneConfig    `yaml:"lane"`
}

// ThrowConfig 投掷与蓄力参数
type ThrowConfig struct {
	// MinForce 零蓄力时的出手冲量
	MinForce float64 `yaml:"minForce"`

	// MaxForce 满蓄力时的出手冲量
	MaxForce float64 `yaml:"maxForce"`

	// MaxChargeDurationMs 蓄满所需按住时长（毫秒），超时封顶
	MaxChargeDurationMs int `yaml:"maxChargeDurationMs"`

	// OscillationSpeed 瞄准角摆动角频率（弧度/秒）
	OscillationSpeed float64 `yaml:"oscillationSpeed"`

	// MaxAimAngle 瞄准角摆动幅度（弧度）
	MaxAimAngle float64 `yaml:"maxAimAngle"`
}

// MaxChargeSeconds 返回蓄满时长（秒）
func (c ThrowConfig) MaxChargeSeconds() float64 {
	return float64(c.MaxChargeDurationMs) / 1000.0
}

// SettleConfig 停稳判定参数
type SettleConfig struct {
	// LinearThreshold 线速度阈值（米/秒），比较时用平方值
	LinearThreshold float64 `yaml:"linearThreshold"`

	// AngularThreshold 角速度阈值（弧度/秒）
	// 注意要大于 LinearThreshold/球半径，否则纯滚动的球
	// 线速度已达标时角速度永远不达标
	AngularThreshold float64 `yaml:"angularThreshold"`

	// GraceDelayMs 去抖宽限期（毫秒）：低速读数必须持续这么久才算停稳
	GraceDelayMs int `yaml:"graceDelayMs"`

	// ResetDelayMs Resetting 到 Aiming 的固定过渡延迟（毫秒）
	ResetDelayMs int `yaml:"resetDelayMs"`
}

// GraceSeconds 返回去抖宽限期（秒）
func (c SettleConfig) GraceSeconds() float64 {
	return float64(c.GraceDelayMs) / 1000.0
}

// ResetSeconds 返回重置过渡延迟（秒）
func (c SettleConfig) ResetSeconds() float64 {
	return float64(c.ResetDelayMs) / 1000.0
}

// LinearThresholdSquared 返回线速度阈值的平方
func (c SettleConfig) LinearThresholdSquared() float64 {
	return c.LinearThreshold * c.LinearThreshold
}

// AngularThresholdSquared 返回角速度阈值的平方
func (c SettleConfig) AngularThresholdSquared() float64 {
	return c.AngularThreshold * c.AngularThreshold
}

// ScoringConfig 计分参数
type ScoringConfig struct {
	// TiltDotThreshold 球瓶朝上向量与世界竖直方向点积的判倒阈值，
	// 低于它记为倒瓶。0.7 约等于倾斜 45°
	TiltDotThreshold float64 `yaml:"tiltDotThreshold"`
}

// BodyParams 单类刚体的物理参数
type BodyParams struct {
	Mass        float64 `yaml:"mass"`
	Radius      float64 `yaml:"radius"`
	HalfHeight  float64 `yaml:"halfHeight,omitempty"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
}

// PhysicsConfig 物理世界参数
type PhysicsConfig struct {
	// Gravity 重力加速度（米/秒²，正值）
	Gravity float64 `yaml:"gravity"`

	Ball BodyParams `yaml:"ball"`
	Pin  BodyParams `yaml:"pin"`

	// LaneSurface 球道表面参数，只用弹性与摩擦
	LaneSurface BodyParams `yaml:"laneSurface"`

	// CriticalTilt 球瓶临界倾角（弧度）
	CriticalTilt float64 `yaml:"criticalTilt"`
	// UprightRate 回正角加速度系数
	UprightRate float64 `yaml:"uprightRate"`
	// ToppleRate 倾倒角加速度系数
	ToppleRate float64 `yaml:"toppleRate"`
	// AngularDamping 角速度阻尼
	AngularDamping float64 `yaml:"angularDamping"`
}

// LaneConfig 球道几何与瓶架摆位
type LaneConfig struct {
	// Length 球道纵深（米）
	Length float64 `yaml:"length"`

	// Width 球道宽度（米）
	Width float64 `yaml:"width"`

	// BallStartZ 出手点纵深（米）
	BallStartZ float64 `yaml:"ballStartZ"`

	// HeadPinZ 主瓶（0 号瓶）纵深（米）
	HeadPinZ float64 `yaml:"headPinZ"`

	// PinSpacing 相邻瓶位间距（米）
	PinSpacing float64 `yaml:"pinSpacing"`
}

// DefaultBowlingConfig 返回内置默认调参
func DefaultBowlingConfig() *BowlingConfig {
	return &BowlingConfig{
		Throw: ThrowConfig{
			MinForce:            30.0,
			MaxForce:            150.0,
			MaxChargeDurationMs: 1500,
			OscillationSpeed:    2.0,
			MaxAimAngle:         0.6,
		},
		Settle: SettleConfig{
			LinearThreshold:  0.12,
			AngularThreshold: 1.5,
			GraceDelayMs:     500,
			ResetDelayMs:     400,
		},
		Scoring: ScoringConfig{
			TiltDotThreshold: 0.7,
		},
		Physics: PhysicsConfig{
			Gravity:        9.81,
			Ball:           BodyParams{Mass: 6.8, Radius: 0.108, Restitution: 0.3, Friction: 0.4},
			Pin:            BodyParams{Mass: 1.5, Radius: 0.06, HalfHeight: 0.19, Restitution: 0.4, Friction: 0.5},
			LaneSurface:    BodyParams{Restitution: 0.3, Friction: 1.0},
			CriticalTilt:   0.26,
			UprightRate:    18.0,
			ToppleRate:     10.0,
			AngularDamping: 1.2,
		},
		Lane: LaneConfig{
			Length:     19.2,
			Width:      1.5,
			BallStartZ: 1.0,
			HeadPinZ:   16.0,
			PinSpacing: 0.3048,
		},
	}
}

// LoadBowlingConfig 从文件加载调参
//
// 参数:
//   - path: 配置文件路径（如 "data/bowling.yaml"）
//
// 返回:
//   - *BowlingConfig: 加载并通过校验的配置
//   - error: 读取、解析或校验失败
func LoadBowlingConfig(path string) (*BowlingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bowling config: %w", err)
	}
	return ParseBowlingConfig(data)
}

// ParseBowlingConfig 解析 yaml 字节并校验
// 嵌入资源与磁盘文件共用这条入口
func ParseBowlingConfig(data []byte) (*BowlingConfig, error) {
	var cfg BowlingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bowling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bowling config: %w", err)
	}
	return &cfg, nil
}

// Validate 校验配置有效性
func (c *BowlingConfig) Validate() error {
	if c.Throw.MinForce < 0 {
		return fmt.Errorf("throw.minForce should be >= 0, got %.2f", c.Throw.MinForce)
	}
	if c.Throw.MaxForce <= c.Throw.MinForce {
		return fmt.Errorf("throw.maxForce(%.2f) should be > minForce(%.2f)",
			c.Throw.MaxForce, c.Throw.MinForce)
	}
	if c.Throw.MaxChargeDurationMs <= 0 {
		return fmt.Errorf("throw.maxChargeDurationMs should be > 0, got %d", c.Throw.MaxChargeDurationMs)
	}
	if c.Throw.OscillationSpeed <= 0 {
		return fmt.Errorf("throw.oscillationSpeed should be > 0, got %.2f", c.Throw.OscillationSpeed)
	}
	if c.Throw.MaxAimAngle <= 0 || c.Throw.MaxAimAngle > math.Pi/2 {
		return fmt.Errorf("throw.maxAimAngle should be in (0, pi/2], got %.2f", c.Throw.MaxAimAngle)
	}

	if c.Settle.LinearThreshold <= 0 {
		return fmt.Errorf("settle.linearThreshold should be > 0, got %.3f", c.Settle.LinearThreshold)
	}
	if c.Settle.AngularThreshold <= 0 {
		return fmt.Errorf("settle.angularThreshold should be > 0, got %.3f", c.Settle.AngularThreshold)
	}
	if c.Settle.GraceDelayMs <= 0 {
		return fmt.Errorf("settle.graceDelayMs should be > 0, got %d", c.Settle.GraceDelayMs)
	}
	if c.Settle.ResetDelayMs <= 0 {
		return fmt.Errorf("settle.resetDelayMs should be > 0, got %d", c.Settle.ResetDelayMs)
	}

	if c.Scoring.TiltDotThreshold <= 0 || c.Scoring.TiltDotThreshold >= 1 {
		return fmt.Errorf("scoring.tiltDotThreshold should be in (0, 1), got %.2f", c.Scoring.TiltDotThreshold)
	}

	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("physics.gravity should be > 0, got %.2f", c.Physics.Gravity)
	}
	if c.Physics.Ball.Mass <= 0 || c.Physics.Ball.Radius <= 0 {
		return fmt.Errorf("physics.ball mass/radius should be > 0, got %.2f/%.3f",
			c.Physics.Ball.Mass, c.Physics.Ball.Radius)
	}
	if c.Physics.Pin.Mass <= 0 || c.Physics.Pin.Radius <= 0 {
		return fmt.Errorf("physics.pin mass/radius should be > 0, got %.2f/%.3f",
			c.Physics.Pin.Mass, c.Physics.Pin.Radius)
	}
	if c.Physics.Pin.HalfHeight <= c.Physics.Pin.Radius {
		return fmt.Errorf("physics.pin.halfHeight(%.3f) should be > pin radius(%.3f)",
			c.Physics.Pin.HalfHeight, c.Physics.Pin.Radius)
	}

	if c.Lane.Length <= 0 || c.Lane.Width <= 0 {
		return fmt.Errorf("lane length/width should be > 0, got %.1f/%.1f", c.Lane.Length, c.Lane.Width)
	}
	if c.Lane.BallStartZ < 0 || c.Lane.BallStartZ >= c.Lane.HeadPinZ {
		return fmt.Errorf("lane.ballStartZ(%.1f) should be in [0, headPinZ %.1f)",
			c.Lane.BallStartZ, c.Lane.HeadPinZ)
	}
	if c.Lane.HeadPinZ >= c.Lane.Length {
		return fmt.Errorf("lane.headPinZ(%.1f) should be < lane length(%.1f)",
			c.Lane.HeadPinZ, c.Lane.Length)
	}
	if c.Lane.PinSpacing <= 2*c.Physics.Pin.Radius {
		return fmt.Errorf("lane.pinSpacing(%.3f) should exceed pin diameter(%.3f)",
			c.Lane.PinSpacing, 2*c.Physics.Pin.Radius)
	}

	return nil
}

// BallStartPosition 返回球的出手点世界坐标
func (c *BowlingConfig) BallStartPosition() (x, y, z float64) {
	return 0, c.Physics.Ball.Radius, c.Lane.BallStartZ
}

// PinPosition 返回指定瓶位的直立世界坐标
//
// 瓶位按行展开：0 号主瓶最靠前，1~2 号第二行，3~5 号第三行，
// 6~9 号第四行，行距为 PinSpacing*√3/2，行内按间距左右对称。
// index 越界时返回 false。
func (c *BowlingConfig) PinPosition(index int) (x, y, z float64, ok bool) {
	if index < 0 || index >= PinCount {
		return 0, 0, 0, false
	}
	row := 0
	first := 0
	for row = 0; row < 4; row++ {
		if index < first+row+1 {
			break
		}
		first += row + 1
	}
	col := index - first

	rowSpacing := c.Lane.PinSpacing * math.Sqrt(3) / 2
	x = (float64(col) - float64(row)/2.0) * c.Lane.PinSpacing
	y = c.Physics.Pin.HalfHeight
	z = c.Lane.HeadPinZ + float64(row)*rowSpacing
	return x, y, z, true
}

// PinCount 整架球瓶数量
const PinCount = 10
