package game

import (
	"fmt"
	"log"

	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/physics"
)

// LaneBuilder 创建球道上的可投掷对象
//
// 由场景层实现。会话只负责生命周期编排，不关心实体的组件
// 构成和渲染表现，通过该接口解耦两个方向的依赖。
type LaneBuilder interface {
	// BuildBall 在起始位置创建保龄球，返回实体与其刚体
	BuildBall() (ecs.EntityID, *physics.Body, error)
	// BuildRack 按标准三角摆位创建十个球瓶
	// 返回的切片按瓶序号排列，序号 0 为主瓶
	BuildRack() (ids []ecs.EntityID, bodies []*physics.Body, err error)
	// BuildIndicator 创建瞄准指示箭头
	BuildIndicator() (ecs.EntityID, error)
}

// GameSession 驱动一局保龄球的完整生命周期
//
// 会话持有投球阶段、会话时钟、得分、本投已计分集合，以及
// 球与球瓶的刚体引用。所有阶段转换都经过会话的守卫方法，
// 系统层只读取状态或上报观测结果。
//
// 会话运行在单线程的帧循环上：输入与各系统先执行，随后
// Update 推进时钟并触发到期回调，最后物理世界步进。任何
// 延迟动作（静止宽限、复位延迟）都注册在会话自己的
// TimerQueue 里，按会话时间到期，不依赖真实时钟。
type GameSession struct {
	cfg     *config.BowlingConfig
	em      *ecs.EntityManager
	world   PhysicsWorld
	builder LaneBuilder
	timers  *TimerQueue

	phase       ThrowPhase
	clock       float64
	lockedAim   float64
	chargeStart float64
	score       int
	fallen      map[int]bool

	ballEntity  ecs.EntityID
	ballBody    *physics.Body
	pinEntities []ecs.EntityID
	pinBodies   []*physics.Body
	arrowEntity ecs.EntityID

	// 未决的静止宽限回调，同一时刻至多一个
	settleTimer *Timer
}

// NewGameSession 创建会话，初始阶段为瞄准
//
// 创建后场景应调用一次 ResetGame() 搭建球道对象。
func NewGameSession(cfg *config.BowlingConfig, em *ecs.EntityManager, world PhysicsWorld, builder LaneBuilder) *GameSession {
	return &GameSession{
		cfg:     cfg,
		em:      em,
		world:   world,
		builder: builder,
		timers:  NewTimerQueue(),
		phase:   PhaseAiming,
		fallen:  make(map[int]bool),
	}
}

// Update 推进会话时钟并触发到期的延迟回调
// 每帧调用一次，须在各逻辑系统之后、物理步进之前
func (s *GameSession) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.clock += dt
	s.timers.Update(s.clock)
}

// Phase 返回当前投球阶段
func (s *GameSession) Phase() ThrowPhase {
	return s.phase
}

// Score 返回当前累计得分
func (s *GameSession) Score() int {
	return s.score
}

// Elapsed 返回会话累计时间（秒）
func (s *GameSession) Elapsed() float64 {
	return s.clock
}

// AimAngle 返回当前瞄准角
//
// 瞄准阶段按会话绝对时间摆动；蓄力开始的瞬间锁定，之后
// 保持不变直到下一次复位恢复基准值。
func (s *GameSession) AimAngle() float64 {
	if s.phase == PhaseAiming {
		return OscillatedAim(s.clock, s.cfg.Throw.OscillationSpeed, s.cfg.Throw.MaxAimAngle)
	}
	return s.lockedAim
}

// ChargeRatio 返回当前蓄力进度 [0, 1]
// 仅蓄力阶段有值，其余阶段恒为 0
func (s *GameSession) ChargeRatio() float64 {
	if s.phase != PhaseCharging {
		return 0
	}
	return ChargeRatio(s.clock-s.chargeStart, s.cfg.Throw.MaxChargeSeconds())
}

// PinFallen 返回指定球瓶是否已在本投计过分
func (s *GameSession) PinFallen(index int) bool {
	return s.fallen[index]
}

// FallenCount 返回本投已计分的球瓶数
func (s *GameSession) FallenCount() int {
	return len(s.fallen)
}

// SettlePending 返回是否有未决的静止宽限回调
func (s *GameSession) SettlePending() bool {
	return s.settleTimer != nil
}

// BallBody 返回球的刚体引用，球未建成时为 nil
func (s *GameSession) BallBody() *physics.Body {
	return s.ballBody
}

// PressLaunch 处理发射键按下事件
//
// 仅瞄准阶段有效：锁定当前瞄准角、记录蓄力起点并进入
// 蓄力阶段。其余阶段忽略该事件并返回 false。
func (s *GameSession) PressLaunch() bool {
	switch s.phase {
	case PhaseAiming:
		s.lockedAim = s.AimAngle()
		s.chargeStart = s.clock
		s.phase = PhaseCharging
		return true
	case PhaseCharging, PhaseRolling, PhaseResetting, PhaseEnded:
		return false
	}
	return false
}

// ReleaseLaunch 处理发射键松开事件
//
// 仅蓄力阶段有效：按锁定瞄准角和当前蓄力进度计算冲量，
// 施加给球并进入滚动阶段。球体缺失时跳过冲量但仍进入
// 滚动，由静止检测自然结束这一投。
func (s *GameSession) ReleaseLaunch() bool {
	switch s.phase {
	case PhaseCharging:
		ratio := ChargeRatio(s.clock-s.chargeStart, s.cfg.Throw.MaxChargeSeconds())
		impulse, power := ComputeLaunch(s.lockedAim, ratio, s.cfg.Throw.MinForce, s.cfg.Throw.MaxForce)

		if s.ballBody == nil {
			log.Printf("[Session] Launch skipped: ball body missing")
		} else {
			s.world.WakeUp(s.ballBody)
			s.world.ApplyImpulse(s.ballBody, impulse, s.ballBody.Position)
		}

		s.phase = PhaseRolling
		log.Printf("[Session] Ball launched: power=%.1f angle=%.3f ratio=%.2f", power, s.lockedAim, ratio)
		return true
	case PhaseAiming, PhaseRolling, PhaseResetting, PhaseEnded:
		return false
	}
	return false
}

// ReportBallStopped 接收静止检测系统每帧的观测结果
//
// 滚动阶段收到首个静止上报时注册宽限回调；宽限期内球又
// 动起来则取消。同一时刻至多一个未决回调。
func (s *GameSession) ReportBallStopped(stopped bool) {
	if s.phase != PhaseRolling {
		return
	}
	if stopped {
		if s.settleTimer == nil {
			s.settleTimer = s.timers.Schedule(s.clock+s.cfg.Settle.GraceSeconds(), s.commitSettle)
		}
		return
	}
	if s.settleTimer != nil {
		s.settleTimer.Cancel()
		s.settleTimer = nil
	}
}

// CreditPin 为指定球瓶计一分
//
// 仅滚动阶段有效。同一球瓶在一投内至多计分一次，重复调用
// 返回 false。
func (s *GameSession) CreditPin(index int) bool {
	if s.phase != PhaseRolling {
		return false
	}
	if index < 0 || index >= config.PinCount {
		return false
	}
	if s.fallen[index] {
		return false
	}
	s.fallen[index] = true
	s.score++
	log.Printf("[Session] Pin %d fallen, score=%d", index, s.score)
	return true
}

// ResetGame 执行整局重置
//
// 除复位阶段外任何阶段都可触发：取消所有未决回调，销毁并
// 重建球、球瓶和指示箭头，得分清零，最后走一次常规的换投
// 复位流程回到瞄准阶段。
func (s *GameSession) ResetGame() bool {
	switch s.phase {
	case PhaseResetting:
		return false
	case PhaseAiming, PhaseCharging, PhaseRolling, PhaseEnded:
	}

	s.timers.CancelAll()
	s.settleTimer = nil

	s.teardownLane()
	if err := s.buildLane(); err != nil {
		log.Printf("[Session] Lane rebuild failed: %v", err)
	}

	s.score = 0
	s.resetForNextThrow()
	log.Printf("[Session] Game reset")
	return true
}

// commitSettle 在静止宽限期满后提交换投复位
// 阶段已变化的迟到回调直接忽略
func (s *GameSession) commitSettle() {
	s.settleTimer = nil
	if s.phase != PhaseRolling {
		return
	}
	s.resetForNextThrow()
}

// finishReset 在复位延迟期满后回到瞄准阶段
func (s *GameSession) finishReset() {
	if s.phase != PhaseResetting {
		return
	}
	s.phase = PhaseAiming
	log.Printf("[Session] Ready for next throw")
}

// resetForNextThrow 执行换投复位
//
// 停住并归位球体，清空本投计分集合，恢复基准瞄准角，进入
// 复位阶段并注册回到瞄准的延迟回调。得分与球瓶姿态不动。
func (s *GameSession) resetForNextThrow() {
	if s.ballBody != nil {
		s.world.SetLinearVelocity(s.ballBody, physics.Vec3{})
		s.world.SetAngularVelocity(s.ballBody, physics.Vec3{})
		x, y, z := s.cfg.BallStartPosition()
		s.world.SetPosition(s.ballBody, physics.Vec3{X: x, Y: y, Z: z})
	}

	clear(s.fallen)
	s.lockedAim = 0
	s.phase = PhaseResetting
	s.timers.Schedule(s.clock+s.cfg.Settle.ResetSeconds(), s.finishReset)
}

// teardownLane 销毁球道上的可投掷对象
// 先释放物理刚体，再移除对应实体
func (s *GameSession) teardownLane() {
	s.world.DestroyBody(s.ballBody)
	s.ballBody = nil
	for _, body := range s.pinBodies {
		s.world.DestroyBody(body)
	}
	s.pinBodies = nil

	if s.ballEntity != 0 {
		s.em.DestroyEntity(s.ballEntity)
		s.ballEntity = 0
	}
	for _, id := range s.pinEntities {
		s.em.DestroyEntity(id)
	}
	s.pinEntities = nil
	if s.arrowEntity != 0 {
		s.em.DestroyEntity(s.arrowEntity)
		s.arrowEntity = 0
	}
	s.em.RemoveMarkedEntities()
}

// buildLane 通过 LaneBuilder 重建球道对象
func (s *GameSession) buildLane() error {
	ballID, ballBody, err := s.builder.BuildBall()
	if err != nil {
		return fmt.Errorf("build ball: %w", err)
	}
	s.ballEntity = ballID
	s.ballBody = ballBody

	pinIDs, pinBodies, err := s.builder.BuildRack()
	if err != nil {
		return fmt.Errorf("build rack: %w", err)
	}
	s.pinEntities = pinIDs
	s.pinBodies = pinBodies

	arrowID, err := s.builder.BuildIndicator()
	if err != nil {
		return fmt.Errorf("build indicator: %w", err)
	}
	s.arrowEntity = arrowID
	return nil
}
