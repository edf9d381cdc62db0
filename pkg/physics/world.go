package physics

import "math"

// WorldConfig 物理世界调参
// 零值字段在 NewWorld 中用默认值补齐，便于测试直接 NewWorld(WorldConfig{})
type WorldConfig struct {
	// Gravity 重力加速度（正值，方向向下），米/秒²
	Gravity float64

	// CriticalTilt 球瓶临界倾角（弧度）。
	// 未超过时重力把球瓶拉回直立，超过后质心越过底座边缘、继续倾倒
	CriticalTilt float64
	// UprightRate 回正角加速度系数（弧度/秒²）
	UprightRate float64
	// ToppleRate 过临界角后的倾倒角加速度系数（弧度/秒²）
	ToppleRate float64
	// AngularDamping 角速度阻尼（每秒衰减比例）
	AngularDamping float64

	// LyingDragMultiplier 躺倒球瓶的地面摩擦倍率，防止被击飞的球瓶滑出场外
	LyingDragMultiplier float64

	// LinearSleepThreshold 线速度平方休眠阈值
	LinearSleepThreshold float64
	// AngularSleepThreshold 角速度平方休眠阈值
	AngularSleepThreshold float64
	// SleepTicks 连续低速多少个 tick 后进入休眠
	SleepTicks int
}

func (c WorldConfig) withDefaults() WorldConfig {
	if c.Gravity <= 0 {
		c.Gravity = 9.81
	}
	if c.CriticalTilt <= 0 {
		c.CriticalTilt = 0.26
	}
	if c.UprightRate <= 0 {
		c.UprightRate = 18.0
	}
	if c.ToppleRate <= 0 {
		c.ToppleRate = 10.0
	}
	if c.AngularDamping <= 0 {
		c.AngularDamping = 1.2
	}
	if c.LyingDragMultiplier <= 0 {
		c.LyingDragMultiplier = 4.0
	}
	if c.LinearSleepThreshold <= 0 {
		c.LinearSleepThreshold = 0.015
	}
	if c.AngularSleepThreshold <= 0 {
		c.AngularSleepThreshold = 0.04
	}
	if c.SleepTicks <= 0 {
		c.SleepTicks = 45
	}
	return c
}

// World 简化刚体物理世界
//
// 针对保龄球场景的专用模拟：球与球瓶用质心球体做碰撞，
// 球瓶的立倒用欧拉角姿态积分表达。单线程，只能由游戏主循环驱动。
type World struct {
	cfg    WorldConfig
	nextID uint64
	bodies []*Body
	ground *Body
}

// NewWorld 创建物理世界
func NewWorld(cfg WorldConfig) *World {
	return &World{
		cfg:    cfg.withDefaults(),
		nextID: 1,
		bodies: make([]*Body, 0, 16),
	}
}

// CreateBody 按参数创建刚体并注册到世界
func (w *World) CreateBody(def BodyDef) *Body {
	b := &Body{
		ID:          w.nextID,
		Kind:        def.Kind,
		Position:    def.Position,
		Mass:        def.Mass,
		Restitution: def.Restitution,
		Friction:    def.Friction,
		Radius:      def.Radius,
		HalfHeight:  def.HalfHeight,
		alive:       true,
	}
	w.nextID++

	if b.HalfHeight <= 0 {
		b.HalfHeight = b.Radius
	}
	if def.Kind != BodyStatic && def.Mass > 0 {
		b.invMass = 1.0 / def.Mass
		switch def.Kind {
		case BodyBall:
			// 实心球体：I = 2/5·m·r²
			b.invInertia = 1.0 / (0.4 * def.Mass * b.Radius * b.Radius)
		case BodyPin:
			// 以底座为支点的均质杆：I = 1/3·m·h²，h 取质心高度的两倍
			h := 2.0 * b.HalfHeight
			b.invInertia = 3.0 / (def.Mass * h * h)
		}
	}

	if def.Kind == BodyStatic {
		w.ground = b
	}
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody 将刚体从世界移除
// 已移除或 nil 的刚体再次移除是安全的空操作
func (w *World) DestroyBody(b *Body) {
	if b == nil || !b.alive {
		return
	}
	b.alive = false
	if w.ground == b {
		w.ground = nil
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// BodyCount 返回当前注册的刚体数量
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// ApplyImpulse 对刚体施加瞬时冲量
//
// worldPoint 是冲量作用点的世界坐标。球体按作用点偏移产生自旋；
// 球瓶始终被地面托住，以底座为支点响应水平冲量产生倾倒角速度。
func (w *World) ApplyImpulse(b *Body, impulse Vec3, worldPoint Vec3) {
	if b == nil || !b.alive || b.invMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Plus(impulse.Times(b.invMass))

	var arm Vec3
	if b.Kind == BodyPin {
		arm = Vec3{X: 0, Y: b.HalfHeight, Z: 0}
	} else {
		arm = worldPoint.Minus(b.Position)
	}
	if !arm.IsZero() {
		b.AngularVelocity = b.AngularVelocity.Plus(arm.Cross(impulse).Times(b.invInertia))
	}
	w.WakeUp(b)
}

// LinearVelocity 读取线速度；已销毁的刚体返回零向量
func (w *World) LinearVelocity(b *Body) Vec3 {
	if b == nil || !b.alive {
		return Vec3{}
	}
	return b.Velocity
}

// SetLinearVelocity 写入线速度
func (w *World) SetLinearVelocity(b *Body, v Vec3) {
	if b == nil || !b.alive {
		return
	}
	b.Velocity = v
}

// AngularVelocity 读取角速度；已销毁的刚体返回零向量
func (w *World) AngularVelocity(b *Body) Vec3 {
	if b == nil || !b.alive {
		return Vec3{}
	}
	return b.AngularVelocity
}

// SetAngularVelocity 写入角速度
func (w *World) SetAngularVelocity(b *Body, v Vec3) {
	if b == nil || !b.alive {
		return
	}
	b.AngularVelocity = v
}

// WakeUp 唤醒休眠刚体，确保后续冲量能生效
func (w *World) WakeUp(b *Body) {
	if b == nil || !b.alive {
		return
	}
	b.Asleep = false
	b.stillTicks = 0
}

// SetPosition 直接改写刚体位置（用于把球放回出手点）
// 调用方负责同时清零速度，这里不隐式修改运动状态
func (w *World) SetPosition(b *Body, pos Vec3) {
	if b == nil || !b.alive {
		return
	}
	b.Position = pos
}

// Step 推进一个仿真步长
//
// 顺序：积分 → 地面接触 → 刚体对碰撞 → 球瓶姿态动力学 → 休眠统计。
// 内部按 240Hz 细分子步，满力出手的球单步位移才不会越过球瓶的接触区。
// dt 非正时不做任何事。
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	const maxSubstep = 1.0 / 240.0
	n := int(math.Ceil(dt / maxSubstep))
	if n < 1 {
		n = 1
	}
	sub := dt / float64(n)
	for i := 0; i < n; i++ {
		w.integrate(sub)
		w.resolveGround(sub)
		w.resolvePairs()
		w.updatePinPose(sub)
	}
	// 休眠按外层 tick 统计，与调用频率解耦
	w.updateSleep()
}

func (w *World) integrate(dt float64) {
	for _, b := range w.bodies {
		if b.Kind == BodyStatic || b.Asleep {
			continue
		}
		b.Velocity.Y -= w.cfg.Gravity * dt
		b.Position = b.Position.Plus(b.Velocity.Times(dt))
	}
}

func (w *World) groundRestitution(b *Body) float64 {
	if w.ground == nil {
		return b.Restitution
	}
	return b.Restitution * w.ground.Restitution
}

func (w *World) groundFriction(b *Body) float64 {
	if w.ground == nil {
		return b.Friction
	}
	return b.Friction * w.ground.Friction
}

func (w *World) resolveGround(dt float64) {
	for _, b := range w.bodies {
		if b.Kind == BodyStatic || b.Asleep {
			continue
		}
		support := b.supportHeight()
		if b.Position.Y > support {
			continue
		}
		b.Position.Y = support

		// 竖直反弹，低速时直接吸收
		if b.Velocity.Y < 0 {
			bounced := -b.Velocity.Y * w.groundRestitution(b)
			if bounced < 0.3 {
				bounced = 0
			}
			b.Velocity.Y = bounced
		}

		// 水平摩擦：匀减速，速度过零则停
		horizontal := b.Velocity.Horizontal()
		speed := horizontal.Magnitude()
		if speed > 0 {
			drag := w.groundFriction(b) * w.cfg.Gravity
			if b.Kind == BodyPin && b.TiltDot() < 0.5 {
				drag *= w.cfg.LyingDragMultiplier
			}
			newSpeed := speed - drag*dt
			if newSpeed < 0 {
				newSpeed = 0
			}
			scaled := horizontal.Times(newSpeed / speed)
			b.Velocity.X = scaled.X
			b.Velocity.Z = scaled.Z
		}

		// 球在地面上做纯滚动，角速度由接触运动学决定
		if b.Kind == BodyBall && b.Radius > 0 {
			b.AngularVelocity = Vec3{
				X: b.Velocity.Z / b.Radius,
				Y: 0,
				Z: -b.Velocity.X / b.Radius,
			}
		}
	}
}

func (w *World) resolvePairs() {
	for i := 0; i < len(w.bodies); i++ {
		bi := w.bodies[i]
		if bi.Kind == BodyStatic {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			bj := w.bodies[j]
			if bj.Kind == BodyStatic {
				continue
			}
			if bi.Asleep && bj.Asleep {
				continue
			}
			w.collide(bi, bj)
		}
	}
}

// collide 球体近似的弹性碰撞：分离重叠并交换法向动量
func (w *World) collide(bi, bj *Body) {
	delta := bj.Position.Minus(bi.Position)
	minDist := bi.Radius + bj.Radius
	distSq := delta.MagnitudeSquared()
	if distSq >= minDist*minDist || distSq < 1e-12 {
		return
	}
	dist := math.Sqrt(distSq)
	normal := delta.Times(1.0 / dist)

	w.WakeUp(bi)
	w.WakeUp(bj)

	// 按质量反比推开重叠
	overlap := minDist - dist
	invSum := bi.invMass + bj.invMass
	if invSum <= 0 {
		return
	}
	bi.Position = bi.Position.Minus(normal.Times(overlap * bi.invMass / invSum))
	bj.Position = bj.Position.Plus(normal.Times(overlap * bj.invMass / invSum))

	// 仅在接近时施加冲量
	approach := bi.Velocity.Minus(bj.Velocity).Dot(normal)
	if approach <= 0 {
		return
	}
	e := math.Sqrt(bi.Restitution * bj.Restitution)
	magnitude := (1 + e) * approach / invSum
	impulse := normal.Times(magnitude)

	bi.Velocity = bi.Velocity.Minus(impulse.Times(bi.invMass))
	bj.Velocity = bj.Velocity.Plus(impulse.Times(bj.invMass))

	w.applyTipKick(bi, impulse.Times(-1))
	w.applyTipKick(bj, impulse)
}

// applyTipKick 把碰撞冲量换算成球瓶的倾倒角速度
func (w *World) applyTipKick(b *Body, impulse Vec3) {
	if b.Kind != BodyPin {
		return
	}
	arm := Vec3{X: 0, Y: b.HalfHeight, Z: 0}
	kick := arm.Cross(impulse.Horizontal()).Times(b.invInertia)
	b.AngularVelocity = b.AngularVelocity.Plus(kick)
}

// updatePinPose 球瓶立倒动力学与姿态积分
//
// 临界角以内重力回正，超过后重力放大倾倒；倾角夹在 ±π/2，
// 触底后对应轴的角速度清零
func (w *World) updatePinPose(dt float64) {
	halfPi := math.Pi / 2
	for _, b := range w.bodies {
		if b.Kind != BodyPin || b.Asleep {
			continue
		}

		tilt := math.Acos(clampDot(b.TiltDot()))
		if tilt < w.cfg.CriticalTilt {
			b.AngularVelocity.X -= math.Sin(b.Pitch) * w.cfg.UprightRate * dt
			b.AngularVelocity.Z -= math.Sin(b.Roll) * w.cfg.UprightRate * dt
		} else {
			b.AngularVelocity.X += math.Sin(b.Pitch) * w.cfg.ToppleRate * dt
			b.AngularVelocity.Z += math.Sin(b.Roll) * w.cfg.ToppleRate * dt
		}

		damp := 1.0 - w.cfg.AngularDamping*dt
		if damp < 0 {
			damp = 0
		}
		b.AngularVelocity = b.AngularVelocity.Times(damp)

		b.Pitch += b.AngularVelocity.X * dt
		b.Yaw += b.AngularVelocity.Y * dt
		b.Roll += b.AngularVelocity.Z * dt

		if b.Pitch > halfPi {
			b.Pitch = halfPi
			b.AngularVelocity.X = 0
		} else if b.Pitch < -halfPi {
			b.Pitch = -halfPi
			b.AngularVelocity.X = 0
		}
		if b.Roll > halfPi {
			b.Roll = halfPi
			b.AngularVelocity.Z = 0
		} else if b.Roll < -halfPi {
			b.Roll = -halfPi
			b.AngularVelocity.Z = 0
		}
	}
}

func (w *World) updateSleep() {
	for _, b := range w.bodies {
		if b.Kind == BodyStatic || b.Asleep {
			continue
		}
		still := b.Velocity.MagnitudeSquared() < w.cfg.LinearSleepThreshold &&
			b.AngularVelocity.MagnitudeSquared() < w.cfg.AngularSleepThreshold
		if !still {
			b.stillTicks = 0
			continue
		}
		b.stillTicks++
		if b.stillTicks >= w.cfg.SleepTicks {
			b.Asleep = true
			b.Velocity = Vec3{}
			b.AngularVelocity = Vec3{}
		}
	}
}

func clampDot(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
