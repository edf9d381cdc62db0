package physics

import "math"

// BodyKind 刚体类别
// 不同类别在 World 中走不同的积分与碰撞路径
type BodyKind int

const (
	// BodyStatic 静态体（球道地面），不积分、不移动
	BodyStatic BodyKind = iota
	// BodyBall 保龄球：球体，受重力、地面摩擦与碰撞冲量
	BodyBall
	// BodyPin 球瓶：质心球体碰撞 + 倾倒姿态积分
	BodyPin
)

// String 返回类别名称
func (k BodyKind) String() string {
	switch k {
	case BodyStatic:
		return "Static"
	case BodyBall:
		return "Ball"
	case BodyPin:
		return "Pin"
	default:
		return "Unknown"
	}
}

// BodyDef 刚体创建参数
// 由实体工厂填写后传给 World.CreateBody
type BodyDef struct {
	Kind        BodyKind
	Position    Vec3
	Mass        float64 // 千克；静态体忽略
	Restitution float64 // 弹性系数 0~1
	Friction    float64 // 摩擦系数，与地面摩擦相乘后生效
	Radius      float64 // 碰撞球半径
	HalfHeight  float64 // 质心离地高度（球瓶直立时）；球体可留空，取 Radius
}

// Body 刚体状态
//
// 位置与姿态是普通可读字段，由 World.Step 推进；
// 游戏逻辑只通过 World 的窄接口修改速度和施加冲量，
// 不直接改写这里的运动学字段。
type Body struct {
	ID   uint64
	Kind BodyKind

	Position        Vec3
	Velocity        Vec3
	AngularVelocity Vec3 // 分量约定：X=俯仰角速度，Y=偏航角速度，Z=横滚角速度（弧度/秒）

	// 姿态欧拉角（弧度）。球瓶的倾倒由 Pitch/Roll 表达，Yaw 不影响立倒判定
	Yaw   float64
	Pitch float64
	Roll  float64

	Mass        float64
	Restitution float64
	Friction    float64
	Radius      float64
	HalfHeight  float64

	// Asleep 为 true 时跳过积分；施加冲量前需先唤醒
	Asleep bool

	invMass    float64
	invInertia float64
	stillTicks int
	alive      bool
}

// UpVector 返回刚体局部竖直轴在世界坐标下的方向
//
// 推导：对 (0,1,0) 依次施加绕 X 轴的 Pitch 与绕 Z 轴的 Roll 旋转。
// 直立时为 (0,1,0)；与世界竖直方向的点积为 cos(Pitch)*cos(Roll)。
func (b *Body) UpVector() Vec3 {
	cp := math.Cos(b.Pitch)
	sp := math.Sin(b.Pitch)
	cr := math.Cos(b.Roll)
	sr := math.Sin(b.Roll)
	return Vec3{
		X: -cp * sr,
		Y: cp * cr,
		Z: sp,
	}
}

// TiltDot 返回 UpVector 与世界竖直方向的点积
// 球瓶立倒判定的输入值：直立为 1，完全倒下趋近 0
func (b *Body) TiltDot() float64 {
	return math.Cos(b.Pitch) * math.Cos(b.Roll)
}

// Alive 返回刚体是否仍注册在 World 中
func (b *Body) Alive() bool {
	return b.alive
}

// supportHeight 返回当前姿态下质心离地的支撑高度
// 直立时为 HalfHeight，随倾倒连续过渡到躺倒时的 Radius
func (b *Body) supportHeight() float64 {
	if b.Kind != BodyPin {
		return b.Radius
	}
	c := b.TiltDot()
	if c < 0 {
		c = 0
	}
	return b.Radius + (b.HalfHeight-b.Radius)*c
}
