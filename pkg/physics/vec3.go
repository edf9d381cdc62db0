package physics

import "math"

// Vec3 三维向量（值语义）
//
// 坐标系约定：X 为球道横向（右为正），Y 为竖直向上，Z 为球道纵深（指向瓶架）。
// 所有方法都返回新值，不修改接收者。
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Up 世界竖直向上单位向量
func Up() Vec3 {
	return Vec3{X: 0, Y: 1, Z: 0}
}

// Plus 向量加法
func (v Vec3) Plus(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Minus 向量减法
func (v Vec3) Minus(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Times 标量乘法
func (v Vec3) Times(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// MagnitudeSquared 模长平方
// 用于速度阈值比较，避免开方运算
func (v Vec3) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Magnitude 模长
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Normalize 归一化
// 零向量归一化返回零向量，不会产生 NaN
func (v Vec3) Normalize() Vec3 {
	mag := v.Magnitude()
	if mag < 1e-12 {
		return Vec3{}
	}
	return v.Times(1.0 / mag)
}

// IsZero 判断是否为（近似）零向量
func (v Vec3) IsZero() bool {
	return v.MagnitudeSquared() < 1e-18
}

// Horizontal 返回去除竖直分量后的向量
func (v Vec3) Horizontal() Vec3 {
	return Vec3{X: v.X, Y: 0, Z: v.Z}
}
