package game

import "github.com/gonewx/bowling/pkg/physics"

// PhysicsWorld 是游戏逻辑依赖的物理世界窄接口
//
// 逻辑层只通过这些方法接触物理，不直接访问求解器内部。
// *physics.World 是生产实现；测试用脚本化桩件替代，
// 以便在不跑真实模拟的情况下驱动整个投球流程。
type PhysicsWorld interface {
	// CreateBody 按定义创建刚体
	CreateBody(def physics.BodyDef) *physics.Body
	// DestroyBody 移除刚体，传入 nil 或已销毁的刚体是无害的
	DestroyBody(body *physics.Body)
	// ApplyImpulse 在世界坐标点施加冲量并唤醒刚体
	ApplyImpulse(body *physics.Body, impulse, worldPoint physics.Vec3)
	// LinearVelocity 返回刚体线速度，nil 或已销毁返回零向量
	LinearVelocity(body *physics.Body) physics.Vec3
	// SetLinearVelocity 设置刚体线速度
	SetLinearVelocity(body *physics.Body, v physics.Vec3)
	// AngularVelocity 返回刚体角速度
	AngularVelocity(body *physics.Body) physics.Vec3
	// SetAngularVelocity 设置刚体角速度
	SetAngularVelocity(body *physics.Body, v physics.Vec3)
	// WakeUp 唤醒休眠刚体
	WakeUp(body *physics.Body)
	// SetPosition 直接移动刚体到指定位置
	SetPosition(body *physics.Body, pos physics.Vec3)
	// Step 推进模拟 dt 秒
	Step(dt float64)
}
