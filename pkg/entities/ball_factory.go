package entities

import (
	"fmt"

	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/physics"
)

// NewBallEntity 创建保龄球实体
// 球体放置在球道起始位姿，等待出手冲量
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - cfg: 游戏调参配置
//
// 返回:
//   - ecs.EntityID: 创建的保龄球实体ID
//   - *physics.Body: 球的刚体，供会话施加冲量与归位
//   - error: 如果创建失败返回错误信息
func NewBallEntity(em *ecs.EntityManager, world *physics.World, cfg *config.BowlingConfig) (ecs.EntityID, *physics.Body, error) {
	if world == nil || cfg == nil {
		return 0, nil, fmt.Errorf("ball entity requires a physics world and config")
	}

	x, y, z := cfg.BallStartPosition()
	body := world.CreateBody(physics.BodyDef{
		Kind:        physics.BodyBall,
		Position:    physics.Vec3{X: x, Y: y, Z: z},
		Mass:        cfg.Physics.Ball.Mass,
		Restitution: cfg.Physics.Ball.Restitution,
		Friction:    cfg.Physics.Ball.Friction,
		Radius:      cfg.Physics.Ball.Radius,
	})

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.BallComponent{
		Body:   body,
		Radius: cfg.Physics.Ball.Radius,
	})

	return entityID, body, nil
}
