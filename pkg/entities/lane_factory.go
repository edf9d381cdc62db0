package entities

import (
	"fmt"

	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/physics"
)

// NewLaneEntity 创建球道实体
// 球道的静态刚体决定地面的摩擦和弹性，整局期间只创建一次，
// 不随整局重置销毁重建
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - cfg: 游戏调参配置
//
// 返回:
//   - ecs.EntityID: 创建的球道实体ID
//   - error: 如果创建失败返回错误信息
func NewLaneEntity(em *ecs.EntityManager, world *physics.World, cfg *config.BowlingConfig) (ecs.EntityID, error) {
	if world == nil || cfg == nil {
		return 0, fmt.Errorf("lane entity requires a physics world and config")
	}

	body := world.CreateBody(physics.BodyDef{
		Kind:        physics.BodyStatic,
		Restitution: cfg.Physics.LaneSurface.Restitution,
		Friction:    cfg.Physics.LaneSurface.Friction,
	})

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.LaneComponent{
		Body:   body,
		Length: cfg.Lane.Length,
		Width:  cfg.Lane.Width,
	})

	return entityID, nil
}
