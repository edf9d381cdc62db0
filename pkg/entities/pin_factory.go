package entities

import (
	"fmt"

	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/physics"
)

// NewPinEntity 创建单个球瓶实体
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - cfg: 游戏调参配置
//   - index: 瓶序号 (0~9)，0 为主瓶
//
// 返回:
//   - ecs.EntityID: 创建的球瓶实体ID
//   - *physics.Body: 球瓶的刚体
//   - error: 如果创建失败返回错误信息
func NewPinEntity(em *ecs.EntityManager, world *physics.World, cfg *config.BowlingConfig, index int) (ecs.EntityID, *physics.Body, error) {
	if world == nil || cfg == nil {
		return 0, nil, fmt.Errorf("pin entity requires a physics world and config")
	}

	x, y, z, ok := cfg.PinPosition(index)
	if !ok {
		return 0, nil, fmt.Errorf("pin index %d out of range", index)
	}

	body := world.CreateBody(physics.BodyDef{
		Kind:        physics.BodyPin,
		Position:    physics.Vec3{X: x, Y: y, Z: z},
		Mass:        cfg.Physics.Pin.Mass,
		Restitution: cfg.Physics.Pin.Restitution,
		Friction:    cfg.Physics.Pin.Friction,
		Radius:      cfg.Physics.Pin.Radius,
		HalfHeight:  cfg.Physics.Pin.HalfHeight,
	})

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PinComponent{
		Index:      index,
		Body:       body,
		HalfHeight: cfg.Physics.Pin.HalfHeight,
	})

	return entityID, body, nil
}

// NewPinRackEntities 按标准三角摆位创建整副十个球瓶
// 返回的切片按瓶序号升序排列，重建顺序固定，保证序号与
// 瓶位的对应关系在整局重置后保持不变
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - cfg: 游戏调参配置
//
// 返回:
//   - []ecs.EntityID: 十个球瓶实体ID
//   - []*physics.Body: 对应的刚体切片
//   - error: 如果创建失败返回错误信息
func NewPinRackEntities(em *ecs.EntityManager, world *physics.World, cfg *config.BowlingConfig) ([]ecs.EntityID, []*physics.Body, error) {
	if world == nil || cfg == nil {
		return nil, nil, fmt.Errorf("pin rack requires a physics world and config")
	}

	ids := make([]ecs.EntityID, 0, config.PinCount)
	bodies := make([]*physics.Body, 0, config.PinCount)
	for i := 0; i < config.PinCount; i++ {
		id, body, err := NewPinEntity(em, world, cfg, i)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build pin %d: %w", i, err)
		}
		ids = append(ids, id)
		bodies = append(bodies, body)
	}

	return ids, bodies, nil
}
