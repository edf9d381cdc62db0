package entities

import (
	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/ecs"
)

// NewAimIndicatorEntity 创建瞄准指示箭头实体
// 箭头的角度、力度与可见性由瞄准系统每帧从会话状态同步
//
// 参数:
//   - em: 实体管理器
//
// 返回:
//   - ecs.EntityID: 创建的箭头实体ID
//   - error: 如果创建失败返回错误信息
func NewAimIndicatorEntity(em *ecs.EntityManager) (ecs.EntityID, error) {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.AimIndicatorComponent{
		Angle:   0,
		Ratio:   0,
		Visible: true,
	})

	return entityID, nil
}
