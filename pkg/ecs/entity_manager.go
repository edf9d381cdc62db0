package ecs

import "reflect"

// EntityID 实体唯一标识
// 0 保留为无效 ID
type EntityID uint64

// EntityManager 管理实体与组件的映射
//
// 组件按具体指针类型索引，每个实体同类型组件最多一个。
// 销毁是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 统一清理，
// 避免在系统遍历过程中修改实体集合。
type EntityManager struct {
	nextID    uint64
	store     map[EntityID]map[reflect.Type]interface{}
	destroyed []EntityID
}

// NewEntityManager 创建实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID: 1,
		store:  make(map[EntityID]map[reflect.Type]interface{}),
	}
}

// CreateEntity 创建新实体并返回 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.store[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity 标记实体待删除，等待 RemoveMarkedEntities 统一清理
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.destroyed = append(em.destroyed, id)
}

// RemoveMarkedEntities 移除所有已标记的实体
// 每个 tick 收尾时由场景调用一次
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.destroyed {
		delete(em.store, id)
	}
	em.destroyed = em.destroyed[:0]
}

// AddComponent 给实体挂组件；实体不存在时静默忽略
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	comps, ok := em.store[id]
	if !ok {
		return
	}
	comps[reflect.TypeOf(component)] = component
}

// RemoveComponent 摘除实体上指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if comps, ok := em.store[id]; ok {
		delete(comps, componentType)
	}
}

// GetComponent 按类型取组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	comps, ok := em.store[id]
	if !ok {
		return nil, false
	}
	c, found := comps[componentType]
	return c, found
}

// HasComponent 检查实体是否带有指定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// EntityCount 返回当前存活实体数
func (em *EntityManager) EntityCount() int {
	return len(em.store)
}

// GetEntitiesWith 查询同时带有全部指定组件类型的实体
// 返回顺序不保证稳定，调用方需要顺序时自行排序
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, comps := range em.store {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := comps[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	return result
}
