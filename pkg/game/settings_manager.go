package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局游戏设置，不绑定到特定玩家
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
		Fullscreen:   false,
	}
}

// gdata 存储键：settings 对象下的 bowling 属性
const (
	settingsObject   = "settings"
	settingsProperty = "bowling"
)

// SettingsManager 负责设置的加载、修改与持久化
//
// 存储后端缺失时工作在纯内存模式：Load 使用默认值，Save 静默
// 成功，游戏功能不受影响。
type SettingsManager struct {
	store    *gdata.Manager
	settings *GameSettings
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数:
//   - store: gdata 存储管理器，nil 表示纯内存模式
//
// 返回:
//   - *SettingsManager: 管理器实例，加载失败时持有默认设置
//   - error: 预留给未来的致命初始化错误，当前恒为 nil
func NewSettingsManager(store *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		store:    store,
		settings: DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		// 存档损坏不阻止启动，带默认值继续
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 读取已保存的设置
//
// 没有存档时保留默认值。存档里缺失的字段同样落回默认值，
// 音量在读入时收紧到合法范围。
func (sm *SettingsManager) Load() error {
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("read settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("decode settings: %w", err)
	}
	loaded.SoundVolume = clamp01(loaded.SoundVolume)

	sm.settings = loaded
	return nil
}

// Save 持久化当前设置，纯内存模式下直接成功
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	return nil
}

// GetSettings 返回当前设置，调用方可直接读取字段
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量，范围外的值会被收紧到 0~1
// 修改只在内存生效，持久化需调用 Save
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clamp01(volume)
}

// SetSoundEnabled 设置音效开关
// 修改只在内存生效，持久化需调用 Save
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置启动全屏偏好
// 修改只在内存生效，持久化需调用 Save
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clamp01 把数值收紧到 [0, 1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
