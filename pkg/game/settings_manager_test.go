package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newSettingsStore 在临时目录里打开一个 gdata 存储
func newSettingsStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	store, err := gdata.Open(gdata.Config{AppName: "bowling_settings_test"})
	if err != nil {
		t.Fatalf("Failed to open gdata store: %v", err)
	}
	return store
}

// TestDefaultSettings 测试默认设置的取值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManager_FreshStore 测试空存储上初始化后持有默认设置
func TestNewSettingsManager_FreshStore(t *testing.T) {
	sm, err := NewSettingsManager(newSettingsStore(t))
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	if got := sm.GetSettings().SoundVolume; got != 0.8 {
		t.Errorf("Initial SoundVolume: got %v, want 0.8", got)
	}
}

// TestNewSettingsManager_NilStore 测试纯内存模式
func TestNewSettingsManager_NilStore(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if got := sm.GetSettings().SoundVolume; got != 0.8 {
		t.Errorf("SoundVolume in memory-only mode: got %v, want 0.8", got)
	}
	// 纯内存模式下保存直接成功
	if err := sm.Save(); err != nil {
		t.Errorf("Save() without a store should succeed, got: %v", err)
	}
	// 重新加载恢复默认值
	sm.SetSoundVolume(0.3)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() without a store should succeed, got: %v", err)
	}
	if got := sm.GetSettings().SoundVolume; got != 0.8 {
		t.Errorf("SoundVolume after reload: got %v, want 0.8", got)
	}
}

// TestSettingsManager_RoundTrip 测试修改、保存、重新加载的闭环
func TestSettingsManager_RoundTrip(t *testing.T) {
	store := newSettingsStore(t)

	sm1, err := NewSettingsManager(store)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	sm1.SetSoundVolume(0.6)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(store)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()
	if settings.SoundVolume != 0.6 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsManager_PartialFile 测试缺字段的存档落回默认值
func TestSettingsManager_PartialFile(t *testing.T) {
	store := newSettingsStore(t)

	// 只写入音量，开关与全屏字段缺失
	raw := []byte("soundVolume: 0.25\n")
	if err := store.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(store)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	settings := sm.GetSettings()
	if settings.SoundVolume != 0.25 {
		t.Errorf("SoundVolume: got %v, want 0.25", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("missing soundEnabled should fall back to default true")
	}
	if settings.Fullscreen {
		t.Error("missing fullscreen should fall back to default false")
	}
}

// TestSettingsManager_OutOfRangeVolume 测试越界音量在加载时被收紧
func TestSettingsManager_OutOfRangeVolume(t *testing.T) {
	store := newSettingsStore(t)

	raw := []byte("soundVolume: 3.5\nsoundEnabled: true\n")
	if err := store.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(store)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if got := sm.GetSettings().SoundVolume; got != 1.0 {
		t.Errorf("SoundVolume: got %v, want clamp to 1.0", got)
	}
}

// TestSettingsManager_CorruptFile 测试存档损坏时带默认值继续
func TestSettingsManager_CorruptFile(t *testing.T) {
	store := newSettingsStore(t)

	raw := []byte("soundVolume: [not a number")
	if err := store.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(store)
	if err != nil {
		t.Fatalf("NewSettingsManager() should swallow decode errors, got: %v", err)
	}
	if got := sm.GetSettings().SoundVolume; got != 0.8 {
		t.Errorf("SoundVolume after corrupt load: got %v, want default 0.8", got)
	}

	// 直接调用 Load 则把解码错误暴露给调用方
	if err := sm.Load(); err == nil {
		t.Error("Load() on corrupt data should return an error")
	}
}

// TestSettingsManager_Setters 测试各设置项的修改
func TestSettingsManager_Setters(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetSoundEnabled(false)
	if sm.GetSettings().SoundEnabled {
		t.Error("After SetSoundEnabled(false): got true, want false")
	}
	sm.SetSoundEnabled(true)
	if !sm.GetSettings().SoundEnabled {
		t.Error("After SetSoundEnabled(true): got false, want true")
	}

	sm.SetFullscreen(true)
	if !sm.GetSettings().Fullscreen {
		t.Error("After SetFullscreen(true): got false, want true")
	}

	sm.SetSoundVolume(1.5)
	if got := sm.GetSettings().SoundVolume; got != 1.0 {
		t.Errorf("SetSoundVolume(1.5): got %v, want clamp to 1.0", got)
	}
	sm.SetSoundVolume(-0.5)
	if got := sm.GetSettings().SoundVolume; got != 0.0 {
		t.Errorf("SetSoundVolume(-0.5): got %v, want clamp to 0.0", got)
	}
}

// TestSettingsManager_SharedInstance 测试 GetSettings 返回同一实例
func TestSettingsManager_SharedInstance(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	first := sm.GetSettings()
	second := sm.GetSettings()
	if first != second {
		t.Error("GetSettings() should return the same instance")
	}
}

// TestClamp01 测试 clamp01 辅助函数
func TestClamp01(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-1.0, 0.0},
		{2.0, 1.0},
		{0.001, 0.001},
		{0.999, 0.999},
	}

	for _, tt := range tests {
		if got := clamp01(tt.input); got != tt.expected {
			t.Errorf("clamp01(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
