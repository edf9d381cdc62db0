package game

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 提供便捷的播放接口
//
// 音效数据全部来自启动时合成的 PCM 字节流（见 sound_bank.go），
// 不加载任何外部音频文件。
type AudioManager struct {
	audioContext    *audio.Context           // 音频上下文，可为 nil（无声模式）
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置）
	clips           map[string][]byte        // 合成好的音效数据（资源ID -> PCM 字节流）
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（资源ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（无声模式，PlaySound 恒返回 false）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
	if ctx != nil {
		am.clips = buildSoundBank(ctx.SampleRate())
	}
	return am
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 参数：
//   - soundID: 音效资源ID（见 sound_bank.go 的常量）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	// 无声模式
	if am.audioContext == nil {
		return false
	}

	// 检查音效是否启用
	if am.settingsManager != nil {
		if !am.settingsManager.GetSettings().SoundEnabled {
			return false
		}
	}

	// 获取或创建音效播放器
	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	// 设置音量
	player.SetVolume(am.getSoundVolume())

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
//
// 参数：
//   - volume: 音量值，范围外的值会被收紧到 0.0 ~ 1.0
func (am *AudioManager) SetSoundVolume(volume float64) {
	// Player.SetVolume 对超出 [0,1] 的值会 panic，先收紧
	volume = clamp01(volume)

	// 更新 SettingsManager
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}

	// 更新所有缓存的音效播放器
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	// 检查缓存
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}

	clip, exists := am.clips[soundID]
	if !exists {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}

	player, err := am.audioContext.NewPlayer(bytes.NewReader(clip))
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create player for %s: %v", soundID, err)
		return nil
	}
	am.soundPlayers[soundID] = player
	return player
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
