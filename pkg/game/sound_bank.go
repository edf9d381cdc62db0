package game

import "github.com/gonewx/bowling/internal/wave"

// 音效资源 ID
const (
	// SoundLaunch 球出手
	SoundLaunch = "SOUND_LAUNCH"
	// SoundPinFall 球瓶倒下
	SoundPinFall = "SOUND_PIN_FALL"
	// SoundRackReset 整局重摆
	SoundRackReset = "SOUND_RACK_RESET"
	// SoundChargeFull 蓄力达到上限
	SoundChargeFull = "SOUND_CHARGE_FULL"
)

// buildSoundBank 合成全部音效的 PCM 数据
// sampleRate 必须与音频上下文的采样率一致
func buildSoundBank(sampleRate int) map[string][]byte {
	bank := make(map[string][]byte)

	// 出手：噪声嗖声，快速淡出
	launch := wave.Tone{
		Shape:     wave.ShapeNoise,
		Amplitude: 0.5,
		Duration:  0.30,
		Attack:    0.02,
		Decay:     0.24,
	}.Render(sampleRate)
	bank[SoundLaunch] = wave.PCM16Stereo(launch)

	// 倒瓶：高频双音叠加少量噪声，模拟清脆撞击
	strike := wave.Mix(
		wave.Tone{Shape: wave.ShapeTriangle, Frequency: 880, Amplitude: 0.45, Duration: 0.18, Attack: 0.005, Decay: 0.14}.Render(sampleRate),
		wave.Tone{Shape: wave.ShapeSine, Frequency: 1320, Amplitude: 0.30, Duration: 0.12, Attack: 0.005, Decay: 0.10}.Render(sampleRate),
		wave.Tone{Shape: wave.ShapeNoise, Amplitude: 0.12, Duration: 0.06, Decay: 0.05}.Render(sampleRate),
	)
	bank[SoundPinFall] = wave.PCM16Stereo(strike)

	// 重摆：下滑的低频闷响
	thud := wave.Mix(
		wave.Tone{Shape: wave.ShapeSine, Frequency: 110, FrequencyEnd: 70, Amplitude: 0.6, Duration: 0.35, Attack: 0.01, Decay: 0.30}.Render(sampleRate),
		wave.Tone{Shape: wave.ShapeNoise, Amplitude: 0.08, Duration: 0.08, Decay: 0.06}.Render(sampleRate),
	)
	bank[SoundRackReset] = wave.PCM16Stereo(thud)

	// 蓄力满：两声上行提示音
	full := wave.Concat(
		wave.Tone{Shape: wave.ShapeSquare, Frequency: 660, Amplitude: 0.25, Duration: 0.07, Attack: 0.005, Decay: 0.02}.Render(sampleRate),
		wave.Tone{Shape: wave.ShapeSquare, Frequency: 990, Amplitude: 0.25, Duration: 0.10, Attack: 0.005, Decay: 0.05}.Render(sampleRate),
	)
	bank[SoundChargeFull] = wave.PCM16Stereo(full)

	return bank
}
