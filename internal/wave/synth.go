// Package wave 用基础波形合成短音效
//
// 游戏的全部音效都在启动时由本包合成，不依赖外部音频资源
// 文件。输出格式与音频上下文一致：16 位小端、双声道交织。
package wave

import (
	"math"
	"math/rand"
)

// Shape 基础波形类型
type Shape int

const (
	// ShapeSine 正弦波
	ShapeSine Shape = iota
	// ShapeSquare 方波
	ShapeSquare
	// ShapeTriangle 三角波
	ShapeTriangle
	// ShapeNoise 白噪声
	ShapeNoise
)

// noiseSeed 固定噪声种子，保证同一 Tone 每次合成结果一致
const noiseSeed = 0x42574c47

// Tone 描述一段待合成的音
//
// Attack 与 Decay 构成线性包络：起音段从零淡入，衰减段在
// 尾部淡出到零。两段重叠时取较小的包络值。
type Tone struct {
	Shape        Shape
	Frequency    float64 // 起始频率（Hz），噪声忽略
	FrequencyEnd float64 // 结束频率（Hz），0 表示恒定频率
	Amplitude    float64 // 峰值振幅，范围 0~1
	Duration     float64 // 时长（秒）
	Attack       float64 // 起音时长（秒）
	Decay        float64 // 衰减时长（秒），从尾部向前计
}

// Render 合成单声道浮点采样序列
//
// 参数:
//   - sampleRate: 采样率（Hz）
//
// 返回: 范围 [-1, 1] 的采样序列，时长或采样率非法时为 nil
func (t Tone) Render(sampleRate int) []float64 {
	if sampleRate <= 0 || t.Duration <= 0 {
		return nil
	}
	n := int(t.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}

	samples := make([]float64, n)
	rng := rand.New(rand.NewSource(noiseSeed))
	dt := 1.0 / float64(sampleRate)
	phase := 0.0

	for i := 0; i < n; i++ {
		elapsed := float64(i) * dt

		freq := t.Frequency
		if t.FrequencyEnd > 0 {
			freq += (t.FrequencyEnd - t.Frequency) * (elapsed / t.Duration)
		}

		var v float64
		switch t.Shape {
		case ShapeSine:
			v = math.Sin(phase)
		case ShapeSquare:
			if math.Sin(phase) >= 0 {
				v = 1
			} else {
				v = -1
			}
		case ShapeTriangle:
			v = 2 / math.Pi * math.Asin(math.Sin(phase))
		case ShapeNoise:
			v = rng.Float64()*2 - 1
		}
		phase += 2 * math.Pi * freq * dt

		samples[i] = v * t.Amplitude * t.envelope(elapsed)
	}
	return samples
}

// envelope 返回 elapsed 时刻的包络系数 [0, 1]
func (t Tone) envelope(elapsed float64) float64 {
	e := 1.0
	if t.Attack > 0 && elapsed < t.Attack {
		e = elapsed / t.Attack
	}
	if t.Decay > 0 {
		remain := t.Duration - elapsed
		if remain < t.Decay {
			d := remain / t.Decay
			if d < e {
				e = d
			}
		}
	}
	if e < 0 {
		return 0
	}
	if e > 1 {
		return 1
	}
	return e
}

// Mix 将多条采样序列逐点叠加
// 结果长度取最长者，叠加后钳制在 [-1, 1]
func Mix(tracks ...[]float64) []float64 {
	maxLen := 0
	for _, tr := range tracks {
		if len(tr) > maxLen {
			maxLen = len(tr)
		}
	}
	if maxLen == 0 {
		return nil
	}

	out := make([]float64, maxLen)
	for _, tr := range tracks {
		for i, s := range tr {
			out[i] += s
		}
	}
	for i, s := range out {
		if s > 1 {
			out[i] = 1
		} else if s < -1 {
			out[i] = -1
		}
	}
	return out
}

// Concat 将多条采样序列按顺序拼接
func Concat(tracks ...[]float64) []float64 {
	total := 0
	for _, tr := range tracks {
		total += len(tr)
	}
	if total == 0 {
		return nil
	}

	out := make([]float64, 0, total)
	for _, tr := range tracks {
		out = append(out, tr...)
	}
	return out
}

// PCM16Stereo 把单声道采样编码为 16 位小端双声道字节流
// 左右声道写入相同内容
func PCM16Stereo(samples []float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		lo := byte(v)
		hi := byte(uint16(v) >> 8)
		out[i*4+0] = lo
		out[i*4+1] = hi
		out[i*4+2] = lo
		out[i*4+3] = hi
	}
	return out
}
