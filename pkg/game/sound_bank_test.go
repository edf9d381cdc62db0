package game

import "testing"

// TestBuildSoundBank 测试所有音效都合成出非空的 PCM 数据
func TestBuildSoundBank(t *testing.T) {
	bank := buildSoundBank(48000)

	ids := []string{SoundLaunch, SoundPinFall, SoundRackReset, SoundChargeFull}
	for _, id := range ids {
		clip, ok := bank[id]
		if !ok {
			t.Errorf("sound %s missing from bank", id)
			continue
		}
		if len(clip) == 0 {
			t.Errorf("sound %s is empty", id)
			continue
		}
		// 16 位双声道：每帧 4 字节
		if len(clip)%4 != 0 {
			t.Errorf("sound %s length %d not frame aligned", id, len(clip))
		}
	}
}

// TestBuildSoundBankDistinctClips 测试各音效数据互不相同
func TestBuildSoundBankDistinctClips(t *testing.T) {
	bank := buildSoundBank(48000)

	if string(bank[SoundLaunch]) == string(bank[SoundPinFall]) {
		t.Error("launch and pin fall clips are identical")
	}
	if string(bank[SoundRackReset]) == string(bank[SoundChargeFull]) {
		t.Error("rack reset and charge full clips are identical")
	}
}
