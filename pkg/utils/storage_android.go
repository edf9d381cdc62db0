//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保设置存储目录可用
//
// gdata 在 Android 上落盘到 /data/data/{package}/ 下，但不会
// 预建子目录。在 gdata.Open 之前调用，把 saves 目录建好并
// 验证可写。
func EnsureStorageDir() error {
	pkg, err := androidPackageName()
	if err != nil {
		return fmt.Errorf("detect android package: %w", err)
	}

	savesDir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(savesDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", savesDir, err)
	}

	// 写探针验证目录真的可写
	probe := filepath.Join(savesDir, ".probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("%s is not writable: %w", savesDir, err)
	}
	os.Remove(probe)

	return nil
}

// androidPackageName 从 /proc/self/cmdline 读取应用包名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	// cmdline 以 null 结尾，截掉控制字节
	name := make([]byte, 0, len(data))
	for _, ch := range data {
		if ch == 0 || ch == '\n' {
			continue
		}
		name = append(name, ch)
	}
	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}

	return string(name), nil
}
