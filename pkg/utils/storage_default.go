//go:build !android

package utils

// EnsureStorageDir 确保设置存储目录可用
// 非 Android 平台交由 gdata 自行创建目录，无需准备工作
func EnsureStorageDir() error {
	return nil
}
