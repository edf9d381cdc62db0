//go:build !mobile

// 非移动端构建的占位文件
//
// 移动端入口在 mobile.go 和 embed.go 中，仅在 -tags mobile
// 时参与编译。普通构建下这个包只需要能通过编译。
package mobile

// Dummy 空导出函数，让包在非移动端构建时也可被引用
func Dummy() {}
