package config

// 窗口与逻辑屏幕尺寸
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 540
)

// 伪 3D 投影参数
// 固定机位在球道正后上方，朝 +Z 看向瓶架
const (
	// CameraHeight 相机离地高度（米）
	CameraHeight = 2.0
	// CameraZ 相机在球道纵深轴上的位置（米），负值在出手点之后
	CameraZ = -3.0
	// FocalLength 投影焦距（像素）
	FocalLength = 520.0
	// HorizonY 地平线在屏幕上的高度（像素）
	HorizonY = 140.0
	// NearClip 最近可投影距离（米），小于它的点不绘制
	NearClip = 0.5
)

// HUD 布局
const (
	// ScoreTextX 得分文本位置
	ScoreTextX = 16
	ScoreTextY = 16

	// PhaseTextX 阶段提示文本位置
	PhaseTextX = 16
	PhaseTextY = 32

	// ChargeBarX 蓄力条位置与尺寸
	ChargeBarX      = 16
	ChargeBarY      = 56
	ChargeBarWidth  = 180
	ChargeBarHeight = 14

	// HintTextX 操作提示文本位置（靠屏幕底部）
	HintTextX = 16
	HintTextY = GameWindowHeight - 32
)

// 瞄准箭头渲染参数
const (
	// AimArrowMinLength 未蓄力时的箭头长度（米）
	AimArrowMinLength = 1.2
	// AimArrowMaxLength 满蓄力时的箭头长度（米）
	AimArrowMaxLength = 3.2
)
