package systems

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/gonewx/bowling/pkg/components"
	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/ecs"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/gonewx/bowling/pkg/physics"
	"github.com/gonewx/bowling/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 渲染配色
var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 26, A: 255}
	floorColor      = color.RGBA{R: 34, G: 34, B: 42, A: 255}
	laneWoodColor   = color.RGBA{R: 186, G: 140, B: 92, A: 255}
	laneEdgeColor   = color.RGBA{R: 110, G: 76, B: 44, A: 255}
	foulLineColor   = color.RGBA{R: 200, G: 64, B: 64, A: 255}
	pinBodyColor    = color.RGBA{R: 240, G: 238, B: 228, A: 255}
	pinStripeColor  = color.RGBA{R: 204, G: 56, B: 56, A: 255}
	pinDownColor    = color.RGBA{R: 110, G: 106, B: 100, A: 255}
	ballColor       = color.RGBA{R: 64, G: 96, B: 204, A: 255}
	arrowIdleColor  = color.RGBA{R: 96, G: 212, B: 96, A: 255}
	arrowFullColor  = color.RGBA{R: 224, G: 64, B: 48, A: 255}
	chargeBarBack   = color.RGBA{R: 44, G: 44, B: 54, A: 255}
)

// RenderSystem 把物理世界绘制成伪 3D 画面
//
// 固定机位在出手点正后上方，沿 +Z 朝瓶架看。所有世界坐标经
// 针孔投影压到屏幕：横向按 x·f/z 缩放，纵向以地平线为基准按
// 相机高度差缩放。球道按屏幕扫描行填充梯形，球瓶画成带瓶头
// 的短线段，球是实心圆。动体按纵深从远到近绘制保证遮挡正确。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	session       *game.GameSession
	cfg           *config.BowlingConfig
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - em: 实体管理器
//   - session: 游戏会话，提供阶段、得分与蓄力状态
//   - cfg: 保龄球配置，提供球道尺寸等静态参数
//
// 返回:
//   - *RenderSystem: 渲染系统实例
func NewRenderSystem(em *ecs.EntityManager, session *game.GameSession, cfg *config.BowlingConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		session:       session,
		cfg:           cfg,
	}
}

// Draw 绘制完整一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	vector.DrawFilledRect(screen, 0, config.HorizonY,
		config.GameWindowWidth, config.GameWindowHeight-config.HorizonY, floorColor, false)

	s.drawLane(screen)
	s.drawBodies(screen)
	s.drawAimArrow(screen)
	s.drawHUD(screen)
}

// project 把世界坐标投影到屏幕
//
// 返回屏幕坐标、到相机的纵深缩放因子（像素/米）以及该点是否
// 位于近裁剪面之外。相机后方或过近的点不可绘制。
func (s *RenderSystem) project(p physics.Vec3) (sx, sy, scale float64, ok bool) {
	relZ := p.Z - config.CameraZ
	if relZ < config.NearClip {
		return 0, 0, 0, false
	}
	scale = config.FocalLength / relZ
	sx = config.GameWindowWidth/2 + p.X*scale
	sy = config.HorizonY + (config.CameraHeight-p.Y)*scale
	return sx, sy, scale, true
}

// drawLane 按屏幕扫描行填充球道梯形并描出边线
//
// 梯形的左右边在世界里是直线，投影后仍是直线，因此逐行宽度
// 可以直接在屏幕空间线性插值，透视是精确的。
func (s *RenderSystem) drawLane(screen *ebiten.Image) {
	halfW := s.cfg.Lane.Width / 2
	farL := physics.Vec3{X: -halfW, Y: 0, Z: s.cfg.Lane.Length}
	farR := physics.Vec3{X: halfW, Y: 0, Z: s.cfg.Lane.Length}
	nearL := physics.Vec3{X: -halfW, Y: 0, Z: 0}
	nearR := physics.Vec3{X: halfW, Y: 0, Z: 0}

	fxl, fy, _, okFar := s.project(farL)
	fxr, _, _, _ := s.project(farR)
	nxl, ny, _, okNear := s.project(nearL)
	nxr, _, _, _ := s.project(nearR)
	if !okFar || !okNear || ny <= fy {
		return
	}

	top := int(math.Ceil(fy))
	bottom := int(math.Floor(ny))
	if bottom > config.GameWindowHeight {
		bottom = config.GameWindowHeight
	}
	for y := top; y <= bottom; y++ {
		t := (float64(y) - fy) / (ny - fy)
		xl := fxl + (nxl-fxl)*t
		xr := fxr + (nxr-fxr)*t
		vector.DrawFilledRect(screen, float32(xl), float32(y), float32(xr-xl), 1, laneWoodColor, false)
	}

	// 球道两侧边线
	vector.StrokeLine(screen, float32(fxl), float32(fy), float32(nxl), float32(ny), 2, laneEdgeColor, true)
	vector.StrokeLine(screen, float32(fxr), float32(fy), float32(nxr), float32(ny), 2, laneEdgeColor, true)

	// 犯规线画在出手点处
	foulL, foulY, _, ok1 := s.project(physics.Vec3{X: -halfW, Y: 0, Z: s.cfg.Lane.BallStartZ})
	foulR, _, _, ok2 := s.project(physics.Vec3{X: halfW, Y: 0, Z: s.cfg.Lane.BallStartZ})
	if ok1 && ok2 {
		vector.StrokeLine(screen, float32(foulL), float32(foulY), float32(foulR), float32(foulY), 2, foulLineColor, true)
	}
}

// drawBodies 按纵深从远到近绘制球瓶和球
func (s *RenderSystem) drawBodies(screen *ebiten.Image) {
	type drawable struct {
		depth float64
		draw  func()
	}
	var items []drawable

	for _, id := range ecs.GetEntitiesWith1[*components.PinComponent](s.entityManager) {
		pin, ok := ecs.GetComponent[*components.PinComponent](s.entityManager, id)
		if !ok || pin.Body == nil {
			continue
		}
		p := pin
		items = append(items, drawable{
			depth: p.Body.Position.Z,
			draw:  func() { s.drawPin(screen, p) },
		})
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BallComponent](s.entityManager) {
		ball, ok := ecs.GetComponent[*components.BallComponent](s.entityManager, id)
		if !ok || ball.Body == nil {
			continue
		}
		b := ball
		items = append(items, drawable{
			depth: b.Body.Position.Z,
			draw:  func() { s.drawBall(screen, b) },
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		it.draw()
	}
}

// drawPin 绘制单只球瓶：瓶身沿姿态轴的粗线，外加瓶头圆和颈部色环
func (s *RenderSystem) drawPin(screen *ebiten.Image, pin *components.PinComponent) {
	up := pin.Body.UpVector()
	center := pin.Body.Position
	base := center.Minus(up.Times(pin.HalfHeight))
	top := center.Plus(up.Times(pin.HalfHeight))

	bx, by, bscale, okBase := s.project(base)
	tx, ty, _, okTop := s.project(top)
	if !okBase || !okTop {
		return
	}

	bodyColor := pinBodyColor
	stripe := pinStripeColor
	if s.session.PinFallen(pin.Index) {
		bodyColor = pinDownColor
		stripe = pinDownColor
	}

	width := float32(s.cfg.Physics.Pin.Radius * 2 * bscale)
	if width < 2 {
		width = 2
	}
	vector.StrokeLine(screen, float32(bx), float32(by), float32(tx), float32(ty), width, bodyColor, true)

	// 颈部色环画在瓶身上四分之三处
	nx := bx + (tx-bx)*0.75
	nyy := by + (ty-by)*0.75
	vector.DrawFilledCircle(screen, float32(nx), float32(nyy), width*0.45, stripe, true)
	vector.DrawFilledCircle(screen, float32(tx), float32(ty), width*0.55, bodyColor, true)
}

// drawBall 绘制保龄球
func (s *RenderSystem) drawBall(screen *ebiten.Image, ball *components.BallComponent) {
	cx, cy, scale, ok := s.project(ball.Body.Position)
	if !ok {
		return
	}
	r := float32(ball.Radius * scale)
	if r < 2 {
		r = 2
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, ballColor, true)
}

// drawAimArrow 绘制瞄准箭头
//
// 箭头从球心沿锁定方向伸出，长度和颜色随蓄力比例渐变。
func (s *RenderSystem) drawAimArrow(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.AimIndicatorComponent](s.entityManager) {
		indicator, ok := ecs.GetComponent[*components.AimIndicatorComponent](s.entityManager, id)
		if !ok || !indicator.Visible {
			continue
		}

		origin := s.ballAnchor()
		dir := game.LaunchDirection(indicator.Angle)
		length := config.AimArrowMinLength +
			(config.AimArrowMaxLength-config.AimArrowMinLength)*indicator.Ratio
		end := origin.Plus(dir.Times(length))

		x0, y0, _, ok0 := s.project(origin)
		x1, y1, _, ok1 := s.project(end)
		if !ok0 || !ok1 {
			continue
		}

		clr := lerpColor(arrowIdleColor, arrowFullColor, indicator.Ratio)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 3, clr, true)

		// 箭头尖的两翼在屏幕空间直接回折
		dx, dy := x1-x0, y1-y0
		dist := math.Hypot(dx, dy)
		if dist < 1 {
			continue
		}
		ux, uy := dx/dist, dy/dist
		px, py := -uy, ux
		const wing = 10.0
		vector.StrokeLine(screen, float32(x1), float32(y1),
			float32(x1-ux*wing+px*wing*0.6), float32(y1-uy*wing+py*wing*0.6), 3, clr, true)
		vector.StrokeLine(screen, float32(x1), float32(y1),
			float32(x1-ux*wing-px*wing*0.6), float32(y1-uy*wing-py*wing*0.6), 3, clr, true)
	}
}

// ballAnchor 返回箭头起点：优先用球的实时位置，刚体缺失时退回出手点
func (s *RenderSystem) ballAnchor() physics.Vec3 {
	if body := s.session.BallBody(); body != nil {
		return body.Position
	}
	x, y, z := s.cfg.BallStartPosition()
	return physics.Vec3{X: x, Y: y, Z: z}
}

// drawHUD 绘制得分、阶段、蓄力条和操作提示
func (s *RenderSystem) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("SCORE %d   PINS %d/%d", s.session.Score(), s.session.FallenCount(), config.PinCount),
		config.ScoreTextX, config.ScoreTextY)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("PHASE %s", s.session.Phase()),
		config.PhaseTextX, config.PhaseTextY)

	vector.DrawFilledRect(screen, config.ChargeBarX, config.ChargeBarY,
		config.ChargeBarWidth, config.ChargeBarHeight, chargeBarBack, false)
	ratio := s.session.ChargeRatio()
	if ratio > 0 {
		clr := lerpColor(arrowIdleColor, arrowFullColor, ratio)
		vector.DrawFilledRect(screen, config.ChargeBarX, config.ChargeBarY,
			float32(config.ChargeBarWidth*ratio), config.ChargeBarHeight, clr, false)
	}

	hint := "SPACE/CLICK hold to charge, release to roll   R new rack   M sound   ESC menu"
	if utils.IsMobile() {
		hint = "touch and hold to charge, release to roll"
	}
	ebitenutil.DebugPrintAt(screen, hint, config.HintTextX, config.HintTextY)
}

// lerpColor 在两个颜色之间线性插值，t 取值 0~1
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}
