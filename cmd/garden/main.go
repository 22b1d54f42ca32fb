package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/embedded"
	"github.com/decker502/garden/pkg/game"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	screenWidth  = 800
	screenHeight = 600

	// pixelsPerUnit 俯视图缩放：1 个世界单位对应的像素
	pixelsPerUnit = 60.0
	// plotHalfSize 地块半边长（世界单位，地块为 2x2）
	plotHalfSize = 1.0
	// cameraHeight 点击时构造的俯视视线起点高度
	cameraHeight = 3.0
	// spriteSize 植物精灵边长（像素）
	spriteSize = 48
)

var (
	configPath = flag.String("config", embedded.DefaultGardenPath, "花园内容配置文件路径")
	tps        = flag.Int("tps", 60, "每秒模拟帧数")
	verbose    = flag.Bool("verbose", false, "输出浇水诊断日志")
)

var (
	backgroundColor = color.RGBA{R: 86, G: 125, B: 70, A: 255}
	lockedPlotColor = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	soilColor       = color.RGBA{R: 121, G: 85, B: 58, A: 255}
	deadPlantColor  = color.RGBA{R: 92, G: 64, B: 51, A: 255}
	waterBarColor   = color.RGBA{R: 64, G: 156, B: 255, A: 255}
	hoverColor      = color.RGBA{R: 255, G: 255, B: 255, A: 160}
)

// spriteAllocator 表现层资源分配器：每株植物一张按品种颜色预绘制的精灵
type spriteAllocator struct {
	next    game.VisualHandle
	sprites map[game.VisualHandle]*ebiten.Image
}

func newSpriteAllocator() *spriteAllocator {
	return &spriteAllocator{
		next:    1,
		sprites: make(map[game.VisualHandle]*ebiten.Image),
	}
}

func (a *spriteAllocator) CreateVisual(view game.PlantView) game.VisualHandle {
	img := ebiten.NewImage(spriteSize, spriteSize)
	r := float32(spriteSize) / 2
	vector.DrawFilledCircle(img, r, r, r, view.Color, true)
	vector.DrawFilledCircle(img, r, r, r*0.3, color.RGBA{R: 250, G: 240, B: 200, A: 255}, true)

	h := a.next
	a.next++
	a.sprites[h] = img
	return h
}

func (a *spriteAllocator) ReleaseVisual(handle game.VisualHandle) {
	if img, ok := a.sprites[handle]; ok {
		img.Deallocate()
		delete(a.sprites, handle)
	}
}

// GardenGame ebiten 宿主：固定帧率推进模拟，鼠标点击转换为命中结果
type GardenGame struct {
	manager *game.GardenManager
	tools   *game.PlayerTools
	sprites *spriteAllocator
	hudFace text.Face

	seedIDs   []string
	seedIndex int

	view       utils.ViewProjection
	pointer    pointerState
	lastAction string
}

// NewGardenGame 加载配置并创建宿主
func NewGardenGame(path string) (*GardenGame, error) {
	cfg, err := config.LoadGardenConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load garden config: %w", err)
	}
	if *verbose {
		cfg.DebugWatering = true
	}

	sprites := newSpriteAllocator()
	manager, err := game.NewGardenManager(cfg, game.WithVisualAllocator(sprites))
	if err != nil {
		return nil, err
	}

	g := &GardenGame{
		manager: manager,
		tools:   game.NewPlayerTools(manager),
		sprites: sprites,
		hudFace: text.NewGoXFace(basicfont.Face7x13),
		seedIDs: cfg.PlantTypeIDs(),
	}
	g.centerCamera()
	return g, nil
}

// centerCamera 让所有地块居中显示
func (g *GardenGame) centerCamera() {
	minX, minZ := math.MaxFloat64, math.MaxFloat64
	maxX, maxZ := -math.MaxFloat64, -math.MaxFloat64
	for _, plot := range g.manager.PlotViews() {
		minX = math.Min(minX, plot.Center.X)
		maxX = math.Max(maxX, plot.Center.X)
		minZ = math.Min(minZ, plot.Center.Z)
		maxZ = math.Max(maxZ, plot.Center.Z)
	}
	g.view = utils.FitProjection(minX, maxX, minZ, maxZ, screenWidth, screenHeight, pixelsPerUnit, pixelsPerUnit)
}

// Update 推进一帧模拟并处理输入
func (g *GardenGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.tools.SelectTool(types.ToolShovel)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.tools.SelectTool(types.ToolSeedPacket)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		g.tools.SelectTool(types.ToolWateringCan)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.seedIndex = (g.seedIndex + 1) % len(g.seedIDs)
		g.tools.SelectSeed(g.seedIDs[g.seedIndex])
	}

	g.pointer = readPointer()
	if g.pointer.JustPressed {
		point := g.view.ScreenToWorld(g.pointer.X, g.pointer.Y)
		ray := utils.NewRay(utils.V3(point.X, cameraHeight, point.Z), utils.V3(0, -1, 0))

		ok := g.tools.Use(ray, g.hitsAt(point))
		g.lastAction = fmt.Sprintf("%s: %v", g.tools.CurrentTool(), ok)
	}

	g.manager.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

// hitsAt 模拟俯视视线的命中结果：先命中植物，再命中地块，最后是地面
func (g *GardenGame) hitsAt(point utils.Vec3) []game.Hit {
	var hits []game.Hit

	plantRadius := float64(spriteSize) / 2 / pixelsPerUnit
	for _, plant := range g.manager.PlantViews() {
		dx, dz := plant.Position.X-point.X, plant.Position.Z-point.Z
		if math.Hypot(dx, dz) <= plantRadius {
			hits = append(hits, game.Hit{Point: plant.Position, Visual: plant.Visual})
		}
	}

	for _, plot := range g.manager.PlotViews() {
		if math.Abs(plot.Center.X-point.X) <= plotHalfSize && math.Abs(plot.Center.Z-point.Z) <= plotHalfSize {
			surface := utils.V3(point.X, plot.PlantPosition.Y, point.Z)
			hits = append(hits, game.Hit{Point: surface, Plot: plot.ID})
		}
	}

	return append(hits, game.Hit{Point: point})
}

// Draw 从只读视图状态渲染
func (g *GardenGame) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	size := float32(plotHalfSize * 2 * pixelsPerUnit)
	for _, plot := range g.manager.PlotViews() {
		x, y := g.view.WorldToScreen(plot.Center)
		x0, y0 := float32(x-plotHalfSize*pixelsPerUnit), float32(y-plotHalfSize*pixelsPerUnit)

		c := soilColor
		if !plot.Unlocked {
			c = lockedPlotColor
		}
		vector.DrawFilledRect(screen, x0, y0, size, size, c, false)
		vector.StrokeRect(screen, x0, y0, size, size, 2, color.Black, false)

		// 开局残留的枯死植物
		if plot.HasDeadPlant && !plot.Occupied {
			vector.DrawFilledCircle(screen, float32(x), float32(y), 10, deadPlantColor, true)
		}
	}

	for _, plant := range g.manager.PlantViews() {
		g.drawPlant(screen, plant)
	}

	vector.StrokeCircle(screen, float32(g.pointer.X), float32(g.pointer.Y), 6, 1, hoverColor, true)

	g.drawHUD(screen)
}

func (g *GardenGame) drawPlant(screen *ebiten.Image, plant game.PlantView) {
	x, y := g.view.WorldToScreen(plant.Position)

	if plant.Stage == types.StageDead {
		vector.DrawFilledCircle(screen, float32(x), float32(y), spriteSize*0.4, deadPlantColor, true)
		return
	}

	sprite, ok := g.sprites.sprites[plant.Visual]
	if !ok {
		return
	}

	// 种子从 30% 大小开始，随生长进度放大
	scale := utils.Lerp(0.3, 1, utils.EaseOutCubic(plant.Growth))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-spriteSize/2, -spriteSize/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	shade := float32(1 - plant.Darken)
	op.ColorScale.Scale(shade, shade, shade, 1)
	screen.DrawImage(sprite, op)

	if plant.Stage == types.StageMature {
		barW := float32(spriteSize)
		bx, by := float32(x)-barW/2, float32(y)+spriteSize/2+4
		vector.DrawFilledRect(screen, bx, by, barW, 4, color.Black, false)
		vector.DrawFilledRect(screen, bx, by, barW*float32(plant.Water), 4, waterBarColor, false)
	}
	if plant.Stage == types.StageNeedsWater {
		ebitenutil.DebugPrintAt(screen, "!", int(x)-3, int(y)-spriteSize/2-16)
	}
}

func (g *GardenGame) drawHUD(screen *ebiten.Image) {
	timer := g.manager.Timer()
	lines := []string{
		fmt.Sprintf("Score: %d", g.manager.Score()),
		fmt.Sprintf("Time: %.0fs", timer.Remaining()),
		fmt.Sprintf("Tool: %s   Seed: %s", g.tools.CurrentTool(), g.tools.SelectedSeed().Name()),
		fmt.Sprintf("Plots: %d/%d   Mature: %d", g.manager.UnlockedPlotCount(), len(g.manager.Plots()), g.manager.MatureCount()),
		"[1] Shovel [2] Seeds [3] Water [Tab] Next seed [Esc] Quit",
	}
	if g.lastAction != "" {
		lines = append(lines, g.lastAction)
	}
	if timer.IsTimeUp() {
		lines = append(lines, "Time's up!")
	}

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, float64(10+i*16))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, g.hudFace, op)
	}
}

// Layout 返回逻辑屏幕尺寸
func (g *GardenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	g, err := NewGardenGame(*configPath)
	if err != nil {
		log.Fatalf("Failed to create garden: %v", err)
	}

	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Garden")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
