package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/decker502/garden/pkg/config"
	"github.com/decker502/garden/pkg/embedded"
	"github.com/decker502/garden/pkg/game"
	"github.com/decker502/garden/pkg/types"
	"github.com/decker502/garden/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS

	// 每个世界单位对应的终端格数（字符格高约为宽的两倍）
	cellsPerUnitX = 4
	cellsPerUnitZ = 2
	plotHalfSize  = 1.0

	// 地块区域在屏幕上的偏移，为顶部状态栏留出空间
	boardOffsetX = 2
	boardOffsetY = 4
)

var (
	configPath = flag.String("config", embedded.DefaultGardenPath, "花园内容配置文件路径")
	logPath    = flag.String("log", "", "日志文件路径（默认丢弃日志，避免破坏终端画面）")
)

var (
	lockedStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(70, 70, 70))
	soilStyle   = tcell.StyleDefault.Background(tcell.NewRGBColor(121, 85, 58))
	deadStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 40, 30)).Background(tcell.NewRGBColor(121, 85, 58))
	cursorStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// stageGlyphs 各生长阶段在终端中的字符
var stageGlyphs = map[types.PlantStage]rune{
	types.StageSeed:       '.',
	types.StageGrowing:    'i',
	types.StageNeedsWater: '!',
	types.StageMature:     '*',
	types.StageDead:       'x',
}

// TermGarden 终端宿主：方向键在地块间移动光标，数字键切换工具，空格使用工具
type TermGarden struct {
	screen  tcell.Screen
	manager *game.GardenManager
	tools   *game.PlayerTools

	seedIDs   []string
	seedIndex int

	cursor     int // 当前选中的地块索引
	view       utils.ViewProjection
	lastAction string
}

// NewTermGarden 创建终端宿主，screen 必须已初始化
func NewTermGarden(screen tcell.Screen, cfg *config.GardenConfig) (*TermGarden, error) {
	manager, err := game.NewGardenManager(cfg)
	if err != nil {
		return nil, err
	}

	g := &TermGarden{
		screen:  screen,
		manager: manager,
		tools:   game.NewPlayerTools(manager),
		seedIDs: cfg.PlantTypeIDs(),
	}

	minX, minZ := math.MaxFloat64, math.MaxFloat64
	for _, plot := range manager.PlotViews() {
		minX = math.Min(minX, plot.Center.X-plotHalfSize)
		minZ = math.Min(minZ, plot.Center.Z-plotHalfSize)
	}
	// 地块区域左上角对齐到 (boardOffsetX, boardOffsetY)
	g.view = utils.ViewProjection{
		OriginX: boardOffsetX - minX*cellsPerUnitX,
		OriginY: boardOffsetY - minZ*cellsPerUnitZ,
		ScaleX:  cellsPerUnitX,
		ScaleZ:  cellsPerUnitZ,
	}
	return g, nil
}

// cellAt 世界坐标转换为屏幕格
func (g *TermGarden) cellAt(p utils.Vec3) (int, int) {
	return g.view.WorldToCell(p)
}

// moveCursor 移动到指定方向上最近的地块
func (g *TermGarden) moveCursor(dx, dz float64) {
	plots := g.manager.PlotViews()
	from := plots[g.cursor].Center
	dir := utils.V3(dx, 0, dz)

	best, bestDist := -1, math.MaxFloat64
	for i, plot := range plots {
		delta := plot.Center.Sub(from)
		if i == g.cursor || delta.Dot(dir) <= 0 {
			continue
		}
		if d := delta.Length(); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		g.cursor = best
	}
}

// useTool 对光标所在地块使用当前工具，视线从地块正上方垂直向下
func (g *TermGarden) useTool() bool {
	plot := g.manager.PlotViews()[g.cursor]
	ray := utils.NewRay(plot.PlantPosition.Add(utils.V3(0, 3, 0)), utils.V3(0, -1, 0))
	hits := []game.Hit{{Point: plot.PlantPosition, Plot: plot.ID}}

	ok := g.tools.Use(ray, hits)
	g.lastAction = fmt.Sprintf("%s on plot %d: %v", g.tools.CurrentTool(), plot.Index, ok)
	return ok
}

// handleInput 处理一个输入事件，返回 false 表示退出
func (g *TermGarden) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			g.moveCursor(-1, 0)
		case tcell.KeyRight:
			g.moveCursor(1, 0)
		case tcell.KeyUp:
			g.moveCursor(0, -1)
		case tcell.KeyDown:
			g.moveCursor(0, 1)
		case tcell.KeyTab:
			g.seedIndex = (g.seedIndex + 1) % len(g.seedIDs)
			g.tools.SelectSeed(g.seedIDs[g.seedIndex])
		case tcell.KeyEnter:
			g.useTool()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '1':
				g.tools.SelectTool(types.ToolShovel)
			case '2':
				g.tools.SelectTool(types.ToolSeedPacket)
			case '3':
				g.tools.SelectTool(types.ToolWateringCan)
			case 'h':
				g.moveCursor(-1, 0)
			case 'l':
				g.moveCursor(1, 0)
			case 'k':
				g.moveCursor(0, -1)
			case 'j':
				g.moveCursor(0, 1)
			case ' ':
				g.useTool()
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

// draw 从只读视图状态渲染整个画面
func (g *TermGarden) draw() {
	g.screen.Clear()

	for i, plot := range g.manager.PlotViews() {
		style := soilStyle
		if !plot.Unlocked {
			style = lockedStyle
		}
		x0, y0 := g.cellAt(plot.Center.Sub(utils.V3(plotHalfSize, 0, plotHalfSize)))
		x1, y1 := g.cellAt(plot.Center.Add(utils.V3(plotHalfSize, 0, plotHalfSize)))
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				g.screen.SetContent(x, y, ' ', nil, style)
			}
		}

		if plot.HasDeadPlant && !plot.Occupied {
			cx, cy := g.cellAt(plot.PlantPosition)
			g.screen.SetContent(cx, cy, 'x', nil, deadStyle)
		}
		if i == g.cursor {
			g.screen.SetContent(x0, y0, '[', nil, cursorStyle.Background(tcell.NewRGBColor(40, 40, 40)))
			g.screen.SetContent(x1-1, y0, ']', nil, cursorStyle.Background(tcell.NewRGBColor(40, 40, 40)))
		}
	}

	for _, plant := range g.manager.PlantViews() {
		x, y := g.cellAt(plant.Position)
		g.screen.SetContent(x, y, stageGlyphs[plant.Stage], nil, plantStyle(plant))
	}

	g.drawHUD()
	g.screen.Show()
}

// plantStyle 品种颜色按视图给出的比例变暗
func plantStyle(plant game.PlantView) tcell.Style {
	if plant.Stage == types.StageDead {
		return deadStyle
	}
	shade := 1 - plant.Darken
	c := plant.Color
	fg := tcell.NewRGBColor(int32(float64(c.R)*shade), int32(float64(c.G)*shade), int32(float64(c.B)*shade))
	return soilStyle.Foreground(fg).Bold(plant.Stage == types.StageMature)
}

func (g *TermGarden) drawHUD() {
	timer := g.manager.Timer()
	status := fmt.Sprintf("Score: %d  Time: %.0fs  Plots: %d/%d",
		g.manager.Score(), timer.Remaining(), g.manager.UnlockedPlotCount(), len(g.manager.Plots()))
	if timer.IsTimeUp() {
		status += "  TIME'S UP"
	}
	g.drawText(0, 0, status)
	g.drawText(0, 1, fmt.Sprintf("Tool: %s  Seed: %s  %s", g.tools.CurrentTool(), g.tools.SelectedSeed().Name(), g.lastAction))
	g.drawText(0, 2, "[arrows/hjkl] move [1/2/3] tool [Tab] seed [Space] use [q] quit")
}

func (g *TermGarden) drawText(x, y int, s string) {
	for i, r := range s {
		g.screen.SetContent(x+i, y, r, nil, hudStyle)
	}
}

// run 主循环：输入事件由独立 goroutine 读取，模拟在主循环中按实际经过时间推进
//
// 返回的 channel 在读取事件的 goroutine 退出时关闭；该 goroutine 可能阻塞在
// PollEvent 上，调用方需在 Fini 之后再等待它
func (g *TermGarden) run() <-chan struct{} {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	stopCh := make(chan struct{})
	pollDone := make(chan struct{})
	defer close(stopCh)
	go g.pollEvents(eventChan, stopCh, pollDone)

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return pollDone
			}

		case <-pollDone:
			return pollDone

		case now := <-ticker.C:
			g.manager.Tick(now.Sub(last).Seconds())
			last = now
			g.draw()
		}
	}
}

// pollEvents 读取输入事件，屏幕关闭、事件出错或收到停止信号时退出
func (g *TermGarden) pollEvents(eventChan chan<- tcell.Event, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, isErr := ev.(*tcell.EventError); isErr {
			return
		}
		select {
		case eventChan <- ev:
		case <-stopCh:
			return
		}
	}
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	cfg, err := config.LoadGardenConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load garden config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	g, err := NewTermGarden(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to create garden: %v\n", err)
		os.Exit(1)
	}
	pollDone := g.run()
	screen.Fini()
	<-pollDone
}
