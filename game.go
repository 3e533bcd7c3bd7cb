package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// How long transient overlay messages stay on screen
const overlayMessageDuration = 2 * time.Second

// Game wires navigation, timing and input together and implements
// ebiten.Game plus the RenderState / InputActions interfaces.
type Game struct {
	config       Config
	configResult ConfigLoadResult

	catalog      *Catalog
	navigator    *Navigator
	imageManager ImageManager
	renderer     *Renderer
	inputHandler *InputHandler

	frameTimer   *FrameTimer
	autoAdvancer *AutoAdvancer
	debouncer    *InputDebouncer

	fullscreen   bool
	showHelp     bool
	showInfo     bool
	lastActivity time.Time

	overlayMessage       string
	overlayMessageHandle TimerHandle
}

// NewGame creates the game from a collected image list and a loaded config
func NewGame(images []ImagePath, configResult ConfigLoadResult) *Game {
	config := configResult.Config

	g := &Game{
		config:       config,
		configResult: configResult,
		catalog:      NewCatalog(images, config.SortMethod),
		imageManager: NewImageManager(config.CacheSize, config.PreloadCount, config.PreloadEnabled),
		frameTimer:   NewFrameTimer(time.Now()),
		fullscreen:   config.Fullscreen,
	}
	g.lastActivity = g.frameTimer.Now()

	g.navigator = NewNavigator(g.catalog, nil, g.onNavigate)
	g.autoAdvancer = NewAutoAdvancer(g.frameTimer, config.Interval(), g.advanceForward)
	g.debouncer = NewInputDebouncer(g.frameTimer, config.DebounceWindow(), g.advanceForward, g.advanceBackward)

	keybindingManager := NewKeybindingManager(config.Keybindings)
	mousebindingManager := NewMousebindingManager(config.Mousebindings, config.MouseSettings)
	g.inputHandler = NewInputHandler(g, g, keybindingManager, mousebindingManager)

	g.renderer = NewRenderer(g)

	g.imageManager.SetPaths(g.catalog.Images())

	if config.RandomMode {
		g.navigator.SetMode(ModeRandom)
	}
	if config.AutoAdvance {
		g.autoAdvancer.Start()
	}

	g.imageManager.StartPreload(g.navigator.CurrentIndex(), NavigationForward)

	return g
}

// onNavigate runs once per displayed image change
func (g *Game) onNavigate(img ImagePath, modeLabel string) {
	g.markActivity()
	g.imageManager.StartPreload(g.navigator.CurrentIndex(), g.navigator.LastDirection())
}

func (g *Game) markActivity() {
	g.lastActivity = g.frameTimer.Now()
}

// advanceForward is shared by the debouncer and the auto-advance timer
func (g *Game) advanceForward() {
	if err := g.navigator.AdvanceForward(); err != nil {
		log.Printf("Warning: Advance failed: %v", err)
		g.ShowOverlayMessage("Random mode unavailable")
	}
}

func (g *Game) advanceBackward() {
	if err := g.navigator.AdvanceBackward(); err != nil {
		log.Printf("Warning: Advance failed: %v", err)
		g.ShowOverlayMessage("Random mode unavailable")
	}
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	g.frameTimer.Tick(time.Now())
	g.inputHandler.HandleInput()
	return nil
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// InputActions implementation

func (g *Game) Exit() {
	if !g.fullscreen {
		g.config.WindowWidth, g.config.WindowHeight = ebiten.WindowSize()
	}
	g.config.Fullscreen = g.fullscreen
	g.config.SortMethod = g.catalog.SortMethod()
	g.config.RandomMode = g.navigator.Mode() == ModeRandom
	g.config.AutoAdvance = g.autoAdvancer.Running()
	g.config.IntervalMs = int(g.autoAdvancer.Period() / time.Millisecond)
	saveConfig(g.config)

	g.imageManager.StopPreload()
	os.Exit(0)
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
	g.markActivity()
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
	g.markActivity()
}

func (g *Game) ToggleFullscreen() {
	if !g.fullscreen {
		g.config.WindowWidth, g.config.WindowHeight = ebiten.WindowSize()
	}
	g.fullscreen = !g.fullscreen
	ebiten.SetFullscreen(g.fullscreen)
	g.markActivity()
}

func (g *Game) NavigateNext() {
	g.markActivity()
	g.debouncer.Handle(ChannelForward, g.frameTimer.Now())
}

func (g *Game) NavigatePrevious() {
	g.markActivity()
	g.debouncer.Handle(ChannelBackward, g.frameTimer.Now())
}

func (g *Game) JumpToImage(idx int) {
	g.markActivity()
	g.navigator.JumpTo(idx)
}

func (g *Game) ToggleRandomMode() {
	if g.navigator.Mode() == ModeRandom {
		g.navigator.SetMode(ModeSequential)
		// Leaving random mode re-sorts the catalog
		g.imageManager.SetPaths(g.catalog.Images())
		g.ShowOverlayMessage("Sequential mode")
	} else {
		g.navigator.SetMode(ModeRandom)
		g.ShowOverlayMessage("Random mode")
	}
	g.markActivity()
}

func (g *Game) ToggleAutoAdvance() {
	if g.autoAdvancer.Running() {
		g.autoAdvancer.Stop()
		g.ShowOverlayMessage("Auto-advance off")
	} else {
		g.autoAdvancer.Start()
		g.ShowOverlayMessage(fmt.Sprintf("Auto-advance on (%.1fs)", g.autoAdvancer.Period().Seconds()))
	}
	g.markActivity()
}

func (g *Game) SpeedUp() {
	g.autoAdvancer.SetPeriod(g.autoAdvancer.Period() - advancePeriodStep)
	g.ShowOverlayMessage(fmt.Sprintf("Interval: %.1fs", g.autoAdvancer.Period().Seconds()))
	g.markActivity()
}

func (g *Game) SlowDown() {
	g.autoAdvancer.SetPeriod(g.autoAdvancer.Period() + advancePeriodStep)
	g.ShowOverlayMessage(fmt.Sprintf("Interval: %.1fs", g.autoAdvancer.Period().Seconds()))
	g.markActivity()
}

func (g *Game) CycleSortMethod() {
	next := nextSortMethod(g.catalog.SortMethod())
	g.catalog.SetSortMethod(next)
	g.imageManager.SetPaths(g.catalog.Images())
	g.ShowOverlayMessage(fmt.Sprintf("Sort: %s", GetSortStrategy(next).Name()))
	g.markActivity()
}

// ShowOverlayMessage displays a transient centered message, replacing any
// message already showing.
func (g *Game) ShowOverlayMessage(message string) {
	if g.overlayMessageHandle != nil {
		g.overlayMessageHandle.Cancel()
	}
	g.overlayMessage = message
	g.overlayMessageHandle = g.frameTimer.ScheduleAfter(overlayMessageDuration, func() {
		g.overlayMessage = ""
		g.overlayMessageHandle = nil
	})
}

// RenderState implementation

func (g *Game) Now() time.Time {
	return g.frameTimer.Now()
}

func (g *Game) GetCurrentImage() *ebiten.Image {
	return g.imageManager.GetImage(g.navigator.CurrentIndex())
}

func (g *Game) GetCurrentImagePath() (ImagePath, bool) {
	return g.navigator.CurrentImage()
}

func (g *Game) IsFullscreen() bool {
	return g.fullscreen
}

func (g *Game) GetModeLabel() string {
	return g.navigator.Mode().String()
}

func (g *Game) IsAutoAdvancing() bool {
	return g.autoAdvancer.Running()
}

func (g *Game) GetAdvanceInterval() time.Duration {
	return g.autoAdvancer.Period()
}

func (g *Game) GetCurrentIndex() int {
	return g.navigator.CurrentIndex()
}

func (g *Game) GetTotalImageCount() int {
	return g.catalog.Len()
}

func (g *Game) GetSortMethodName() string {
	return GetSortStrategy(g.catalog.SortMethod()).Name()
}

func (g *Game) IsShowingHelp() bool {
	return g.showHelp
}

func (g *Game) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Game) GetOverlayMessage() string {
	return g.overlayMessage
}

func (g *Game) GetLastActivityTime() time.Time {
	return g.lastActivity
}

func (g *Game) GetFontSize() float64 {
	return g.config.OverlayFontSize
}

func (g *Game) GetConfigStatus() ConfigLoadResult {
	return g.configResult
}

func (g *Game) GetKeybindings() map[string][]string {
	return g.config.Keybindings
}

func (g *Game) GetMousebindings() map[string][]string {
	return g.config.Mousebindings
}

func (g *Game) GetPreloadStats() PreloadStats {
	return g.imageManager.GetPreloadStats()
}
