package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
)

// overlayAlpha returns the status overlay opacity for a given idle duration.
// Full opacity while activity is recent, then a stepped ramp down to zero.
// Pure function of elapsed time so redraws stay deterministic.
func overlayAlpha(elapsed time.Duration) float64 {
	if elapsed < overlayHoldDuration {
		return 1.0
	}
	fadeElapsed := elapsed - overlayHoldDuration
	if fadeElapsed >= overlayFadeDuration {
		return 0.0
	}
	step := int(int64(fadeElapsed) * overlayFadeSteps / int64(overlayFadeDuration))
	return 1.0 - float64(step)/float64(overlayFadeSteps)
}

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
	fontSource  *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatal(err)
	}

	return &Renderer{
		renderState: renderState,
		fontSource:  s,
	}
}

func (r *Renderer) font(size float64) *text.GoTextFace {
	return &text.GoTextFace{
		Source: r.fontSource,
		Size:   size,
	}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	// Clear the screen since SetScreenClearedEveryFrame(false) is enabled
	screen.Clear()

	img := r.renderState.GetCurrentImage()
	if img == nil {
		return
	}

	r.drawImageCentered(screen, img)

	r.drawStatusOverlay(screen)

	if r.renderState.IsShowingInfo() {
		r.drawInfoOverlay(screen)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if msg := r.renderState.GetOverlayMessage(); msg != "" {
		r.drawOverlayMessage(screen, msg)
	}
}

// drawImageCentered scales the image to fit the screen and centers it.
// Windowed mode never scales small images up; fullscreen always fills.
func (r *Renderer) drawImageCentered(screen *ebiten.Image, img *ebiten.Image) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	scale := 1.0
	if r.renderState.IsFullscreen() || iw > w || ih > h {
		scale = math.Min(w/iw, h/ih)
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(w/2-iw*scale/2, h/2-ih*scale/2)

	screen.DrawImage(img, op)
}

// drawStatusOverlay draws the position / mode / auto-advance line at the
// bottom left, fading out after a few seconds of inactivity.
func (r *Renderer) drawStatusOverlay(screen *ebiten.Image) {
	elapsed := r.renderState.Now().Sub(r.renderState.GetLastActivityTime())
	alpha := overlayAlpha(elapsed)
	if alpha <= 0 {
		return
	}

	statusFont := r.font(r.renderState.GetFontSize())

	parts := []string{
		fmt.Sprintf("%d / %d", r.renderState.GetCurrentIndex()+1, r.renderState.GetTotalImageCount()),
		r.renderState.GetModeLabel(),
	}
	if imagePath, ok := r.renderState.GetCurrentImagePath(); ok {
		if folder := imagePath.FolderName(); folder != "" {
			parts = append(parts, folder)
		}
	}
	if r.renderState.IsAutoAdvancing() {
		parts = append(parts, fmt.Sprintf("Auto %.1fs", r.renderState.GetAdvanceInterval().Seconds()))
	}
	statusText := strings.Join(parts, "  |  ")

	textWidth, textHeight := text.Measure(statusText, statusFont, 0)

	padding := 10.0
	textX := padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	bg := bgColorLight
	bg.A = uint8(float64(bg.A) * alpha)
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bg)

	DrawTextWithAlpha(screen, statusText, statusFont, textX, textY, colorWhite, alpha)
}

// actionsList returns the union of bound actions, sorted for stable display
func (r *Renderer) actionsList() []string {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()

	actionSet := make(map[string]bool)
	for action := range keybindings {
		actionSet[action] = true
	}
	for action := range mousebindings {
		actionSet[action] = true
	}

	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	padding := 40.0

	helpFont := r.font(r.renderState.GetFontSize())

	actions := r.actionsList()
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	actionDescriptions := GetActionDescriptions()

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	titleY := padding + 30
	DrawText(screen, "HELP:", helpFont, padding+20, titleY, colorWhite)

	lineHeight := helpFont.Size * 1.5
	currentY := titleY + lineHeight*1.5

	// Measure columns so bindings and descriptions line up
	maxActionWidth := 0.0
	maxInputWidth := 0.0
	for _, action := range actions {
		keys := keybindings[action]
		mouseActions := mousebindings[action]
		if len(keys) == 0 && len(mouseActions) == 0 {
			continue
		}

		actionWidth, _ := text.Measure(action, helpFont, 0)
		maxActionWidth = math.Max(maxActionWidth, actionWidth)

		inputWidth, _ := text.Measure(combinedBindings(keys, mouseActions), helpFont, 0)
		maxInputWidth = math.Max(maxInputWidth, inputWidth)
	}

	actionColumnX := padding + 40
	inputColumnX := actionColumnX + maxActionWidth + 30
	descColumnX := inputColumnX + maxInputWidth + 30

	for _, action := range actions {
		keys := keybindings[action]
		mouseActions := mousebindings[action]
		if len(keys) == 0 && len(mouseActions) == 0 {
			continue
		}
		if currentY > h-padding-lineHeight*3 {
			break
		}

		DrawText(screen, action, helpFont, actionColumnX, currentY, colorLightBlue)

		inputX := inputColumnX
		if len(keys) > 0 {
			keysList := strings.Join(keys, ", ")
			DrawText(screen, keysList, helpFont, inputX, currentY, colorYellow)
			keysWidth, _ := text.Measure(keysList, helpFont, 0)
			inputX += keysWidth
		}
		if len(keys) > 0 && len(mouseActions) > 0 {
			DrawText(screen, " | ", helpFont, inputX, currentY, colorWhite)
			sepWidth, _ := text.Measure(" | ", helpFont, 0)
			inputX += sepWidth
		}
		if len(mouseActions) > 0 {
			DrawText(screen, strings.Join(mouseActions, ", "), helpFont, inputX, currentY, colorCyan)
		}

		if description := actionDescriptions[action]; description != "" {
			DrawText(screen, description, helpFont, descColumnX, currentY, colorGray)
		}

		currentY += lineHeight
	}

	currentY += lineHeight

	configStatus := r.renderState.GetConfigStatus()
	statusColor := colorGreen
	if configStatus.Status != "OK" {
		statusColor = colorOrange
	}
	DrawText(screen, fmt.Sprintf("Config Status: %s", configStatus.Status), helpFont, padding+20, currentY, statusColor)
	currentY += lineHeight

	for i, warning := range configStatus.Warnings {
		if i >= 2 { // Limit to first 2 warnings to avoid clutter
			break
		}
		if len(warning) > 50 {
			warning = warning[:47] + "..."
		}
		DrawText(screen, "- "+warning, helpFont, padding+40, currentY, colorLightRed)
		currentY += lineHeight
	}
}

func combinedBindings(keys, mouseActions []string) string {
	var parts []string
	if len(keys) > 0 {
		parts = append(parts, strings.Join(keys, ", "))
	}
	if len(mouseActions) > 0 {
		parts = append(parts, strings.Join(mouseActions, ", "))
	}
	return strings.Join(parts, " | ")
}

func (r *Renderer) drawInfoOverlay(screen *ebiten.Image) {
	infoFont := r.font(r.renderState.GetFontSize())

	lines := []string{
		fmt.Sprintf("Image: %d / %d", r.renderState.GetCurrentIndex()+1, r.renderState.GetTotalImageCount()),
		fmt.Sprintf("Mode: %s", r.renderState.GetModeLabel()),
		fmt.Sprintf("Sort: %s", r.renderState.GetSortMethodName()),
	}

	if imagePath, ok := r.renderState.GetCurrentImagePath(); ok {
		lines = append(lines, fmt.Sprintf("Path: %s", imagePath.Path))
	}

	if r.renderState.IsAutoAdvancing() {
		lines = append(lines, fmt.Sprintf("Auto-advance: on (%.1fs)", r.renderState.GetAdvanceInterval().Seconds()))
	} else {
		lines = append(lines, fmt.Sprintf("Auto-advance: off (%.1fs)", r.renderState.GetAdvanceInterval().Seconds()))
	}

	stats := r.renderState.GetPreloadStats()
	lines = append(lines, fmt.Sprintf("Preloaded: %d (failed: %d)", stats.LoadedCount, stats.FailedCount))

	lineHeight := infoFont.Size * 1.5
	maxWidth := 0.0
	for _, line := range lines {
		lineWidth, _ := text.Measure(line, infoFont, 0)
		maxWidth = math.Max(maxWidth, lineWidth)
	}

	padding := 10.0
	bgPadding := 8.0
	boxHeight := float64(len(lines))*lineHeight + bgPadding*2

	DrawFilledRect(screen, padding, padding, maxWidth+bgPadding*2, boxHeight, bgColorMedium)

	currentY := padding + bgPadding
	for _, line := range lines {
		DrawText(screen, line, infoFont, padding+bgPadding, currentY, colorWhite)
		currentY += lineHeight
	}
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image, message string) {
	messageFont := r.font(r.renderState.GetFontSize())

	textWidth, textHeight := text.Measure(message, messageFont, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}
