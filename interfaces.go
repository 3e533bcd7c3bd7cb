package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Status overlay fade timing: the overlay shows at full opacity for
// overlayHoldDuration after the last activity, then ramps out over
// overlayFadeDuration in discrete steps.
const (
	overlayHoldDuration = 3500 * time.Millisecond
	overlayFadeDuration = 750 * time.Millisecond
	overlayFadeSteps    = 15
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Frame clock, shared with the timers
	Now() time.Time

	// Rendering data
	GetCurrentImage() *ebiten.Image
	GetCurrentImagePath() (ImagePath, bool)
	IsFullscreen() bool

	// Playback state
	GetModeLabel() string
	IsAutoAdvancing() bool
	GetAdvanceInterval() time.Duration
	GetCurrentIndex() int
	GetTotalImageCount() int
	GetSortMethodName() string

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetLastActivityTime() time.Time
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
	GetPreloadStats() PreloadStats
}

// InputActions provides action methods for the input handlers
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpToImage(idx int)

	// Playback
	ToggleRandomMode()
	ToggleAutoAdvance()
	SpeedUp()
	SlowDown()
	CycleSortMethod()

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetTotalImageCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsShowingHelp() bool
}
