package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <image|folder|archive> ...\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	randomFlag := flag.Bool("random", false, "start in random mode")
	autoFlag := flag.Bool("auto", false, "start with auto-advance running")
	intervalFlag := flag.Int("interval", 0, "auto-advance interval in milliseconds (0 = config value)")
	fullscreenFlag := flag.Bool("fullscreen", false, "start in fullscreen")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	result := loadConfig()
	if *randomFlag {
		result.Config.RandomMode = true
	}
	if *autoFlag {
		result.Config.AutoAdvance = true
	}
	if *intervalFlag > 0 {
		result.Config.IntervalMs = *intervalFlag
		if d := result.Config.Interval(); d < minAdvancePeriod {
			result.Config.IntervalMs = int(minAdvancePeriod / time.Millisecond)
		} else if d > maxAdvancePeriod {
			result.Config.IntervalMs = int(maxAdvancePeriod / time.Millisecond)
		}
	}
	if *fullscreenFlag {
		result.Config.Fullscreen = true
	}

	if err := InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}

	images, err := collectImages(flag.Args(), result.Config.SortMethod)
	if err != nil {
		log.Fatalf("Failed to collect images: %v", err)
	}
	if len(images) == 0 {
		log.Fatal("No displayable images found")
	}

	game := NewGame(images, result)

	ebiten.SetWindowTitle("sv")
	ebiten.SetWindowSize(result.Config.WindowWidth, result.Config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if result.Config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
