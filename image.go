package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// NavigationDirection represents the direction of the last navigation,
// steering which neighbours get preloaded.
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// PreloadRequest asks the preload worker to warm the cache around an index
type PreloadRequest struct {
	Index     int
	Direction NavigationDirection
}

// PreloadStats provides statistics about preloading for the info overlay
type PreloadStats struct {
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

// PreloadManager loads upcoming images on a worker goroutine. It is the only
// concurrency in the program outside the ebiten loop; the navigation core
// stays single-threaded and only hands indices over a channel.
type PreloadManager struct {
	requestChan  chan PreloadRequest
	ctx          context.Context
	cancel       context.CancelFunc
	imageManager *DefaultImageManager
	mu           sync.RWMutex
	stats        PreloadStats
	maxPreload   int
	enabled      bool
}

// NewPreloadManager creates a PreloadManager and starts its worker
func NewPreloadManager(imageManager *DefaultImageManager, maxPreload int) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requestChan:  make(chan PreloadRequest, 16),
		ctx:          ctx,
		cancel:       cancel,
		imageManager: imageManager,
		maxPreload:   maxPreload,
		enabled:      true,
	}

	go pm.worker()

	return pm
}

// SetEnabled enables or disables preloading
func (pm *PreloadManager) SetEnabled(enabled bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = enabled
}

// IsEnabled returns whether preloading is enabled
func (pm *PreloadManager) IsEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// GetStats returns current preload statistics
func (pm *PreloadManager) GetStats() PreloadStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.stats
}

// Stop stops the preload worker
func (pm *PreloadManager) Stop() {
	pm.cancel()
}

// StartPreload queues preloading around the given index, discarding any
// pending requests first so stale positions are never warmed.
func (pm *PreloadManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if !pm.IsEnabled() {
		return
	}

drain:
	for {
		select {
		case <-pm.requestChan:
		default:
			break drain
		}
	}

	select {
	case pm.requestChan <- PreloadRequest{Index: currentIdx, Direction: direction}:
	default:
	}
}

func (pm *PreloadManager) worker() {
	for {
		select {
		case <-pm.ctx.Done():
			return
		case req := <-pm.requestChan:
			if pm.IsEnabled() {
				pm.processPreloadRequest(req)
			}
		}
	}
}

func (pm *PreloadManager) processPreloadRequest(req PreloadRequest) {
	pm.mu.Lock()
	pm.stats.LastDirection = req.Direction
	pm.mu.Unlock()

	count := pm.imageManager.GetPathsCount()
	if count == 0 {
		return
	}

	for _, idx := range pm.calculatePreloadIndices(req.Index, req.Direction, count) {
		select {
		case <-pm.ctx.Done():
			return
		default:
			pm.preloadImage(idx)
		}
	}
}

// calculatePreloadIndices picks neighbours in the movement direction, with
// wrap-around matching the slideshow's modulo navigation. A jump warms both
// sides.
func (pm *PreloadManager) calculatePreloadIndices(currentIdx int, direction NavigationDirection, count int) []int {
	var indices []int

	forward := func(n int) {
		for i := 1; i <= n; i++ {
			indices = append(indices, (currentIdx+i)%count)
		}
	}
	backward := func(n int) {
		for i := 1; i <= n; i++ {
			indices = append(indices, ((currentIdx-i)%count+count)%count)
		}
	}

	switch direction {
	case NavigationForward:
		forward(pm.maxPreload)
	case NavigationBackward:
		backward(pm.maxPreload)
	case NavigationJump:
		forward(pm.maxPreload / 2)
		backward(pm.maxPreload / 2)
	}

	return indices
}

func (pm *PreloadManager) preloadImage(idx int) {
	imagePath, ok := pm.imageManager.getPath(idx)
	if !ok {
		return
	}
	cacheKey := imagePath.Path

	if _, ok := pm.imageManager.cache.Get(cacheKey); ok {
		return
	}

	img, err := loadImage(imagePath)
	if err != nil {
		pm.mu.Lock()
		pm.stats.FailedCount++
		pm.mu.Unlock()

		// Cache an error placeholder instead of retrying on every pass
		img = CreateErrorImage(400, 300, imagePath.Path, err.Error())
	}

	pm.imageManager.cache.Add(cacheKey, img)

	pm.mu.Lock()
	pm.stats.LoadedCount++
	pm.mu.Unlock()
}

// ImageManager loads and caches decoded images
type ImageManager interface {
	GetImage(idx int) *ebiten.Image
	SetPaths(paths []ImagePath)
	GetPathsCount() int
	StartPreload(currentIdx int, direction NavigationDirection)
	StopPreload()
	GetPreloadStats() PreloadStats
}

// DefaultImageManager implements ImageManager with an LRU cache keyed by
// path, so catalog reordering never invalidates entries.
type DefaultImageManager struct {
	paths          []ImagePath
	cache          *lru.Cache[string, *ebiten.Image]
	mu             sync.RWMutex
	preloadManager *PreloadManager
}

// NewImageManager creates a DefaultImageManager with a preload worker
func NewImageManager(cacheSize, preloadCount int, preloadEnabled bool) ImageManager {
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, func(_ string, img *ebiten.Image) {
			if img != nil {
				img.Deallocate()
			}
		})
	}

	manager := &DefaultImageManager{
		cache: cache,
	}

	manager.preloadManager = NewPreloadManager(manager, preloadCount)
	manager.preloadManager.SetEnabled(preloadEnabled)

	return manager
}

func (m *DefaultImageManager) SetPaths(paths []ImagePath) {
	m.mu.Lock()
	m.paths = paths
	m.mu.Unlock()
	// Cache entries are keyed by path and stay valid across reorders
}

func (m *DefaultImageManager) GetPathsCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.paths)
}

func (m *DefaultImageManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if m.preloadManager != nil {
		m.preloadManager.StartPreload(currentIdx, direction)
	}
}

func (m *DefaultImageManager) StopPreload() {
	if m.preloadManager != nil {
		m.preloadManager.Stop()
	}
}

func (m *DefaultImageManager) GetPreloadStats() PreloadStats {
	if m.preloadManager != nil {
		return m.preloadManager.GetStats()
	}
	return PreloadStats{}
}

func (m *DefaultImageManager) GetImage(idx int) *ebiten.Image {
	imagePath, ok := m.getPath(idx)
	if !ok {
		return nil
	}
	cacheKey := imagePath.Path

	if img, ok := m.cache.Get(cacheKey); ok {
		return img
	}

	img, err := loadImage(imagePath)
	if err != nil {
		log.Printf("Error: Failed to load image [%d/%d] %s: %v",
			idx+1, m.GetPathsCount(), imagePath.Path, err)
		return CreateErrorImage(400, 300, imagePath.Path, err.Error())
	}

	m.cache.Add(cacheKey, img)
	return img
}

// getPath safely returns the ImagePath at index if available
func (m *DefaultImageManager) getPath(idx int) (ImagePath, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.paths) {
		return ImagePath{}, false
	}
	return m.paths[idx], true
}

// Image loading functions

func loadImageFromBytes(data []byte, path string) (*ebiten.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func loadImageFromZip(archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}

			return loadImageFromBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFromRar(archivePath, entryPath string) (*ebiten.Image, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == entryPath {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return loadImageFromBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFrom7z(archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}

			return loadImageFromBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImage(imagePath ImagePath) (*ebiten.Image, error) {
	if imagePath.ArchivePath == "" {
		f, err := os.Open(imagePath.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %v", imagePath.Path, err)
		}
		return ebiten.NewImageFromImage(img), nil
	}

	switch strings.ToLower(filepath.Ext(imagePath.ArchivePath)) {
	case ".zip":
		return loadImageFromZip(imagePath.ArchivePath, imagePath.EntryPath)
	case ".rar":
		return loadImageFromRar(imagePath.ArchivePath, imagePath.EntryPath)
	case ".7z":
		return loadImageFrom7z(imagePath.ArchivePath, imagePath.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(imagePath.ArchivePath))
	}
}
