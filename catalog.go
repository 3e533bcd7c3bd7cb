package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// ImagePath names a displayable image: a plain file, or an entry inside an
// archive.
type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// FolderName returns the name of the directory containing the image, or the
// archive name for archive entries. Shown in the status overlay.
func (p ImagePath) FolderName() string {
	if p.ArchivePath != "" {
		return filepath.Base(p.ArchivePath)
	}
	return filepath.Base(filepath.Dir(p.Path))
}

// Catalog is the ordered collection of images backing navigation. It never
// reorders itself; RebuildSorted is requested by the Navigator when leaving
// Random mode.
type Catalog struct {
	images     []ImagePath
	sortMethod int
}

// NewCatalog creates a catalog sorted with the given method
func NewCatalog(images []ImagePath, sortMethod int) *Catalog {
	c := &Catalog{images: images, sortMethod: sortMethod}
	c.RebuildSorted()
	return c
}

// Len returns the number of images
func (c *Catalog) Len() int {
	return len(c.images)
}

// At returns the image at the given index
func (c *Catalog) At(idx int) (ImagePath, bool) {
	if idx < 0 || idx >= len(c.images) {
		return ImagePath{}, false
	}
	return c.images[idx], true
}

// Images returns the backing slice in catalog order
func (c *Catalog) Images() []ImagePath {
	return c.images
}

// SortMethod returns the active sort method id
func (c *Catalog) SortMethod() int {
	return c.sortMethod
}

// RebuildSorted re-sorts the catalog with the active sort strategy
func (c *Catalog) RebuildSorted() {
	c.images = GetSortStrategy(c.sortMethod).Sort(c.images)
}

// SetSortMethod switches the sort strategy and rebuilds the order
func (c *Catalog) SetSortMethod(sortMethod int) {
	c.sortMethod = sortMethod
	c.RebuildSorted()
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

func listImagesInZip(archivePath string) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

func listImagesInRar(archivePath string) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + header.Name,
				ArchivePath: archivePath,
				EntryPath:   header.Name,
			})
		}
	}
	return images, nil
}

func listImagesIn7z(archivePath string) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

func listArchiveImages(archivePath string) ([]ImagePath, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return listImagesInZip(archivePath)
	case ".rar":
		return listImagesInRar(archivePath)
	case ".7z":
		return listImagesIn7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(archivePath))
	}
}

// collectImages walks the given folders and files recursively and gathers
// every supported image, expanding archives into their entries. Each folder's
// and archive's contents are sorted with the given method; the folders
// themselves keep argument order.
func collectImages(args []string, sortMethod int) ([]ImagePath, error) {
	var list []ImagePath
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			var dirImages []ImagePath
			err := filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if fi.IsDir() {
					return nil
				}
				if isSupportedExt(path) {
					dirImages = append(dirImages, ImagePath{Path: path})
				} else if isArchiveExt(path) {
					archiveImages, err := listArchiveImages(path)
					if err != nil {
						log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
						return nil
					}
					dirImages = append(dirImages, GetSortStrategy(sortMethod).Sort(archiveImages)...)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			list = append(list, GetSortStrategy(sortMethod).Sort(dirImages)...)
		} else if isSupportedExt(p) {
			list = append(list, ImagePath{Path: p})
		} else if isArchiveExt(p) {
			archiveImages, err := listArchiveImages(p)
			if err != nil {
				log.Printf("Warning: Skipping problematic archive %s: %v", p, err)
				continue
			}
			list = append(list, GetSortStrategy(sortMethod).Sort(archiveImages)...)
		}
	}

	return list, nil
}
