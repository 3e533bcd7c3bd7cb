package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating fixture dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("creating fixture file: %v", err)
		}
	}
}

func writeZip(t *testing.T, path string, entries ...string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating zip fixture: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, entry := range entries {
		ew, err := w.Create(entry)
		if err != nil {
			t.Fatalf("adding zip entry: %v", err)
		}
		if _, err := ew.Write([]byte("x")); err != nil {
			t.Fatalf("writing zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing zip fixture: %v", err)
	}
}

func TestCollectImagesFromFolder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "img10.png", "img2.jpg", "img1.webp", "notes.txt")

	images, err := collectImages([]string{dir}, SortNatural)
	if err != nil {
		t.Fatalf("collectImages: %v", err)
	}

	want := []string{"img1.webp", "img2.jpg", "img10.png"}
	if len(images) != len(want) {
		t.Fatalf("got %d images, want %d: %v", len(images), len(want), pathsOf(images))
	}
	for i, name := range want {
		if filepath.Base(images[i].Path) != name {
			t.Errorf("images[%d] = %s, want %s", i, filepath.Base(images[i].Path), name)
		}
	}
}

func TestCollectImagesRecursesSubfolders(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "top.png", filepath.Join("sub", "nested.png"))

	images, err := collectImages([]string{dir}, SortNatural)
	if err != nil {
		t.Fatalf("collectImages: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2: %v", len(images), pathsOf(images))
	}
}

func TestCollectImagesExpandsZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "album.zip")
	writeZip(t, archive, "b.png", "a.jpg", "readme.txt")

	images, err := collectImages([]string{archive}, SortNatural)
	if err != nil {
		t.Fatalf("collectImages: %v", err)
	}

	if len(images) != 2 {
		t.Fatalf("got %d images, want 2: %v", len(images), pathsOf(images))
	}
	for _, img := range images {
		if img.ArchivePath != archive {
			t.Errorf("ArchivePath = %q, want %q", img.ArchivePath, archive)
		}
	}
	if images[0].EntryPath != "a.jpg" || images[1].EntryPath != "b.png" {
		t.Errorf("entries = %s, %s; want a.jpg, b.png", images[0].EntryPath, images[1].EntryPath)
	}
}

func TestCollectImagesSkipsBrokenArchive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "ok.png")
	if err := os.WriteFile(filepath.Join(dir, "broken.zip"), []byte("not a zip"), 0644); err != nil {
		t.Fatalf("creating broken archive: %v", err)
	}

	images, err := collectImages([]string{dir}, SortNatural)
	if err != nil {
		t.Fatalf("collectImages: %v", err)
	}
	if len(images) != 1 || filepath.Base(images[0].Path) != "ok.png" {
		t.Errorf("got %v, want just ok.png", pathsOf(images))
	}
}

func TestCollectImagesSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "one.png")

	images, err := collectImages([]string{filepath.Join(dir, "one.png")}, SortNatural)
	if err != nil {
		t.Fatalf("collectImages: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
}

func TestCollectImagesMissingPath(t *testing.T) {
	_, err := collectImages([]string{filepath.Join(t.TempDir(), "missing")}, SortNatural)
	if err == nil {
		t.Error("missing path did not return an error")
	}
}

func TestCatalogAt(t *testing.T) {
	c := NewCatalog(imagesOf("a.png", "b.png"), SortEntryOrder)

	if _, ok := c.At(-1); ok {
		t.Error("At(-1) reported ok")
	}
	if _, ok := c.At(2); ok {
		t.Error("At(len) reported ok")
	}
	if img, ok := c.At(1); !ok || img.Path != "b.png" {
		t.Errorf("At(1) = %v, %v", img, ok)
	}
}

func TestCatalogSetSortMethod(t *testing.T) {
	c := NewCatalog(imagesOf("img10.png", "img2.png"), SortSimple)
	if c.images[0].Path != "img10.png" {
		t.Fatalf("simple sort order wrong: %v", pathsOf(c.Images()))
	}

	c.SetSortMethod(SortNatural)
	if c.images[0].Path != "img2.png" {
		t.Errorf("natural re-sort order wrong: %v", pathsOf(c.Images()))
	}
	if c.SortMethod() != SortNatural {
		t.Errorf("SortMethod = %d, want Natural", c.SortMethod())
	}
}

func TestFolderName(t *testing.T) {
	tests := []struct {
		name string
		img  ImagePath
		want string
	}{
		{"plain file", ImagePath{Path: filepath.Join("photos", "trip", "a.png")}, "trip"},
		{"archive entry", ImagePath{Path: "album.zip:a.png", ArchivePath: "album.zip", EntryPath: "a.png"}, "album.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.img.FolderName(); got != tt.want {
				t.Errorf("FolderName = %q, want %q", got, tt.want)
			}
		})
	}
}
