package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

// TestBaseName verifies the extension is stripped from the filename
func TestBaseName(t *testing.T) {
	img := Image{Filename: "IMG_0001.jpg"}
	if got := img.BaseName(); got != "IMG_0001" {
		t.Errorf("Expected IMG_0001, got %s", got)
	}
}

// TestBaseName_NoExtension verifies filenames without an extension pass through
func TestBaseName_NoExtension(t *testing.T) {
	img := Image{Filename: "sunset"}
	if got := img.BaseName(); got != "sunset" {
		t.Errorf("Expected sunset, got %s", got)
	}
}

// TestHasCoordinates verifies both coordinates must be present
func TestHasCoordinates(t *testing.T) {
	lat := 48.85
	lon := 2.35

	if (Image{}).HasCoordinates() {
		t.Error("Image without coordinates reported as having them")
	}
	if (Image{Latitude: &lat}).HasCoordinates() {
		t.Error("Latitude alone should not count as coordinates")
	}
	if !(Image{Latitude: &lat, Longitude: &lon}).HasCoordinates() {
		t.Error("Image with both coordinates reported as missing them")
	}
}

// TestLoadManifest verifies a host manifest is parsed in order
func TestLoadManifest(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "batch.json")

	data := `[
		{"path": "/tmp/export/a.jpg", "filename": "a.jpg", "title": "Sunset", "rights": "cc-by-sa-4.0"},
		{"path": "/tmp/export/b.png", "title": "Lake", "rights": "cc-by-sa-4.0", "tags": [{"name": "Category:Lakes"}]}
	]`
	if err := os.WriteFile(manifest, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	images, err := LoadManifest(manifest)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}

	if len(images) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(images))
	}
	if images[0].Title != "Sunset" {
		t.Errorf("Expected first image Sunset, got %s", images[0].Title)
	}
	// Filename falls back to the base of the path when omitted
	if images[1].Filename != "b.png" {
		t.Errorf("Expected fallback filename b.png, got %s", images[1].Filename)
	}
	if len(images[1].Tags) != 1 || images[1].Tags[0].Name != "Category:Lakes" {
		t.Errorf("Tags not preserved: %+v", images[1].Tags)
	}
}

// TestLoadManifest_MissingPath verifies entries without a file path are rejected
func TestLoadManifest_MissingPath(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "batch.json")

	if err := os.WriteFile(manifest, []byte(`[{"title": "No file"}]`), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	if _, err := LoadManifest(manifest); err == nil {
		t.Error("Expected an error for a manifest entry without a path")
	}
}
