// Package metadata exposes the per-image metadata the host application
// supplies for one export run. The exporter only reads these values; the
// host owns them.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Tag is a single keyword attached to an image. The name may encode a
// wikitext template invocation (starts with "{{"), a category marker
// (starts with "Category:"), or arbitrary text.
type Tag struct {
	Name string `json:"name"`
}

// Image holds the metadata of one exported image together with the path of
// the temporary file the host wrote to disk.
type Image struct {
	Path            string   `json:"path"`
	Filename        string   `json:"filename"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Creator         string   `json:"creator,omitempty"`
	Rights          string   `json:"rights"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	DateTaken       string   `json:"date_taken,omitempty"`
	ExifMaker       string   `json:"exif_maker,omitempty"`
	ExifModel       string   `json:"exif_model,omitempty"`
	ExifLens        string   `json:"exif_lens,omitempty"`
	ExifAperture    *float64 `json:"exif_aperture,omitempty"`
	ExifFocalLength string   `json:"exif_focal_length,omitempty"`
	ExifISO         string   `json:"exif_iso,omitempty"`
	Tags            []Tag    `json:"tags,omitempty"`
}

// BaseName returns the image filename without its extension.
func (img Image) BaseName() string {
	return strings.TrimSuffix(img.Filename, filepath.Ext(img.Filename))
}

// HasCoordinates reports whether both latitude and longitude are set.
func (img Image) HasCoordinates() bool {
	return img.Latitude != nil && img.Longitude != nil
}

// TagNames returns the tag names in host order.
func (img Image) TagNames() []string {
	names := make([]string, len(img.Tags))
	for i, t := range img.Tags {
		names[i] = t.Name
	}
	return names
}

// LoadManifest reads the JSON manifest the host writes for one export run:
// an ordered array of images, each with the path of its exported temp file.
func LoadManifest(path string) ([]Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var images []Image
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	for i, img := range images {
		if img.Path == "" {
			return nil, fmt.Errorf("manifest entry %d has no file path", i)
		}
		if img.Filename == "" {
			images[i].Filename = filepath.Base(img.Path)
		}
	}

	return images, nil
}
