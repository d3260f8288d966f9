package export

import (
	"fmt"
	"image"
	_ "image/jpeg" // register jpeg decoding
	_ "image/png"  // register png decoding
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff" // register tiff decoding
	_ "golang.org/x/image/webp" // register webp decoding
)

// allowedExtensions is the format allow-list the exporter accepts. The host
// is responsible for exporting into one of these formats.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// FileInfo describes one exported temp file.
type FileInfo struct {
	Format string
	Width  int
	Height int
}

// CheckFile verifies the exported file is present, carries an accepted
// extension and decodes as an image, returning its format and dimensions.
func CheckFile(path string) (*FileInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("unsupported file format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exported file: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exported file: %w", err)
	}

	return &FileInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
