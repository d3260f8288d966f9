// Package export drives one export batch: eligibility filtering, page
// generation, upload and the final summary.
package export

import (
	"fmt"
	"log"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/metadata"
)

// Batch tracks upload accounting for one export run. The total is captured
// once when filtering, so images dropped before upload still count against
// the summary denominator.
type Batch struct {
	total     int
	succeeded int
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// FilterEligible drops images that cannot be exported: ones without a
// rights statement and ones with neither a title nor a description. Each
// drop is logged. The original count is remembered for the summary.
func (b *Batch) FilterEligible(images []metadata.Image) []metadata.Image {
	b.total = len(images)

	eligible := make([]metadata.Image, 0, len(images))
	for _, img := range images {
		if img.Rights == "" {
			log.Printf("Skipping %s: no rights", img.Filename)
			continue
		}
		if img.Title == "" && img.Description == "" {
			log.Printf("Skipping %s: no meaningful title/description", img.Filename)
			continue
		}
		eligible = append(eligible, img)
	}
	return eligible
}

// Record accumulates the outcome of one upload.
func (b *Batch) Record(img metadata.Image, err error) {
	if err == nil {
		b.succeeded++
	}
}

// Succeeded returns the number of successful uploads so far.
func (b *Batch) Succeeded() int {
	return b.succeeded
}

// Summary reports the batch outcome against the total captured at filter
// time.
func (b *Batch) Summary() string {
	return fmt.Sprintf("exported %d/%d images", b.succeeded, b.total)
}
