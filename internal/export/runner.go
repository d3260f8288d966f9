package export

import (
	"context"
	"errors"
	"log"
	"path/filepath"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/config"
	"github.com/vitaly-zdanevich/dtMediaWiki/internal/metadata"
	"github.com/vitaly-zdanevich/dtMediaWiki/internal/page"
	"github.com/vitaly-zdanevich/dtMediaWiki/internal/wiki"
)

// Uploader is the slice of the wiki client the runner needs.
type Uploader interface {
	Upload(ctx context.Context, localPath, pageName, pageText, comment string, overwrite bool) error
}

// Runner executes one export batch against an already authenticated client.
type Runner struct {
	Client Uploader
	Config *config.Config
	// Tool names this uploader in the page marker category, e.g.
	// "dtMediaWiki 1.0.0".
	Tool string
}

// Run processes the images sequentially: filter, build page, resolve name,
// upload, account. A failed upload never aborts the batch. Returns the
// summary line.
func (r *Runner) Run(ctx context.Context, images []metadata.Image) string {
	batch := NewBatch()
	eligible := batch.FilterEligible(images)

	opts := page.Options{
		Language:             r.Config.Export.Language,
		AuthorPattern:        r.Config.Export.AuthorPattern,
		Username:             r.Config.Wiki.Username,
		TitleInDescription:   r.Config.Export.TitleInDescription,
		CategorizeCamera:     r.Config.Export.CategorizeCamera,
		DescTemplatePrefixes: r.Config.Export.TemplatePrefixes(),
		Tool:                 r.Tool,
	}

	for _, img := range eligible {
		info, err := CheckFile(img.Path)
		if err != nil {
			log.Printf("Cannot upload %s: %v", img.Filename, err)
			batch.Record(img, err)
			continue
		}
		log.Printf("Exporting %s (%s, %dx%d)", img.Filename, info.Format, info.Width, info.Height)

		pageText := page.BuildPage(img, opts)
		pageName := r.resolvePageName(img)

		err = r.Client.Upload(ctx, img.Path, pageName, pageText, r.Config.Export.Comment, r.Config.Export.Overwrite)
		switch {
		case err == nil:
			log.Printf("Uploaded %s as %s", img.Filename, pageName)
		case errors.Is(err, wiki.ErrFileExists):
			log.Printf("Upload of %s failed: %v (enable overwrite to replace it)", img.Filename, err)
		default:
			log.Printf("Upload of %s failed: %v", img.Filename, err)
		}
		batch.Record(img, err)
	}

	return batch.Summary()
}

// resolvePageName resolves the target page name from the naming pattern and
// appends the extension of the exported temp file. An empty resolution falls
// back to the base filename, so the page name always has a base component.
func (r *Runner) resolvePageName(img metadata.Image) string {
	base := page.ResolveName(r.Config.Export.NamingPattern, img.Title, img.Description, img.BaseName())
	if base == "" {
		base = img.BaseName()
	}
	return base + filepath.Ext(img.Path)
}
