// Package page turns image metadata into the wikitext description page that
// accompanies each uploaded file.
package page

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/metadata"
)

// Options carries the user-configured knobs the builder needs, resolved
// once at batch start.
type Options struct {
	// Language is the code used to tag the description, e.g. "en".
	Language string
	// AuthorPattern may contain $USERNAME and $CREATOR placeholders.
	AuthorPattern string
	// Username is the wiki account performing the upload.
	Username string
	// TitleInDescription prepends the title to the description when both
	// are present.
	TitleInDescription bool
	// CategorizeCamera enables the camera/lens/exposure category lines.
	CategorizeCamera bool
	// DescTemplatePrefixes are the template names whose tags belong in the
	// description field.
	DescTemplatePrefixes []string
	// Tool names this uploader in the trailing marker category, including
	// its version, e.g. "dtMediaWiki 1.0.0".
	Tool string
}

// BuildPage assembles the full wikitext document for one image.
func BuildPage(img metadata.Image, opts Options) string {
	tags := ClassifyTags(img.Tags, opts.DescTemplatePrefixes)

	lines := []string{
		"=={{int:filedesc}}==",
		"{{Information",
		fmt.Sprintf("|description={{%s|1=%s}}%s", opts.Language, Description(img, opts.TitleInDescription), tags.DescriptionTemplates),
		"|date=" + ReformatDate(img.DateTaken),
		"|source={{own}}",
		"|author=" + resolveAuthor(opts.AuthorPattern, opts.Username, img.Creator),
		"|other fields=" + tags.OtherFields,
		"}}",
	}

	if img.HasCoordinates() {
		lines = append(lines, fmt.Sprintf("{{Location |1=%s |2=%s }}",
			formatCoord(*img.Latitude), formatCoord(*img.Longitude)))
	}

	lines = append(lines,
		"=={{int:license-header}}==",
		"{{self|"+img.Rights+"}}",
	)

	lines = append(lines, tags.Categories...)
	lines = append(lines, tags.Freeform...)

	if opts.CategorizeCamera {
		lines = append(lines, cameraCategories(img)...)
	}

	lines = append(lines, "[[Category:Uploaded with "+opts.Tool+"]]")

	return strings.Join(lines, "\n")
}

// Description resolves the human-readable description for the page: the
// title and description joined as "title: description" when the option is on
// and both are present, otherwise whichever of the two is non-empty, with
// the description preferred.
func Description(img metadata.Image, titleInDescription bool) string {
	if titleInDescription && img.Title != "" && img.Description != "" {
		return img.Title + ": " + img.Description
	}
	if img.Description != "" {
		return img.Description
	}
	return img.Title
}

func resolveAuthor(pattern, username, creator string) string {
	if creator == "" {
		creator = username
	}
	return strings.NewReplacer("$USERNAME", username, "$CREATOR", creator).Replace(pattern)
}

// cameraCategories synthesizes Commons categories from the Exif fields: a
// "Taken with" category for the camera (and lens, if known), plus
// independent aperture, focal length and ISO categories for whichever
// fields are present.
func cameraCategories(img metadata.Image) []string {
	var lines []string

	if img.ExifModel != "" {
		camera := capitalize(img.ExifMaker) + " " + img.ExifModel
		if img.ExifLens != "" {
			camera += " and " + img.ExifLens
		}
		lines = append(lines, "[[Category:Taken with "+camera+"]]")
	}

	if img.ExifAperture != nil {
		lines = append(lines, "[[Category:F-number f/"+FormatFloat(*img.ExifAperture)+"]]")
	}
	if v, ok := parseFloat(img.ExifFocalLength); ok {
		lines = append(lines, "[[Category:Lens focal length "+FormatFloat(v)+" mm]]")
	}
	if v, ok := parseFloat(img.ExifISO); ok {
		lines = append(lines, "[[Category:ISO speed rating "+FormatFloat(v)+"]]")
	}

	return lines
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
