package page

import "strings"

// Placeholders accepted in the user-configured naming pattern.
const (
	placeholderTitle       = "$TITLE"
	placeholderFileName    = "$FILE_NAME"
	placeholderDescription = "$DESCRIPTION"
)

// ResolveName resolves the target page name from the configured pattern and
// the image's title, description and base filename. The caller appends the
// file extension.
//
// When both title and description are available each placeholder is
// substituted independently; placeholders absent from the input stay in the
// pattern literally. When one of the two is missing and the pattern asks for
// both, the pattern is abandoned for the fallback form
// "<title><description> (<fileBase>)". Otherwise the single available value
// stands in for both placeholders.
func ResolveName(pattern, title, description, fileBase string) string {
	switch {
	case title != "" && description != "":
		return strings.NewReplacer(
			placeholderTitle, title,
			placeholderFileName, fileBase,
			placeholderDescription, description,
		).Replace(pattern)

	case strings.Contains(pattern, placeholderTitle) && strings.Contains(pattern, placeholderDescription):
		return title + description + " (" + fileBase + ")"

	default:
		value := title
		if value == "" {
			value = description
		}
		return strings.NewReplacer(
			placeholderTitle, value,
			placeholderFileName, fileBase,
			placeholderDescription, value,
		).Replace(pattern)
	}
}
