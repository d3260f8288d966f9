package page

import (
	"strings"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/metadata"
)

// Classified is the result of partitioning an image's tags. Each tag lands
// in at most one bucket; tags that match nothing are dropped.
type Classified struct {
	// DescriptionTemplates collects tags that are description templates for
	// one of the configured prefixes, concatenated verbatim.
	DescriptionTemplates string
	// OtherFields collects {{Information field|...}} / {{InFi|...}} tags,
	// concatenated verbatim.
	OtherFields string
	// Categories holds Category: tags wrapped as [[...]] links.
	Categories []string
	// Freeform holds the remaining {{...}} tags verbatim.
	Freeform []string
}

// ClassifyTags partitions tags by lexical prefix matching, preserving host
// order within each bucket. Tags consumed by the first pass (description
// templates and information fields) are excluded from the category/freeform
// pass.
func ClassifyTags(tags []metadata.Tag, descPrefixes []string) Classified {
	var c Classified
	consumed := make(map[string]bool)

	for _, tag := range tags {
		if matchesPrefix(tag.Name, descPrefixes) {
			c.DescriptionTemplates += tag.Name
			consumed[tag.Name] = true
			continue
		}
		if strings.HasPrefix(tag.Name, "{{Information field|") || strings.HasPrefix(tag.Name, "{{InFi|") {
			c.OtherFields += tag.Name
			consumed[tag.Name] = true
		}
	}

	for _, tag := range tags {
		if consumed[tag.Name] {
			continue
		}
		switch {
		case strings.HasPrefix(tag.Name, "Category:"):
			c.Categories = append(c.Categories, "[["+tag.Name+"]]")
		case strings.HasPrefix(tag.Name, "{{"):
			c.Freeform = append(c.Freeform, tag.Name)
		}
	}

	return c
}

func matchesPrefix(name string, descPrefixes []string) bool {
	for _, prefix := range descPrefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(name, "{{"+prefix+"|") {
			return true
		}
	}
	return false
}
