package clean

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	imageRefRe      = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	altSuffixRe     = regexp.MustCompile(`\s+image$`)
	altWordRe       = regexp.MustCompile(`\bimage\b\s+`)
	dotSpaceRe      = regexp.MustCompile(`\.\s+`)

	// Logos and icons show up as images with telltale names, tiny pixel
	// dimensions, or empty alt text, in both Markdown and raw <img> form.
	logoRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)!\[[^\]]*(?:logo|icon|badge|emblem|symbol)[^\]]*\]\([^)]*\)`),
		regexp.MustCompile(`(?i)!\[[^\]]*\]\([^)]*(?:logo|icon|badge|emblem|symbol)[^)]*\)`),
		regexp.MustCompile(`(?i)!\[[^\]]*\]\([^)]*(?:width|height)="?(?:20|30|40|50|60|70|80|90|100)"?[^)]*\)`),
		regexp.MustCompile(`!\[\]\([^)]*\)`),
		regexp.MustCompile(`(?i)<img[^>]*?(?:logo|icon|badge|emblem|symbol)[^>]*?>`),
		regexp.MustCompile(`(?i)<img[^>]*?(?:width|height)="?(?:20|30|40|50|60|70|80|90|100)"?[^>]*?>`),
	}
)

// cleanImageRefs normalizes Markdown image references: generic "image"
// alt-text noise is dropped and the URL loses its query and tracking
// parameters.
func cleanImageRefs(text string) string {
	return imageRefRe.ReplaceAllStringFunc(text, func(ref string) string {
		m := imageRefRe.FindStringSubmatch(ref)
		if m == nil {
			return ref
		}
		alt := strings.TrimSpace(m[1])
		alt = altSuffixRe.ReplaceAllString(alt, "")
		alt = altWordRe.ReplaceAllString(alt, "")

		src := strings.TrimSpace(m[2])
		if u, err := url.Parse(src); err == nil && u.Scheme != "" {
			src = u.Scheme + "://" + u.Host + u.Path
		}
		src = dotSpaceRe.ReplaceAllString(src, ".")
		src = strings.ReplaceAll(src, " ", "%20")

		return "![" + alt + "](" + src + ")"
	})
}

// stripLogos removes images identified as logos or icons.
func stripLogos(text string) string {
	for _, re := range logoRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
