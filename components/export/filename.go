package export

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the date suffix format of export filenames.
const DateLayout = "2006-01-02"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Stem derives a filename stem from a widget title: whitespace runs become
// underscores and "_data" is appended.
func Stem(title string) string {
	return whitespaceRun.ReplaceAllString(title, "_") + "_data"
}

// FileName returns "<stem>_<YYYY-MM-DD>.<ext>" using the UTC date of at.
// Path separators in the stem are replaced so the name stays a single segment.
func FileName(stem, ext string, at time.Time) string {
	stem = strings.NewReplacer("/", "-", `\`, "-").Replace(stem)
	ext = strings.TrimPrefix(ext, ".")
	return stem + "_" + at.UTC().Format(DateLayout) + "." + ext
}
