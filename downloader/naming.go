package downloader

import (
	"fmt"

	"github.com/echo360-dl/echo360/util"
)

// MaxTitleLength bounds the title part of a filename.
const MaxTitleLength = 150

// Filename names a lecture file: "[<course> - ]<date> - Lecture <number> [<title>]".
// The title is truncated before unsafe characters are replaced.
func Filename(courseID, date, number, title string) string {
	name := fmt.Sprintf("%s - Lecture %s [%s]", date, number, util.TruncateRunes(title, MaxTitleLength))
	if courseID != "" {
		name = courseID + " - " + name
	}
	return util.SanitizeFilename(name)
}
