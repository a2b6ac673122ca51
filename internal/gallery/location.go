package gallery

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DigitBucket collects folders whose name does not start with an ASCII letter.
	DigitBucket = "0-9"

	defaultTitle = "Gallery"
)

var dotSlashRun = regexp.MustCompile(`\.+/`)

// Location binds a gallery directory on disk to its public URL and display title.
type Location struct {
	Dir   string
	URL   string
	Title string
}

// Bucket returns the upper-cased first letter of folderName, or DigitBucket when
// the name is empty or starts with anything other than an ASCII letter.
func Bucket(folderName string) string {
	if folderName == "" {
		return DigitBucket
	}

	first := folderName[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}
	if first >= 'A' && first <= 'Z' {
		return string(first)
	}
	return DigitBucket
}

// MapSlug resolves a slug through the alphabetic bucket layout:
// baseFS/<bucket>/<Folder-Name>.
func MapSlug(slug, baseFS, baseURL string) Location {
	folderName := SlugToFolderName(slug)
	bucket := Bucket(folderName)

	title := folderName
	if title == "" {
		title = defaultTitle
	}

	return Location{
		Dir:   filepath.Join(baseFS, bucket, folderName),
		URL:   baseURL + "/" + escapeSegment(bucket) + "/" + escapeSegment(folderName),
		Title: title,
	}
}

// ResolveFolder maps an explicit folder relative to the base directory. Runs of
// dots followed by a slash are stripped first; FindImages still re-checks that
// the result stays inside the base directory.
func ResolveFolder(folder, baseFS, baseURL string) Location {
	clean := strings.Trim(folder, "/")
	clean = dotSlashRun.ReplaceAllString(clean, "")

	segments := strings.Split(clean, "/")
	encoded := make([]string, len(segments))
	for i, segment := range segments {
		encoded[i] = escapeSegment(segment)
	}

	name := segments[len(segments)-1]
	title := titleCase(strings.ReplaceAll(name, "-", " "))
	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}

	return Location{
		Dir:   filepath.Join(baseFS, filepath.FromSlash(clean)),
		URL:   baseURL + "/" + strings.Join(encoded, "/"),
		Title: title,
	}
}
