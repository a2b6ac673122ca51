package gallery

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"autogallery/pkg/logger"
)

var errNotDirectory = errors.New("not a directory")

// Image is one enumerated gallery file.
type Image struct {
	URL  string
	Name string
}

// FindImages lists the files directly inside loc.Dir whose extension is in
// extensions and, when prefixes is non-empty, whose name starts with one of them.
// The directory must resolve, after following symlinks, to a path inside baseFS.
// Any failure, including a containment violation, yields an empty result.
func FindImages(loc Location, extensions []string, baseFS string, prefixes []string) []Image {
	realBase, err := canonicalDir(baseFS)
	if err != nil {
		logger.Debug("Gallery base directory is not usable", map[string]interface{}{
			"base":  baseFS,
			"error": err.Error(),
		})
		return nil
	}

	realDir, err := canonicalDir(loc.Dir)
	if err != nil {
		logger.Debug("Gallery directory is not usable", map[string]interface{}{
			"dir":   loc.Dir,
			"error": err.Error(),
		})
		return nil
	}

	if !contains(realBase, realDir) {
		logger.Warn("Gallery directory escapes the base directory", map[string]interface{}{
			"base": realBase,
			"dir":  realDir,
		})
		return nil
	}

	entries, err := os.ReadDir(realDir)
	if err != nil {
		logger.Debug("Failed to read gallery directory", map[string]interface{}{
			"dir":   realDir,
			"error": err.Error(),
		})
		return nil
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	images := make([]Image, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if _, ok := allowed[ext]; !ok || ext == "" {
			continue
		}

		if !hasAnyPrefix(name, prefixes) {
			continue
		}

		images = append(images, Image{
			URL:  loc.URL + "/" + escapeSegment(name),
			Name: name,
		})
	}

	sortImages(images)
	return images
}

func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &os.PathError{Op: "stat", Path: resolved, Err: errNotDirectory}
	}

	return resolved, nil
}

// contains reports whether dir equals base or lies beneath it. Both paths must
// already be canonical. Case is folded on filesystems that ignore it.
func contains(base, dir string) bool {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		base = strings.ToLower(base)
		dir = strings.ToLower(dir)
	}

	rel, err := filepath.Rel(base, dir)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return false
	}
	return true
}

func hasAnyPrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}

	lower := strings.ToLower(name)
	filtered := false
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		filtered = true
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return !filtered
}
