package storage

import (
	"fmt"
	"strings"
	"time"
)

// ObjectKey builds a storage key of the form
// "<folder>/20060102_150405_<name>". Spaces are replaced and anything outside
// a safe ASCII set is dropped so keys stay URL- and header-friendly.
func ObjectKey(folder string, filename string) string {
	name := sanitizeFilename(filename)
	if name == "" {
		name = "file"
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "videos"
	}

	return fmt.Sprintf("%s/%s_%s", folder, stamp, name)
}

func sanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(strings.TrimSpace(filename), " ", "_") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), ".")
}
