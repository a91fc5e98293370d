package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const drivePreviewFormat = "https://drive.google.com/file/d/%s/preview"

var driveFilePattern = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`)

// DriveFileID extracts the file id from a share link.
// It understands "/file/d/<id>/..." paths and "?id=<id>" queries.
func DriveFileID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if m := driveFilePattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if id := u.Query().Get("id"); id != "" {
		return id, true
	}
	return "", false
}

// PreviewURL rewrites a share link to its embeddable preview form.
// Links it does not recognise are returned unchanged.
func PreviewURL(raw string) string {
	id, ok := DriveFileID(raw)
	if !ok {
		return raw
	}
	return fmt.Sprintf(drivePreviewFormat, id)
}
