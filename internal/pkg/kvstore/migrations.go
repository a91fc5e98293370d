package kvstore

import (
	"encoding/json"
	"strconv"
)

// DefaultMigrations upgrades the unversioned blobs written by the first
// front-end releases.
var DefaultMigrations = []Migration{
	{Prefix: "bookmarkedCourses:", From: 0, Apply: migrateLegacyBookmarks},
	{Prefix: "courseProgress:", From: 0, Apply: migrateLegacyProgress},
}

// Legacy bookmark sets were stored as a JSON array of string ids.
func migrateLegacyBookmarks(raw json.RawMessage) (json.RawMessage, error) {
	var ids []json.RawMessage
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(ids))
	for _, rawID := range ids {
		id, ok := parseID(rawID)
		if ok {
			out = append(out, id)
		}
	}
	return json.Marshal(out)
}

// Legacy progress maps used string ids in the viewed arrays; totals are kept.
// Courses keyed by something other than a numeric id are dropped.
func migrateLegacyProgress(raw json.RawMessage) (json.RawMessage, error) {
	var courses map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, err
	}
	for courseKey, fields := range courses {
		if _, err := strconv.ParseInt(courseKey, 10, 64); err != nil {
			delete(courses, courseKey)
			continue
		}
		for name, value := range fields {
			var arr []json.RawMessage
			if json.Unmarshal(value, &arr) != nil {
				continue
			}
			ids := make([]int64, 0, len(arr))
			for _, rawID := range arr {
				if id, ok := parseID(rawID); ok {
					ids = append(ids, id)
				}
			}
			encoded, err := json.Marshal(ids)
			if err != nil {
				return nil, err
			}
			fields[name] = encoded
		}
	}
	return json.Marshal(courses)
}

func parseID(raw json.RawMessage) (int64, bool) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
