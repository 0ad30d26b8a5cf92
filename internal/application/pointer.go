package application

import (
	"fmt"
	"regexp"

	"prherald/internal/domain/model"
)

// The thread pointer is persisted as two independent marker comments
// embedded in the PR body. The body field is the datastore: no local cache,
// no database, one extra read per event. Markers are order-insensitive and
// tolerant of surrounding content.
var (
	threadTSMarker = regexp.MustCompile(`<!--\s*slack-thread-ts:\s*([^\s>]+)\s*-->`)
	statusMarker   = regexp.MustCompile(`<!--\s*slack-status:\s*([a-z-]+)\s*-->`)
)

// ExtractPointer reads the thread pointer back out of a PR body. The thread
// timestamp marker decides presence; a missing or corrupt status marker
// falls back to review-pending rather than discarding the thread.
func ExtractPointer(body string) (model.ThreadPointer, bool) {
	ts := threadTSMarker.FindStringSubmatch(body)
	if ts == nil {
		return model.ThreadPointer{}, false
	}

	ptr := model.ThreadPointer{ThreadTS: ts[1], Status: model.StatusReviewPending}
	if m := statusMarker.FindStringSubmatch(body); m != nil {
		if status, ok := model.ParseStatus(m[1]); ok {
			ptr.Status = status
		}
	}

	return ptr, true
}

// UpsertPointer writes the pointer into a PR body, overwriting each marker
// independently and appending any marker not yet present. All other body
// content is preserved byte for byte.
func UpsertPointer(body string, ptr model.ThreadPointer) string {
	body = upsertMarker(body, threadTSMarker, fmt.Sprintf("<!-- slack-thread-ts: %s -->", ptr.ThreadTS))
	body = upsertMarker(body, statusMarker, fmt.Sprintf("<!-- slack-status: %s -->", ptr.Status))
	return body
}

// upsertMarker replaces the first match of pattern with marker, or appends
// the marker on its own line when absent.
func upsertMarker(body string, pattern *regexp.Regexp, marker string) string {
	if loc := pattern.FindStringIndex(body); loc != nil {
		return body[:loc[0]] + marker + body[loc[1]:]
	}
	if body == "" {
		return marker
	}
	return body + "\n\n" + marker
}

// StripMarkers removes both pointer markers from a body, for rendering the
// description excerpt without leaking persistence internals into chat.
func StripMarkers(body string) string {
	body = threadTSMarker.ReplaceAllString(body, "")
	return statusMarker.ReplaceAllString(body, "")
}
