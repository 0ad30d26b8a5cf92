package application

import "regexp"

// mentionPattern matches @handle tokens in free text. Handle bodies are
// alphanumerics and hyphens; they cannot start or end with a hyphen, and a
// single character is a valid handle. The leading group rejects tokens glued
// to an underscore, backtick, or alphanumeric (email addresses, code spans).
// The handle itself is in the second capturing group.
var mentionPattern = regexp.MustCompile("(^|[^_`[:alnum:]])@([[:alnum:]](?:[[:alnum:]-]*[[:alnum:]])?)")

// ExtractMentions returns the handles mentioned in text, deduplicated and
// ordered by first occurrence. Pure and total: empty input yields nil.
func ExtractMentions(text string) []string {
	if text == "" {
		return nil
	}

	var handles []string
	seen := make(map[string]struct{})

	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		handle := m[2]
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		handles = append(handles, handle)
	}

	return handles
}
