package application

import (
	"context"
	"log/slog"
	"strings"

	"prherald/internal/domain/model"
	"prherald/internal/domain/port/driven"
)

// ownershipFilePaths is the fixed candidate list probed for an ownership
// rules file; the first hit wins.
var ownershipFilePaths = []string{
	"CODEOWNERS",
	".github/CODEOWNERS",
	"docs/CODEOWNERS",
}

// MatchOwnerPattern reports whether path matches one ownership pattern.
//
// The pattern language is deliberately small, not full CODEOWNERS glob
// support. Precedence:
//   - "*" matches every file
//   - "*.ext" matches any path with that suffix
//   - "dir/" matches any path under that directory prefix
//   - "/exact" is anchored: the exact path or that path as a directory prefix
//   - anything else matches as a plain substring of the path
func MatchOwnerPattern(path, pattern string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(path, pattern[1:])
	case strings.HasSuffix(pattern, "/"):
		dir := strings.TrimSuffix(pattern, "/")
		return path == dir || strings.HasPrefix(path, dir+"/")
	case strings.HasPrefix(pattern, "/"):
		anchored := strings.TrimPrefix(pattern, "/")
		return path == anchored || strings.HasPrefix(path, anchored+"/")
	default:
		return strings.Contains(path, pattern)
	}
}

// ParseOwnershipRules parses CODEOWNERS-style content into an ordered rule
// list. Blank lines and comments are skipped; each remaining line is a
// pattern followed by one or more owners (leading @ stripped, org/team
// slugs kept opaque). With LastRuleWins the parsed list is reversed so that
// a plain first-match scan gives later file lines priority.
func ParseOwnershipRules(content string, order model.RuleOrder) []model.OwnershipRule {
	var rules []model.OwnershipRule

	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		owners := make([]string, 0, len(fields)-1)
		for _, owner := range fields[1:] {
			owners = append(owners, strings.TrimPrefix(owner, "@"))
		}
		rules = append(rules, model.OwnershipRule{Pattern: fields[0], Owners: owners})
	}

	if order != model.FirstRuleWins {
		for i, j := 0, len(rules)-1; i < j; i, j = i+1, j-1 {
			rules[i], rules[j] = rules[j], rules[i]
		}
	}

	return rules
}

// ResolveOwners computes the owner set for a change: for each file the first
// matching rule's owners are taken, and the per-file sets are unioned in
// order of first appearance. No rules or no match yields an empty result,
// never an error.
func ResolveOwners(rules []model.OwnershipRule, files []string) []string {
	var owners []string
	seen := make(map[string]struct{})

	for _, file := range files {
		for _, rule := range rules {
			if !MatchOwnerPattern(file, rule.Pattern) {
				continue
			}
			for _, owner := range rule.Owners {
				if _, ok := seen[owner]; ok {
					continue
				}
				seen[owner] = struct{}{}
				owners = append(owners, owner)
			}
			break
		}
	}

	return owners
}

// LoadOwnershipRules probes the candidate ownership-file paths on the code
// host and parses the first file found. A missing file or a read failure
// degrades to no rules.
func LoadOwnershipRules(ctx context.Context, host driven.CodeHost, repoFullName string, order model.RuleOrder, logger *slog.Logger) []model.OwnershipRule {
	for _, path := range ownershipFilePaths {
		content, err := host.GetFileContent(ctx, repoFullName, path)
		if err != nil {
			logger.Warn("ownership file read failed",
				"repo", repoFullName,
				"path", path,
				"error", err,
			)
			continue
		}
		if content == "" {
			continue
		}

		rules := ParseOwnershipRules(content, order)
		logger.Debug("ownership rules loaded", "path", path, "rules", len(rules))
		return rules
	}

	return nil
}
