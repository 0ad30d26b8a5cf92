package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prherald/internal/domain/model"
)

func TestMatchOwnerPattern(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"star matches everything", "deep/nested/file.txt", "*", true},
		{"extension match", "src/main.go", "*.go", true},
		{"extension mismatch", "src/main.rs", "*.go", false},
		{"extension matches at any depth", "a/b/c/d.md", "*.md", true},
		{"directory prefix", "docs/guide/intro.md", "docs/", true},
		{"directory prefix exact dir", "docs", "docs/", true},
		{"directory prefix mismatch", "src/docs.go", "docs/", false},
		{"anchored exact path", "Makefile", "/Makefile", true},
		{"anchored as directory prefix", "build/ci/run.sh", "/build", true},
		{"anchored rejects suffix position", "tools/build", "/build", false},
		{"substring match", "internal/auth/token.go", "auth", true},
		{"substring mismatch", "internal/api/token.go", "auth", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchOwnerPattern(tt.path, tt.pattern))
		})
	}
}

func TestParseOwnershipRules(t *testing.T) {
	content := `# Fallback owners
* @org/core @alice

# Docs
docs/ @bob

*.go @carol
`

	t.Run("last rule wins reverses file order", func(t *testing.T) {
		rules := ParseOwnershipRules(content, model.LastRuleWins)

		require.Len(t, rules, 3)
		assert.Equal(t, "*.go", rules[0].Pattern)
		assert.Equal(t, "docs/", rules[1].Pattern)
		assert.Equal(t, "*", rules[2].Pattern)
		assert.Equal(t, []string{"org/core", "alice"}, rules[2].Owners)
	})

	t.Run("first rule wins keeps file order", func(t *testing.T) {
		rules := ParseOwnershipRules(content, model.FirstRuleWins)

		require.Len(t, rules, 3)
		assert.Equal(t, "*", rules[0].Pattern)
	})

	t.Run("empty and comment-only content", func(t *testing.T) {
		assert.Empty(t, ParseOwnershipRules("", model.LastRuleWins))
		assert.Empty(t, ParseOwnershipRules("# nothing\n\n", model.LastRuleWins))
	})

	t.Run("pattern without owners is skipped", func(t *testing.T) {
		assert.Empty(t, ParseOwnershipRules("*.go\n", model.LastRuleWins))
	})
}

func TestResolveOwners(t *testing.T) {
	// Reversed order, as produced by ParseOwnershipRules with LastRuleWins:
	// the specific *.go override is scanned before the catch-all.
	rules := []model.OwnershipRule{
		{Pattern: "*.go", Owners: []string{"carol"}},
		{Pattern: "docs/", Owners: []string{"bob"}},
		{Pattern: "*", Owners: []string{"alice"}},
	}

	t.Run("first match wins per file, union across files", func(t *testing.T) {
		owners := ResolveOwners(rules, []string{"main.go", "docs/intro.md", "README.md"})
		assert.Equal(t, []string{"carol", "bob", "alice"}, owners)
	})

	t.Run("deduplicates across files", func(t *testing.T) {
		owners := ResolveOwners(rules, []string{"a.go", "b.go"})
		assert.Equal(t, []string{"carol"}, owners)
	})

	t.Run("no rules yields empty set", func(t *testing.T) {
		assert.Empty(t, ResolveOwners(nil, []string{"main.go"}))
	})

	t.Run("no files yields empty set", func(t *testing.T) {
		assert.Empty(t, ResolveOwners(rules, nil))
	})
}

func TestLoadOwnershipRules(t *testing.T) {
	logger := slog.Default()

	t.Run("first candidate hit wins", func(t *testing.T) {
		host := &mockCodeHost{files: map[string]string{
			".github/CODEOWNERS": "* @alice\n",
			"docs/CODEOWNERS":    "* @bob\n",
		}}

		rules := LoadOwnershipRules(context.Background(), host, "org/repo", model.LastRuleWins, logger)

		require.Len(t, rules, 1)
		assert.Equal(t, []string{"alice"}, rules[0].Owners)
	})

	t.Run("no file anywhere yields no rules", func(t *testing.T) {
		host := &mockCodeHost{}
		assert.Empty(t, LoadOwnershipRules(context.Background(), host, "org/repo", model.LastRuleWins, logger))
	})
}
