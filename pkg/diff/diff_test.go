package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnifiedDiffIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("colors.background: #121212\ncolors.foreground: #e8eaed\n")
	assert.Empty(t, GenerateUnifiedDiff(content, content, "a", "b"))
}

func TestGenerateUnifiedDiffSingleLineChange(t *testing.T) {
	t.Parallel()

	before := []byte("theme: Dark\ncolors.background: #121212\nmode: dark\n")
	after := []byte("theme: Dark\ncolors.background: #0d0d0d\nmode: dark\n")

	result := GenerateUnifiedDiff(before, after, "12:00", "23:00")
	require.NotEmpty(t, result)

	assert.True(t, strings.HasPrefix(result, "--- 12:00\n+++ 23:00\n@@ -1,3 +1,3 @@\n"))
	assert.Contains(t, result, "\n theme: Dark\n")
	assert.Contains(t, result, "\n-colors.background: #121212\n")
	assert.Contains(t, result, "\n+colors.background: #0d0d0d\n")
	assert.Contains(t, result, "\n mode: dark\n")
}

func TestGenerateUnifiedDiffWholeLines(t *testing.T) {
	t.Parallel()

	before := []byte("a: 1\nb: 2\nc: 3\n")
	after := []byte("a: 1\nb: 20\nc: 3\n")

	result := GenerateUnifiedDiff(before, after, "x", "y")
	for _, line := range strings.Split(strings.TrimSuffix(result, "\n"), "\n")[3:] {
		assert.Contains(t, []string{" a: 1", "-b: 2", "+b: 20", " c: 3"}, line)
	}
}

func TestGenerateUnifiedDiffEmptyContent(t *testing.T) {
	t.Parallel()

	result := GenerateUnifiedDiff(nil, []byte("new content\n"), "before", "after")
	assert.Contains(t, result, "@@ -1,0 +1,1 @@")
	assert.Contains(t, result, "+new content\n")
}

func TestGenerateUnifiedDiffTruncation(t *testing.T) {
	t.Parallel()

	var before, after []string
	for i := 0; i < 11000; i++ {
		before = append(before, "expected line")
		if i%2 == 0 {
			after = append(after, "actual line")
		} else {
			after = append(after, "expected line")
		}
	}

	result := GenerateUnifiedDiff([]byte(strings.Join(before, "\n")), []byte(strings.Join(after, "\n")), "a", "b")
	assert.Contains(t, result, truncateMessage)
	assert.LessOrEqual(t, strings.Count(result, "\n"), maxDiffLines+1)
}

func TestChangedKeys(t *testing.T) {
	t.Parallel()

	before := "theme: Dark\ncolors.background: #121212\ncolors.custom.sidebar: #1e1e1e\n"
	after := "theme: Dark\ncolors.background: #0d0d0d\ncolors.custom.panel: #222222\n"

	changes := ChangedKeys(before, after)
	assert.Equal(t, []Change{
		{Key: "colors.background", Before: "#121212", After: "#0d0d0d"},
		{Key: "colors.custom.panel", After: "#222222"},
		{Key: "colors.custom.sidebar", Before: "#1e1e1e"},
	}, changes)

	assert.Empty(t, ChangedKeys(before, before))
}
