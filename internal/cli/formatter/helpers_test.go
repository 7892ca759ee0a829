package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "0 B", Bytes(-3))
	assert.Equal(t, "512 B", Bytes(512))
	assert.Equal(t, "5.2 MB", Bytes(5<<20))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "60,000", stripANSI(Amount(60000)))
	assert.Equal(t, "-1,250.50", stripANSI(Amount(-1250.5)))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "value", Placeholder("value", "hint"))
	assert.Equal(t, "hint", stripANSI(Placeholder("   ", "hint")))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent("a\nb\n", "  "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "line one line two", Truncate("line one\nline two", 40))
	assert.Equal(t, "héllo…", Truncate("héllo wörld", 6))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("Settings", "content here")
	assert.Contains(t, result, "SETTINGS")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderAlignedTable(t *testing.T) {
	got := stripANSI(RenderAlignedTable(
		[]string{"NAME", "AMOUNT"},
		[][]string{{"a", "5"}, {"long name", "1,000"}},
		[]Align{AlignLeft, AlignRight},
	))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "NAME       AMOUNT", lines[0])
	assert.Equal(t, "a               5", lines[2])
	assert.Equal(t, "long name   1,000", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTree(t *testing.T) {
	got := stripANSI(RenderTree([]TreeItem{
		{Title: "Engineering", Detail: "2"},
		{Title: "CTO", Level: 1},
		{Title: "Developer", Level: 1, IsLast: true, Warn: true},
	}))
	assert.Contains(t, got, "├─ CTO")
	assert.Contains(t, got, "└─ ! Developer")
	assert.Contains(t, got, "[ 2 ]")
}
