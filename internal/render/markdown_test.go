package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"interview-stories/internal/domain"
)

func TestMarkdown_BoldKeywords(t *testing.T) {
	out, err := Markdown("I **led** the migration.")
	require.NoError(t, err)
	require.Contains(t, string(out), "<strong>led</strong>")
}

func TestMarkdown_StripsScripts(t *testing.T) {
	out, err := Markdown("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	require.NotContains(t, string(out), "<script")
}

func TestMarkdown_LinksAreNoReferrer(t *testing.T) {
	out, err := Markdown("see https://example.com")
	require.NoError(t, err)
	require.Contains(t, string(out), `href="https://example.com"`)
	require.Contains(t, string(out), "noreferrer")
}

func TestStoryPage_EscapesTitle(t *testing.T) {
	var buf bytes.Buffer
	err := StoryPage(&buf, domain.Story{
		Title:            "<b>Layoff</b> Story",
		ShortDescription: "short",
		Content:          "I **kept** the team together.",
		UpdatedAt:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	page := buf.String()
	require.True(t, strings.Contains(page, "&lt;b&gt;Layoff&lt;/b&gt; Story"))
	require.Contains(t, page, "<strong>kept</strong>")
}
