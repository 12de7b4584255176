package output

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePatch = `diff --git a/file.txt b/file.txt
index e69de29..d95f3ad 100644
--- a/file.txt
+++ b/file.txt
@@ -0,0 +1 @@
+content
`

func TestHighlightDiff(t *testing.T) {
	t.Run("empty patch passes through", func(t *testing.T) {
		require.Equal(t, "", HighlightDiff(""))
	})

	t.Run("NO_COLOR disables highlighting", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		require.Equal(t, samplePatch, HighlightDiff(samplePatch))
	})
}

func TestHighlightDiffHTML(t *testing.T) {
	out, err := HighlightDiffHTML(samplePatch)
	require.NoError(t, err)

	require.Contains(t, out, "<pre")
	require.Contains(t, out, "content")
}
