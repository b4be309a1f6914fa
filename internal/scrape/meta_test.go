package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPageMeta(t *testing.T) {
	html := `
	<html>
		<head>
			<title>  Acme — Widgets  </title>
			<meta name="description" content="Fine widgets since 1912.">
			<link rel="canonical" href="https://acme.example/widgets">
		</head>
		<body><h1>Widgets</h1></body>
	</html>`

	meta, err := ExtractPageMeta(html)
	require.NoError(t, err)
	assert.Equal(t, "Acme — Widgets", meta.Title)
	assert.Equal(t, "Fine widgets since 1912.", meta.Description)
	assert.Equal(t, "https://acme.example/widgets", meta.Canonical)
}

func TestExtractPageMeta_MissingTags(t *testing.T) {
	meta, err := ExtractPageMeta("<html><body>bare page</body></html>")
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.Empty(t, meta.Description)
	assert.Empty(t, meta.Canonical)
}
