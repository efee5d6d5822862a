package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Acme Project Tools</title>
  <meta name="description" content="Plan projects together.">
</head>
<body>
  <h1>Project Management</h1>
  <h2>Features</h2>
  <h2>Pricing</h2>
  <h3>Teams</h3>
  <p>Acme helps teams ship faster.</p>
  <picture><img src="hero.png" alt="Dashboard screenshot"></picture>
  <dl><dt>Seats</dt><dd>Unlimited</dd></dl>
  <script>console.log("ignored")</script>
</body>
</html>`

func typesOf(passages []domain.Passage) []domain.PassageType {
	out := make([]domain.PassageType, len(passages))
	for i, p := range passages {
		out[i] = p.Type
	}
	return out
}

func TestExtract_DefaultSet(t *testing.T) {
	passages, err := New(Options{}).Extract([]byte(samplePage))
	require.NoError(t, err)

	// Fixed type order, occurrences in document order, placeholders for
	// the absent heading levels.
	assert.Equal(t, []domain.PassageType{
		domain.PassageTitle,
		domain.PassageMetaDescription,
		domain.PassageHeading1,
		domain.PassageHeading2,
		domain.PassageHeading2,
		domain.PassageHeading3,
		domain.PassageHeading4,
		domain.PassageHeading5,
		domain.PassageHeading6,
	}, typesOf(passages))

	assert.Equal(t, "Acme Project Tools", passages[0].Text)
	assert.Equal(t, "Plan projects together.", passages[1].Text)
	assert.Equal(t, "Features", passages[3].Text)
	assert.Equal(t, "Pricing", passages[4].Text)
	assert.True(t, passages[6].IsEmpty(), "absent h4 is a placeholder")
	assert.True(t, passages[8].IsEmpty(), "absent h6 is a placeholder")
}

func TestExtract_OptionalTypes(t *testing.T) {
	passages, err := New(Options{Paragraphs: true, Images: true, DefinitionLists: true}).
		Extract([]byte(samplePage))
	require.NoError(t, err)

	tail := passages[9:]
	assert.Equal(t, []domain.Passage{
		{Type: domain.PassageParagraph, Text: "Acme helps teams ship faster."},
		{Type: domain.PassageImageAlt, Text: "Dashboard screenshot"},
		{Type: domain.PassageDefinitionTerm, Text: "Seats"},
		{Type: domain.PassageDefinitionData, Text: "Unlimited"},
	}, tail, "optional types follow the default set, non-empty only")
}

func TestExtract_MalformedMarkup(t *testing.T) {
	// Unclosed tags and stray text still yield what can be salvaged.
	passages, err := New(Options{}).Extract([]byte("<h1>Broken <h2>Page<p>tail"))
	require.NoError(t, err)

	byType := map[domain.PassageType]string{}
	for _, p := range passages {
		if !p.IsEmpty() {
			byType[p.Type] = p.Text
		}
	}
	assert.Contains(t, byType[domain.PassageHeading1], "Broken")
	assert.Equal(t, "Page tail", byType[domain.PassageHeading2])
}

func TestExtract_CollapsesWhitespace(t *testing.T) {
	passages, err := New(Options{}).Extract([]byte("<h1>  spaced \n\t out  </h1>"))
	require.NoError(t, err)

	byType := map[domain.PassageType]string{}
	for _, p := range passages {
		byType[p.Type] = p.Text
	}
	assert.Equal(t, "spaced out", byType[domain.PassageHeading1])
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, input := range [][]byte{nil, {}, []byte("   \n ")} {
		_, err := New(Options{}).Extract(input)
		assert.ErrorIs(t, err, domain.ErrExtraction)
	}
}
