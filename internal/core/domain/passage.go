package domain

// PassageType tags one extracted unit of page text with its semantic origin.
type PassageType string

// Passage types. The default set is always emitted by extraction; the
// optional set is only emitted when requested by configuration.
const (
	PassageTitle           PassageType = "title"
	PassageMetaDescription PassageType = "meta description"
	PassageHeading1        PassageType = "h1"
	PassageHeading2        PassageType = "h2"
	PassageHeading3        PassageType = "h3"
	PassageHeading4        PassageType = "h4"
	PassageHeading5        PassageType = "h5"
	PassageHeading6        PassageType = "h6"

	PassageParagraph      PassageType = "p"
	PassageImageAlt       PassageType = "img alt"
	PassageFigureCaption  PassageType = "figcaption"
	PassageDefinitionTerm PassageType = "dt"
	PassageDefinitionData PassageType = "dd"
	PassageArticleBlock   PassageType = "article"
)

// DefaultPassageTypes is the fixed tag order for the always-emitted set.
// Extraction emits these in this order, each tag's occurrences in document
// order, with a single empty-text placeholder when the tag is absent.
var DefaultPassageTypes = []PassageType{
	PassageTitle,
	PassageMetaDescription,
	PassageHeading1,
	PassageHeading2,
	PassageHeading3,
	PassageHeading4,
	PassageHeading5,
	PassageHeading6,
}

// OptionalPassageTypes lists the types that can be enabled via configuration.
var OptionalPassageTypes = []PassageType{
	PassageParagraph,
	PassageImageAlt,
	PassageFigureCaption,
	PassageDefinitionTerm,
	PassageDefinitionData,
	PassageArticleBlock,
}

// IsValid returns true if the passage type is recognised.
func (p PassageType) IsValid() bool {
	switch p {
	case PassageTitle, PassageMetaDescription,
		PassageHeading1, PassageHeading2, PassageHeading3,
		PassageHeading4, PassageHeading5, PassageHeading6,
		PassageParagraph, PassageImageAlt, PassageFigureCaption,
		PassageDefinitionTerm, PassageDefinitionData, PassageArticleBlock:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PassageType) String() string {
	return string(p)
}

/// Passage is one extracted unit of page text. Ordering is significant:
// passages are stored in document order and never reordered downstream,
// because embedding vectors are zipped with passages positionally.
type Passage struct {
	Type PassageType `json:"type"`
	Text string      `json:"text"`
}

// IsEmpty returns true if the passage carries no text. Empty passages
// represent absent tags; they are kept in extracted output but skipped
// during embedding.
func (p Passage) IsEmpty() bool {
	return p.Text == ""
}
