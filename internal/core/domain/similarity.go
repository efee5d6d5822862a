package domain

// SimilarityScore is one cosine similarity measurement. Subject is the page
// role whose mean vector was compared; exactly one of Query or OtherRole
// identifies the other side.
type SimilarityScore struct {
	Subject   Role    `json:"subject"`
	Query     string  `json:"query,omitempty"`
	OtherRole Role    `json:"other_role,omitempty"`
	Value     float64 `json:"value"`
}

// Score bands for the terminal report and visualization, carried over from
// the traffic-light thresholds of the reference analysis workflow.
const (
	ScoreGoodThreshold   = 0.70
	ScoreMediumThreshold = 0.50
)

// Band classifies the score as "good", "medium" or "poor".
func (s SimilarityScore) Band() string {
	switch {
	case s.Value >= ScoreGoodThreshold:
		return "good"
	case s.Value >= ScoreMediumThreshold:
		return "medium"
	default:
		return "poor"
	}
}
