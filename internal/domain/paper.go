package domain

// Paper is the unit record carried through the brief pipeline. It is created
// by a source scanner, enriched in place by the abstract resolver and the
// summarizer, and serialized by the result writer.
type Paper struct {
	Title     string `json:"title"`
	Abstract  string `json:"abstract"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Published string `json:"published,omitempty"`
	AISummary string `json:"ai_summary,omitempty"`
}

// Placeholder values recorded when per-paper extraction or generation fails,
// so downstream stages always see a populated field.
const (
	AbstractNotFound   = "Abstract not found"
	SummaryUnavailable = "Summary unavailable"
)
