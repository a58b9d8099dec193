package domain

// Document is the unit of indexing. Instances are normalized from
// caller-supplied records: absent fields become zero values.
type Document struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Source     string `json:"source"`
	Section    string `json:"section"`
	PageNumber int    `json:"pageNumber"`
}

// Metadata returns the document fields carried alongside each search hit.
func (d Document) Metadata() map[string]any {
	return map[string]any{
		"id":         d.ID,
		"source":     d.Source,
		"section":    d.Section,
		"pageNumber": d.PageNumber,
	}
}

// SearchResult is one retrieved document with its similarity score.
type SearchResult struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// Answer is the output of LLM synthesis over retrieved sources.
type Answer struct {
	Text    string         `json:"text"`
	Results []SearchResult `json:"results"`
}

// Stats describes the state of a persistent index.
type Stats struct {
	Status    string `json:"status"`
	IndexName string `json:"index_name"`
	StorePath string `json:"store_path"`
	Documents int    `json:"documents"`
	Vectors   int    `json:"vectors"`
}
