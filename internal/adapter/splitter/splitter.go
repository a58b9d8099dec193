package splitter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docsearch/internal/domain"
)

// Splitter turns file content into section documents using fixed-size
// line windows with overlap. Each window becomes one Document whose
// Section records the line range and whose PageNumber is the window
// ordinal, starting at 1.
type Splitter struct {
	maxLines int
	overlap  int
}

func New(maxLines, overlap int) *Splitter {
	if maxLines <= 0 {
		maxLines = 40
	}
	if overlap < 0 || overlap >= maxLines {
		overlap = 0
	}
	return &Splitter{
		maxLines: maxLines,
		overlap:  overlap,
	}
}

// Split produces documents for the given file content. Blank-only
// windows are dropped.
func (s *Splitter) Split(source, content string) []domain.Document {
	lines := strings.Split(content, "\n")

	var docs []domain.Document
	page := 0
	start := 0

	for start < len(lines) {
		end := start + s.maxLines
		if end > len(lines) {
			end = len(lines)
		}

		text := strings.Join(lines[start:end], "\n")
		if strings.TrimSpace(text) != "" {
			page++
			docs = append(docs, domain.Document{
				ID:         uuid.NewString(),
				Content:    text,
				Source:     source,
				Section:    sectionLabel(start+1, end),
				PageNumber: page,
			})
		}

		if end == len(lines) {
			break
		}
		start = end - s.overlap
	}

	return docs
}

func sectionLabel(startLine, endLine int) string {
	return fmt.Sprintf("L%d-%d", startLine, endLine)
}
