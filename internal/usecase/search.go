package usecase

import (
	"fmt"
	"strings"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

const answerSystemPrompt = `You are a document assistant. Answer the question using only
the provided context excerpts. Cite the source of each fact you use. If the context does
not contain the answer, say so plainly.`

// SearchUseCase answers queries against the built index, optionally
// synthesizing an answer from the retrieved sources.
type SearchUseCase struct {
	store     port.IndexStore
	retriever port.Retriever
	llm       port.LLM // nil disables synthesis
	minScore  float64
}

func NewSearchUseCase(store port.IndexStore, retriever port.Retriever, llm port.LLM, minScore float64) *SearchUseCase {
	return &SearchUseCase{
		store:     store,
		retriever: retriever,
		llm:       llm,
		minScore:  minScore,
	}
}

// Search returns up to topK results. An absent index yields an empty
// result list, never an error.
func (u *SearchUseCase) Search(query string, topK int) ([]domain.SearchResult, error) {
	_, vectors, err := u.store.Counts()
	if err != nil {
		return nil, domain.E(domain.KindStore, "search", err)
	}
	if vectors == 0 {
		return nil, nil
	}

	results, err := u.retriever.Search(query, topK)
	if err != nil {
		return nil, domain.E(domain.KindProvider, "search", err)
	}

	if u.minScore > 0 {
		filtered := make([]domain.SearchResult, 0, len(results))
		for _, r := range results {
			if r.Score >= u.minScore {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	return results, nil
}

// Answer retrieves sources for the query and asks the LLM to
// synthesize an answer grounded in them.
func (u *SearchUseCase) Answer(query string, topK int) (domain.Answer, error) {
	results, err := u.Search(query, topK)
	if err != nil {
		return domain.Answer{}, err
	}
	if u.llm == nil || len(results) == 0 {
		return domain.Answer{Results: results}, nil
	}

	text, err := u.llm.GenerateWithSystem(answerSystemPrompt, buildContextPrompt(query, results))
	if err != nil {
		return domain.Answer{}, domain.E(domain.KindProvider, "search", err)
	}

	return domain.Answer{Text: text, Results: results}, nil
}

// buildContextPrompt formats retrieved sources into a prompt for
// answer synthesis.
func buildContextPrompt(query string, results []domain.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("Context:\n\n")
	for i, r := range results {
		source := r.Metadata["source"]
		section := r.Metadata["section"]
		sb.WriteString(fmt.Sprintf("[%d] (source: %v, section: %v)\n", i+1, source, section))
		sb.WriteString(r.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(query)
	return sb.String()
}
