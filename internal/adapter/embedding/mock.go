package embedding

// MockEmbedder produces deterministic embeddings without any network
// calls. Useful for tests and offline runs.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 8
	}
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dimension)
		for j, r := range text {
			vec[j%e.dimension] += float32(r) / 1000.0
		}
		out[i] = vec
	}
	return out, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
