package gemini_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/push/gemini"
	"github.com/fwojciec/push/mock"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

// mockChunks returns a genai-style streaming iterator from pre-built chunks.
func mockChunks(chunks []*genai.GenerateContentResponse) func(func(*genai.GenerateContentResponse, error) bool) {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func textChunk(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, len(texts))
	for i, t := range texts {
		parts[i] = &genai.Part{Text: t}
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: parts},
		}},
	}
}

func TestStream_ForwardsTextDeltas(t *testing.T) {
	t.Parallel()
	it := mockChunks([]*genai.GenerateContentResponse{
		textChunk("Hello"),
		textChunk(" ", "world"),
	})

	rec := &mock.Recorder[string]{}
	gemini.Stream(it).Connect(rec)

	assert.Equal(t, []string{"Hello", " ", "world"}, rec.Values)
	assert.Equal(t, []string{"next", "next", "next", "return"}, rec.Calls)
}

func TestStream_SkipsEmptyParts(t *testing.T) {
	t.Parallel()
	it := mockChunks([]*genai.GenerateContentResponse{
		{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: ""}}}}}},
		nil,
		textChunk("x"),
	})

	rec := &mock.Recorder[string]{}
	gemini.Stream(it).Connect(rec)

	assert.Equal(t, []string{"x"}, rec.Values)
}

func TestStream_IteratorErrorBecomesThrow(t *testing.T) {
	t.Parallel()
	apiErr := errors.New("rate limited")
	it := func(yield func(*genai.GenerateContentResponse, error) bool) {
		if !yield(textChunk("partial"), nil) {
			return
		}
		yield(nil, apiErr)
	}

	rec := &mock.Recorder[string]{}
	gemini.Stream(it).Connect(rec)

	assert.Equal(t, []string{"partial"}, rec.Values)
	assert.ErrorIs(t, rec.Err, apiErr)
}

func TestStream_EarlyStopStopsPulling(t *testing.T) {
	t.Parallel()
	pulled := 0
	it := func(yield func(*genai.GenerateContentResponse, error) bool) {
		for {
			pulled++
			if !yield(textChunk("chunk"), nil) {
				return
			}
		}
	}

	rec := &mock.Recorder[string]{StopAfter: 2}
	gemini.Stream(it).Connect(rec)

	assert.Equal(t, 2, pulled)
	assert.Equal(t, []string{"chunk", "chunk"}, rec.Values)
}
