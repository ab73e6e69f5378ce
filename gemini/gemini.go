// Package gemini adapts the genai SDK's streaming response iterator into a
// push stream of text deltas.
package gemini

import (
	"fmt"
	"iter"

	"github.com/fwojciec/push"
	"google.golang.org/genai"
)

// Stream wraps the iterator returned by GenerateContentStream. Each text
// part is forwarded through Next in arrival order; iterator exhaustion
// becomes one Return and an iterator error one Throw. A terminal Result
// stops pulling from the SDK.
func Stream(it iter.Seq2[*genai.GenerateContentResponse, error]) push.Stream[string] {
	return deltaStream{it: it}
}

type deltaStream struct {
	it iter.Seq2[*genai.GenerateContentResponse, error]
}

// Interface compliance check.
var _ push.Stream[string] = deltaStream{}

func (s deltaStream) Connect(sub push.Subscriber[string]) {
	safe := push.Safe(sub)
	for resp, err := range s.it {
		if err != nil {
			safe.Throw(fmt.Errorf("gemini: %w", err))
			return
		}
		for _, delta := range textParts(resp) {
			if safe.Next(delta).Done {
				return
			}
		}
	}
	safe.Return(nil)
}

// textParts extracts the text deltas of one response chunk. Non-text parts
// (function calls, inline data) are skipped.
func textParts(resp *genai.GenerateContentResponse) []string {
	if resp == nil {
		return nil
	}
	var out []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				out = append(out, part.Text)
			}
		}
	}
	return out
}
