// Package intent turns free-form user text into an IntentCandidate. Resolvers
// never fail to the caller: on any problem they fall back to the
// conversational candidate and log the cause.
package intent

import (
	"context"

	"github.com/amadeusai/amadeus/internal/schema"
)

// Resolver maps an utterance to a tool choice with extracted arguments, or to
// the conversational sentinel when no tool fits. For a given input the result
// must be deterministic absent model non-determinism.
type Resolver interface {
	Resolve(ctx context.Context, text string) schema.IntentCandidate
}

// Chain tries resolvers in order and returns the first non-conversational
// candidate. Used to put the cheap keyword matcher in front of the LLM so
// common commands never consume model quota.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, text string) schema.IntentCandidate {
	for _, r := range c {
		if cand := r.Resolve(ctx, text); !cand.IsConversational() {
			return cand
		}
	}
	return schema.ConversationalCandidate()
}
