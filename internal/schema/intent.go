package schema

// Conversational is the sentinel tool name meaning "no tool applies; answer
// in free text". It is part of the resolver wire contract.
const Conversational = "conversational"

// IntentCandidate is the resolved mapping from a user utterance to a tool
// name and arguments. Ephemeral: owned by the request that produced it.
type IntentCandidate struct {
	Tool       string         `json:"tool"`
	Arguments  map[string]any `json:"args"`
	Confidence float64        `json:"confidence"`
}

// ConversationalCandidate is the universal fallback candidate.
func ConversationalCandidate() IntentCandidate {
	return IntentCandidate{Tool: Conversational, Arguments: map[string]any{}, Confidence: 1.0}
}

func (c IntentCandidate) IsConversational() bool {
	return c.Tool == Conversational || c.Tool == ""
}
