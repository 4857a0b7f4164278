package parsers

import (
	"strings"

	"github.com/hrnexus-poc/server/internal/agent/model"
)

// ParseIntentLabel extracts an intent label from raw classifier output.
// Models sometimes wrap the label in prose or formatting, so matching is
// done by substring after lowercasing. Unrecognized output defaults to
// the data query intent, which keeps the pipeline useful when the
// classifier is sloppy.
func ParseIntentLabel(content string) model.IntentLabel {
	normalized := strings.ToLower(strings.TrimSpace(content))

	switch {
	case strings.Contains(normalized, string(model.IntentConversation)):
		return model.IntentConversation
	case strings.Contains(normalized, string(model.IntentDocumentation)):
		return model.IntentDocumentation
	case strings.Contains(normalized, string(model.IntentDataQuery)):
		return model.IntentDataQuery
	default:
		return model.IntentDataQuery
	}
}
