package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrnexus-poc/server/internal/agent/model"
)

func TestParseIntentLabel(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    model.IntentLabel
	}{
		{"exact conversation", "conversation", model.IntentConversation},
		{"exact documentation", "documentation", model.IntentDocumentation},
		{"exact data query", "data_query", model.IntentDataQuery},
		{"uppercase with whitespace", "  CONVERSATION \n", model.IntentConversation},
		{"label wrapped in prose", `The intent is "documentation".`, model.IntentDocumentation},
		{"markdown wrapped", "**data_query**", model.IntentDataQuery},
		{"unrecognized defaults to data query", "web_search", model.IntentDataQuery},
		{"empty defaults to data query", "", model.IntentDataQuery},
		{"gibberish defaults to data query", "I am not sure what you mean", model.IntentDataQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseIntentLabel(tc.content))
		})
	}
}
