package errx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "http 429",
			err:  genai.APIError{Code: 429, Status: "Too Many Requests"},
			want: true,
		},
		{
			name: "resource exhausted status",
			err:  genai.APIError{Code: 500, Status: "RESOURCE_EXHAUSTED"},
			want: true,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("generate: %w", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}),
			want: true,
		},
		{
			name: "other api error",
			err:  genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}

func TestWrapClassificationCarriesRateLimitFlag(t *testing.T) {
	apiErr := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"}
	err := WrapClassification(fmt.Errorf("intent call: %w", apiErr))

	var clsErr *ClassificationError
	require.ErrorAs(t, err, &clsErr)
	assert.True(t, clsErr.RateLimited)

	// the provider error stays reachable through the wrapper
	var unwrapped genai.APIError
	assert.ErrorAs(t, err, &unwrapped)
	assert.Equal(t, 429, unwrapped.Code)
}

func TestWrapClassificationPlainErrorNotRateLimited(t *testing.T) {
	err := WrapClassification(errors.New("connection reset"))

	var clsErr *ClassificationError
	require.ErrorAs(t, err, &clsErr)
	assert.False(t, clsErr.RateLimited)
}

func TestWrapSynthesisCarriesRateLimitFlag(t *testing.T) {
	err := WrapSynthesis(genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"})

	var synErr *SynthesisError
	require.ErrorAs(t, err, &synErr)
	assert.True(t, synErr.RateLimited)

	err = WrapSynthesis(errors.New("timeout"))
	require.ErrorAs(t, err, &synErr)
	assert.False(t, synErr.RateLimited)
}

func TestWrappersPassThroughNil(t *testing.T) {
	assert.NoError(t, WrapClassification(nil))
	assert.NoError(t, WrapSynthesis(nil))
	assert.NoError(t, WrapRetrieval(nil))
}
