package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	response string
	err      error
	messages []Message
}

func (f *fakeProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	f.messages = messages
	return f.response, f.err
}

func TestSuggest(t *testing.T) {
	provider := &fakeProvider{
		response: `{"suggested_price_range": "R$ 22,00 - R$ 26,00", "reasoning": "Covers unit cost plus overhead share at the desired margin."}`,
	}
	a := New(provider)

	suggestion, err := a.Suggest(context.Background(), Request{
		IngredientCosts:             15.65,
		FixedExpensesLast3Months:    10950,
		VariableExpensesLast3Months: 3900,
		UnitsSoldLast3Months:        1200,
		DesiredProfitMargin:         0.3,
	})
	require.NoError(t, err)

	assert.Equal(t, "R$ 22,00 - R$ 26,00", suggestion.SuggestedPriceRange)
	assert.NotEmpty(t, suggestion.Reasoning)

	// The prompt must carry every input figure.
	require.Len(t, provider.messages, 2)
	userPrompt := provider.messages[1].Content
	for _, figure := range []string{"15.65", "10950.00", "3900.00", "1200", "0.30"} {
		assert.Contains(t, userPrompt, figure)
	}
}

func TestSuggestToleratesCodeFences(t *testing.T) {
	provider := &fakeProvider{
		response: "```json\n{\"suggested_price_range\": \"20-24\", \"reasoning\": \"ok\"}\n```",
	}

	suggestion, err := New(provider).Suggest(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "20-24", suggestion.SuggestedPriceRange)
}

func TestSuggestSurfacesProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream unavailable")}

	_, err := New(provider).Suggest(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "advisor request failed"))
}

func TestSuggestRejectsMalformedJSON(t *testing.T) {
	provider := &fakeProvider{response: "I think 20 to 24 sounds fair."}

	_, err := New(provider).Suggest(context.Background(), Request{})
	assert.Error(t, err)
}

func TestSuggestRejectsEmptyRange(t *testing.T) {
	provider := &fakeProvider{response: `{"suggested_price_range": "", "reasoning": "none"}`}

	_, err := New(provider).Suggest(context.Background(), Request{})
	assert.Error(t, err)
}
