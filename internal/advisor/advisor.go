// Package advisor implements the AI price advisor boundary: aggregate cost
// figures go in, a natural-language price range and rationale come out. The
// service performs no numeric validation of the returned range and has no
// fallback computation when the provider fails.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Request carries the aggregate figures the advisor reasons over.
type Request struct {
	IngredientCosts             float64 `json:"ingredient_costs"`
	FixedExpensesLast3Months    float64 `json:"fixed_expenses_last_3_months"`
	VariableExpensesLast3Months float64 `json:"variable_expenses_last_3_months"`
	UnitsSoldLast3Months        float64 `json:"units_sold_last_3_months"`
	DesiredProfitMargin         float64 `json:"desired_profit_margin"`
}

// Suggestion is the advisor's answer: an opaque price-range string and the
// reasoning behind it.
type Suggestion struct {
	SuggestedPriceRange string `json:"suggested_price_range"`
	Reasoning           string `json:"reasoning"`
}

// Advisor asks an LLM provider for a price suggestion.
type Advisor struct {
	provider Provider
}

// New creates an advisor backed by the given provider.
func New(provider Provider) *Advisor {
	return &Advisor{provider: provider}
}

const systemPrompt = `You are a financial advisor for a restaurant. Based on the costs of ingredients, fixed costs, variable costs, units sold, and desired profit margin, suggest a price range for a recipe.
Respond with raw JSON only, no Markdown, no comments, in this exact shape:
{"suggested_price_range": string, "reasoning": string}`

// Suggest performs one advisor round trip. Provider errors surface to the
// caller unchanged; there is no retry and no cached fallback.
func (a *Advisor) Suggest(ctx context.Context, req Request) (*Suggestion, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildPrompt(req)},
	}

	content, err := a.provider.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("advisor request failed: %w", err)
	}

	suggestion, err := parseSuggestion(content)
	if err != nil {
		return nil, fmt.Errorf("advisor returned malformed response: %w", err)
	}

	return suggestion, nil
}

func buildPrompt(req Request) string {
	return fmt.Sprintf(`Ingredient Costs: %.2f
Fixed Expenses (Last 3 Months): %.2f
Variable Expenses (Last 3 Months): %.2f
Units Sold (Last 3 Months): %.0f
Desired Profit Margin: %.2f

Consider all these factors carefully and provide a suggested price range and reasoning.`,
		req.IngredientCosts,
		req.FixedExpensesLast3Months,
		req.VariableExpensesLast3Months,
		req.UnitsSoldLast3Months,
		req.DesiredProfitMargin,
	)
}

// parseSuggestion decodes the provider output, tolerating code fences some
// models wrap around JSON.
func parseSuggestion(content string) (*Suggestion, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`")
	content = strings.TrimSpace(content)

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, err
	}

	if suggestion.SuggestedPriceRange == "" {
		return nil, fmt.Errorf("missing suggested price range")
	}

	return &suggestion, nil
}
