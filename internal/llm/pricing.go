package llm

// Pricing holds USD list prices for a model. Text models are billed per
// million tokens, image models per generated image.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
	PerImage      float64
}

// Cost estimates the USD cost for calls requests using the given tokens.
func (p Pricing) Cost(calls, inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*p.InputPerMTok/1_000_000 +
		float64(outputTokens)*p.OutputPerMTok/1_000_000 +
		float64(calls)*p.PerImage
}

// LookupPricing returns the pricing for a resolved model ID.
func LookupPricing(modelID string) (Pricing, bool) {
	p, ok := pricing[modelID]
	return p, ok
}

// pricing covers the models the friendly names resolve to plus the usual
// OpenRouter picks. Checked against the vendors' price pages in 2025-12.
var pricing = map[string]Pricing{
	"claude-sonnet-4-5-20250929": {InputPerMTok: 3, OutputPerMTok: 15},
	"claude-haiku-4-5-20251001":  {InputPerMTok: 1, OutputPerMTok: 5},

	"gpt-4o":       {InputPerMTok: 2.5, OutputPerMTok: 10},
	"gpt-4o-mini":  {InputPerMTok: 0.15, OutputPerMTok: 0.6},
	"gpt-4.1-mini": {InputPerMTok: 0.4, OutputPerMTok: 1.6},

	"gemini-2.0-flash": {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gemini-2.0-pro":   {InputPerMTok: 1.25, OutputPerMTok: 10},
	"gemini-2.5-flash": {InputPerMTok: 0.3, OutputPerMTok: 2.5},

	"google/gemini-2.0-flash-exp": {},
	"anthropic/claude-3-haiku":    {InputPerMTok: 0.25, OutputPerMTok: 1.25},

	"gpt-image-1":             {PerImage: 0.042},
	"dall-e-3":                {PerImage: 0.04},
	"imagen-3.0-generate-002": {PerImage: 0.03},
}
