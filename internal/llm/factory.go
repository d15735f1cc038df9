package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with logging middleware when a repo is
// given.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	// caller → logging → base
	return WithLogging(base, eventRepo, logger), nil
}

// NewImageProvider creates the gift card image backend. It returns nil,
// nil when images are disabled.
func NewImageProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (ImageProvider, error) {
	var base ImageProvider
	var err error

	switch cfg.Image.Provider {
	case "":
		return nil, nil
	case "openai":
		base, err = NewOpenAIImageProvider(cfg.OpenAI, cfg.Image.Model)
	case "gemini":
		base, err = NewGeminiImageProvider(ctx, cfg.Gemini, cfg.Image.Model)
	case "mock":
		base = NewMockImageProvider()
	default:
		return nil, fmt.Errorf("unknown image provider: %q", cfg.Image.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s image provider: %w", cfg.Image.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithImageLogging(base, eventRepo, logger), nil
}
