// Package giftcard renders the illustration that goes with a diagnostic
// result. Images are returned to the caller and never stored.
package giftcard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/llm"
)

// Purpose labels image calls in the LLM event log.
const Purpose = "giftcard"

const (
	Width  = 1280
	Height = 720

	// MaxSeed is the largest seed the image backends accept.
	MaxSeed = 858993459
)

// Generator produces gift card images.
type Generator struct {
	images llm.ImageProvider
	logger *zap.Logger
	seed   func() int64
}

// Option configures a Generator.
type Option func(*Generator)

func WithLogger(l *zap.Logger) Option { return func(g *Generator) { g.logger = l } }

// WithSeedSource replaces the random seed. Values are clamped into
// [0, MaxSeed].
func WithSeedSource(f func() int64) Option { return func(g *Generator) { g.seed = f } }

// New creates a Generator. A nil provider makes every call fail as
// unavailable.
func New(images llm.ImageProvider, opts ...Option) *Generator {
	g := &Generator{
		images: images,
		logger: zap.NewNop(),
		seed:   func() int64 { return rand.Int64N(MaxSeed + 1) },
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Enabled reports whether an image backend is configured.
func (g *Generator) Enabled() bool { return g != nil && g.images != nil }

// Generate returns a base64 PNG for r. Every error is an *apperr.Error.
func (g *Generator) Generate(ctx context.Context, r *gift.DiagnosticResult) (string, error) {
	if r == nil {
		return "", g.fail(apperr.Validation(apperr.OpGiftCard, apperr.MsgGiftCardNoData))
	}
	if strings.TrimSpace(r.Service.ServiceName) == "" || strings.TrimSpace(r.Catchphrase) == "" {
		return "", g.fail(apperr.Validation(apperr.OpGiftCard, apperr.MsgGiftCardInvalidData).
			WithDetails(map[string]any{
				"has_service_name": r.Service.ServiceName != "",
				"has_catchphrase":  r.Catchphrase != "",
			}))
	}
	if !g.Enabled() {
		return "", g.fail(apperr.New(apperr.ExternalServiceUnavailable, apperr.OpGiftCard,
			errors.New("no image provider configured")))
	}

	req := llm.ImageRequest{
		Prompt: BuildImagePrompt(*r),
		Seed:   clampSeed(g.seed()),
		Width:  Width,
		Height: Height,
		Count:  1,
	}
	resp, err := g.images.GenerateImage(llm.WithPurpose(ctx, Purpose), req)
	if err != nil {
		return "", g.fail(apperr.Normalize(apperr.OpGiftCard, fmt.Errorf("generate image: %w", err)).
			WithDetails(map[string]any{"service": r.Service.ServiceName, "seed": req.Seed}))
	}
	if resp == nil || resp.Base64 == "" {
		return "", g.fail(apperr.New(apperr.ExternalServiceUnavailable, apperr.OpGiftCard,
			errors.New("empty image response")).WithMessage(apperr.MsgGiftCardNoImage))
	}

	g.logger.Info("gift card generated",
		zap.String("id", r.ID),
		zap.String("service", r.Service.ServiceName),
		zap.Int64("seed", req.Seed),
		zap.String("model", resp.Model),
	)
	return resp.Base64, nil
}

func (g *Generator) fail(err *apperr.Error) error {
	apperr.Log(g.logger, err)
	return err
}

func clampSeed(s int64) int64 {
	return min(max(s, 0), MaxSeed)
}

// WritePNG decodes a base64 image and writes it to path, creating parent
// directories as needed.
func WritePNG(path, b64 string) error {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create image dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// FileName is the default download name for a result's card.
func FileName(r gift.DiagnosticResult) string {
	return fmt.Sprintf("aws-identity-gift-%s.png", r.ID)
}
