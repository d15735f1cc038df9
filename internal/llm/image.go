package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ImageProvider renders a single picture from a text prompt.
type ImageProvider interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
	ModelID() string
}

// ImageRequest describes one image generation call.
type ImageRequest struct {
	Prompt string
	Seed   int64
	Width  int
	Height int
	Count  int
}

// ImageResponse holds the first generated image, base64-encoded PNG.
type ImageResponse struct {
	Base64 string
	Model  string
}

var openaiImageModels = map[string]string{
	"gpt-image": "gpt-image-1",
	"dall-e":    "dall-e-3",
}

var geminiImageModels = map[string]string{
	"imagen": "imagen-3.0-generate-002",
}

// OpenAIImageProvider implements ImageProvider with the OpenAI images API.
type OpenAIImageProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIImageProvider creates an image provider sharing the OpenAI
// credentials. An empty model selects gpt-image-1.
func NewOpenAIImageProvider(cfg OpenAIConfig, model string) (*OpenAIImageProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if model == "" {
		model = "gpt-image"
	}
	return &OpenAIImageProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(model, openaiImageModels),
	}, nil
}

func (p *OpenAIImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	imgReq := openai.ImageRequest{
		Prompt: req.Prompt,
		Model:  p.model,
		N:      max(req.Count, 1),
		Size:   openAIImageSize(p.model, req.Width, req.Height),
	}
	// gpt-image-1 always answers with base64 and rejects the parameter.
	if p.model != "gpt-image-1" {
		imgReq.ResponseFormat = openai.CreateImageResponseFormatB64JSON
	}

	resp, err := p.client.CreateImage(ctx, imgReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no image in OpenAI response")}
	}
	return &ImageResponse{Base64: resp.Data[0].B64JSON, Model: p.model}, nil
}

func (p *OpenAIImageProvider) ModelID() string { return p.model }

// openAIImageSize picks the closest landscape size the model accepts.
func openAIImageSize(model string, w, h int) string {
	if w <= h {
		return openai.CreateImageSize1024x1024
	}
	if model == "dall-e-3" {
		return openai.CreateImageSize1792x1024
	}
	return "1536x1024"
}

// GeminiImageProvider implements ImageProvider with Imagen via the genai SDK.
type GeminiImageProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiImageProvider creates an Imagen provider sharing the Gemini
// credentials.
func NewGeminiImageProvider(ctx context.Context, cfg GeminiConfig, model string) (*GeminiImageProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	if model == "" {
		model = "imagen"
	}
	return &GeminiImageProvider{client: client, model: resolveModel(model, geminiImageModels)}, nil
}

func (p *GeminiImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	seed := int32(req.Seed)
	config := &genai.GenerateImagesConfig{
		NumberOfImages: int32(max(req.Count, 1)),
		AspectRatio:    aspectRatio(req.Width, req.Height),
		Seed:           &seed,
	}

	resp, err := p.client.Models.GenerateImages(ctx, p.model, req.Prompt, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	if len(resp.GeneratedImages) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no image in Imagen response")}
	}
	img := resp.GeneratedImages[0]
	if img.RAIFilteredReason != "" {
		return nil, &ErrContentFiltered{Err: fmt.Errorf("imagen: %s", img.RAIFilteredReason)}
	}
	if img.Image == nil || len(img.Image.ImageBytes) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty image in Imagen response")}
	}
	return &ImageResponse{
		Base64: base64.StdEncoding.EncodeToString(img.Image.ImageBytes),
		Model:  p.model,
	}, nil
}

func (p *GeminiImageProvider) ModelID() string { return p.model }

func aspectRatio(w, h int) string {
	switch {
	case w == h:
		return "1:1"
	case w*9 == h*16:
		return "16:9"
	case w > h:
		return "4:3"
	default:
		return "3:4"
	}
}
