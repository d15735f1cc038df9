package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIImageProvider(t *testing.T, model string, handler http.HandlerFunc) *OpenAIImageProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIImageProvider{client: openai.NewClientWithConfig(config), model: model}
}

func TestOpenAIImageProvider_HappyPath(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/generations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"created": 1234567890,
			"data":    []map[string]any{{"b64_json": mockPNG}},
		})
	}

	p := newTestOpenAIImageProvider(t, "dall-e-3", handler)
	resp, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "gift", Width: 1280, Height: 720, Count: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Base64 != mockPNG {
		t.Fatal("expected the returned base64 image")
	}
	if got["size"] != "1792x1024" || got["response_format"] != "b64_json" {
		t.Fatalf("request = %v", got)
	}
}

func TestOpenAIImageProvider_EmptyData(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"created": 1, "data": []any{}})
	}
	p := newTestOpenAIImageProvider(t, "gpt-image-1", handler)
	_, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "gift"})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIImageProvider_AccessDenied(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "invalid_request_error", "message": "bad key"},
		})
	}
	p := newTestOpenAIImageProvider(t, "gpt-image-1", handler)
	_, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "gift"})
	var denied *ErrAccessDenied
	if !errors.As(err, &denied) {
		t.Fatalf("expected ErrAccessDenied, got %T (%v)", err, err)
	}
}

func TestOpenAIImageSize(t *testing.T) {
	tests := []struct {
		model string
		w, h  int
		want  string
	}{
		{"dall-e-3", 1280, 720, "1792x1024"},
		{"gpt-image-1", 1280, 720, "1536x1024"},
		{"gpt-image-1", 512, 512, "1024x1024"},
	}
	for _, tt := range tests {
		if got := openAIImageSize(tt.model, tt.w, tt.h); got != tt.want {
			t.Errorf("openAIImageSize(%s, %d, %d) = %s, want %s", tt.model, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestAspectRatio(t *testing.T) {
	if got := aspectRatio(1280, 720); got != "16:9" {
		t.Fatalf("got %s", got)
	}
	if got := aspectRatio(100, 100); got != "1:1" {
		t.Fatalf("got %s", got)
	}
}

func TestMockImageProvider(t *testing.T) {
	m := NewMockImageProvider()
	resp, err := m.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := base64.StdEncoding.DecodeString(resp.Base64); err != nil {
		t.Fatalf("mock image is not base64: %v", err)
	}
	m.Err = &ErrContentFiltered{}
	if _, err := m.GenerateImage(context.Background(), ImageRequest{}); err == nil {
		t.Fatal("expected configured error")
	}
	if len(m.Calls) != 2 {
		t.Fatalf("calls = %d", len(m.Calls))
	}
}
