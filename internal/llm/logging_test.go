package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amixedcolor/aws-identity-gift/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	s := openTestStore(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, s.EventRepo(), nil)

	ctx := WithPurpose(context.Background(), "diagnostic")
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Purpose != "diagnostic" || !e.Success || e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Fatalf("event = %+v", e)
	}
	if !strings.Contains(e.RequestBody, "[system]\nsys") || !strings.Contains(e.RequestBody, "[user]\nhi") {
		t.Fatalf("request body = %q", e.RequestBody)
	}
	if e.ResponseBody != `{"ok":true}` {
		t.Fatalf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	s := openTestStore(t)
	p := WithLogging(NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}}), s.EventRepo(), nil)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	events, _ := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if len(events) != 1 || events[0].Success || events[0].ErrorMessage == "" {
		t.Fatalf("events = %+v", events)
	}
}

func TestLoggingProvider_AppendFailureIsOnlyLogged(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	s.Close()

	core, logs := observer.New(zap.WarnLevel)
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), repo, zap.New(core))

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("append failure must not fail the request: %v", err)
	}
	if logs.FilterMessage("failed to log LLM request event").Len() != 1 {
		t.Fatalf("expected one warning, got %v", logs.All())
	}
}

func TestLoggingImageProvider_OmitsImageBytes(t *testing.T) {
	s := openTestStore(t)
	p := WithImageLogging(NewMockImageProvider(), s.EventRepo(), nil)

	ctx := WithPurpose(context.Background(), "giftcard")
	resp, err := p.GenerateImage(ctx, ImageRequest{Prompt: "snow", Width: 1280, Height: 720, Seed: 42})
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	events, _ := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: "giftcard"})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if strings.Contains(events[0].ResponseBody, resp.Base64) {
		t.Fatal("image bytes must not be stored")
	}
	if !strings.Contains(events[0].RequestBody, "seed=42") {
		t.Fatalf("request body = %q", events[0].RequestBody)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "bogus"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewImageProvider(t *testing.T) {
	p, err := NewImageProvider(context.Background(), Config{}, nil, nil)
	if err != nil || p != nil {
		t.Fatalf("disabled images: %v, %v", p, err)
	}
	p, err = NewImageProvider(context.Background(), Config{Image: ImageConfig{Provider: "mock"}}, nil, nil)
	if err != nil || p == nil {
		t.Fatalf("mock images: %v, %v", p, err)
	}
	if _, err := NewImageProvider(context.Background(), Config{Image: ImageConfig{Provider: "openai"}}, nil, nil); err == nil {
		t.Fatal("openai images need a key")
	}
}
