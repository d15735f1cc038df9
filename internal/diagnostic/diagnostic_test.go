package diagnostic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/llm"
)

const validReply = "診断結果です。\n```json\n" + `{
  "service": {"category": "サーバーレス", "serviceName": "AWS Lambda"},
  "catchphrase": "身軽なイベント職人",
  "aiLetter": "あなたには必要な時にだけ力を発揮する軽やかさがあります。",
  "nextActions": ["Lambdaの入門チュートリアル", "API Gatewayと連携", "Step Functionsを試す"]
}` + "\n```"

var fixedTime = time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)

func newTestService(replies ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(replies...)
	svc := New(mock,
		WithClock(func() time.Time { return fixedTime }),
		WithIDFunc(func() string { return "result-1" }),
	)
	return svc, mock
}

func validInput() DiagnoseInput {
	return DiagnoseInput{Mode: gift.ModeTechFit, Responses: sampleResponses(), Services: sampleServices()}
}

func TestDiagnose_HappyPath(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(validReply)})

	r, err := svc.Diagnose(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID != "result-1" || !r.Timestamp.Equal(fixedTime) || r.Mode != gift.ModeTechFit {
		t.Fatalf("result = %+v", r)
	}
	if r.Service.ServiceName != "AWS Lambda" || r.Catchphrase != "身軽なイベント職人" || len(r.NextActions) != 3 {
		t.Fatalf("result = %+v", r)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.MaxTokens != 2048 || req.Schema != nil || len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("request = %+v", req)
	}
	if req.Messages[0].Content != BuildPrompt(gift.ModeTechFit, sampleResponses(), sampleServices()) {
		t.Fatal("the prompt must be the only user message")
	}
}

func TestDiagnose_CategoryComesFromCatalog(t *testing.T) {
	reply := `{"service":{"category":"コンピューティング","serviceName":"AWS Lambda"},"catchphrase":"x","aiLetter":"y","nextActions":["z"]}`
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(reply)})
	r, err := svc.Diagnose(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Service.Category != "サーバーレス" {
		t.Fatalf("category = %q", r.Service.Category)
	}
}

func TestDiagnose_InputValidation(t *testing.T) {
	tests := []struct {
		name string
		in   DiagnoseInput
		msg  string
	}{
		{"bad mode", DiagnoseInput{Mode: "party", Responses: sampleResponses(), Services: sampleServices()}, apperr.MsgInvalidMode},
		{"no responses", DiagnoseInput{Mode: gift.ModeVibeFit, Services: sampleServices()}, apperr.MsgNoResponses},
		{"no services", DiagnoseInput{Mode: gift.ModeVibeFit, Responses: sampleResponses()}, apperr.MsgNoServices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newTestService()
			_, err := svc.Diagnose(context.Background(), tt.in)
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != apperr.ValidationFailure {
				t.Fatalf("err = %v", err)
			}
			if ae.UserMessage() != tt.msg {
				t.Fatalf("message = %q, want %q", ae.UserMessage(), tt.msg)
			}
			if mock.CallCount() != 0 {
				t.Fatal("invalid input must not reach the model")
			}
		})
	}
}

func TestDiagnose_ParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose only", "ごめんなさい、わかりません"},
		{"broken json", "```json\n{\"service\": \n```"},
		{"missing catchphrase", `{"service":{"category":"サーバーレス","serviceName":"AWS Lambda"},"aiLetter":"y","nextActions":["z"]}`},
		{"empty next actions", `{"service":{"category":"サーバーレス","serviceName":"AWS Lambda"},"catchphrase":"x","aiLetter":"y","nextActions":[]}`},
		{"unknown service", `{"service":{"category":"量子","serviceName":"Amazon Braket"},"catchphrase":"x","aiLetter":"y","nextActions":["z"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(tt.reply)})
			_, err := svc.Diagnose(context.Background(), validInput())
			if !apperr.IsKind(err, apperr.ResponseParseFailure) {
				t.Fatalf("err = %v", err)
			}
			if apperr.UserMessage(err) != apperr.MsgParseFailed {
				t.Fatalf("message = %q", apperr.UserMessage(err))
			}
		})
	}
}

func TestDiagnose_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
		msg  string
	}{
		{"throttled", &llm.ErrRateLimit{}, apperr.ExternalServiceThrottled, apperr.MsgThrottled},
		{"denied", &llm.ErrAccessDenied{}, apperr.ExternalServiceAccessDenied, apperr.MsgAccessDenied},
		{"unavailable", &llm.ErrProviderUnavailable{}, apperr.ExternalServiceUnavailable, apperr.MsgServiceUnavailable},
		{"timeout", context.DeadlineExceeded, apperr.NetworkTimeout, apperr.MsgNetworkTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(llm.MockResponse{Err: tt.err})
			_, err := svc.Diagnose(context.Background(), validInput())
			var ae *apperr.Error
			if !errors.As(err, &ae) {
				t.Fatalf("expected *apperr.Error, got %T", err)
			}
			if ae.Kind != tt.kind || ae.UserMessage() != tt.msg || ae.Op != apperr.OpDiagnose {
				t.Fatalf("err = %+v", ae)
			}
		})
	}
}

func TestDiagnose_DefaultIDsAreUnique(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validReply)},
		llm.MockResponse{Content: json.RawMessage(validReply)},
	)
	svc := New(mock)
	a, err := svc.Diagnose(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Diagnose(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID || a.ID == "" {
		t.Fatalf("ids %q and %q", a.ID, b.ID)
	}
}

func TestDiagnose_NoProvider(t *testing.T) {
	svc := New(nil)
	_, err := svc.Diagnose(context.Background(), validInput())

	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.ExternalServiceUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
