package llm

import "context"

// UnknownPurpose labels events logged without a purpose on the context.
const UnknownPurpose = "unknown"

type purposeKey struct{}

// WithPurpose labels calls made with ctx, e.g. "diagnostic" or "giftcard",
// so the event log can group them. An empty purpose leaves ctx as is.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or UnknownPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return UnknownPurpose
}
