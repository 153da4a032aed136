package llm

import "context"

// Purpose labels stored with each logged call and matched by
// `triviaz llm list --purpose`.
const (
	PurposeTriviaBatch = "trivia-batch"
	PurposeUnknown     = "unknown"
)

type purposeCtxKey struct{}

// WithPurpose tags ctx so calls made under it are logged with purpose.
// An empty purpose leaves ctx untouched.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	purpose, _ := ctx.Value(purposeCtxKey{}).(string)
	if purpose == "" {
		return PurposeUnknown
	}
	return purpose
}
