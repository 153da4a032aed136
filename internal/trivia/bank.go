package trivia

import "context"

// Bank fetches batches of questions from a content provider.
type Bank interface {
	// FetchBatch asks the provider for count questions at difficulty d
	// (DifficultyAny for the provider default). It makes a single attempt.
	//
	// A batch shorter than count is not an error. Zero questions is an
	// *EmptyResultError; transport, status and decoding failures are
	// *ProviderError.
	FetchBatch(ctx context.Context, count int, d Difficulty) ([]Question, error)

	// Name identifies the provider for logs and the event store.
	Name() string
}
