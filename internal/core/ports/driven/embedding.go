package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// Failure to initialise or reach the provider is fatal for the whole run;
// there is no partial-embedding recovery path.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// The output order matches the input order exactly: consumers zip
	// passages and vectors positionally.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the native embedding vector size (e.g. 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Run at startup so an unavailable model fails the run before
	// any page is fetched.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
