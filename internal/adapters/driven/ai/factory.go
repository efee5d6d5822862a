// Package ai provides factory functions for creating embedding service
// adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/meridian-labs/pagelens-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/meridian-labs/pagelens-cli/internal/adapters/driven/embedding/openai"
	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// presets maps friendly aliases to (provider, model) pairs so the CLI can
// say "--model small" instead of spelling out provider model names.
var presets = map[string]struct {
	provider domain.EmbeddingProvider
	model    string
}{
	"small": {domain.EmbeddingProviderOpenAI, "text-embedding-3-small"},
	"large": {domain.EmbeddingProviderOpenAI, "text-embedding-3-large"},
	"local": {domain.EmbeddingProviderOllama, "nomic-embed-text"},
	"mini":  {domain.EmbeddingProviderOllama, "all-minilm"},
}

// ResolvePreset expands a preset alias into its provider and model name.
// Non-alias model names pass through with the configured provider.
func ResolvePreset(cfg domain.EmbeddingConfig) domain.EmbeddingConfig {
	if p, ok := presets[cfg.Model]; ok {
		cfg.Provider = p.provider
		cfg.Model = p.model
	}
	return cfg
}

// CreateEmbeddingService builds the embedding adapter for the configured
// provider. It does not touch the network; use
// CreateAndValidateEmbeddingService at run start.
func CreateEmbeddingService(cfg domain.EmbeddingConfig) (driven.EmbeddingService, error) {
	cfg = ResolvePreset(cfg)

	switch cfg.Provider {
	case domain.EmbeddingProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case domain.EmbeddingProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidConfig, cfg.Provider)
	}
}

// CreateAndValidateEmbeddingService creates the embedding service and
// validates connectivity. Any failure here is ErrModelUnavailable: fatal
// for the entire run, with no partial-embedding recovery path.
func CreateAndValidateEmbeddingService(cfg domain.EmbeddingConfig) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%v)", domain.ErrModelUnavailable, err)
	}

	return svc, nil
}
