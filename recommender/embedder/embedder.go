//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package embedder provides interfaces and implementations for text embedding.
package embedder

import "context"

// Embedder is the interface that all embedders must implement.
//
// Error Handling Strategy:
// This interface uses a dual-layer error handling approach:
//
// 1. Function-level errors (returned as `error`):
//   - System-level failures that prevent communication
//   - Examples: nil input, network issues, invalid parameters
//
// 2. Empty embeddings (empty slice return):
//   - API-level errors or processing failures
//   - Examples: API rate limits, content filtering, model errors
//   - These are delivered as empty slices with logged warnings
type Embedder interface {
	// GetEmbedding generates an embedding vector for the given text.
	// The embedding slice may be empty for API-level errors.
	GetEmbedding(ctx context.Context, text string) ([]float64, error)

	// GetEmbeddingWithUsage generates an embedding vector for the given text
	// and returns usage information if available (may be nil).
	GetEmbeddingWithUsage(ctx context.Context, text string) ([]float64, map[string]any, error)

	// GetDimensions returns the dimensionality of the embeddings produced by
	// this embedder. Returns 0 if dimensions are not known or configurable.
	GetDimensions() int
}
