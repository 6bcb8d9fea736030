//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package vectorstore provides interfaces for vector storage and similarity search.
package vectorstore

import (
	"context"

	"trpc.group/trpc-go/assessrec/recommender/assessment"
)

// VectorStore defines the interface for vector storage and similarity search
// over catalog assessments. The catalog is static per deployment: stores are
// populated once at startup and only read afterwards. Implementations must be
// safe for concurrent read access.
type VectorStore interface {
	// Add stores an assessment with its embedding vector.
	Add(ctx context.Context, a *assessment.Assessment, embedding []float64) error

	// Get retrieves an assessment by URL along with its embedding.
	Get(ctx context.Context, url string) (*assessment.Assessment, []float64, error)

	// Delete removes an assessment and its embedding.
	Delete(ctx context.Context, url string) error

	// Search performs similarity search and returns the most similar assessments.
	Search(ctx context.Context, query *SearchQuery) (*SearchResult, error)

	// Count counts assessments in the vector store.
	Count(ctx context.Context) (int, error)

	// Close closes the vector store connection.
	Close() error
}

// SearchQuery represents a vector similarity search query.
type SearchQuery struct {
	// Vector is the query embedding vector.
	Vector []float64

	// Limit specifies the number of top results to return.
	Limit int

	// MinScore specifies the minimum similarity score threshold.
	MinScore float64
}

// SearchResult represents the result of a vector similarity search.
type SearchResult struct {
	// Results contains the matching assessments with their similarity
	// scores, sorted by descending score.
	Results []*ScoredAssessment
}

// ScoredAssessment represents an assessment with its similarity score.
type ScoredAssessment struct {
	// Assessment is the matched catalog record.
	Assessment *assessment.Assessment

	// Score is the similarity score (higher is more similar).
	Score float64
}
