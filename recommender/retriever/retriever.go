//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package retriever provides candidate retrieval against the catalog's
// similarity index.
package retriever

import (
	"context"
	"errors"

	"trpc.group/trpc-go/assessrec/recommender/assessment"
)

// ErrUnavailable is returned when the similarity search cannot be completed:
// the embedding or search call failed, timed out, or returned malformed data.
// An empty candidate set is not an error.
var ErrUnavailable = errors.New("retriever: similarity search unavailable")

// Retriever finds catalog candidates for an enhanced query.
type Retriever interface {
	// Retrieve returns up to Limit candidates sorted by descending
	// similarity score.
	Retrieve(ctx context.Context, query *Query) (*Result, error)

	// Close closes the retriever and releases resources.
	Close() error
}

// Query represents a retrieval query.
type Query struct {
	// Text is the enhanced query text for semantic search.
	Text string

	// Limit specifies the candidate pool size to retrieve.
	Limit int

	// MinScore specifies the minimum similarity score threshold.
	MinScore float64
}

// Result represents the result of a retrieval operation.
type Result struct {
	// Candidates contains the retrieved assessments with similarity
	// scores, in descending score order.
	Candidates []*Candidate
}

// Candidate represents an assessment with its similarity score.
type Candidate struct {
	// Assessment is the retrieved catalog record.
	Assessment *assessment.Assessment

	// Score is the similarity score (higher is more similar).
	Score float64
}
