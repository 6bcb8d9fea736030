//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package recommender provides the assessment recommendation engine: query
// enhancement, vector similarity retrieval and balanced re-ranking into a
// bounded top-N result.
package recommender

import (
	"context"

	"trpc.group/trpc-go/assessrec/recommender/assessment"
	"trpc.group/trpc-go/assessrec/recommender/query"
	"trpc.group/trpc-go/assessrec/recommender/ranker"
	"trpc.group/trpc-go/assessrec/recommender/retriever"
)

// Error taxonomy surfaced by Recommend. All three map directly onto the
// component errors; use errors.Is to classify.
var (
	// ErrInvalidQuery is returned for a blank raw query.
	ErrInvalidQuery = query.ErrInvalidQuery

	// ErrInvalidTargetSize is returned for a non-positive top-N or a
	// candidate pool smaller than the target size.
	ErrInvalidTargetSize = ranker.ErrInvalidTargetSize

	// ErrRetrievalUnavailable is returned when the similarity search call
	// fails, times out or returns malformed data.
	ErrRetrievalUnavailable = retriever.ErrUnavailable
)

// Recommender is the engine's sole public operation: map a free-text job or
// role requirement to a ranked shortlist of assessments.
type Recommender interface {
	// Recommend runs the full pipeline for one request.
	Recommend(ctx context.Context, req *Request) (*Result, error)
}

// Request represents a recommendation request.
type Request struct {
	// Query is the raw free-text job/role requirement.
	Query string

	// TopN is the final result size. Zero means the engine default (10).
	TopN int

	// PoolSize is the candidate pool fetched before ranking. Zero means
	// the engine default (30). Must not be smaller than TopN.
	PoolSize int
}

// Result represents an ordered recommendation list. Insertion order is the
// final rank order and URLs are unique.
type Result struct {
	// Recommendations contains at most TopN entries.
	Recommendations []*Recommendation

	// EnhancedQuery is the query text that was actually searched.
	EnhancedQuery string
}

// Recommendation is one recommended assessment with its similarity score.
type Recommendation struct {
	// Assessment is the recommended catalog record.
	Assessment *assessment.Assessment

	// Score is the similarity score from retrieval.
	Score float64
}
