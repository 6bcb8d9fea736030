//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package ranker provides candidate re-ranking for the recommendation pipeline.
package ranker

import (
	"context"
	"errors"

	"trpc.group/trpc-go/assessrec/recommender/assessment"
)

// ErrInvalidTargetSize is returned when the requested result size is not positive.
var ErrInvalidTargetSize = errors.New("ranker: target size must be positive")

// Ranker re-orders a similarity-ranked candidate list into a final list of
// at most n entries. Implementations never invent candidates: every returned
// entry comes from the input, and returned URLs are unique.
type Ranker interface {
	// Rank selects and orders up to n candidates.
	Rank(ctx context.Context, candidates []*Candidate, n int) ([]*Candidate, error)
}

// Candidate represents a rankable candidate.
type Candidate struct {
	// Assessment is the candidate catalog record.
	Assessment *assessment.Assessment

	// Score is the similarity score from retrieval.
	Score float64
}
