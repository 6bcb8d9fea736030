//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package topk provides a simple ranker that keeps the top n candidates in
// their retrieval order, without any diversity adjustment.
package topk

import (
	"context"

	"trpc.group/trpc-go/assessrec/recommender/ranker"
)

var _ ranker.Ranker = (*Ranker)(nil)

// Ranker returns the first n candidates unchanged, deduplicated by URL.
type Ranker struct{}

// New creates a new top-K ranker.
func New() *Ranker {
	return &Ranker{}
}

// Rank implements the ranker.Ranker interface.
func (r *Ranker) Rank(ctx context.Context, candidates []*ranker.Candidate, n int) ([]*ranker.Candidate, error) {
	if n <= 0 {
		return nil, ranker.ErrInvalidTargetSize
	}

	selected := make([]*ranker.Candidate, 0, n)
	seen := make(map[string]bool, n)
	for _, c := range candidates {
		if len(selected) >= n {
			break
		}
		if seen[c.Assessment.URL] {
			continue
		}
		seen[c.Assessment.URL] = true
		selected = append(selected, c)
	}
	return selected, nil
}
