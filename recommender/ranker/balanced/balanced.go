//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package balanced provides a diversity-aware ranker that interleaves
// candidates from two test-type buckets.
//
// Pure top-K-by-similarity retrieval over-represents one dominant category
// when the query contains strong keyword matches for it: a technical skill
// term skews the whole pool toward "Knowledge & Skills" assessments and
// starves behavioral ones. The interleave guarantees both buckets are
// represented in proportion to their share of the candidate pool.
package balanced

import (
	"context"

	"trpc.group/trpc-go/assessrec/recommender/assessment"
	"trpc.group/trpc-go/assessrec/recommender/ranker"
)

var _ ranker.Ranker = (*Ranker)(nil)

// Ranker partitions candidates by the primary test type and greedily
// interleaves the two buckets into the final list.
type Ranker struct {
	// primaryType is the category tag defining the primary bucket.
	primaryType assessment.TestType
}

// Option represents a functional option for configuring Ranker.
type Option func(*Ranker)

// WithPrimaryType sets the category tag that defines the primary bucket.
// Default is "Knowledge & Skills".
func WithPrimaryType(t assessment.TestType) Option {
	return func(r *Ranker) {
		if t != "" {
			r.primaryType = t
		}
	}
}

// New creates a new balanced ranker with options.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		primaryType: assessment.TypeKnowledgeSkills,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// entry tracks a candidate's original position, the stable tie-break key.
type entry struct {
	candidate *ranker.Candidate
	pos       int
}

// Rank implements the ranker.Ranker interface.
//
// Candidates split into a primary bucket (primary tag present) and a
// secondary bucket (everything else), each preserving the input's similarity
// order. Selection repeatedly picks from whichever bucket has the lower
// selected-count to bucket-size ratio; ties go to the higher similarity
// score, then to the earlier original position. Candidates repeating an
// already selected URL are skipped. Selection stops at n or when both
// buckets are exhausted; fewer than n total candidates is not an error.
func (r *Ranker) Rank(ctx context.Context, candidates []*ranker.Candidate, n int) ([]*ranker.Candidate, error) {
	if n <= 0 {
		return nil, ranker.ErrInvalidTargetSize
	}
	if len(candidates) == 0 {
		return []*ranker.Candidate{}, nil
	}

	var primary, secondary []entry
	for i, c := range candidates {
		if c.Assessment.HasTestType(r.primaryType) {
			primary = append(primary, entry{candidate: c, pos: i})
		} else {
			secondary = append(secondary, entry{candidate: c, pos: i})
		}
	}

	selected := make([]*ranker.Candidate, 0, n)
	seen := make(map[string]bool, n)
	var pi, si int         // bucket cursors
	var pTaken, sTaken int // selected counts per bucket

	for len(selected) < n {
		// Advance cursors past duplicates of already selected URLs.
		for pi < len(primary) && seen[primary[pi].candidate.Assessment.URL] {
			pi++
		}
		for si < len(secondary) && seen[secondary[si].candidate.Assessment.URL] {
			si++
		}

		pOK := pi < len(primary)
		sOK := si < len(secondary)
		if !pOK && !sOK {
			break
		}

		var pick entry
		switch {
		case pOK && !sOK:
			pick = primary[pi]
			pi++
			pTaken++
		case sOK && !pOK:
			pick = secondary[si]
			si++
			sTaken++
		default:
			if r.takePrimary(primary[pi], secondary[si], pTaken, sTaken, len(primary), len(secondary)) {
				pick = primary[pi]
				pi++
				pTaken++
			} else {
				pick = secondary[si]
				si++
				sTaken++
			}
		}

		seen[pick.candidate.Assessment.URL] = true
		selected = append(selected, pick.candidate)
	}

	return selected, nil
}

// takePrimary decides between the two bucket heads when both buckets still
// hold candidates: lower fill ratio wins, then higher score, then earlier
// original position.
func (r *Ranker) takePrimary(p, s entry, pTaken, sTaken, pSize, sSize int) bool {
	pRatio := float64(pTaken) / float64(pSize)
	sRatio := float64(sTaken) / float64(sSize)
	if pRatio != sRatio {
		return pRatio < sRatio
	}
	if p.candidate.Score != s.candidate.Score {
		return p.candidate.Score > s.candidate.Score
	}
	return p.pos < s.pos
}
