//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

package recommender

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trpc.group/trpc-go/assessrec/log"
	"trpc.group/trpc-go/assessrec/recommender/embedder"
	"trpc.group/trpc-go/assessrec/recommender/query"
	"trpc.group/trpc-go/assessrec/recommender/ranker"
	"trpc.group/trpc-go/assessrec/recommender/ranker/balanced"
	"trpc.group/trpc-go/assessrec/recommender/retriever"
	"trpc.group/trpc-go/assessrec/recommender/vectorstore"
)

// Engine defaults.
const (
	// DefaultTopN is the default final result size.
	DefaultTopN = 10
	// DefaultPoolSize is the default candidate pool size.
	DefaultPoolSize = 30
	// DefaultRetrievalTimeout bounds the external similarity search call.
	DefaultRetrievalTimeout = 10 * time.Second
)

var _ Recommender = (*BuiltinRecommender)(nil)

// BuiltinRecommender implements the Recommender interface with a built-in
// enhance → retrieve → rank pipeline. The pipeline is synchronous and keeps
// no per-request state, so one instance may serve concurrent requests.
type BuiltinRecommender struct {
	queryEnhancer query.Enhancer
	retriever     retriever.Retriever
	ranker        ranker.Ranker

	embedder    embedder.Embedder
	vectorStore vectorstore.VectorStore

	topN             int
	poolSize         int
	retrievalTimeout time.Duration
}

// Option represents a functional option for configuring BuiltinRecommender.
type Option func(*BuiltinRecommender)

// WithQueryEnhancer sets a custom query enhancer (optional).
func WithQueryEnhancer(qe query.Enhancer) Option {
	return func(br *BuiltinRecommender) {
		br.queryEnhancer = qe
	}
}

// WithRetriever sets a custom retriever (optional). When not provided, a
// default retriever is built from the configured embedder and vector store.
func WithRetriever(r retriever.Retriever) Option {
	return func(br *BuiltinRecommender) {
		br.retriever = r
	}
}

// WithRanker sets a custom ranker (optional).
func WithRanker(r ranker.Ranker) Option {
	return func(br *BuiltinRecommender) {
		br.ranker = r
	}
}

// WithEmbedder sets the embedder used by the built-in retriever.
func WithEmbedder(e embedder.Embedder) Option {
	return func(br *BuiltinRecommender) {
		br.embedder = e
	}
}

// WithVectorStore sets the vector store used by the built-in retriever.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(br *BuiltinRecommender) {
		br.vectorStore = vs
	}
}

// WithTopN sets the default final result size.
func WithTopN(n int) Option {
	return func(br *BuiltinRecommender) {
		if n > 0 {
			br.topN = n
		}
	}
}

// WithPoolSize sets the default candidate pool size.
func WithPoolSize(k int) Option {
	return func(br *BuiltinRecommender) {
		if k > 0 {
			br.poolSize = k
		}
	}
}

// WithRetrievalTimeout bounds the similarity search call. Zero disables the
// bound.
func WithRetrievalTimeout(d time.Duration) Option {
	return func(br *BuiltinRecommender) {
		br.retrievalTimeout = d
	}
}

// New creates a new BuiltinRecommender instance with the given options.
func New(opts ...Option) *BuiltinRecommender {
	br := &BuiltinRecommender{
		topN:             DefaultTopN,
		poolSize:         DefaultPoolSize,
		retrievalTimeout: DefaultRetrievalTimeout,
	}
	for _, opt := range opts {
		opt(br)
	}

	if br.queryEnhancer == nil {
		br.queryEnhancer = query.NewKeywordEnhancer()
	}
	if br.ranker == nil {
		br.ranker = balanced.New()
	}
	if br.retriever == nil {
		br.retriever = retriever.New(
			retriever.WithEmbedder(br.embedder),
			retriever.WithVectorStore(br.vectorStore),
		)
	}
	return br
}

// Recommend implements the Recommender interface.
func (br *BuiltinRecommender) Recommend(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, ErrInvalidQuery
	}

	topN := req.TopN
	if topN == 0 {
		topN = br.topN
	}
	poolSize := req.PoolSize
	if poolSize == 0 {
		poolSize = br.poolSize
	}
	if topN < 0 {
		return nil, fmt.Errorf("%w: top_n %d", ErrInvalidTargetSize, topN)
	}
	if poolSize < topN {
		return nil, fmt.Errorf("%w: pool_size %d is smaller than top_n %d", ErrInvalidTargetSize, poolSize, topN)
	}

	enhanced, err := br.queryEnhancer.EnhanceQuery(ctx, &query.Request{Query: req.Query})
	if err != nil {
		return nil, err
	}
	log.Debugf("recommend: enhanced query %q -> %q", req.Query, enhanced.Enhanced)

	retrieveCtx := ctx
	if br.retrievalTimeout > 0 {
		var cancel context.CancelFunc
		retrieveCtx, cancel = context.WithTimeout(ctx, br.retrievalTimeout)
		defer cancel()
	}
	retrieved, err := br.retriever.Retrieve(retrieveCtx, &retriever.Query{
		Text:  enhanced.Enhanced,
		Limit: poolSize,
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("recommend: retrieved %d candidate(s) for pool size %d", len(retrieved.Candidates), poolSize)

	candidates := make([]*ranker.Candidate, len(retrieved.Candidates))
	for i, c := range retrieved.Candidates {
		candidates[i] = &ranker.Candidate{
			Assessment: c.Assessment,
			Score:      c.Score,
		}
	}

	ranked, err := br.ranker.Rank(ctx, candidates, topN)
	if err != nil {
		return nil, err
	}

	recommendations := make([]*Recommendation, len(ranked))
	for i, c := range ranked {
		recommendations[i] = &Recommendation{
			Assessment: c.Assessment,
			Score:      c.Score,
		}
	}
	return &Result{
		Recommendations: recommendations,
		EnhancedQuery:   enhanced.Enhanced,
	}, nil
}

// Close releases the retriever's resources.
func (br *BuiltinRecommender) Close() error {
	if br.retriever != nil {
		return br.retriever.Close()
	}
	return nil
}
