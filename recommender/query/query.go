//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package query provides query enhancement for the recommendation pipeline.
package query

import (
	"context"
	"errors"
)

// ErrInvalidQuery is returned when the raw query is empty or blank.
var ErrInvalidQuery = errors.New("query: query cannot be blank")

// Enhancer enhances user queries for better search results.
type Enhancer interface {
	// EnhanceQuery improves a user query by expanding it with related terms.
	EnhanceQuery(ctx context.Context, req *Request) (*Enhanced, error)
}

// Request represents a query enhancement request.
type Request struct {
	// Query is the user's raw query text.
	Query string
}

// Enhanced represents an enhanced search query.
type Enhanced struct {
	// Enhanced is the expanded query text. It is never shorter than the
	// raw query and never empty.
	Enhanced string

	// Keywords contains the related terms that were appended, in order.
	Keywords []string
}
