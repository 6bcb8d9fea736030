//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

package query

import (
	"context"
	"strings"
)

// PassthroughEnhancer is a simple enhancer that returns the original query
// unchanged. Useful when the caller already supplies a well-formed query.
type PassthroughEnhancer struct{}

// NewPassthroughEnhancer creates a new passthrough query enhancer.
func NewPassthroughEnhancer() *PassthroughEnhancer {
	return &PassthroughEnhancer{}
}

// EnhanceQuery implements the Enhancer interface by returning the original query.
func (p *PassthroughEnhancer) EnhanceQuery(ctx context.Context, req *Request) (*Enhanced, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrInvalidQuery
	}
	return &Enhanced{Enhanced: req.Query}, nil
}
