package seekpager

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// PageResult is one page of rows with the tokens of its neighbours.
type PageResult[T any] struct {
	// Items page rows in the declared order.
	Items []T `json:"items"`
	// TotalCount number of rows matched by the base query.
	TotalCount int64 `json:"totalCount"`
	// AppliedLimit effective page size, NoLimit when unbounded.
	AppliedLimit int `json:"appliedLimit"`
	// CurrentToken the token this page was requested with.
	CurrentToken string `json:"currentToken"`
	// PreviousToken token of the previous page, empty on the first page.
	PreviousToken string `json:"previousToken,omitempty"`
	// NextToken token of the next page, empty on the last page.
	NextToken string `json:"nextToken,omitempty"`
}

// HasPrevious reports whether a previous page exists.
func (r *PageResult[T]) HasPrevious() bool {
	return r != nil && r.PreviousToken != ""
}

// HasNext reports whether a next page exists.
func (r *PageResult[T]) HasNext() bool {
	return r != nil && r.NextToken != ""
}

// Page runs the page addressed by rawToken over the base query q and mints
// the tokens of the neighbouring pages.
//
// The total count and the neighbour probes run against q itself, without the
// page boundary. A neighbour token is only minted when a row exists past the
// page edge; with lookahead the edge in the scan direction is answered by the
// extra row instead of a probe.
func (p *Paginator[Q, T]) Page(ctx context.Context, q Q, rawToken string) (*PageResult[T], error) {
	s, err := p.lock()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	plan, err := p.build(s, q, rawToken)
	if err != nil {
		return nil, err
	}

	total, err := p.executor.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	rows, more, err := p.fetch(ctx, plan)
	if err != nil {
		return nil, err
	}

	result := &PageResult[T]{
		Items:        rows,
		TotalCount:   total,
		AppliedLimit: plan.Limit,
		CurrentToken: rawToken,
	}
	if result.Items == nil {
		result.Items = make([]T, 0)
	}

	if len(rows) == 0 {
		return result, nil
	}

	first, last := edges(s.direction, rows)

	result.PreviousToken, err = p.neighbourToken(ctx, s, q, plan, more, PreviousPage, first)
	if err != nil {
		return nil, err
	}

	result.NextToken, err = p.neighbourToken(ctx, s, q, plan, more, NextPage, last)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"items":    len(result.Items),
		"total":    total,
		"previous": result.HasPrevious(),
		"next":     result.HasNext(),
	}).Debug("keyset page assembled")

	return result, nil
}

// neighbourToken mints the token of the page past edge in the given
// direction, or returns "" when no row lies past edge.
func (p *Paginator[Q, T]) neighbourToken(
	ctx context.Context,
	s settings,
	q Q,
	plan *Plan[Q],
	more bool,
	direction ContinuationDirection,
	edge T,
) (string, error) {
	scan := s.direction
	if direction == PreviousPage {
		scan = scan.Reverse()
	}

	var exists bool
	if plan.Lookahead && plan.Scan == scan {
		exists = more
	} else {
		values, err := p.referenceValues(s, edge)
		if err != nil {
			return "", fmt.Errorf("cannot probe %s page: %w", direction, err)
		}

		boundary, err := BuildBoundary(s.columns, scan, values)
		if err != nil {
			return "", fmt.Errorf("cannot probe %s page: %w", direction, err)
		}

		exists, err = p.executor.Exists(ctx, q, boundary)
		if err != nil {
			return "", err
		}
	}

	if !exists {
		return "", nil
	}

	return p.encode(s, direction, edge)
}
