package seekpager

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Paginator produces keyset pages over queries of type Q with rows of type T.
//
// Configure it with the WithX methods, then use it. The first Build, Encode
// or Orderings call locks the column configuration: later column or
// direction changes are rejected with ErrConfiguration. After that a single
// Paginator may serve concurrent requests.
type Paginator[Q, T any] struct {
	executor   Executor[Q, T]
	accessor   Accessor[T]
	serializer Serializer
	logger     logrus.FieldLogger

	mu        sync.Mutex
	columns   Columns
	direction PaginationDirection
	limit     int
	lookahead bool
	locked    bool
	configErr error

	orderingsOnce sync.Once
	natural       Orderings
	reversed      Orderings
}

// Plan is a page query ready to execute.
type Plan[Q any] struct {
	// Query is the ordered, filtered and limited query.
	Query Q
	// Token is the decoded continuation token the plan was built from.
	Token Token
	// Scan is the direction the query walks the configured ordering.
	Scan PaginationDirection
	// Filter is the boundary predicate applied to Query, nil for the first page.
	Filter Predicate
	// Limit is the page size, NoLimit when unbounded.
	Limit int
	// Lookahead reports whether Query fetches one extra row past Limit.
	Lookahead bool
}

// NewPaginator creates a Paginator scanning Forward with DefaultLimit rows
// per page.
func NewPaginator[Q, T any](executor Executor[Q, T], accessor Accessor[T]) *Paginator[Q, T] {
	return &Paginator[Q, T]{
		executor:   executor,
		accessor:   accessor,
		serializer: Base64JSONSerializer{},
		logger:     discardLogger(),
		direction:  Forward,
		limit:      DefaultLimit,
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// WithAscending appends an ascending column.
func (p *Paginator[Q, T]) WithAscending(name string, kind Kind) *Paginator[Q, T] {
	return p.WithColumns(Asc(name, kind))
}

// WithDescending appends a descending column.
func (p *Paginator[Q, T]) WithDescending(name string, kind Kind) *Paginator[Q, T] {
	return p.WithColumns(Desc(name, kind))
}

// WithColumns appends columns without overwriting existing ones. A column
// that is already configured is moved to the end with its new settings.
// Order is preserved as if calling:
//
//	OrderBy(c1).ThenBy(c2).ThenBy(c3)...
func (p *Paginator[Q, T]) WithColumns(columns ...Column) *Paginator[Q, T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rejectIfInUse("columns") {
		return p
	}

	p.columns = p.columns.with(columns...)

	return p
}

// WithDirection sets the scan direction of "next page". Backward starts from
// the tail of the ordering; pages still read in the declared order.
func (p *Paginator[Q, T]) WithDirection(direction PaginationDirection) *Paginator[Q, T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rejectIfInUse("direction") {
		return p
	}

	if !direction.Valid() {
		p.configErr = fmt.Errorf("%w: invalid direction %d", ErrConfiguration, int(direction))
		return p
	}

	p.direction = direction

	return p
}

// WithLimit sets the page size.
//
// IMPORTANT:
//   - NoLimit cannot be used together with WithLookahead.
//   - If the limit is not NoLimit, NormalizeLimit will be applied.
func (p *Paginator[Q, T]) WithLimit(limit int) *Paginator[Q, T] {
	if limit == NoLimit {
		return p.WithUnlimited()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.limit = NormalizeLimit(limit)

	return p
}

// WithUnlimited allows returning all records without a limit.
//
// IMPORTANT:
// Cannot be used together with WithLookahead.
func (p *Paginator[Q, T]) WithUnlimited() *Paginator[Q, T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.limit = NoLimit

	return p
}

// WithLookahead fetches one row past the page. The extra row answers "is there
// a page after this one in the scan direction" without an existence probe.
//
// IMPORTANT:
// Cannot be used together with WithUnlimited() or WithLimit(NoLimit).
func (p *Paginator[Q, T]) WithLookahead() *Paginator[Q, T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lookahead = true

	return p
}

// WithSerializer replaces the token serializer.
func (p *Paginator[Q, T]) WithSerializer(serializer Serializer) *Paginator[Q, T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.serializer = serializer

	return p
}

// WithLogger sets the logger. Nothing is logged by default.
func (p *Paginator[Q, T]) WithLogger(logger logrus.FieldLogger) *Paginator[Q, T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.logger = lo.Ternary[logrus.FieldLogger](logger == nil, discardLogger(), logger)

	return p
}

// rejectIfInUse records an error when the configuration is already in use.
// Must be called with p.mu held.
func (p *Paginator[Q, T]) rejectIfInUse(what string) bool {
	if !p.locked {
		return false
	}

	p.configErr = fmt.Errorf("%w: cannot change %s after the paginator has been used", ErrConfiguration, what)
	p.logger.WithField("setting", what).Warn("paginator configuration changed after use")

	return true
}

// GetColumns returns a copy of the configured columns.
func (p *Paginator[Q, T]) GetColumns() Columns {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.columns)
}

// GetDirection returns the configured scan direction.
func (p *Paginator[Q, T]) GetDirection() PaginationDirection {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.direction
}

// GetLimit returns the page size as it is stored. NoLimit means unbounded.
func (p *Paginator[Q, T]) GetLimit() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.limit
}

// IsLookahead returns true if lookahead pagination is enabled.
func (p *Paginator[Q, T]) IsLookahead() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lookahead
}

// GetDatasetLimit returns the limit adjusted for lookahead:
//   - if Lookahead = true → GetLimit() + 1
//   - if Lookahead = false → GetLimit()
func (p *Paginator[Q, T]) GetDatasetLimit() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.datasetLimitLocked()
}

func (p *Paginator[Q, T]) datasetLimitLocked() int {
	if p.limit == NoLimit {
		return NoLimit
	}

	return lo.Ternary(p.lookahead, p.limit+1, p.limit)
}

// settings is a consistent snapshot of the configuration taken under lock.
type settings struct {
	columns      Columns
	direction    PaginationDirection
	limit        int
	datasetLimit int
	lookahead    bool
	serializer   Serializer
	logger       logrus.FieldLogger
}

// lock validates the configuration, freezes columns and direction and returns
// a snapshot of the settings.
func (p *Paginator[Q, T]) lock() (settings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.configErr != nil {
		return settings{}, p.configErr
	}

	if err := p.columns.validate(); err != nil {
		return settings{}, err
	}

	if p.limit == NoLimit && p.lookahead {
		return settings{}, fmt.Errorf("%w: cannot apply lookahead to unlimited paging", ErrConfiguration)
	}

	if p.serializer == nil {
		return settings{}, fmt.Errorf("%w: nil token serializer", ErrConfiguration)
	}

	p.locked = true

	return settings{
		columns:      p.columns,
		direction:    p.direction,
		limit:        p.limit,
		datasetLimit: p.datasetLimitLocked(),
		lookahead:    p.lookahead,
		serializer:   p.serializer,
		logger:       p.logger,
	}, nil
}

// Orderings returns the ORDER BY list for the given scan direction. Forward
// follows the declared column directions, Backward reverses all of them.
// Both lists are computed once per paginator.
//
// The list depends on the scan alone, not on the configured direction. A
// paginator configured Backward plans its first page with a Backward scan,
// so it reads the tail of the declared order and Plan.Scan is Backward;
// Fetch flips those rows back into the declared order.
func (p *Paginator[Q, T]) Orderings(scan PaginationDirection) (Orderings, error) {
	s, err := p.lock()
	if err != nil {
		return nil, err
	}

	return p.orderings(s, scan), nil
}

func (p *Paginator[Q, T]) orderings(s settings, scan PaginationDirection) Orderings {
	p.orderingsOnce.Do(func() {
		p.natural = s.columns.orderings(Forward)
		p.reversed = s.columns.orderings(Backward)
	})

	if scan == Backward {
		return p.reversed
	}

	return p.natural
}

// Decode parses a continuation token. An empty string yields the None token.
func (p *Paginator[Q, T]) Decode(rawToken string) (Token, error) {
	p.mu.Lock()
	serializer := p.serializer
	p.mu.Unlock()

	if serializer == nil {
		return Token{}, fmt.Errorf("%w: nil token serializer", ErrConfiguration)
	}

	return decodeToken(serializer, rawToken)
}

// Build turns q into the query of the page addressed by rawToken:
//
//  1. decode the token (empty means first page);
//  2. scan in the token's direction, or the configured one for the first page;
//  3. order by the natural or reversed orderings for that scan;
//  4. filter past the token's boundary;
//  5. limit to the page size (plus one row with lookahead).
//
// The rows of a Backward scan come out in reverse; Fetch restores the
// declared order.
func (p *Paginator[Q, T]) Build(q Q, rawToken string) (*Plan[Q], error) {
	s, err := p.lock()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	return p.build(s, q, rawToken)
}

func (p *Paginator[Q, T]) build(s settings, q Q, rawToken string) (*Plan[Q], error) {
	token, err := decodeToken(s.serializer, rawToken)
	if err != nil {
		s.logger.WithError(err).Warn("rejected continuation token")
		return nil, err
	}

	scan := s.direction
	if !token.IsNone() {
		scan = token.Direction
	}

	plan := &Plan[Q]{
		Token:     token,
		Scan:      scan,
		Limit:     s.limit,
		Lookahead: s.lookahead,
	}

	q = p.executor.ApplyOrdering(q, p.orderings(s, scan))

	if !token.IsNone() {
		plan.Filter, err = BuildBoundary(s.columns, scan, token.Values)
		if err != nil {
			s.logger.WithError(err).Warn("continuation token does not fit the columns")
			return nil, err
		}

		q = p.executor.ApplyFilter(q, plan.Filter)
	}

	plan.Query = p.executor.ApplyLimit(q, s.datasetLimit)

	s.logger.WithFields(logrus.Fields{
		"scan":      scan.String(),
		"columns":   s.columns.Names(),
		"limit":     s.limit,
		"lookahead": s.lookahead,
		"boundary":  plan.Filter != nil,
	}).Debug("keyset page planned")

	return plan, nil
}

// Fetch executes a plan and returns the page rows in the declared order.
func (p *Paginator[Q, T]) Fetch(ctx context.Context, plan *Plan[Q]) ([]T, error) {
	rows, _, err := p.fetch(ctx, plan)
	return rows, err
}

// fetch executes the plan. more reports that the lookahead row was present,
// i.e. there are rows past the page in the scan direction.
func (p *Paginator[Q, T]) fetch(ctx context.Context, plan *Plan[Q]) (rows []T, more bool, err error) {
	if plan == nil {
		return nil, false, fmt.Errorf("%w: nil plan", ErrConfiguration)
	}

	rows, err = p.executor.Execute(ctx, plan.Query)
	if err != nil {
		return nil, false, err
	}

	if plan.Lookahead && plan.Limit != NoLimit && len(rows) > plan.Limit {
		more = true
		rows = rows[:plan.Limit]
	}

	// The scan ran against the reversed ordering to reach the rows nearest
	// to the boundary; hand them out in the declared order.
	if plan.Scan == Backward {
		slices.Reverse(rows)
	}

	return rows, more, nil
}

// Encode mints a continuation token from a reference row. NextPage tokens
// keep the configured direction, PreviousPage tokens reverse it, so the
// token alone tells which way to scan.
func (p *Paginator[Q, T]) Encode(direction ContinuationDirection, row T) (string, error) {
	s, err := p.lock()
	if err != nil {
		return "", fmt.Errorf("cannot build %s page token: %w", direction, err)
	}

	return p.encode(s, direction, row)
}

func (p *Paginator[Q, T]) encode(s settings, direction ContinuationDirection, row T) (string, error) {
	values, err := p.referenceValues(s, row)
	if err != nil {
		return "", fmt.Errorf("cannot build %s page token: %w", direction, err)
	}

	token := Token{
		Direction: s.direction,
		Values:    values,
	}
	if direction == PreviousPage {
		token.Direction = s.direction.Reverse()
	}

	raw, err := s.serializer.Serialize(token)
	if err != nil {
		return "", fmt.Errorf("cannot build %s page token: %w", direction, err)
	}

	s.logger.WithFields(logrus.Fields{
		"edge": direction.String(),
		"scan": token.Direction.String(),
	}).Debug("continuation token minted")

	return raw, nil
}

// referenceValues captures one value per configured column from row.
func (p *Paginator[Q, T]) referenceValues(s settings, row T) ([]Value, error) {
	values := make([]Value, 0, len(s.columns))
	for _, column := range s.columns {
		v, err := p.accessor.Value(row, column.Name)
		if err != nil {
			return nil, err
		}

		if v.IsNull() {
			return nil, fmt.Errorf("%w: column '%s' is NULL on the reference row", ErrEmptyReference, column.Name)
		}

		if _, err = column.bind(v); err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	return values, nil
}

// CreateContinuationToken is an alias of Encode.
func (p *Paginator[Q, T]) CreateContinuationToken(direction ContinuationDirection, row T) (string, error) {
	return p.Encode(direction, row)
}

// CreateContinuationTokenFromRows mints a token from the edge of a page:
// the first row for PreviousPage, the last row for NextPage. rows must be in
// the order Fetch returns them.
func (p *Paginator[Q, T]) CreateContinuationTokenFromRows(direction ContinuationDirection, rows []T) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("cannot build %s page token: %w: no rows", direction, ErrEmptyReference)
	}

	s, err := p.lock()
	if err != nil {
		return "", fmt.Errorf("cannot build %s page token: %w", direction, err)
	}

	first, last := edges(s.direction, rows)
	if direction == PreviousPage {
		return p.encode(s, direction, first)
	}

	return p.encode(s, direction, last)
}

// edges returns the rows adjacent to the previous and the next page. Pages
// read in the declared order; with a Backward configuration "next" lies
// toward the head of the page.
func edges[T any](direction PaginationDirection, rows []T) (first, last T) {
	first, last = rows[0], rows[len(rows)-1]
	if direction == Backward {
		first, last = last, first
	}

	return first, last
}
