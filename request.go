package seekpager

const (
	NoLimit      = -1
	MaxLimit     = 100
	DefaultLimit = 10
)

// IsNormalizedLimitMax clamps limit into [1, maxLimit], substituting
// DefaultLimit for non-positive values. The flag reports whether limit was
// already acceptable.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	if limit <= 0 {
		return min(DefaultLimit, maxLimit), false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

func NormalizeLimitMax(limit int, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, maxLimit)
	return ret
}

func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}

// RawPageRequest is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPageRequest `json:",inline"`
//	}
type RawPageRequest struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// Token - continuation token obtained from a previous PageResult.
	// If empty, the first page with Limit records is returned.
	Token string `json:"token"`
	// Sort - optional "column asc|desc" list resolved through a ColumnMapping.
	Sort []string `json:"sort,omitempty"`
}

// NormalizedLimit returns Limit clamped with NormalizeLimit.
func (r RawPageRequest) NormalizedLimit() int {
	return NormalizeLimit(r.Limit)
}

// Columns resolves Sort through the mapping. When Sort is empty the fallback
// columns are returned. tieBreaker, when set, is appended if the resolved list
// does not already end with it, so client supplied sorts stay deterministic.
func (r RawPageRequest) Columns(mapping ColumnMapping, tieBreaker *Column, fallback ...Column) (Columns, error) {
	columns := Columns(fallback)
	if len(r.Sort) > 0 {
		parsed, err := ParseSort(r.Sort, mapping)
		if err != nil {
			return nil, err
		}

		columns = parsed
	}

	if tieBreaker != nil && (len(columns) == 0 || columns[len(columns)-1].Name != tieBreaker.Name) {
		columns = columns.with(*tieBreaker)
	}

	return columns, nil
}
