package seekpager

import "errors"

var (
	// ErrConfiguration is returned when the paginator cannot run with its
	// current configuration: no columns, forbidden symbols in a column name,
	// lookahead over an unlimited page, or columns changed after first use.
	ErrConfiguration = errors.New("invalid paginator configuration")

	// ErrTokenDecode is returned for malformed, tampered or truncated
	// continuation tokens. Tokens come from clients and must be treated as
	// untrusted input.
	ErrTokenDecode = errors.New("cannot decode continuation token")

	// ErrTokenValueMismatch is returned when the values carried by a token do
	// not line up with the configured columns (count, kind or nullness).
	// Usually means the sort configuration changed between requests.
	ErrTokenValueMismatch = errors.New("continuation token does not match columns")

	// ErrEmptyReference is returned when a token is minted from an empty row
	// set or from a row that has no value for one of the columns.
	ErrEmptyReference = errors.New("empty reference for continuation token")
)
