package seekpager

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// PaginationDirection is the scan direction over the configured ordering.
// Values are part of the token wire format.
type PaginationDirection int

const (
	Forward  PaginationDirection = 0
	Backward PaginationDirection = 1
)

func (d PaginationDirection) Valid() bool {
	return d == Forward || d == Backward
}

// Reverse returns the opposite scan direction.
func (d PaginationDirection) Reverse() PaginationDirection {
	if d == Backward {
		return Forward
	}

	return Backward
}

// String - implements fmt.Stringer.
func (d PaginationDirection) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ContinuationDirection selects the page edge a token is minted for.
type ContinuationDirection int

const (
	NextPage ContinuationDirection = iota
	PreviousPage
)

// String - implements fmt.Stringer.
func (d ContinuationDirection) String() string {
	if d == PreviousPage {
		return "previous"
	}

	return "next"
}

// Token is the decoded state of a continuation token: the scan direction
// required to reach the page and one reference value per configured column.
//
// A token without values is the "None" token and means "first page".
type Token struct {
	Direction PaginationDirection `json:"d"`
	Values    []Value             `json:"v"`
}

// IsNone reports whether the token carries no boundary.
func (t Token) IsNone() bool {
	return len(t.Values) == 0
}

// Serializer turns tokens into opaque strings and back. Deserialize must
// return the None token for an empty string. A non-empty string without
// values is rejected by the paginator whatever the serializer returns.
type Serializer interface {
	Serialize(token Token) (string, error)
	Deserialize(raw string) (Token, error)
}

// Base64JSONSerializer encodes tokens as URL-safe unpadded base64 of their
// JSON form:
//
//	{"d":0,"v":[{"t":2,"v":30},{"t":6,"v":2}]}
type Base64JSONSerializer struct{}

// Serialize - implements Serializer.
func (Base64JSONSerializer) Serialize(token Token) (string, error) {
	if token.IsNone() {
		return "", nil
	}

	jTok, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("cannot marshal token: %w", err)
	}

	return _encoder.EncodeToString(jTok), nil
}

// Deserialize - implements Serializer.
func (Base64JSONSerializer) Deserialize(raw string) (Token, error) {
	if len(raw) == 0 {
		return Token{}, nil
	}

	jsonData, err := _encoder.DecodeString(raw)
	if err != nil {
		return Token{}, fmt.Errorf("%w: failed to decode base64 encoded token: %w", ErrTokenDecode, err)
	}

	var token Token
	if err = json.Unmarshal(jsonData, &token); err != nil {
		return Token{}, fmt.Errorf("%w: failed to unmarshal json encoded token: %w", ErrTokenDecode, err)
	}

	if !token.Direction.Valid() {
		return Token{}, fmt.Errorf("%w: invalid token direction %d", ErrTokenDecode, int(token.Direction))
	}

	if token.IsNone() {
		return Token{}, fmt.Errorf("%w: token carries no boundary values", ErrTokenDecode)
	}

	return token, nil
}

var _ Serializer = Base64JSONSerializer{}

// decodeToken runs the serializer and makes sure every failure is reported
// as ErrTokenDecode, whatever serializer is plugged in.
func decodeToken(serializer Serializer, raw string) (Token, error) {
	if len(raw) == 0 {
		return Token{}, nil
	}

	token, err := serializer.Deserialize(raw)
	if err != nil {
		if errors.Is(err, ErrTokenDecode) {
			return Token{}, err
		}

		return Token{}, fmt.Errorf("%w: %w", ErrTokenDecode, err)
	}

	if !token.Direction.Valid() {
		return Token{}, fmt.Errorf("%w: invalid token direction %d", ErrTokenDecode, int(token.Direction))
	}

	// Only the empty string addresses the first page.
	if token.IsNone() {
		return Token{}, fmt.Errorf("%w: token carries no boundary values", ErrTokenDecode)
	}

	return token, nil
}
