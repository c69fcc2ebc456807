package seekpager

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_PaginationDirection(t *testing.T) {
	require.True(t, Forward.Valid())
	require.True(t, Backward.Valid())
	require.False(t, PaginationDirection(2).Valid())

	require.Equal(t, Backward, Forward.Reverse())
	require.Equal(t, Forward, Backward.Reverse())

	require.Equal(t, "forward", Forward.String())
	require.Equal(t, "backward", Backward.String())
	require.Equal(t, "direction(7)", PaginationDirection(7).String())

	require.Equal(t, "next", NextPage.String())
	require.Equal(t, "previous", PreviousPage.String())
}

func Test_Base64JSONSerializer_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		token Token
	}{
		{
			name: "forward int columns",
			token: Token{
				Direction: Forward,
				Values: []Value{
					{Kind: KindInt, V: 30},
					{Kind: KindInt64, V: int64(2)},
				},
			},
		},
		{
			name: "backward mixed kinds",
			token: Token{
				Direction: Backward,
				Values: []Value{
					{Kind: KindTime, V: time.Date(2023, 12, 31, 23, 59, 59, 999, time.UTC)},
					{Kind: KindString, V: "Mango", Nullable: true},
					{Kind: KindUUID, V: uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")},
					{Kind: KindUint64, V: uint64(1<<63 + 1)},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serializer := Base64JSONSerializer{}

			raw, err := serializer.Serialize(tt.token)
			require.NoError(t, err)
			require.NotEmpty(t, raw)
			require.NotContains(t, raw, "=")

			got, err := serializer.Deserialize(raw)
			require.NoError(t, err)
			require.Equal(t, tt.token.Direction, got.Direction)
			require.Len(t, got.Values, len(tt.token.Values))
			for i := range tt.token.Values {
				require.True(t, tt.token.Values[i].Equal(got.Values[i]), "value %d: sent %s, got %s", i, tt.token.Values[i], got.Values[i])
			}
		})
	}
}

func Test_Base64JSONSerializer_None(t *testing.T) {
	serializer := Base64JSONSerializer{}

	raw, err := serializer.Serialize(Token{Direction: Backward})
	require.NoError(t, err)
	require.Empty(t, raw)

	token, err := serializer.Deserialize("")
	require.NoError(t, err)
	require.True(t, token.IsNone())
}

func Test_Base64JSONSerializer_Deserialize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not base64", "!!!"},
		{"padded base64", _encoder.EncodeToString([]byte(`{"d":0,"v":[]}`)) + "=="},
		{"not json", _encoder.EncodeToString([]byte("hello"))},
		{"truncated json", _encoder.EncodeToString([]byte(`{"d":0,"v":[{"t":2,"v":3`))},
		{"unknown direction", _encoder.EncodeToString([]byte(`{"d":5,"v":[{"t":2,"v":3}]}`))},
		{"unknown kind", _encoder.EncodeToString([]byte(`{"d":0,"v":[{"t":99,"v":3}]}`))},
		{"scalar of wrong type", _encoder.EncodeToString([]byte(`{"d":0,"v":[{"t":2,"v":"3"}]}`))},
		{"empty object", _encoder.EncodeToString([]byte(`{}`))},
		{"empty values", _encoder.EncodeToString([]byte(`{"d":1,"v":[]}`))},
		{"null values", _encoder.EncodeToString([]byte(`{"d":0,"v":null}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Base64JSONSerializer{}.Deserialize(tt.raw)
			require.ErrorIs(t, err, ErrTokenDecode)
		})
	}
}

type tFailingSerializer struct {
	Base64JSONSerializer
}

func (tFailingSerializer) Deserialize(string) (Token, error) {
	return Token{}, errors.New("boom")
}

func Test_decodeToken_WrapsForeignErrors(t *testing.T) {
	_, err := decodeToken(tFailingSerializer{}, "anything")
	require.ErrorIs(t, err, ErrTokenDecode)
	require.ErrorContains(t, err, "boom")

	token, err := decodeToken(tFailingSerializer{}, "")
	require.NoError(t, err)
	require.True(t, token.IsNone())
}

type tBlankSerializer struct {
	Base64JSONSerializer
}

func (tBlankSerializer) Deserialize(string) (Token, error) {
	return Token{Direction: Backward}, nil
}

func Test_decodeToken_RejectsBlankToken(t *testing.T) {
	_, err := decodeToken(tBlankSerializer{}, "anything")
	require.ErrorIs(t, err, ErrTokenDecode)
	require.ErrorContains(t, err, "no boundary values")
}
