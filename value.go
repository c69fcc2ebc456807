package seekpager

import (
	"bytes"
	"cmp"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Value is a type-tagged snapshot of one column value taken from a reference
// row. V holds the Go type matching Kind (int64 for KindInt64, time.Time for
// KindTime, uuid.UUID for KindUUID and so on) or nil for NULL.
type Value struct {
	Kind     Kind
	V        any
	Nullable bool
}

// ValueOf tags a column value read from a row. Pointers, sql.Null* and
// uuid.NullUUID wrappers produce nullable values; a nil pointer or an invalid
// wrapper produces a NULL of the pointed-to kind.
func ValueOf(v any) (Value, error) {
	switch vt := v.(type) {
	case Value:
		return vt, nil
	case bool:
		return Value{Kind: KindBool, V: vt}, nil
	case int:
		return Value{Kind: KindInt, V: vt}, nil
	case int8:
		return Value{Kind: KindInt8, V: vt}, nil
	case int16:
		return Value{Kind: KindInt16, V: vt}, nil
	case int32:
		return Value{Kind: KindInt32, V: vt}, nil
	case int64:
		return Value{Kind: KindInt64, V: vt}, nil
	case uint:
		return Value{Kind: KindUint, V: vt}, nil
	case uint8:
		return Value{Kind: KindUint8, V: vt}, nil
	case uint16:
		return Value{Kind: KindUint16, V: vt}, nil
	case uint32:
		return Value{Kind: KindUint32, V: vt}, nil
	case uint64:
		return Value{Kind: KindUint64, V: vt}, nil
	case float32:
		return Value{Kind: KindFloat32, V: vt}, nil
	case float64:
		return Value{Kind: KindFloat64, V: vt}, nil
	case string:
		return Value{Kind: KindString, V: vt}, nil
	case time.Time:
		return Value{Kind: KindTime, V: vt}, nil
	case uuid.UUID:
		return Value{Kind: KindUUID, V: vt}, nil
	case []byte:
		return Value{Kind: KindBytes, V: vt}, nil

	case *bool:
		return nullableOf(KindBool, vt), nil
	case *int:
		return nullableOf(KindInt, vt), nil
	case *int8:
		return nullableOf(KindInt8, vt), nil
	case *int16:
		return nullableOf(KindInt16, vt), nil
	case *int32:
		return nullableOf(KindInt32, vt), nil
	case *int64:
		return nullableOf(KindInt64, vt), nil
	case *uint:
		return nullableOf(KindUint, vt), nil
	case *uint8:
		return nullableOf(KindUint8, vt), nil
	case *uint16:
		return nullableOf(KindUint16, vt), nil
	case *uint32:
		return nullableOf(KindUint32, vt), nil
	case *uint64:
		return nullableOf(KindUint64, vt), nil
	case *float32:
		return nullableOf(KindFloat32, vt), nil
	case *float64:
		return nullableOf(KindFloat64, vt), nil
	case *string:
		return nullableOf(KindString, vt), nil
	case *time.Time:
		return nullableOf(KindTime, vt), nil
	case *uuid.UUID:
		return nullableOf(KindUUID, vt), nil

	case sql.NullBool:
		return sqlNullOf(KindBool, vt.Bool, vt.Valid), nil
	case sql.NullByte:
		return sqlNullOf(KindUint8, vt.Byte, vt.Valid), nil
	case sql.NullInt16:
		return sqlNullOf(KindInt16, vt.Int16, vt.Valid), nil
	case sql.NullInt32:
		return sqlNullOf(KindInt32, vt.Int32, vt.Valid), nil
	case sql.NullInt64:
		return sqlNullOf(KindInt64, vt.Int64, vt.Valid), nil
	case sql.NullFloat64:
		return sqlNullOf(KindFloat64, vt.Float64, vt.Valid), nil
	case sql.NullString:
		return sqlNullOf(KindString, vt.String, vt.Valid), nil
	case sql.NullTime:
		return sqlNullOf(KindTime, vt.Time, vt.Valid), nil
	case uuid.NullUUID:
		return sqlNullOf(KindUUID, vt.UUID, vt.Valid), nil

	default:
		return Value{}, fmt.Errorf("unsupported column value type %T", v)
	}
}

func nullableOf[V any](kind Kind, p *V) Value {
	if p == nil {
		return Value{Kind: kind, Nullable: true}
	}

	return Value{Kind: kind, V: *p, Nullable: true}
}

func sqlNullOf[V any](kind Kind, v V, valid bool) Value {
	if !valid {
		return Value{Kind: kind, Nullable: true}
	}

	return Value{Kind: kind, V: v, Nullable: true}
}

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool {
	return v.V == nil
}

// WithNullable returns a copy of v declared as nullable or not. The scalar is
// left untouched.
func (v Value) WithNullable(nullable bool) Value {
	v.Nullable = nullable
	return v
}

// Compare performs a three-way comparison against o. Both values must carry
// the same kind. NULL sorts before any non-NULL value.
func (v Value) Compare(o Value) (int, error) {
	if v.Kind != o.Kind {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrTokenValueMismatch, v.Kind, o.Kind)
	}

	switch {
	case v.IsNull() && o.IsNull():
		return 0, nil
	case v.IsNull():
		return -1, nil
	case o.IsNull():
		return 1, nil
	}

	return compareScalars(v.Kind, v.V, o.V)
}

// Equal reports whether both values have the same kind, nullability and
// scalar.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind || v.Nullable != o.Nullable {
		return false
	}

	c, err := v.Compare(o)
	return err == nil && c == 0
}

// String - implements fmt.Stringer.
func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}

	switch vt := v.V.(type) {
	case string:
		return strconv.Quote(vt)
	case time.Time:
		return strconv.Quote(vt.Format(time.RFC3339Nano))
	case uuid.UUID:
		return strconv.Quote(vt.String())
	case []byte:
		return fmt.Sprintf("x'%x'", vt)
	default:
		return fmt.Sprint(vt)
	}
}

func compareScalars(kind Kind, a, b any) (int, error) {
	switch kind {
	case KindBool:
		av, bv, err := assertPair[bool](kind, a, b)
		if err != nil {
			return 0, err
		}
		switch {
		case av == bv:
			return 0, nil
		case !av:
			return -1, nil
		default:
			return 1, nil
		}
	case KindInt:
		return compareOrdered[int](kind, a, b)
	case KindInt8:
		return compareOrdered[int8](kind, a, b)
	case KindInt16:
		return compareOrdered[int16](kind, a, b)
	case KindInt32:
		return compareOrdered[int32](kind, a, b)
	case KindInt64:
		return compareOrdered[int64](kind, a, b)
	case KindUint:
		return compareOrdered[uint](kind, a, b)
	case KindUint8:
		return compareOrdered[uint8](kind, a, b)
	case KindUint16:
		return compareOrdered[uint16](kind, a, b)
	case KindUint32:
		return compareOrdered[uint32](kind, a, b)
	case KindUint64:
		return compareOrdered[uint64](kind, a, b)
	case KindFloat32:
		return compareOrdered[float32](kind, a, b)
	case KindFloat64:
		return compareOrdered[float64](kind, a, b)
	case KindString:
		return compareOrdered[string](kind, a, b)
	case KindTime:
		av, bv, err := assertPair[time.Time](kind, a, b)
		if err != nil {
			return 0, err
		}
		return av.Compare(bv), nil
	case KindUUID:
		av, bv, err := assertPair[uuid.UUID](kind, a, b)
		if err != nil {
			return 0, err
		}
		return bytes.Compare(av[:], bv[:]), nil
	case KindBytes:
		av, bv, err := assertPair[[]byte](kind, a, b)
		if err != nil {
			return 0, err
		}
		return bytes.Compare(av, bv), nil
	default:
		return 0, fmt.Errorf("%w: cannot compare values of kind %s", ErrTokenValueMismatch, kind)
	}
}

func compareOrdered[V cmp.Ordered](kind Kind, a, b any) (int, error) {
	av, bv, err := assertPair[V](kind, a, b)
	if err != nil {
		return 0, err
	}

	return cmp.Compare(av, bv), nil
}

func assertPair[V any](kind Kind, a, b any) (V, V, error) {
	av, okA := a.(V)
	bv, okB := b.(V)
	if !okA || !okB {
		var zero V
		return zero, zero, fmt.Errorf("%w: %T and %T are not both of kind %s", ErrTokenValueMismatch, a, b, kind)
	}

	return av, bv, nil
}

// wireValue is the token representation of a Value:
//
//	{"t": <kind>, "v": <scalar>, "n": <nullable>}
type wireValue struct {
	Kind     Kind            `json:"t"`
	Value    json.RawMessage `json:"v"`
	Nullable bool            `json:"n,omitempty"`
}

// MarshalJSON - implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Kind.Valid() {
		return nil, fmt.Errorf("cannot marshal value of kind %s", v.Kind)
	}

	raw, err := json.Marshal(v.V)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal %s value: %w", v.Kind, err)
	}

	return json.Marshal(wireValue{
		Kind:     v.Kind,
		Value:    raw,
		Nullable: v.Nullable,
	})
}

// UnmarshalJSON - implements json.Unmarshaler. The scalar is decoded straight
// into the Go type of its kind, so an int64 comes back as int64 and not as
// float64.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	if !w.Kind.Valid() {
		return fmt.Errorf("unknown value kind %d", uint8(w.Kind))
	}

	if len(w.Value) == 0 || bytes.Equal(w.Value, []byte("null")) {
		*v = Value{Kind: w.Kind, Nullable: w.Nullable}
		return nil
	}

	scalar, err := decodeScalar(w.Kind, w.Value)
	if err != nil {
		return fmt.Errorf("cannot decode %s value: %w", w.Kind, err)
	}

	*v = Value{Kind: w.Kind, V: scalar, Nullable: w.Nullable}

	return nil
}

func decodeScalar(kind Kind, raw json.RawMessage) (any, error) {
	switch kind {
	case KindBool:
		return decodeAs[bool](raw)
	case KindInt:
		return decodeAs[int](raw)
	case KindInt8:
		return decodeAs[int8](raw)
	case KindInt16:
		return decodeAs[int16](raw)
	case KindInt32:
		return decodeAs[int32](raw)
	case KindInt64:
		return decodeAs[int64](raw)
	case KindUint:
		return decodeAs[uint](raw)
	case KindUint8:
		return decodeAs[uint8](raw)
	case KindUint16:
		return decodeAs[uint16](raw)
	case KindUint32:
		return decodeAs[uint32](raw)
	case KindUint64:
		return decodeAs[uint64](raw)
	case KindFloat32:
		return decodeAs[float32](raw)
	case KindFloat64:
		return decodeAs[float64](raw)
	case KindString:
		return decodeAs[string](raw)
	case KindTime:
		return decodeAs[time.Time](raw)
	case KindUUID:
		return decodeAs[uuid.UUID](raw)
	case KindBytes:
		return decodeAs[[]byte](raw)
	default:
		return nil, fmt.Errorf("unknown value kind %d", uint8(kind))
	}
}

func decodeAs[V any](raw json.RawMessage) (any, error) {
	var dst V
	if err := json.Unmarshal(raw, &dst); err != nil {
		return nil, err
	}

	return dst, nil
}

var (
	_ fmt.Stringer     = Value{}
	_ json.Marshaler   = Value{}
	_ json.Unmarshaler = (*Value)(nil)
)
