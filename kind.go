package seekpager

import "fmt"

// Kind tags the scalar type of a column value so it survives a round trip
// through a string token. Values are part of the token wire format: never
// renumber existing kinds, only append new ones.
type Kind uint8

const (
	KindUnspecified Kind = 0
	KindBool        Kind = 1
	KindInt         Kind = 2
	KindInt8        Kind = 3
	KindInt16       Kind = 4
	KindInt32       Kind = 5
	KindInt64       Kind = 6
	KindUint        Kind = 7
	KindUint8       Kind = 8
	KindUint16      Kind = 9
	KindUint32      Kind = 10
	KindUint64      Kind = 11
	KindFloat32     Kind = 12
	KindFloat64     Kind = 13
	KindString      Kind = 14
	KindTime        Kind = 15
	KindUUID        Kind = 16
	KindBytes       Kind = 17

	kindSentinel Kind = 18
)

var _kindNames = [...]string{
	KindUnspecified: "unspecified",
	KindBool:        "bool",
	KindInt:         "int",
	KindInt8:        "int8",
	KindInt16:       "int16",
	KindInt32:       "int32",
	KindInt64:       "int64",
	KindUint:        "uint",
	KindUint8:       "uint8",
	KindUint16:      "uint16",
	KindUint32:      "uint32",
	KindUint64:      "uint64",
	KindFloat32:     "float32",
	KindFloat64:     "float64",
	KindString:      "string",
	KindTime:        "time",
	KindUUID:        "uuid",
	KindBytes:       "bytes",
}

// Valid reports whether k is a concrete scalar kind a value may carry.
func (k Kind) Valid() bool {
	return k > KindUnspecified && k < kindSentinel
}

// NativelyOrdered reports whether the executor can compare values of this
// kind with plain < and > operators. Other kinds are compared through a
// three-way comparison whose result is checked against zero.
func (k Kind) NativelyOrdered() bool {
	switch k {
	case KindBool, KindString, KindUUID, KindBytes:
		return false
	default:
		return k.Valid()
	}
}

// String - implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(_kindNames) {
		return _kindNames[k]
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

var _ fmt.Stringer = Kind(0)
