// Package field details the value kinds a packed field can be represented as.
package field

//go:generate stringer -type=Type -linecomment

// Type represents the Go type that is used to hold the value of a packed field.
type Type uint8

const (
	FTUnknown Type = 0  // Unknown
	FTBool    Type = 1  // bool
	FTInt8    Type = 2  // int8
	FTInt16   Type = 3  // int16
	FTInt32   Type = 4  // int32
	FTInt64   Type = 5  // int64
	FTUint8   Type = 6  // uint8
	FTUint16  Type = 7  // uint16
	FTUint32  Type = 8  // uint32
	FTUint64  Type = 9  // uint64
	FTFloat32 Type = 10 // float32
	FTFloat64 Type = 11 // float64
)

// UnsignedTypes is a list of field types that can back a packed field.
var UnsignedTypes = []Type{
	FTBool,
	FTUint8,
	FTUint16,
	FTUint32,
	FTUint64,
}

// IsUnsigned reports if ft is an unsigned integer kind. FTBool counts as a single unsigned digit.
func IsUnsigned(ft Type) bool {
	switch ft {
	case FTBool, FTUint8, FTUint16, FTUint32, FTUint64:
		return true
	}
	return false
}

// IsSigned reports if ft is a signed number kind.
func IsSigned(ft Type) bool {
	switch ft {
	case FTInt8, FTInt16, FTInt32, FTInt64, FTFloat32, FTFloat64:
		return true
	}
	return false
}

// Digits returns the number of value bits ft can hold. Signed integers lose their sign bit.
// Non-integer kinds return 0.
func Digits(ft Type) uint8 {
	switch ft {
	case FTBool:
		return 1
	case FTUint8:
		return 8
	case FTInt8:
		return 7
	case FTUint16:
		return 16
	case FTInt16:
		return 15
	case FTUint32:
		return 32
	case FTInt32:
		return 31
	case FTUint64:
		return 64
	case FTInt64:
		return 63
	}
	return 0
}

// ForBits returns the smallest unsigned kind that can hold a field of n bits.
// A single bit maps to FTBool. n == 0 or n > 64 returns FTUnknown.
func ForBits(n uint8) Type {
	switch {
	case n == 0:
		return FTUnknown
	case n == 1:
		return FTBool
	case n <= 8:
		return FTUint8
	case n <= 16:
		return FTUint16
	case n <= 32:
		return FTUint32
	case n <= 64:
		return FTUint64
	}
	return FTUnknown
}
