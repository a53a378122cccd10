package exif

import (
	"encoding/binary"
	"math"
)

// Type is a TIFF field type
type Type uint16

const (
	TypeByte      Type = 1
	TypeASCII     Type = 2
	TypeShort     Type = 3
	TypeLong      Type = 4
	TypeRational  Type = 5
	TypeSByte     Type = 6
	TypeUndefined Type = 7
	TypeSShort    Type = 8
	TypeSLong     Type = 9
	TypeSRational Type = 10
	TypeFloat     Type = 11
	TypeDouble    Type = 12
)

// size returns the byte size of one element, or 0 for unknown types
func (t Type) size() int {
	switch t {
	case TypeByte, TypeASCII, TypeSByte, TypeUndefined:
		return 1
	case TypeShort, TypeSShort:
		return 2
	case TypeLong, TypeSLong, TypeFloat:
		return 4
	case TypeRational, TypeSRational, TypeDouble:
		return 8
	default:
		return 0
	}
}

// Rational is an unsigned fraction
type Rational struct {
	Num   uint32
	Denom uint32
}

// Float returns the fraction as a float64
func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Denom)
}

// SRational is a signed fraction
type SRational struct {
	Num   int32
	Denom int32
}

// Float returns the fraction as a float64
func (r SRational) Float() float64 {
	return float64(r.Num) / float64(r.Denom)
}

// Value holds the decoded elements of a field. Only the slice matching
// Type is populated. Fields of unknown type keep their raw count and offset.
type Value struct {
	Type Type

	Byte      []uint8
	ASCII     []string
	Short     []uint16
	Long      []uint32
	Rational  []Rational
	SByte     []int8
	Undefined []byte
	SShort    []int16
	SLong     []int32
	SRational []SRational
	Float     []float32
	Double    []float64

	// Set for unknown types only
	UnknownCount  uint32
	UnknownOffset uint32
}

// Len returns the number of elements
func (v *Value) Len() int {
	switch v.Type {
	case TypeByte:
		return len(v.Byte)
	case TypeASCII:
		return len(v.ASCII)
	case TypeShort:
		return len(v.Short)
	case TypeLong:
		return len(v.Long)
	case TypeRational:
		return len(v.Rational)
	case TypeSByte:
		return len(v.SByte)
	case TypeUndefined:
		return len(v.Undefined)
	case TypeSShort:
		return len(v.SShort)
	case TypeSLong:
		return len(v.SLong)
	case TypeSRational:
		return len(v.SRational)
	case TypeFloat:
		return len(v.Float)
	case TypeDouble:
		return len(v.Double)
	default:
		return int(v.UnknownCount)
	}
}

// Uint returns element i of an unsigned integer value (BYTE, SHORT or LONG)
func (v *Value) Uint(i int) (uint32, bool) {
	switch v.Type {
	case TypeByte:
		if i < len(v.Byte) {
			return uint32(v.Byte[i]), true
		}
	case TypeShort:
		if i < len(v.Short) {
			return uint32(v.Short[i]), true
		}
	case TypeLong:
		if i < len(v.Long) {
			return v.Long[i], true
		}
	}
	return 0, false
}

// AsString returns the first ASCII string, if any
func (v *Value) AsString() (string, bool) {
	if v.Type == TypeASCII && len(v.ASCII) > 0 {
		return v.ASCII[0], true
	}
	return "", false
}

// decodeValue decodes count elements of type typ from raw
func decodeValue(typ Type, count uint32, raw []byte, order binary.ByteOrder) Value {
	v := Value{Type: typ}
	n := int(count)

	switch typ {
	case TypeByte:
		v.Byte = append([]uint8(nil), raw[:n]...)
	case TypeASCII:
		v.ASCII = splitASCII(raw[:n])
	case TypeShort:
		v.Short = make([]uint16, n)
		for i := range v.Short {
			v.Short[i] = order.Uint16(raw[i*2:])
		}
	case TypeLong:
		v.Long = make([]uint32, n)
		for i := range v.Long {
			v.Long[i] = order.Uint32(raw[i*4:])
		}
	case TypeRational:
		v.Rational = make([]Rational, n)
		for i := range v.Rational {
			v.Rational[i] = Rational{
				Num:   order.Uint32(raw[i*8:]),
				Denom: order.Uint32(raw[i*8+4:]),
			}
		}
	case TypeSByte:
		v.SByte = make([]int8, n)
		for i := range v.SByte {
			v.SByte[i] = int8(raw[i])
		}
	case TypeUndefined:
		v.Undefined = append([]byte(nil), raw[:n]...)
	case TypeSShort:
		v.SShort = make([]int16, n)
		for i := range v.SShort {
			v.SShort[i] = int16(order.Uint16(raw[i*2:]))
		}
	case TypeSLong:
		v.SLong = make([]int32, n)
		for i := range v.SLong {
			v.SLong[i] = int32(order.Uint32(raw[i*4:]))
		}
	case TypeSRational:
		v.SRational = make([]SRational, n)
		for i := range v.SRational {
			v.SRational[i] = SRational{
				Num:   int32(order.Uint32(raw[i*8:])),
				Denom: int32(order.Uint32(raw[i*8+4:])),
			}
		}
	case TypeFloat:
		v.Float = make([]float32, n)
		for i := range v.Float {
			v.Float[i] = math.Float32frombits(order.Uint32(raw[i*4:]))
		}
	case TypeDouble:
		v.Double = make([]float64, n)
		for i := range v.Double {
			v.Double[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
	}

	return v
}

// splitASCII splits NUL-separated strings. A trailing NUL terminates the
// last string; a missing one is tolerated.
func splitASCII(raw []byte) []string {
	var out []string
	start := 0
	for i, b := range raw {
		if b == 0 {
			out = append(out, string(raw[start:i]))
			start = i + 1
		}
	}
	if start < len(raw) {
		out = append(out, string(raw[start:]))
	}
	return out
}
