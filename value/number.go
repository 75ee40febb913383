// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrRange is returned when a Number cannot be represented exactly in the
// requested type.
var ErrRange = errors.New("value out of range")

type numberRep int8

const (
	repFloat numberRep = iota
	repInt
	repUint
)

// Number is a numeric value. It remembers whether it was written as a
// floating point, signed or unsigned number so that 64-bit integers are kept
// exactly.
type Number struct {
	rep numberRep
	f   float64
	i   int64
	u   uint64
}

// Float returns a floating point Number.
func Float(f float64) Number {
	return Number{rep: repFloat, f: f}
}

// Int returns a signed integer Number.
func Int(i int64) Number {
	return Number{rep: repInt, i: i}
}

// Uint returns an unsigned integer Number.
func Uint(u uint64) Number {
	return Number{rep: repUint, u: u}
}

func (n Number) String() string {
	switch n.rep {
	case repInt:
		return strconv.FormatInt(n.i, 10)
	case repUint:
		return strconv.FormatUint(n.u, 10)
	default:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
}

// Int64 returns the number as an int64. Floating point numbers must be
// integral and in range.
func (n Number) Int64() (int64, error) {
	switch n.rep {
	case repInt:
		return n.i, nil
	case repUint:
		if n.u > math.MaxInt64 {
			return 0, n.rangeError("int64")
		}
		return int64(n.u), nil
	default:
		// -2^63 is exactly representable; 2^63 is not a valid int64.
		if n.f != math.Trunc(n.f) || n.f < math.MinInt64 || n.f >= math.MaxInt64 {
			return 0, n.rangeError("int64")
		}
		return int64(n.f), nil
	}
}

// Int32 returns the number as an int32.
func (n Number) Int32() (int32, error) {
	i, err := n.Int64()
	if err != nil || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, n.rangeError("int32")
	}
	return int32(i), nil
}

// Uint64 returns the number as a uint64. Floating point numbers must be
// integral and in range.
func (n Number) Uint64() (uint64, error) {
	switch n.rep {
	case repUint:
		return n.u, nil
	case repInt:
		if n.i < 0 {
			return 0, n.rangeError("uint64")
		}
		return uint64(n.i), nil
	default:
		if n.f != math.Trunc(n.f) || n.f < 0 || n.f >= math.MaxUint64 {
			return 0, n.rangeError("uint64")
		}
		return uint64(n.f), nil
	}
}

// Uint32 returns the number as a uint32.
func (n Number) Uint32() (uint32, error) {
	u, err := n.Uint64()
	if err != nil || u > math.MaxUint32 {
		return 0, n.rangeError("uint32")
	}
	return uint32(u), nil
}

// Float64 returns the number as a float64. Integers are converted, possibly
// losing precision, as a C++ compiler would.
func (n Number) Float64() float64 {
	switch n.rep {
	case repInt:
		return float64(n.i)
	case repUint:
		return float64(n.u)
	default:
		return n.f
	}
}

// Float32 returns the number as a float32. Finite doubles beyond the float32
// range are an error; infinities and NaN carry over.
func (n Number) Float32() (float32, error) {
	f := n.Float64()
	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, n.rangeError("float")
	}
	return float32(f), nil
}

func (n Number) rangeError(typ string) error {
	return fmt.Errorf("%w: %s does not fit in %s", ErrRange, n, typ)
}
