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

package format

import (
	"math"
	"strconv"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject/naming"
)

type cppDialect struct{}

// The minimum integers are written as (min+1) - 1: the literal for the
// minimum is the negation of a value that does not fit the type.
// See https://gcc.gnu.org/bugzilla/show_bug.cgi?id=52661.

func (cppDialect) Int32(v int32) string {
	if v == math.MinInt32 {
		return "(" + strconv.FormatInt(int64(v)+1, 10) + ") - 1"
	}
	return strconv.FormatInt(int64(v), 10)
}

func (cppDialect) Int64(v int64) string {
	if v == math.MinInt64 {
		return "int64_t{" + strconv.FormatInt(v+1, 10) + "} - 1"
	}
	return "int64_t{" + strconv.FormatInt(v, 10) + "}"
}

func (cppDialect) Uint32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10) + "u"
}

func (cppDialect) Uint64(v uint64) string {
	return "uint64_t{" + strconv.FormatUint(v, 10) + "u}"
}

// Infinities and NaN are written as named constants; compilers do not agree
// on constant folding of expressions like 1.0/0.0.

func (cppDialect) Double(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "std::numeric_limits<double>::infinity()"
	case math.IsInf(v, -1):
		return "-std::numeric_limits<double>::infinity()"
	case math.IsNaN(v):
		return "std::numeric_limits<double>::quiet_NaN()"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

func (cppDialect) Float(v float32) string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "std::numeric_limits<float>::infinity()"
	case math.IsInf(f, -1):
		return "-std::numeric_limits<float>::infinity()"
	case math.IsNaN(f):
		return "std::numeric_limits<float>::quiet_NaN()"
	}
	s := strconv.FormatFloat(f, 'g', -1, 32)
	// Without a suffix, "1.5" would be a double literal.
	if strings.ContainsAny(s, ".eE") {
		s += "f"
	}
	return s
}

func (cppDialect) Bool(v bool) string {
	return strconv.FormatBool(v)
}

func (cppDialect) String(v string) string {
	return "\"" + Escape(v) + "\""
}

func (cppDialect) Enum(v protoreflect.EnumValueDescriptor) string {
	return naming.EnumValue(v)
}
