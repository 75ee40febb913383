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
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// jsonDialect follows the protobuf JSON mapping: 64-bit integers and
// non-finite floating point values are strings, enums are written by name.
type jsonDialect struct{}

func (jsonDialect) Int32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func (jsonDialect) Int64(v int64) string {
	return strconv.Quote(strconv.FormatInt(v, 10))
}

func (jsonDialect) Uint32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

func (jsonDialect) Uint64(v uint64) string {
	return strconv.Quote(strconv.FormatUint(v, 10))
}

func (jsonDialect) Double(v float64) string {
	return jsonFloat(v, 64)
}

func (jsonDialect) Float(v float32) string {
	return jsonFloat(float64(v), 32)
}

func jsonFloat(v float64, bitSize int) string {
	switch {
	case math.IsInf(v, 1):
		return `"Infinity"`
	case math.IsInf(v, -1):
		return `"-Infinity"`
	case math.IsNaN(v):
		return `"NaN"`
	default:
		return strconv.FormatFloat(v, 'g', -1, bitSize)
	}
}

func (jsonDialect) Bool(v bool) string {
	return strconv.FormatBool(v)
}

func (jsonDialect) String(v string) string {
	return quoteJSON(v)
}

func (jsonDialect) Enum(v protoreflect.EnumValueDescriptor) string {
	return quoteJSON(string(v.Name()))
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
