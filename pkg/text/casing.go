// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 🔠 CaseShape describes the letter casing of a matched token
type CaseShape int

const (
	ShapeVerbatim CaseShape = iota // no clean shape, use the replacement as given
	ShapeUpper                     // every cased rune is upper case
	ShapeLower                     // every cased rune is lower case
	ShapeTitle                     // first rune is upper case, the rest is mixed
)

func (s CaseShape) String() string {
	switch s {
	case ShapeUpper:
		return "upper"
	case ShapeLower:
		return "lower"
	case ShapeTitle:
		return "title"
	default:
		return "verbatim"
	}
}

// 🔍 ShapeOf classifies s. A string with no cased runes at all has no shape.
func ShapeOf(s string) CaseShape {
	hasUpper, hasLower := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	switch {
	case hasUpper && !hasLower:
		return ShapeUpper
	case hasLower && !hasUpper:
		return ShapeLower
	}

	first, _ := utf8.DecodeRuneInString(s)
	if unicode.IsUpper(first) {
		return ShapeTitle
	}
	return ShapeVerbatim
}

// 🔠 AdaptCase rewrites replacement so its casing mirrors the shape of matched
func AdaptCase(matched, replacement string) string {
	switch ShapeOf(matched) {
	case ShapeUpper:
		return strings.ToUpper(replacement)
	case ShapeLower:
		return strings.ToLower(replacement)
	case ShapeTitle:
		return upperFirst(replacement)
	default:
		return replacement
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
