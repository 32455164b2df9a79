/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gf2

import "strings"

// Monomial is a BitVec(n) interpreted as the support of a product of
// input variables: the term ∏_{i∈support} x_i. The all-zeros Monomial
// is the constant term 1. Two monomials of different lengths are
// never equal, even if their set bits coincide.
type Monomial struct {
	bits BitVec
}

// NewMonomial wraps a BitVec as a Monomial, taking ownership of it.
// Callers that still hold a reference to v must Clone it first.
func NewMonomial(v BitVec) Monomial {
	return Monomial{bits: v}
}

// ConstantMonomial returns the all-zeros monomial (the constant 1)
// over n variables.
func ConstantMonomial(n int) Monomial {
	return Monomial{bits: NewBitVec(n)}
}

// LinearMonomial returns the monomial x_i over n variables.
func LinearMonomial(n, i int) Monomial {
	v := NewBitVec(n)
	v.Set(i)
	return Monomial{bits: v}
}

// Len returns the number of variables the monomial is defined over.
func (m Monomial) Len() int {
	return m.bits.n
}

// Support returns a read-only view of the monomial's underlying bits.
func (m Monomial) Support() BitVec {
	return m.bits
}

// Clone returns an independent copy of m.
func (m Monomial) Clone() Monomial {
	return Monomial{bits: m.bits.Clone()}
}

// Cardinality returns the order (degree) of the monomial: the number
// of variables in its support.
func (m Monomial) Cardinality() int {
	return m.bits.Cardinality()
}

// IsConstant reports whether m is the constant monomial 1.
func (m Monomial) IsConstant() bool {
	return m.bits.IsZero()
}

// Eval reports whether the monomial evaluates to 1 given input v:
// every variable in its support must be set in v.
func (m Monomial) Eval(v BitVec) bool {
	return EvalMonomial(m, v)
}

// Product returns the monomial a·b: the union of their supports. Over
// GF(2), x_i² = x_i, so multiplication is idempotent union rather
// than symmetric difference.
func Product(a, b Monomial) Monomial {
	mustSameLen(a.bits, b.bits)
	words := make([]uint64, len(a.bits.words))
	for i := range words {
		words[i] = a.bits.words[i] | b.bits.words[i]
	}
	return Monomial{bits: bitVecFromWords(a.bits.n, words)}
}

// Divide returns a/b and true if b's support is a subset of a's
// (i.e. b divides a); otherwise it returns the zero value and false.
// The quotient's support is support(a) \ support(b).
func Divide(a, b Monomial) (Monomial, bool) {
	mustSameLen(a.bits, b.bits)
	words := make([]uint64, len(a.bits.words))
	for i := range words {
		if b.bits.words[i]&^a.bits.words[i] != 0 {
			return Monomial{}, false
		}
		words[i] = a.bits.words[i] &^ b.bits.words[i]
	}
	return Monomial{bits: bitVecFromWords(a.bits.n, words)}, true
}

// HasFactor reports whether b divides a, i.e. support(b) ⊆ support(a).
func HasFactor(a, b Monomial) bool {
	mustSameLen(a.bits, b.bits)
	for i := range a.bits.words {
		if b.bits.words[i]&^a.bits.words[i] != 0 {
			return false
		}
	}
	return true
}

// Xor returns the symmetric difference of a and b's supports. It is
// not polynomial multiplication (see Product), and the Composer does
// not call it.
func Xor(a, b Monomial) Monomial {
	mustSameLen(a.bits, b.bits)
	words := make([]uint64, len(a.bits.words))
	for i := range words {
		words[i] = a.bits.words[i] ^ b.bits.words[i]
	}
	return Monomial{bits: bitVecFromWords(a.bits.n, words)}
}

// Equal reports whether a and b have the same length and support.
func (m Monomial) Equal(other Monomial) bool {
	return m.bits.Equal(other.bits)
}

// Key returns a comparable value uniquely identifying m's support, for
// use as a map key. Two monomials compare equal under Equal iff their
// Key values are equal.
func (m Monomial) Key() string {
	var sb strings.Builder
	sb.Grow(len(m.bits.words)*8 + 4)
	for _, w := range m.bits.words {
		for shift := 0; shift < wordBits; shift += 8 {
			sb.WriteByte(byte(w >> shift))
		}
	}
	// Length is part of the identity: two monomials of different
	// lengths are never equal even with identical words.
	n := m.bits.n
	sb.WriteByte(byte(n))
	sb.WriteByte(byte(n >> 8))
	sb.WriteByte(byte(n >> 16))
	sb.WriteByte(byte(n >> 24))
	return sb.String()
}

// monomialLess implements the total order used to break ties in the
// Composer's greedy scheduler (see DESIGN.md, "Greedy scheduler
// tie-break"): lexicographic comparison of support words from word 0
// upward.
func monomialLess(a, b Monomial) bool {
	if a.bits.n != b.bits.n {
		return a.bits.n < b.bits.n
	}
	for i := 0; i < len(a.bits.words); i++ {
		if a.bits.words[i] != b.bits.words[i] {
			return a.bits.words[i] < b.bits.words[i]
		}
	}
	return false
}
