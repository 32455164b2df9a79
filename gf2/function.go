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

import (
	"github.com/pkg/errors"
)

// functionKind distinguishes the plain sparse representation from a
// future parameterized variant (spec.md §9, "Deep polymorphism"). Only
// plainFunction is ever produced by this package; the tag exists so a
// collaborator package can extend Function without an incompatible
// type change. See DESIGN.md, Open Question 3.
type functionKind int

const (
	plainFunction functionKind = iota
)

// Function is a sparse vector-valued polynomial over GF(2): a list of
// Monomials, each paired with the BitVec of output bits it
// contributes to. A Function is immutable after construction; every
// operation on it returns a new Function in canonical form (distinct
// monomials, no all-zero contribution).
type Function struct {
	kind          functionKind
	inputLen      int
	outputLen     int
	monomials     []Monomial
	contributions []BitVec
}

// InputLength returns the number of input variables f expects.
func (f *Function) InputLength() int {
	return f.inputLen
}

// OutputLength returns the number of output bits f produces.
func (f *Function) OutputLength() int {
	return f.outputLen
}

// Monomials returns a read-only view of f's monomials. Callers must
// not mutate the returned slice or the Monomials within it.
func (f *Function) Monomials() []Monomial {
	return f.monomials
}

// Contributions returns a read-only view of f's contributions,
// co-indexed with Monomials(). Callers must not mutate the returned
// slice or the BitVecs within it.
func (f *Function) Contributions() []BitVec {
	return f.contributions
}

// TotalMonomialCount returns the sum, over every monomial, of the
// cardinality of its contribution vector.
func (f *Function) TotalMonomialCount() int {
	count := 0
	for _, c := range f.contributions {
		count += c.Cardinality()
	}
	return count
}

// MaximumMonomialOrder returns the largest cardinality (order) among
// f's monomials, or 0 if f has none.
func (f *Function) MaximumMonomialOrder() int {
	max := 0
	for _, m := range f.monomials {
		if o := m.Cardinality(); o > max {
			max = o
		}
	}
	return max
}

// New constructs a Function directly from co-indexed monomials and
// contributions arrays. It validates shapes but does NOT canonicalize
// duplicate monomials or strip all-zero contributions: callers that
// need canonical form should go through Builder or
// FromMonomialContributionMap instead.
func New(inputLen, outputLen int, monomials []Monomial, contributions []BitVec) (*Function, error) {
	if len(monomials) != len(contributions) {
		return nil, errors.Wrap(ErrShapeMismatch, "monomials and contributions must have equal length")
	}
	for i, m := range monomials {
		if m.Len() != inputLen {
			return nil, errors.Wrapf(ErrShapeMismatch, "monomial %d has length %d, want input length %d", i, m.Len(), inputLen)
		}
		if contributions[i].Len() != outputLen {
			return nil, errors.Wrapf(ErrShapeMismatch, "contribution %d has length %d, want output length %d", i, contributions[i].Len(), outputLen)
		}
	}
	ms := make([]Monomial, len(monomials))
	cs := make([]BitVec, len(contributions))
	for i := range monomials {
		ms[i] = monomials[i].Clone()
		cs[i] = contributions[i].Clone()
	}
	return &Function{kind: plainFunction, inputLen: inputLen, outputLen: outputLen, monomials: ms, contributions: cs}, nil
}

// FromMonomialContributionMap builds a canonical Function from mm,
// dropping any all-zero contributions. mm is not modified.
func FromMonomialContributionMap(inputLen, outputLen int, mm *MonomialMap) *Function {
	filtered := mm.FilterNilContributions()
	monomials, contributions := filtered.ToCanonicalArrays()
	for i := range contributions {
		contributions[i] = contributions[i].Clone()
	}
	return &Function{
		kind:          plainFunction,
		inputLen:      inputLen,
		outputLen:     outputLen,
		monomials:     monomials,
		contributions: contributions,
	}
}

// Builder incrementally assembles a Function, canonicalizing
// duplicate monomials (by XORing their contributions) and all-zero
// contributions away on Build.
type Builder struct {
	inputLen  int
	outputLen int
	mm        *MonomialMap
}

// NewBuilder returns a Builder for a Function over inputLen input
// variables and outputLen output bits.
func NewBuilder(inputLen, outputLen int) *Builder {
	return &Builder{
		inputLen:  inputLen,
		outputLen: outputLen,
		mm:        NewMonomialMap(outputLen),
	}
}

// Add records that monomial contributes to contribution, XORing into
// any contribution already recorded for an equal monomial. It returns
// the Builder for chaining and panics if monomial or contribution has
// the wrong length (a programmer error, not a runtime data error).
func (b *Builder) Add(monomial Monomial, contribution BitVec) *Builder {
	if monomial.Len() != b.inputLen {
		panic("gf2: Builder.Add: monomial length mismatch")
	}
	if contribution.Len() != b.outputLen {
		panic("gf2: Builder.Add: contribution length mismatch")
	}
	b.mm.XorInto(monomial.Clone(), contribution.Clone())
	return b
}

// Build returns the canonical Function assembled so far.
func (b *Builder) Build() *Function {
	return FromMonomialContributionMap(b.inputLen, b.outputLen, b.mm)
}

// Clone returns an independent copy of f.
func (f *Function) Clone() *Function {
	monomials := make([]Monomial, len(f.monomials))
	contributions := make([]BitVec, len(f.contributions))
	for i := range f.monomials {
		monomials[i] = f.monomials[i].Clone()
		contributions[i] = f.contributions[i].Clone()
	}
	return &Function{
		kind:          f.kind,
		inputLen:      f.inputLen,
		outputLen:     f.outputLen,
		monomials:     monomials,
		contributions: contributions,
	}
}

// Apply evaluates f on input v: the XOR, over every monomial that
// evaluates to 1 on v, of its contribution.
func (f *Function) Apply(v BitVec) BitVec {
	out := NewBitVec(f.outputLen)
	for i, m := range f.monomials {
		if m.Eval(v) {
			out.Xor(f.contributions[i])
		}
	}
	return out
}

// Apply2 evaluates f on the concatenation of a and b (a occupying the
// low bits, b the high bits).
func (f *Function) Apply2(a, b BitVec) BitVec {
	return f.Apply(Concatenate(a, b))
}

// Extend returns a copy of f whose input length is length, which must
// be at least twice f's input length: each monomial's support is
// zero-padded in its high bits, while the output length and the
// contributions are left untouched. It is used to prepare two
// functions with different input widths for combination into a
// single function that reads one on the low half of its input and the
// other on the high half.
func (f *Function) Extend(length int) *Function {
	if length < 2*f.inputLen {
		panic("gf2: Extend: target length smaller than 2x input length")
	}
	monomials := make([]Monomial, len(f.monomials))
	contributions := make([]BitVec, len(f.contributions))
	for i, m := range f.monomials {
		monomials[i] = extendMonomial(m, length)
		contributions[i] = f.contributions[i].Clone()
	}
	return &Function{
		kind:          f.kind,
		inputLen:      length,
		outputLen:     f.outputLen,
		monomials:     monomials,
		contributions: contributions,
	}
}

// extendMonomial returns m's support zero-padded to length bits.
func extendMonomial(m Monomial, length int) Monomial {
	words := make([]uint64, numWords(length))
	copy(words, m.bits.words)
	return Monomial{bits: bitVecFromWords(length, words)}
}

// PrepareForLHS zero-extends f's input width to 2*f.InputLength(),
// leaving each monomial's own support bits in the low half (so f can
// be combined with a second function that will occupy the high half).
// Contributions are copied unchanged.
func (f *Function) PrepareForLHS() *Function {
	doubled := 2 * f.inputLen
	monomials := make([]Monomial, len(f.monomials))
	contributions := make([]BitVec, len(f.contributions))
	for i, m := range f.monomials {
		monomials[i] = extendMonomial(m, doubled)
		contributions[i] = f.contributions[i].Clone()
	}
	return &Function{kind: f.kind, inputLen: doubled, outputLen: f.outputLen, monomials: monomials, contributions: contributions}
}

// PrepareForRHS zero-extends f's input width to 2*f.InputLength(),
// shifting each monomial's own support bits into the high half (so f
// can be combined with a first function occupying the low half).
// Contributions are copied unchanged.
func (f *Function) PrepareForRHS() *Function {
	doubled := 2 * f.inputLen
	monomials := make([]Monomial, len(f.monomials))
	contributions := make([]BitVec, len(f.contributions))
	for i, m := range f.monomials {
		shifted := NewBitVec(doubled)
		for j := 0; j < f.inputLen; j++ {
			if m.bits.Get(j) {
				shifted.Set(f.inputLen + j)
			}
		}
		monomials[i] = Monomial{bits: shifted}
		contributions[i] = f.contributions[i].Clone()
	}
	return &Function{kind: f.kind, inputLen: doubled, outputLen: f.outputLen, monomials: monomials, contributions: contributions}
}

// TruncatedIdentity returns a Function over n inputs whose output bit
// j equals input bit start+j, for j in [0, stop-start]. Output bit j's
// sole monomial is the linear monomial x_{start+j}.
func TruncatedIdentity(start, stop, n int) *Function {
	outputLen := stop - start + 1
	monomials := make([]Monomial, outputLen)
	contributions := make([]BitVec, outputLen)
	for i := 0; i < outputLen; i++ {
		monomials[i] = LinearMonomial(n, start+i)
		c := NewBitVec(outputLen)
		c.Set(i)
		contributions[i] = c
	}
	return &Function{kind: plainFunction, inputLen: n, outputLen: outputLen, monomials: monomials, contributions: contributions}
}

// Concatenate2 returns the function h over 2*n inputs (n being the
// shared input length of lhs and rhs) such that
// h.Apply(v) == Concatenate(lhs.Apply(v[:n]), rhs.Apply(v[n:])):
// lhs reads the low half of the input, rhs the high half, and the two
// output vectors are stacked (lhs's output bits first). It requires
// lhs and rhs to have equal input length, mirroring PrepareForLHS and
// PrepareForRHS, which each double their own function's input width.
func Concatenate2(lhs, rhs *Function) (*Function, error) {
	if lhs.inputLen != rhs.inputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "Concatenate2 requires lhs and rhs to share an input length")
	}
	left := lhs.PrepareForLHS()
	right := rhs.PrepareForRHS()

	outputLen := lhs.outputLen + rhs.outputLen
	monomials := make([]Monomial, 0, len(left.monomials)+len(right.monomials))
	contributions := make([]BitVec, 0, len(left.monomials)+len(right.monomials))

	for i, m := range left.monomials {
		c := NewBitVec(outputLen)
		for b := 0; b < lhs.outputLen; b++ {
			if lhs.contributions[i].Get(b) {
				c.Set(b)
			}
		}
		monomials = append(monomials, m)
		contributions = append(contributions, c)
	}
	for i, m := range right.monomials {
		c := NewBitVec(outputLen)
		for b := 0; b < rhs.outputLen; b++ {
			if rhs.contributions[i].Get(b) {
				c.Set(lhs.outputLen + b)
			}
		}
		monomials = append(monomials, m)
		contributions = append(contributions, c)
	}

	return &Function{kind: plainFunction, inputLen: left.inputLen, outputLen: outputLen, monomials: monomials, contributions: contributions}, nil
}
