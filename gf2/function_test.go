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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityFunction returns the Function over n inputs/outputs whose
// i-th output bit is input bit i, built directly through Builder
// rather than through TruncatedIdentity, to exercise both paths.
func identityFunction(n int) *Function {
	b := NewBuilder(n, n)
	for i := 0; i < n; i++ {
		c := NewBitVec(n)
		c.Set(i)
		b.Add(LinearMonomial(n, i), c)
	}
	return b.Build()
}

func TestIdentityApply(t *testing.T) {
	f := identityFunction(4)
	v := NewBitVec(4)
	v.Set(1)
	v.Set(3)
	out := f.Apply(v)
	assert.True(t, out.Equal(v))
}

func TestTruncatedIdentity(t *testing.T) {
	f := TruncatedIdentity(1, 2, 4)
	assert.Equal(t, 4, f.InputLength())
	assert.Equal(t, 2, f.OutputLength())

	v := NewBitVec(4)
	v.Set(1)
	v.Set(2)
	out := f.Apply(v)
	assert.True(t, out.Get(0))
	assert.True(t, out.Get(1))
}

func TestBuilderCanonicalizesDuplicateMonomials(t *testing.T) {
	n := 3
	b := NewBuilder(n, 1)
	c1 := NewBitVec(1)
	c1.Set(0)
	c2 := NewBitVec(1)
	c2.Set(0)
	// The same monomial contributed twice with the same bit cancels,
	// since contributions XOR together (spec.md's canonical-form
	// invariant: no all-zero contribution survives).
	b.Add(LinearMonomial(n, 0), c1)
	b.Add(LinearMonomial(n, 0), c2)
	f := b.Build()
	assert.Equal(t, 0, len(f.Monomials()))
}

func TestNewValidatesShapes(t *testing.T) {
	_, err := New(2, 1, []Monomial{LinearMonomial(3, 0)}, []BitVec{NewBitVec(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New(2, 1, []Monomial{LinearMonomial(2, 0)}, []BitVec{NewBitVec(2)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New(2, 1, []Monomial{LinearMonomial(2, 0), LinearMonomial(2, 1)}, []BitVec{NewBitVec(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestExtendDoublesWidthAndPreservesLowBits(t *testing.T) {
	f := identityFunction(2)
	extended := f.Extend(4)
	assert.Equal(t, 4, extended.InputLength())
	assert.Equal(t, 2, extended.OutputLength())

	v := NewBitVec(4)
	v.Set(0)
	out := extended.Apply(v)
	assert.True(t, out.Get(0))
	assert.False(t, out.Get(1))
}

func TestPrepareForLHSKeepsLowHalf(t *testing.T) {
	f := identityFunction(2)
	lhs := f.PrepareForLHS()
	assert.Equal(t, 4, lhs.InputLength())

	v := NewBitVec(4)
	v.Set(0)
	out := lhs.Apply(v)
	assert.True(t, out.Get(0))
}

func TestPrepareForRHSShiftsIntoHighHalf(t *testing.T) {
	f := identityFunction(2)
	rhs := f.PrepareForRHS()
	assert.Equal(t, 4, rhs.InputLength())

	v := NewBitVec(4)
	v.Set(0)
	out := rhs.Apply(v)
	assert.True(t, out.IsZero(), "low-half input bits must not affect a PrepareForRHS function")

	v2 := NewBitVec(4)
	v2.Set(2)
	out2 := rhs.Apply(v2)
	assert.True(t, out2.Get(0))
}

func TestConcatenate2RequiresEqualInputLength(t *testing.T) {
	lhs := identityFunction(2)
	rhs := identityFunction(3)
	_, err := Concatenate2(lhs, rhs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestConcatenate2StacksOutputsOverSharedInput(t *testing.T) {
	lhs := TruncatedIdentity(0, 0, 2) // output = x0
	rhs := TruncatedIdentity(1, 1, 2) // output = x1
	combined, err := Concatenate2(lhs, rhs)
	require.NoError(t, err)
	assert.Equal(t, 4, combined.InputLength())
	assert.Equal(t, 2, combined.OutputLength())

	v := NewBitVec(4)
	v.Set(0) // lhs reads input bit 0
	v.Set(3) // rhs reads input bit 1, shifted to position 2+1=3
	out := combined.Apply(v)
	assert.True(t, out.Get(0))
	assert.True(t, out.Get(1))
}

func TestTotalMonomialCountAndMaximumMonomialOrder(t *testing.T) {
	n := 3
	b := NewBuilder(n, 2)
	c := NewBitVec(2)
	c.Set(0)
	c.Set(1)
	b.Add(Product(LinearMonomial(n, 0), LinearMonomial(n, 1)), c)
	f := b.Build()

	assert.Equal(t, 2, f.TotalMonomialCount())
	assert.Equal(t, 2, f.MaximumMonomialOrder())
}

func TestCloneIsIndependent(t *testing.T) {
	f := identityFunction(2)
	g := f.Clone()
	v := NewBitVec(2)
	v.Set(0)
	assert.True(t, f.Apply(v).Equal(g.Apply(v)))

	// Clearing every contribution of the clone must leave f unchanged.
	for i := range g.contributions {
		g.contributions[i].Xor(g.contributions[i])
	}
	assert.True(t, f.Apply(v).Get(0))
}
