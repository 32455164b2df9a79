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
)

func TestBitVecSetGetClear(t *testing.T) {
	v := NewBitVec(130)
	assert.False(t, v.Get(0))
	v.Set(0)
	v.Set(64)
	v.Set(129)
	assert.True(t, v.Get(0))
	assert.True(t, v.Get(64))
	assert.True(t, v.Get(129))
	assert.Equal(t, 3, v.Cardinality())
	v.Clear(64)
	assert.False(t, v.Get(64))
	assert.Equal(t, 2, v.Cardinality())
}

func TestBitVecXorAnd(t *testing.T) {
	a := NewBitVec(8)
	b := NewBitVec(8)
	a.Set(0)
	a.Set(1)
	b.Set(1)
	b.Set(2)

	x := a.Clone()
	x.Xor(b)
	assert.True(t, x.Get(0))
	assert.False(t, x.Get(1))
	assert.True(t, x.Get(2))

	y := a.Clone()
	y.And(b)
	assert.False(t, y.Get(0))
	assert.True(t, y.Get(1))
	assert.False(t, y.Get(2))
}

func TestBitVecCloneIsIndependent(t *testing.T) {
	a := NewBitVec(8)
	a.Set(0)
	b := a.Clone()
	b.Set(1)
	assert.False(t, a.Get(1))
	assert.True(t, b.Get(1))
}

func TestBitVecEqual(t *testing.T) {
	a := NewBitVec(10)
	b := NewBitVec(10)
	a.Set(3)
	b.Set(3)
	assert.True(t, a.Equal(b))
	b.Set(4)
	assert.False(t, a.Equal(b))
}

func TestBitVecIsZero(t *testing.T) {
	v := NewBitVec(70)
	assert.True(t, v.IsZero())
	v.Set(65)
	assert.False(t, v.IsZero())
}

func TestBitVecMaskClearsSpareBits(t *testing.T) {
	// A length that doesn't divide 64 leaves spare bits in the final
	// word; every word-wise op must keep them at zero so Cardinality
	// and IsZero stay correct after Xor/And with an all-ones operand.
	v := NewBitVec(5)
	ones := NewBitVec(5)
	for i := 0; i < 5; i++ {
		ones.Set(i)
	}
	v.Xor(ones)
	assert.Equal(t, 5, v.Cardinality())
	for _, w := range v.Elements() {
		assert.LessOrEqual(t, w, uint64(0x1F))
	}

	// Building from an all-ones word goes through mask(), which must
	// clear the 59 spare bits.
	fromWords := bitVecFromWords(5, []uint64{^uint64(0)})
	assert.Equal(t, 5, fromWords.Cardinality())
}

func TestBitVecConcatenate(t *testing.T) {
	a := NewBitVec(3)
	a.Set(0)
	b := NewBitVec(2)
	b.Set(1)

	c := Concatenate(a, b)
	assert.Equal(t, 5, c.Len())
	assert.True(t, c.Get(0))
	assert.False(t, c.Get(1))
	assert.False(t, c.Get(2))
	assert.False(t, c.Get(3))
	assert.True(t, c.Get(4))
}

func TestEvalMonomial(t *testing.T) {
	n := 4
	m := NewMonomial(func() BitVec {
		v := NewBitVec(n)
		v.Set(1)
		v.Set(2)
		return v
	}())

	v := NewBitVec(n)
	v.Set(1)
	assert.False(t, EvalMonomial(m, v))
	v.Set(2)
	assert.True(t, EvalMonomial(m, v))
}
