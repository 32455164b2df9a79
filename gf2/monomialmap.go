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

// MonomialMap is the mutable scratchpad used while building a
// Function: a mapping from a Monomial's identity to the BitVec of
// output bits it contributes to. Because Monomial wraps a BitVec
// (itself backed by a slice), it is not a valid native Go map key, so
// MonomialMap keys internally by Monomial.Key() while keeping the
// original Monomial values around for enumeration.
//
// It is the mutable counterpart to a Function's canonical, immutable
// parallel arrays: Xor, And, and Compose all build one of these as
// scratch space and convert it to canonical arrays exactly once, at
// the end.
type MonomialMap struct {
	outputLen int
	keys      map[string]Monomial
	values    map[string]BitVec
}

// NewMonomialMap returns an empty MonomialMap whose contributions have
// outputLen bits.
func NewMonomialMap(outputLen int) *MonomialMap {
	return &MonomialMap{
		outputLen: outputLen,
		keys:      make(map[string]Monomial),
		values:    make(map[string]BitVec),
	}
}

// Get returns the contribution currently stored for m and whether an
// entry exists.
func (mm *MonomialMap) Get(m Monomial) (BitVec, bool) {
	v, ok := mm.values[m.Key()]
	return v, ok
}

// GetOrInit returns the contribution stored for m, creating and
// storing a zero contribution first if none exists yet.
func (mm *MonomialMap) GetOrInit(m Monomial) BitVec {
	k := m.Key()
	if v, ok := mm.values[k]; ok {
		return v
	}
	v := NewBitVec(mm.outputLen)
	mm.keys[k] = m
	mm.values[k] = v
	return v
}

// Set stores contribution for m, overwriting any existing entry.
func (mm *MonomialMap) Set(m Monomial, contribution BitVec) {
	k := m.Key()
	mm.keys[k] = m
	mm.values[k] = contribution
}

// XorInto XORs contribution into the entry for m, creating it first
// if absent.
func (mm *MonomialMap) XorInto(m Monomial, contribution BitVec) {
	mm.GetOrInit(m).Xor(contribution)
}

// Len returns the number of entries currently in mm, including any
// with an all-zero contribution.
func (mm *MonomialMap) Len() int {
	return len(mm.keys)
}

// notNilContribution reports whether v has at least one set bit. It
// is the pure predicate spec.md §9 calls out ("Predicates like
// 'non-nil contribution' are pure functions").
func notNilContribution(v BitVec) bool {
	return !v.IsZero()
}

// RemoveNilContributions deletes every entry of mm whose contribution
// is all-zero, mutating mm in place.
func (mm *MonomialMap) RemoveNilContributions() {
	for k, v := range mm.values {
		if !notNilContribution(v) {
			delete(mm.values, k)
			delete(mm.keys, k)
		}
	}
}

// FilterNilContributions returns a new MonomialMap containing only
// mm's entries with a non-zero contribution, leaving mm unmodified.
func (mm *MonomialMap) FilterNilContributions() *MonomialMap {
	result := NewMonomialMap(mm.outputLen)
	for k, m := range mm.keys {
		if v := mm.values[k]; notNilContribution(v) {
			result.keys[k] = m
			result.values[k] = v
		}
	}
	return result
}

// ToCanonicalArrays drops nil-contribution entries and returns the
// co-indexed (monomials, contributions) arrays for a canonical
// Function. Array order is unspecified.
func (mm *MonomialMap) ToCanonicalArrays() ([]Monomial, []BitVec) {
	mm.RemoveNilContributions()
	monomials := make([]Monomial, 0, len(mm.keys))
	contributions := make([]BitVec, 0, len(mm.keys))
	for k, m := range mm.keys {
		monomials = append(monomials, m)
		contributions = append(contributions, mm.values[k])
	}
	return monomials, contributions
}
