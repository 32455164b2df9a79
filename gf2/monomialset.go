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

// MonomialSet is a set of Monomials keyed by their support, used by
// the Composer to represent a polynomial in the inner basis as "the
// set of monomials with coefficient 1" (spec.md §4.5.1-§4.5.4).
type MonomialSet struct {
	items map[string]Monomial
}

// NewMonomialSet returns an empty MonomialSet.
func NewMonomialSet() *MonomialSet {
	return &MonomialSet{items: make(map[string]Monomial)}
}

// monomialSetFromContributions builds the set of monomials that
// contribute to output row `row`, i.e. contributions[i].Get(row).
func monomialSetFromContributions(row int, monomials []Monomial, contributions []BitVec) *MonomialSet {
	s := &MonomialSet{items: make(map[string]Monomial, len(contributions)/2+1)}
	for i, c := range contributions {
		if c.Get(row) {
			s.items[monomials[i].Key()] = monomials[i]
		}
	}
	return s
}

// Len returns the number of monomials in s.
func (s *MonomialSet) Len() int {
	return len(s.items)
}

// Contains reports whether m is in s.
func (s *MonomialSet) Contains(m Monomial) bool {
	_, ok := s.items[m.Key()]
	return ok
}

// Add inserts m into s.
func (s *MonomialSet) Add(m Monomial) {
	s.items[m.Key()] = m
}

// Remove deletes m from s, if present.
func (s *MonomialSet) Remove(m Monomial) {
	delete(s.items, m.Key())
}

// Clone returns an independent copy of s.
func (s *MonomialSet) Clone() *MonomialSet {
	c := &MonomialSet{items: make(map[string]Monomial, len(s.items))}
	for k, m := range s.items {
		c.items[k] = m
	}
	return c
}

// Each calls f once for every monomial in s. Iteration order is
// unspecified.
func (s *MonomialSet) Each(f func(Monomial)) {
	for _, m := range s.items {
		f(m)
	}
}

// Slice returns s's elements as a newly allocated slice, in
// unspecified order.
func (s *MonomialSet) Slice() []Monomial {
	out := make([]Monomial, 0, len(s.items))
	for _, m := range s.items {
		out = append(out, m)
	}
	return out
}

// symmetricDifferenceSets computes a △ b: the monomials present in
// exactly one of a, b. Neither input is mutated.
func symmetricDifferenceSets(a, b *MonomialSet) *MonomialSet {
	result := &MonomialSet{items: make(map[string]Monomial, len(a.items)+len(b.items))}
	for k, m := range a.items {
		result.items[k] = m
	}
	for k, m := range b.items {
		if _, ok := result.items[k]; ok {
			delete(result.items, k)
		} else {
			result.items[k] = m
		}
	}
	return result
}

// setProduct computes the GF(2) polynomial product of two sets of
// monomials, reduced mod 2 (spec.md §4.5.2): for every a∈lhs, b∈rhs,
// toggle presence of Product(a,b) in the result.
func setProduct(lhs, rhs *MonomialSet) *MonomialSet {
	result := &MonomialSet{items: make(map[string]Monomial, lhs.Len()*rhs.Len()/2+1)}
	for _, a := range lhs.items {
		for _, b := range rhs.items {
			p := Product(a, b)
			k := p.Key()
			if _, ok := result.items[k]; ok {
				delete(result.items, k)
			} else {
				result.items[k] = p
			}
		}
	}
	return result
}
