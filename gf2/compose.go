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
	"sync"

	"github.com/pkg/errors"

	"github.com/kryptnostic/fhe-core/internal/workerpool"
)

// CompositionStrategy selects which of the two equivalent recombination
// strategies described in spec.md §4.5.4/§4.5.5 Compose uses. Both
// strategies share the same greedy expansion of outer monomials into
// the inner basis (spec.md §4.5.1-§4.5.3); they differ only in how
// expansions are recombined into the composed Function's canonical
// form, and must always agree on the observable result.
type CompositionStrategy int

const (
	// SetBased recombines by symmetric-differencing sets of inner
	// monomials per output row (spec.md §4.5.4). This is Compose's
	// default.
	SetBased CompositionStrategy = iota
	// GrowingBasis recombines via a growing indexed basis of inner
	// monomials, stacking per-row index sets into a matrix and
	// transposing (spec.md §4.5.5/§4.5.6).
	GrowingBasis
)

// Compose returns outer∘inner: a Function h over inner.InputLength()
// inputs such that h.Apply(v) == outer.Apply(inner.Apply(v)) for every
// v. It requires outer.InputLength() == inner.OutputLength().
//
// Compose allocates and releases a scratch worker pool for the
// duration of the call; callers composing many functions in sequence
// should use ComposeWithPool with a pool they own and reuse.
func (outer *Function) Compose(inner *Function) (*Function, error) {
	if outer.inputLen != inner.outputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "Compose requires outer.InputLength() == inner.OutputLength()")
	}
	pool := workerpool.NewPool(workerpool.DefaultSize)
	defer pool.Close()
	return outer.ComposeWithPool(inner, pool)
}

// ComposeWithPool is Compose, using the caller-supplied pool instead
// of a scratch one. The pool's lifetime remains the caller's
// responsibility.
func (outer *Function) ComposeWithPool(inner *Function, pool *workerpool.Pool) (*Function, error) {
	return outer.ComposeWithStrategy(inner, SetBased, pool)
}

// ComposeWithStrategy is Compose with an explicit CompositionStrategy
// and worker pool.
func (outer *Function) ComposeWithStrategy(inner *Function, strategy CompositionStrategy, pool *workerpool.Pool) (*Function, error) {
	if outer.inputLen != inner.outputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "Compose requires outer.InputLength() == inner.OutputLength()")
	}

	memo, err := computeExpansions(outer, inner, pool)
	if err != nil {
		return nil, err
	}

	switch strategy {
	case GrowingBasis:
		return recombineGrowingBasis(outer, inner, memo)
	default:
		return recombineSetBased(outer, inner, memo)
	}
}

// ComposeTwo returns self.Compose(Concatenate2(lhs, rhs)): it composes
// self with the function obtained by reading lhs on the low half of
// the input and rhs on the high half.
func (self *Function) ComposeTwo(lhs, rhs *Function) (*Function, error) {
	if self.inputLen != lhs.outputLen+rhs.outputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "ComposeTwo requires self.InputLength() == lhs.OutputLength()+rhs.OutputLength()")
	}
	inner, err := Concatenate2(lhs, rhs)
	if err != nil {
		return nil, err
	}
	return self.Compose(inner)
}

// expansionMemo maps outer monomials (by key) to their expansion, a
// MonomialSet of inner monomials, computed once and reused throughout
// composition. The constant outer monomial is never stored explicitly
// — Get synthesizes {ConstantMonomial(innerInputLen)} for it, per
// spec.md §4.5.1 ("The constant monomial is removed from the required
// set — its expansion is {constant(n_i)} implicitly").
type expansionMemo struct {
	innerInputLen int
	sets          map[string]*MonomialSet
}

func newExpansionMemo(innerInputLen int) *expansionMemo {
	return &expansionMemo{innerInputLen: innerInputLen, sets: make(map[string]*MonomialSet)}
}

func (e *expansionMemo) set(m Monomial, s *MonomialSet) {
	e.sets[m.Key()] = s
}

func (e *expansionMemo) Get(m Monomial) (*MonomialSet, bool) {
	if m.IsConstant() {
		s := NewMonomialSet()
		s.Add(ConstantMonomial(e.innerInputLen))
		return s, true
	}
	s, ok := e.sets[m.Key()]
	return s, ok
}

// candidateProduct is a candidate product p = Product(a, b) considered
// by the greedy scheduler, together with the witnessing factor pair
// that produced it.
type candidateProduct struct {
	p, a, b Monomial
}

// computeExpansions runs the greedy factor-sharing scheduler of
// spec.md §4.5.1-§4.5.3: it derives, for every monomial of outer, its
// expansion as a set of inner monomials.
func computeExpansions(outer, inner *Function, pool *workerpool.Pool) (*expansionMemo, error) {
	nOuterVars := outer.inputLen

	memo := newExpansionMemo(inner.inputLen)
	expanded := NewMonomialSet()
	for i := 0; i < nOuterVars; i++ {
		lin := LinearMonomial(nOuterVars, i)
		memo.set(lin, monomialSetFromContributions(i, inner.monomials, inner.contributions))
		expanded.Add(lin)
	}

	required := NewMonomialSet()
	stopping := NewMonomialSet()
	for _, m := range outer.monomials {
		stopping.Add(m)
		if !m.IsConstant() {
			required.Add(m)
		}
	}

	maxOrder := outer.MaximumMonomialOrder()
	requiredSlice := required.Slice()

	candidates, err := generateCandidates(pool, expanded.Slice(), expanded.Slice(), requiredSlice, maxOrder, expanded)
	if err != nil {
		return nil, err
	}

	for !required.subsetOf(expanded) {
		best, key, err := mostFrequentFactor(pool, candidates, requiredSlice)
		if err != nil {
			return nil, err
		}

		aSet, ok := memo.Get(best.a)
		if !ok {
			return nil, errors.Wrapf(ErrInternalInvariant, "missing expansion for scheduled factor %v", best.a)
		}
		bSet, ok := memo.Get(best.b)
		if !ok {
			return nil, errors.Wrapf(ErrInternalInvariant, "missing expansion for scheduled factor %v", best.b)
		}

		memo.set(best.p, setProduct(aSet, bSet))
		expanded.Add(best.p)
		delete(candidates, key)

		more, err := generateCandidates(pool, []Monomial{best.p}, expanded.Slice(), requiredSlice, maxOrder, expanded)
		if err != nil {
			return nil, err
		}
		mergeCandidates(candidates, more)
	}

	// Single-step remainder recovery (spec.md §4.5.3 tail): resolves
	// any outer monomial outside the required set (in practice, at
	// most the constant monomial, whose expansion is already implicit
	// in expansionMemo.Get and so never actually needs this path).
	for _, r := range stopping.Slice() {
		if r.IsConstant() || expanded.Contains(r) {
			continue
		}
		for _, q := range requiredSlice {
			quotient, ok := Divide(r, q)
			if !ok {
				continue
			}
			qSet, ok1 := memo.Get(quotient)
			reqSet, ok2 := memo.Get(q)
			if ok1 && ok2 {
				memo.set(r, setProduct(qSet, reqSet))
				expanded.Add(r)
				break
			}
		}
	}

	return memo, nil
}

// generateCandidates enumerates, for each a in newBatch and each b in
// allExpanded, the product p = Product(a, b), keeping it as a
// candidate if it has order <= maxOrder, is not already expanded, and
// divides at least one required monomial (spec.md §4.5.3 step 1).
// Work is fanned out across pool, one task per element of newBatch;
// the result map is built behind a mutex (the "concurrent
// insert-if-absent" of spec.md §5).
func generateCandidates(pool *workerpool.Pool, newBatch, allExpanded, required []Monomial, maxOrder int, expanded *MonomialSet) (map[string]candidateProduct, error) {
	var mu sync.Mutex
	result := make(map[string]candidateProduct)

	for _, a := range newBatch {
		a := a
		pool.Go(func() error {
			for _, b := range allExpanded {
				if a.Equal(b) {
					continue
				}
				p := Product(a, b)
				if p.Cardinality() > maxOrder {
					continue
				}
				if expanded.Contains(p) {
					continue
				}
				divides := false
				for _, q := range required {
					if HasFactor(q, p) {
						divides = true
						break
					}
				}
				if !divides {
					continue
				}
				key := p.Key()
				mu.Lock()
				if _, exists := result[key]; !exists {
					result[key] = candidateProduct{p: p, a: a, b: b}
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, errors.Wrap(ErrWorkerFault, err.Error())
	}
	return result, nil
}

func mergeCandidates(dst, src map[string]candidateProduct) {
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}

// mostFrequentFactor scores every candidate by how many required
// monomials it divides and returns the argmax (spec.md §4.5.3 step
// 2), breaking ties with the explicit total order monomialLess
// (DESIGN.md, Open Question 1) rather than the source's unspecified
// first-seen rule, so Compose's output is reproducible. A candidate
// with score 0 is never selected; if every candidate scores 0, that
// is ErrInternalInvariant (spec.md §4.5.3, "a fatal internal
// invariant violation").
func mostFrequentFactor(pool *workerpool.Pool, candidates map[string]candidateProduct, required []Monomial) (candidateProduct, string, error) {
	if len(candidates) == 0 {
		return candidateProduct{}, "", errors.Wrap(ErrInternalInvariant, "no composable candidates remain")
	}

	var mu sync.Mutex
	var best candidateProduct
	var bestKey string
	bestScore := -1
	haveBest := false

	for key, cand := range candidates {
		key, cand := key, cand
		pool.Go(func() error {
			count := 0
			for _, q := range required {
				if HasFactor(q, cand.p) {
					count++
				}
			}
			mu.Lock()
			if !haveBest || count > bestScore || (count == bestScore && monomialLess(cand.p, best.p)) {
				best, bestKey, bestScore, haveBest = cand, key, count, true
			}
			mu.Unlock()
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return candidateProduct{}, "", errors.Wrap(ErrWorkerFault, err.Error())
	}
	if bestScore <= 0 {
		return candidateProduct{}, "", errors.Wrap(ErrInternalInvariant, "no candidate divides a required monomial")
	}
	return best, bestKey, nil
}

// subsetOf reports whether every monomial of s is also in other.
func (s *MonomialSet) subsetOf(other *MonomialSet) bool {
	for k := range s.items {
		if _, ok := other.items[k]; !ok {
			return false
		}
	}
	return true
}

// recombineSetBased implements spec.md §4.5.4: for each output row,
// symmetric-difference the expansions of every outer monomial
// contributing to that row, then record each surviving inner monomial
// as contributing to that row.
func recombineSetBased(outer, inner *Function, memo *expansionMemo) (*Function, error) {
	mm := NewMonomialMap(outer.outputLen)

	for row := 0; row < outer.outputLen; row++ {
		acc := NewMonomialSet()
		for k, m := range outer.monomials {
			if !outer.contributions[k].Get(row) {
				continue
			}
			expansion, ok := memo.Get(m)
			if !ok {
				return nil, errors.Wrapf(ErrInternalInvariant, "no expansion for required monomial %v", m.Support().Elements())
			}
			acc = symmetricDifferenceSets(acc, expansion)
		}
		acc.Each(func(m Monomial) {
			mm.GetOrInit(m).Set(row)
		})
	}

	return FromMonomialContributionMap(inner.inputLen, outer.outputLen, mm), nil
}

// indexSet is a sparse dynamic bit set over basis indices, used by
// the growing-basis recombination of spec.md §4.5.5/§4.5.6. A key is
// present iff its bit is set; toggling is symmetric-difference.
type indexSet map[int]bool

func (s indexSet) toggle(i int) {
	if s[i] {
		delete(s, i)
	} else {
		s[i] = true
	}
}

// growingBasis is the shared, append-only list of inner monomials (and
// its inverse index) described in spec.md §4.5.6. Appends are
// serialized by mu to maintain the bijection items[indices[p]] == p.
type growingBasis struct {
	mu      sync.Mutex
	items   []Monomial
	indices map[string]int
}

func newGrowingBasis() *growingBasis {
	return &growingBasis{indices: make(map[string]int)}
}

// indexOf returns p's index in the basis, appending it if this is the
// first time p has been seen.
func (g *growingBasis) indexOf(p Monomial) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i, ok := g.indices[p.Key()]; ok {
		return i
	}
	i := len(g.items)
	g.items = append(g.items, p)
	g.indices[p.Key()] = i
	return i
}

func (g *growingBasis) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

func (g *growingBasis) at(i int) Monomial {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.items[i]
}

// recombineGrowingBasis implements spec.md §4.5.5/§4.5.6: every inner
// monomial appearing in any expansion is indexed into a shared growing
// basis; each output row becomes an indexSet over that basis; the
// rows are then "transposed" directly into per-basis-monomial
// contributions.
func recombineGrowingBasis(outer, inner *Function, memo *expansionMemo) (*Function, error) {
	basis := newGrowingBasis()
	rows := make([]indexSet, outer.outputLen)
	for i := range rows {
		rows[i] = indexSet{}
	}

	for k, m := range outer.monomials {
		expansion, ok := memo.Get(m)
		if !ok {
			return nil, errors.Wrapf(ErrInternalInvariant, "no expansion for required monomial %v", m.Support().Elements())
		}
		indices := make([]int, 0, expansion.Len())
		expansion.Each(func(im Monomial) {
			indices = append(indices, basis.indexOf(im))
		})
		for row := 0; row < outer.outputLen; row++ {
			if !outer.contributions[k].Get(row) {
				continue
			}
			for _, idx := range indices {
				rows[row].toggle(idx)
			}
		}
	}

	mm := NewMonomialMap(outer.outputLen)
	basisLen := basis.len()
	for j := 0; j < basisLen; j++ {
		mm.GetOrInit(basis.at(j))
	}
	for row, set := range rows {
		for idx := range set {
			mm.GetOrInit(basis.at(idx)).Set(row)
		}
	}

	return FromMonomialContributionMap(inner.inputLen, outer.outputLen, mm), nil
}
