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

import "github.com/pkg/errors"

// Xor returns f+rhs (pointwise XOR of their evaluations): a Function
// g such that g.Apply(v) == f.Apply(v) ^ rhs.Apply(v) for every v. It
// requires f and rhs to share both input and output length.
func (f *Function) Xor(rhs *Function) (*Function, error) {
	if f.inputLen != rhs.inputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "Xor requires equal input length")
	}
	if f.outputLen != rhs.outputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "Xor requires equal output length")
	}

	mm := NewMonomialMap(f.outputLen)
	for i, m := range f.monomials {
		mm.Set(m.Clone(), f.contributions[i].Clone())
	}
	for i, m := range rhs.monomials {
		mm.XorInto(m, rhs.contributions[i])
	}

	return FromMonomialContributionMap(f.inputLen, f.outputLen, mm), nil
}

// And returns f*rhs (pointwise AND of their evaluations): a Function
// g such that g.Apply(v) == f.Apply(v) & rhs.Apply(v) for every v. It
// is the convolution of the two sparse polynomials in the monomial
// basis, and requires f and rhs to share both input and output
// length.
func (f *Function) And(rhs *Function) (*Function, error) {
	if f.inputLen != rhs.inputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "And requires equal input length")
	}
	if f.outputLen != rhs.outputLen {
		return nil, errors.Wrap(ErrShapeMismatch, "And requires equal output length")
	}

	mm := NewMonomialMap(f.outputLen)
	for i, mi := range f.monomials {
		for j, mj := range rhs.monomials {
			product := Product(mi, mj)
			contribution := f.contributions[i].Clone()
			contribution.And(rhs.contributions[j])
			mm.XorInto(product, contribution)
		}
	}

	return FromMonomialContributionMap(f.inputLen, f.outputLen, mm), nil
}
