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

package randfunc

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/crypto/salsa20"

	"github.com/kryptnostic/fhe-core/gf2"
)

// keystreamBlockSize is the size, in bytes, of each salsa20 block
// drawn on demand as a Deterministic request consumes pseudorandom
// bytes.
const keystreamBlockSize = 64

// Deterministic is a gf2.RandomFunctionFactory backed by a salsa20
// keystream.
type Deterministic struct {
	key *[32]byte
}

// NewDeterministic returns a Deterministic factory keyed by key. The
// same key and request always produce the same Function.
func NewDeterministic(key *[32]byte) *Deterministic {
	return &Deterministic{key: key}
}

// keystream is a self-extending run of pseudorandom bytes drawn from
// salsa20, one fixed-size block at a time, each block keyed by an
// 8-byte nonce that increments so that no two blocks of the same
// request ever repeat. This generalizes the fixed, single all-zero
// nonce of the sampler this package is grounded on, which only ever
// produced one block's worth of output per call.
type keystream struct {
	key   *[32]byte
	nonce uint64
	block uint64
	buf   []byte
	pos   int
}

func newKeystream(key *[32]byte, nonce uint64) *keystream {
	return &keystream{key: key, nonce: nonce}
}

func (k *keystream) fill() {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], k.nonce+k.block)
	in := make([]byte, keystreamBlockSize)
	out := make([]byte, keystreamBlockSize)
	salsa20.XORKeyStream(out, in, nonceBytes[:], k.key)
	k.buf = out
	k.pos = 0
	k.block++
}

func (k *keystream) nextByte() byte {
	if k.buf == nil || k.pos >= len(k.buf) {
		k.fill()
	}
	b := k.buf[k.pos]
	k.pos++
	return b
}

// nextUint returns a pseudorandom value in [0, bound). Reducing a
// uniform 32-bit draw modulo bound biases small remainders
// negligibly for the bounds this package uses (input/output lengths
// and degrees of at most a few thousand).
func (k *keystream) nextUint(bound int) int {
	if bound <= 0 {
		return 0
	}
	var v uint32
	for i := 0; i < 4; i++ {
		v = v<<8 | uint32(k.nextByte())
	}
	return int(v % uint32(bound))
}

func (k *keystream) nextBit() bool {
	return k.nextByte()&1 == 1
}

// nonceFor derives a request-specific base nonce, so that distinct
// (inputLen, outputLen, degree) requests start their keystreams from
// different nonces. Block i of a request uses base+i, so a later block
// of one request can share its nonce, and thus its bytes, with an
// earlier block of another request (for example, the same lengths
// with degree d and d+1).
func nonceFor(inputLen, outputLen, degree int) uint64 {
	return uint64(inputLen)*1000003 + uint64(outputLen)*9973 + uint64(degree)
}

// Random implements gf2.RandomFunctionFactory: it returns a Function
// over inputLen inputs and outputLen outputs whose monomials all have
// order <= degree. The number of monomials drawn is
// outputLen*(degree+1), a fixed density policy chosen so that Random
// scales with the request's shape rather than producing either an
// empty or a combinatorially-exploding Function.
func (d *Deterministic) Random(inputLen, outputLen, degree int) (*gf2.Function, error) {
	if inputLen <= 0 || outputLen <= 0 {
		return nil, errors.Wrap(gf2.ErrShapeMismatch, "Random requires positive inputLen and outputLen")
	}
	if degree < 0 || degree > inputLen {
		return nil, errors.Wrap(gf2.ErrShapeMismatch, "Random requires 0 <= degree <= inputLen")
	}

	monomialCount := outputLen * (degree + 1)
	if monomialCount == 0 {
		monomialCount = 1
	}

	ks := newKeystream(d.key, nonceFor(inputLen, outputLen, degree))
	builder := gf2.NewBuilder(inputLen, outputLen)

	for i := 0; i < monomialCount; i++ {
		order := ks.nextUint(degree + 1)
		support := gf2.NewBitVec(inputLen)
		for picked := 0; picked < order; {
			idx := ks.nextUint(inputLen)
			if !support.Get(idx) {
				support.Set(idx)
				picked++
			}
		}

		contribution := gf2.NewBitVec(outputLen)
		for b := 0; b < outputLen; b++ {
			if ks.nextBit() {
				contribution.Set(b)
			}
		}

		builder.Add(gf2.NewMonomial(support), contribution)
	}

	return builder.Build(), nil
}

var _ gf2.RandomFunctionFactory = (*Deterministic)(nil)
