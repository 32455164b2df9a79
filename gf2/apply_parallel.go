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

// ApplyParallel evaluates f on v the same way Apply does, but shards
// f's monomials across pool and XORs the per-shard partial results
// together once every shard finishes. It exists for Functions with
// enough monomials that the single XOR-reduce of Apply is worth
// splitting; for small Functions, Apply is simpler and just as fast.
func (f *Function) ApplyParallel(pool *workerpool.Pool, v BitVec) (BitVec, error) {
	n := len(f.monomials)
	if n == 0 {
		return NewBitVec(f.outputLen), nil
	}

	shards := shardCount(pool, n)
	shardSize := (n + shards - 1) / shards

	partials := make([]BitVec, shards)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for s := 0; s < shards; s++ {
		start := s * shardSize
		end := start + shardSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		s, start, end := s, start, end
		wg.Add(1)
		pool.Go(func() error {
			defer wg.Done()
			out := NewBitVec(f.outputLen)
			for i := start; i < end; i++ {
				if f.monomials[i].Eval(v) {
					out.Xor(f.contributions[i])
				}
			}
			mu.Lock()
			partials[s] = out
			mu.Unlock()
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return BitVec{}, errors.Wrap(ErrWorkerFault, err.Error())
	}

	result := NewBitVec(f.outputLen)
	for _, p := range partials {
		if p.Len() != 0 {
			result.Xor(p)
		}
	}
	return result, nil
}

// shardCount picks how many shards to split n monomials into: never
// more shards than monomials, and never more than
// workerpool.DefaultSize. The pool's own worker count is not
// consulted.
func shardCount(pool *workerpool.Pool, n int) int {
	shards := workerpool.DefaultSize
	if n < shards {
		shards = n
	}
	if shards < 1 {
		shards = 1
	}
	return shards
}
