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

	"github.com/kryptnostic/fhe-core/internal/workerpool"
)

func TestApplyParallelAgreesWithApply(t *testing.T) {
	n := 5
	builder := NewBuilder(n, 3)
	for i := 0; i < n; i++ {
		c := NewBitVec(3)
		c.Set(i % 3)
		builder.Add(LinearMonomial(n, i), c)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := NewBitVec(3)
			c.Set((i + j) % 3)
			builder.Add(Product(LinearMonomial(n, i), LinearMonomial(n, j)), c)
		}
	}
	f := builder.Build()

	pool := workerpool.NewPool(4)
	defer pool.Close()

	forEachInput(n, func(v BitVec) {
		want := f.Apply(v)
		got, err := f.ApplyParallel(pool, v)
		require.NoError(t, err)
		assert.True(t, got.Equal(want))
	})
}

func TestApplyParallelOnEmptyFunction(t *testing.T) {
	f := &Function{kind: plainFunction, inputLen: 3, outputLen: 2}
	pool := workerpool.NewPool(2)
	defer pool.Close()

	out, err := f.ApplyParallel(pool, NewBitVec(3))
	require.NoError(t, err)
	assert.True(t, out.IsZero())
}
