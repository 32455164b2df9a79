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

package workerpool

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitRunsEveryTask(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var count int64
	for i := 0; i < 100; i++ {
		p.Go(func() error {
			atomic.AddInt64(&count, 1)
			return nil
		})
	}
	require.NoError(t, p.Wait())
	assert.EqualValues(t, 100, count)
}

func TestWaitSurfacesFirstError(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	p.Go(func() error { return nil })
	p.Go(func() error { return fmt.Errorf("boom") })
	p.Go(func() error { return nil })

	err := p.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestWaitRecoversPanic(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	p.Go(func() error {
		panic("kaboom")
	})

	err := p.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestWaitResetsErrorBetweenWaves(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	p.Go(func() error { return fmt.Errorf("wave one") })
	require.Error(t, p.Wait())

	p.Go(func() error { return nil })
	require.NoError(t, p.Wait())
}

func TestCloseIsIdempotent(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()
}

func TestDefaultSizeUsedForNonPositive(t *testing.T) {
	p := NewPool(0)
	defer p.Close()

	var count int64
	for i := 0; i < DefaultSize*3; i++ {
		p.Go(func() error {
			atomic.AddInt64(&count, 1)
			return nil
		})
	}
	require.NoError(t, p.Wait())
	assert.EqualValues(t, DefaultSize*3, count)
}
