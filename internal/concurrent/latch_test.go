// Licensed to SimNet under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. SimNet licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package concurrent

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountDownLatch_Await(t *testing.T) {
	latch := NewCountDownLatch(3)
	assert.Equal(t, 3, latch.Remaining())

	done := make(chan struct{})
	go func() {
		latch.Await()
		close(done)
	}()

	latch.CountDown()
	latch.CountDown()
	select {
	case <-done:
		t.Fatal("latch released before reaching zero")
	case <-time.After(10 * time.Millisecond):
	}

	latch.CountDown()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("latch never released")
	}
	assert.Equal(t, 0, latch.Remaining())
}

func TestCountDownLatch_Reuse(t *testing.T) {
	latch := NewCountDownLatch(2)
	for round := 0; round < 5; round++ {
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				latch.CountDown()
			}()
		}
		latch.Await()
		latch.Reset()
		assert.Equal(t, 2, latch.Remaining())
		wg.Wait()
	}
}

func TestCountDownLatch_ZeroCount(t *testing.T) {
	latch := NewCountDownLatch(0)
	// await on an exhausted latch returns immediately
	latch.Await()
	// extra count-downs do not underflow
	latch.CountDown()
	assert.Equal(t, 0, latch.Remaining())
}

func TestSemaphore(t *testing.T) {
	sem := NewSemaphore()

	acquired := make(chan struct{})
	go func() {
		sem.Wait()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("wait returned without a post")
	case <-time.After(10 * time.Millisecond):
	}

	sem.Post()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("wait never observed the post")
	}
}

func TestSemaphore_PostBeforeWait(t *testing.T) {
	sem := NewSemaphore()
	// the permit is buffered, wait after post does not block
	sem.Post()
	sem.Wait()
}
