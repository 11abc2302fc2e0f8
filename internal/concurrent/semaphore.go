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

// Semaphore is a binary semaphore with an initial count of zero.
// Post releases exactly one waiter; Wait blocks until a Post arrives.
// A Post while a permit is already pending is invalid under the worker
// dispatch protocol and would block the poster, surfacing the bug.
type Semaphore struct {
	permits chan struct{}
}

// NewSemaphore creates a binary semaphore with no permit available.
func NewSemaphore() *Semaphore {
	return &Semaphore{
		permits: make(chan struct{}, 1),
	}
}

// Post makes one permit available, releasing a single waiter.
func (s *Semaphore) Post() {
	s.permits <- struct{}{}
}

// Wait blocks until a permit is available and consumes it.
func (s *Semaphore) Wait() {
	<-s.permits
}
