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

package worker

import (
	"sync"
	"time"

	"github.com/uber-go/tally"

	"github.com/simnet/simnet/pkg/affinity"
)

// WorkerNone marks the absence of a worker id.
const WorkerNone = -1

// logicalProcessors tracks the fixed set of execution slots of the
// pool. Each slot holds a ready queue and a done queue of worker ids
// and the CPU it is pinned to. A worker id lives in at most one queue
// across all slots at any instant; a running worker is in neither.
//
// Queue operations take the mutex: work stealing lets a worker
// finishing on one slot pop from another slot's ready queue while that
// slot's own worker finishes concurrently. The per-slot min-event-time
// array in the pool stays lock-free, slot exclusivity holds for it.
type logicalProcessors struct {
	mutex sync.Mutex

	ready [][]int
	done  [][]int
	cpus  *affinity.CPUMap

	idleSince []time.Time
	idleTimer tally.Timer
	steals    tally.Counter
}

// newLogicalProcessors allocates n slots with empty queues, each bound
// to a CPU from the host affinity map where supported.
func newLogicalProcessors(n int, pinCPUs bool, scope tally.Scope) *logicalProcessors {
	var cpus *affinity.CPUMap
	if pinCPUs {
		cpus = affinity.NewCPUMap(n)
	}
	lps := &logicalProcessors{
		ready:     make([][]int, n),
		done:      make([][]int, n),
		cpus:      cpus,
		idleSince: make([]time.Time, n),
		idleTimer: scope.Timer("lp_idle_duration"),
		steals:    scope.Counter("workers_stolen"),
	}
	now := time.Now()
	for i := range lps.idleSince {
		lps.idleSince[i] = now
	}
	return lps
}

// n returns the slot count.
func (lps *logicalProcessors) n() int {
	return len(lps.ready)
}

// cpuID returns the CPU bound to slot i, affinity.CPUUnset when
// pinning is disabled or unsupported.
func (lps *logicalProcessors) cpuID(i int) int {
	if lps.cpus == nil {
		return affinity.CPUUnset
	}
	return lps.cpus.CPU(i)
}

// readyPush appends worker w to slot i's ready queue.
func (lps *logicalProcessors) readyPush(i, w int) {
	lps.mutex.Lock()
	defer lps.mutex.Unlock()
	lps.ready[i] = append(lps.ready[i], w)
}

// donePush appends worker w to slot i's done queue.
func (lps *logicalProcessors) donePush(i, w int) {
	lps.mutex.Lock()
	defer lps.mutex.Unlock()
	lps.done[i] = append(lps.done[i], w)
}

// popWorkerToRunOn returns the next worker to run on slot i: the head
// of slot i's own ready queue when non-empty, otherwise the head of
// the first non-empty ready queue scanning slots round-robin from i+1.
// Returns WorkerNone when every ready queue is empty.
func (lps *logicalProcessors) popWorkerToRunOn(i int) int {
	lps.mutex.Lock()
	defer lps.mutex.Unlock()
	n := len(lps.ready)
	for off := 0; off < n; off++ {
		slot := (i + off) % n
		if len(lps.ready[slot]) == 0 {
			continue
		}
		w := lps.ready[slot][0]
		lps.ready[slot] = lps.ready[slot][1:]
		if off != 0 {
			lps.steals.Inc(1)
		}
		return w
	}
	return WorkerNone
}

// finishTask rotates each slot's done queue onto its ready queue.
// Called exclusively by the coordinator while no worker runs.
func (lps *logicalProcessors) finishTask() {
	lps.mutex.Lock()
	defer lps.mutex.Unlock()
	for i := range lps.done {
		lps.ready[i] = append(lps.ready[i], lps.done[i]...)
		lps.done[i] = lps.done[i][:0]
	}
}

// idleTimerStop marks slot i busy, recording the idle interval.
func (lps *logicalProcessors) idleTimerStop(i int) {
	lps.mutex.Lock()
	defer lps.mutex.Unlock()
	if !lps.idleSince[i].IsZero() {
		lps.idleTimer.Record(time.Since(lps.idleSince[i]))
		lps.idleSince[i] = time.Time{}
	}
}

// idleTimerContinue marks slot i idle.
func (lps *logicalProcessors) idleTimerContinue(i int) {
	lps.mutex.Lock()
	defer lps.mutex.Unlock()
	lps.idleSince[i] = time.Now()
}

// readyWorkers returns a snapshot of slot i's ready queue, for tests
// and shutdown assertions.
func (lps *logicalProcessors) readyWorkers(i int) []int {
	lps.mutex.Lock()
	defer lps.mutex.Unlock()
	out := make([]int, len(lps.ready[i]))
	copy(out, lps.ready[i])
	return out
}
