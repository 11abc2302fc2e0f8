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

package models

import (
	"go.uber.org/atomic"

	"github.com/simnet/simnet/pkg/timeutil"
)

// WorkerContext is the execution context threaded explicitly into
// every task callback. The worker runtime implements it; handlers use
// it to schedule follow-up work, send packets and book-keep counters.
type WorkerContext interface {
	// CurrentTime returns the simulated time of the executing event
	CurrentTime() timeutil.SimulationTime
	// ScheduleTask schedules the task against the host after nanoDelay
	ScheduleTask(task *Task, host Host, nanoDelay timeutil.SimulationTime) bool
	// SendPacket routes the packet from the source host
	SendPacket(srcHost Host, packet *Packet)
	// SetMinEventTimeNextRound contributes t to the next-round reduction
	SetMinEventTimeNextRound(t timeutil.SimulationTime)
	// ResolveIPToAddress resolves an IP through the simulation's DNS
	ResolveIPToAddress(ip string) *Address
	// ResolveNameToAddress resolves a name through the simulation's DNS
	ResolveNameToAddress(name string) *Address
	// CountObjectAlloc counts one allocation of the named object type
	CountObjectAlloc(name string)
	// CountObjectDealloc counts one deallocation of the named object type
	CountObjectDealloc(name string)
}

// TaskFn is the unit of simulated work, executed against the host the
// owning event is destined for.
type TaskFn func(ctx WorkerContext, host Host)

// Task wraps a callback with an optional free hook released when the
// last reference is dropped.
type Task struct {
	fn   TaskFn
	free func()
	ref  atomic.Int32
}

// NewTask creates a task holding one reference.
func NewTask(fn TaskFn, free func()) *Task {
	t := &Task{
		fn:   fn,
		free: free,
	}
	t.ref.Store(1)
	return t
}

// Execute runs the task callback against the given host.
func (t *Task) Execute(ctx WorkerContext, host Host) {
	if t.fn != nil {
		t.fn(ctx, host)
	}
}

// Ref takes an additional reference.
func (t *Task) Ref() {
	t.ref.Inc()
}

// Unref drops one reference, running the free hook on the last drop.
func (t *Task) Unref() {
	if t.ref.Dec() == 0 {
		if t.free != nil {
			t.free()
		}
	}
}
