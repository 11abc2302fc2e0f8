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

// Event schedules a task at a point of simulated time against a
// destination host. Events are ordered by (time, sequence); the
// sequence is assigned by the scheduler on push to keep ordering
// stable for equal times.
type Event struct {
	time      timeutil.SimulationTime
	sequence  uint64
	task      *Task
	srcHostID HostID
	dstHostID HostID
	ref       atomic.Int32
}

// NewEvent creates an event holding one reference and one reference to
// the task.
func NewEvent(time timeutil.SimulationTime, task *Task, srcHostID, dstHostID HostID) *Event {
	e := &Event{
		time:      time,
		task:      task,
		srcHostID: srcHostID,
		dstHostID: dstHostID,
	}
	e.ref.Store(1)
	return e
}

// Time returns the simulated time this event fires at.
func (e *Event) Time() timeutil.SimulationTime {
	return e.time
}

// Sequence returns the scheduler-assigned tiebreak ordering.
func (e *Event) Sequence() uint64 {
	return e.sequence
}

// SetSequence is called once by the scheduler on push.
func (e *Event) SetSequence(seq uint64) {
	e.sequence = seq
}

// SrcHostID returns the host that produced the event.
func (e *Event) SrcHostID() HostID {
	return e.srcHostID
}

// DstHostID returns the host the event executes against.
func (e *Event) DstHostID() HostID {
	return e.dstHostID
}

// Execute runs the event's task against the destination host.
func (e *Event) Execute(ctx WorkerContext, host Host) {
	e.task.Execute(ctx, host)
}

// Ref takes an additional reference.
func (e *Event) Ref() {
	e.ref.Inc()
}

// Unref drops one reference, releasing the task on the last drop.
func (e *Event) Unref() {
	if e.ref.Dec() == 0 {
		if e.task != nil {
			e.task.Unref()
			e.task = nil
		}
	}
}
