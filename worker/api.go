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
	"github.com/simnet/simnet/manager"
	"github.com/simnet/simnet/pkg/timeutil"
)

// The helpers below accept a nil worker: counter increments during
// process startup and teardown run before any worker context exists
// and land on the manager's process-wide counters instead.

// CountObjectAlloc counts one allocation of the named object type.
func CountObjectAlloc(w *Worker, mgr manager.Manager, name string) {
	if w != nil {
		w.CountObjectAlloc(name)
		return
	}
	mgr.CountObjectAlloc(name)
}

// CountObjectDealloc counts one deallocation of the named object type.
func CountObjectDealloc(w *Worker, mgr manager.Manager, name string) {
	if w != nil {
		w.CountObjectDealloc(name)
		return
	}
	mgr.CountObjectDealloc(name)
}

// AddSyscallCount counts invocations of the named syscall.
func AddSyscallCount(w *Worker, mgr manager.Manager, name string, count uint64) {
	if w != nil {
		w.AddSyscallCount(name, count)
		return
	}
	mgr.AddSyscallCount(name, count)
}

// IncrementPluginError counts one plugin failure.
func IncrementPluginError(w *Worker, mgr manager.Manager) {
	if w != nil {
		w.IncrementPluginError()
		return
	}
	mgr.IncrementPluginError()
}

// EventRoundTask returns the standard per-round task: each worker
// drains events with time below the round barrier from the shared
// scheduler, then contributes the earliest remaining event time to the
// next-round reduction.
func EventRoundTask(roundEnd timeutil.SimulationTime) TaskFn {
	return func(w *Worker, data interface{}) {
		w.SetRoundEndTime(roundEnd)
		for {
			event := w.pool.sched.PopNextEventBefore(roundEnd)
			if event == nil {
				break
			}
			w.RunEvent(event)
		}
		w.SetMinEventTimeNextRound(w.pool.sched.NextEventTime())
	}
}
