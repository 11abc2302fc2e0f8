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

package scheduler

import (
	"container/heap"
	"sync"

	"go.uber.org/atomic"

	"github.com/simnet/simnet/models"
	"github.com/simnet/simnet/pkg/timeutil"
)

//go:generate mockgen -source ./scheduler.go -destination=./scheduler_mock.go -package scheduler

// Scheduler orders events across all simulated hosts. Workers drain
// events with time below the current round barrier; pushes after
// Finish are rejected.
type Scheduler interface {
	// Start marks the scheduler as running
	Start()
	// Finish marks the scheduler as stopped, further pushes are rejected
	Finish()
	// IsRunning returns true between Start and Finish
	IsRunning() bool
	// AddHost registers a host with the scheduler
	AddHost(host models.Host)
	// GetHost returns the host for the id, nil when unknown
	GetHost(id models.HostID) models.Host
	// Push enqueues an event between the given hosts,
	// returns false when the scheduler is not running
	Push(event *models.Event, srcHostID, dstHostID models.HostID) bool
	// PopNextEventBefore removes and returns the earliest event with
	// time strictly below the barrier, nil when none qualifies
	PopNextEventBefore(barrier timeutil.SimulationTime) *models.Event
	// NextEventTime returns the earliest queued event time,
	// SimTimeMax when the queue is empty
	NextEventTime() timeutil.SimulationTime
	// Len returns the number of queued events
	Len() int
}

// eventHeap orders events by (time, sequence).
type eventHeap []*models.Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time() != h[j].Time() {
		return h[i].Time() < h[j].Time()
	}
	return h[i].Sequence() < h[j].Sequence()
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*models.Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// scheduler implements Scheduler with a mutex-guarded min-heap.
type scheduler struct {
	mutex    sync.Mutex
	events   eventHeap
	hosts    map[models.HostID]models.Host
	sequence uint64
	running  atomic.Bool
}

// NewScheduler creates an empty, stopped scheduler.
func NewScheduler() Scheduler {
	return &scheduler{
		hosts: make(map[models.HostID]models.Host),
	}
}

func (s *scheduler) Start() {
	s.running.Store(true)
}

func (s *scheduler) Finish() {
	s.running.Store(false)
}

func (s *scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *scheduler) AddHost(host models.Host) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.hosts[host.ID()] = host
}

func (s *scheduler) GetHost(id models.HostID) models.Host {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.hosts[id]
}

func (s *scheduler) Push(event *models.Event, srcHostID, dstHostID models.HostID) bool {
	if !s.running.Load() {
		return false
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sequence++
	event.SetSequence(s.sequence)
	heap.Push(&s.events, event)
	return true
}

func (s *scheduler) PopNextEventBefore(barrier timeutil.SimulationTime) *models.Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.events) == 0 || s.events[0].Time() >= barrier {
		return nil
	}
	return heap.Pop(&s.events).(*models.Event)
}

func (s *scheduler) NextEventTime() timeutil.SimulationTime {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.events) == 0 {
		return timeutil.SimTimeMax
	}
	return s.events[0].Time()
}

func (s *scheduler) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.events)
}
