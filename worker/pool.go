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
	"fmt"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/uber-go/tally"

	"github.com/simnet/simnet/internal/concurrent"
	"github.com/simnet/simnet/manager"
	"github.com/simnet/simnet/pkg/affinity"
	"github.com/simnet/simnet/pkg/logger"
	"github.com/simnet/simnet/pkg/timeutil"
	"github.com/simnet/simnet/scheduler"
)

var poolLogger = logger.GetLogger("worker", "Pool")

// TaskFn is the unit of work dispatched to every worker each round.
// The function drains its own share of work from the scheduler; the
// pool does not dictate granularity. A nil TaskFn is the shutdown
// sentinel and is never passed to user code.
type TaskFn func(w *Worker, data interface{})

// Pool drives the synchronous rounds of the simulation. The
// coordinator installs a task, releases one worker per logical
// processor, and awaits the finish latch; finishing workers chain
// their successors onto the freed slot without waking the coordinator.
type Pool interface {
	// StartTask installs the task and releases one worker per
	// logical processor. Panics on double-dispatch.
	StartTask(fn TaskFn, data interface{})
	// AwaitTask blocks until every worker completed the current task,
	// then rotates the logical processor queues for the next round.
	AwaitTask()
	// GetGlobalNextEventTime returns the minimum time contributed via
	// SetMinEventTimeNextRound since the previous call and resets the
	// reduction to SimTimeMax. Coordinator only, between rounds.
	GetGlobalNextEventTime() timeutil.SimulationTime
	// JoinAll shuts the workers down cooperatively and joins their
	// threads. The pool cannot dispatch afterwards.
	JoinAll()
	// Close releases the pool's resources. Panics before JoinAll.
	Close() error
	// NWorkers returns the worker thread count.
	NWorkers() int
	// NLogicalProcessors returns the logical processor count.
	NLogicalProcessors() int
}

// workerPool implements Pool.
type workerPool struct {
	manager manager.Manager
	sched   scheduler.Scheduler

	nWorkers int
	nLPs     int

	beginSems    []*concurrent.Semaphore
	workerLPIdxs []int
	workerTIDs   []int
	finishLatch  *concurrent.CountDownLatch
	workerWG     sync.WaitGroup

	// written by the coordinator while all workers are suspended;
	// read by workers after acquiring their begin semaphore
	taskFn   TaskFn
	taskData interface{}

	lps           *logicalProcessors
	minEventTimes []paddedSimTime

	serialWorker *Worker
	taskActive   bool
	joined       bool

	statRounds tally.Counter
	statTasks  tally.Counter
	statEvents tally.Counter
}

// paddedSimTime keeps per-LP reduction slots on distinct cache lines,
// the slots are written concurrently by workers on different CPUs.
type paddedSimTime struct {
	value timeutil.SimulationTime
	_     [7]uint64
}

// NewPool creates the worker pool and spawns its worker threads. The
// pool owns min(nParallel, nWorkers) logical processors. nWorkers == 0
// selects serial mode: tasks run inline on the coordinator thread.
func NewPool(mgr manager.Manager, sched scheduler.Scheduler,
	nWorkers, nParallel int, scope tally.Scope,
) (Pool, error) {
	if nWorkers < 0 {
		return nil, errors.Errorf("invalid worker count %d", nWorkers)
	}
	if nParallel < 1 {
		return nil, errors.Errorf("invalid parallelism %d", nParallel)
	}
	nLPs := nParallel
	if nWorkers > 0 && nWorkers < nLPs {
		nLPs = nWorkers
	}
	if nWorkers == 0 {
		nLPs = 1
	}

	pinCPUs := mgr.GetConfig().Simulation.UseCPUPinning
	p := &workerPool{
		manager:       mgr,
		sched:         sched,
		nWorkers:      nWorkers,
		nLPs:          nLPs,
		beginSems:     make([]*concurrent.Semaphore, nWorkers),
		workerLPIdxs:  make([]int, nWorkers),
		workerTIDs:    make([]int, nWorkers),
		finishLatch:   concurrent.NewCountDownLatch(nWorkers),
		lps:           newLogicalProcessors(nLPs, pinCPUs, scope),
		minEventTimes: make([]paddedSimTime, nLPs),
		statRounds:    scope.Counter("rounds"),
		statTasks:     scope.Counter("tasks_dispatched"),
		statEvents:    scope.Counter("events_executed"),
	}
	for i := range p.minEventTimes {
		p.minEventTimes[i].value = timeutil.SimTimeMax
	}
	for w := 0; w < nWorkers; w++ {
		p.beginSems[w] = concurrent.NewSemaphore()
		p.workerLPIdxs[w] = -1
	}

	if nWorkers == 0 {
		p.serialWorker = newWorker(p, 0)
		return p, nil
	}

	// spawn workers; each registers its native thread id and parks on
	// its begin semaphore before the first dispatch
	p.workerWG.Add(nWorkers)
	for w := 0; w < nWorkers; w++ {
		go p.workerMain(w)
	}

	// all workers have registered their native thread ids
	p.finishLatch.Await()
	p.finishLatch.Reset()

	// initial logical processor assignment, round-robin
	for w := 0; w < nWorkers; w++ {
		lpi := w % nLPs
		p.lps.readyPush(lpi, w)
		p.setLogicalProcessorIdx(w, lpi)
	}

	poolLogger.Info("worker pool started",
		logger.Int("workers", nWorkers),
		logger.Int("logical_processors", nLPs))
	return p, nil
}

func (p *workerPool) NWorkers() int {
	return p.nWorkers
}

func (p *workerPool) NLogicalProcessors() int {
	return p.nLPs
}

// setLogicalProcessorIdx records worker w's slot assignment and repins
// its OS thread. Only called while w is suspended: by the coordinator
// between rounds, or by the finishing worker that hands its slot to w
// before posting w's begin semaphore.
func (p *workerPool) setLogicalProcessorIdx(w, lpi int) {
	oldLpi := p.workerLPIdxs[w]
	if oldLpi == lpi {
		return
	}
	p.workerLPIdxs[w] = lpi
	oldCPU := affinity.CPUUnset
	if oldLpi >= 0 {
		oldCPU = p.lps.cpuID(oldLpi)
	}
	affinity.SetThreadAffinity(p.workerTIDs[w], p.lps.cpuID(lpi), oldCPU)
}

// workerMain is the worker thread's main routine.
func (p *workerPool) workerMain(threadID int) {
	defer p.workerWG.Done()

	// the thread must stay locked so affinity updates stick to it
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	affinity.SetThreadName(fmt.Sprintf("simnet-wrk-%d", threadID))

	p.workerTIDs[threadID] = affinity.ThreadID()
	w := newWorker(p, threadID)

	// registration complete
	p.finishLatch.CountDown()

	for {
		p.beginSems[threadID].Wait()

		fn := p.taskFn
		if fn != nil {
			fn(w, p.taskData)
		}

		lpi := p.workerLPIdxs[threadID]
		p.lps.donePush(lpi, threadID)

		// launch the successor on the freed slot, or leave it idle
		if next := p.lps.popWorkerToRunOn(lpi); next != WorkerNone {
			p.setLogicalProcessorIdx(next, lpi)
			p.beginSems[next].Post()
		} else {
			p.lps.idleTimerContinue(lpi)
		}

		p.finishLatch.CountDown()

		if fn == nil {
			return
		}
	}
}

// StartTask implements Pool.
func (p *workerPool) StartTask(fn TaskFn, data interface{}) {
	if p.joined {
		poolLogger.Panic("dispatch on a joined pool")
	}
	if p.taskActive {
		poolLogger.Panic("task dispatched while another task is active")
	}
	p.taskActive = true
	p.statTasks.Inc(1)

	// serial mode degenerate case, run inline
	if p.nWorkers == 0 {
		if fn != nil {
			fn(p.serialWorker, data)
		}
		return
	}

	p.taskFn = fn
	p.taskData = data

	for i := 0; i < p.nLPs; i++ {
		w := p.lps.popWorkerToRunOn(i)
		if w == WorkerNone {
			break
		}
		p.setLogicalProcessorIdx(w, i)
		p.lps.idleTimerStop(i)
		p.beginSems[w].Post()
	}
}

// AwaitTask implements Pool.
func (p *workerPool) AwaitTask() {
	if !p.taskActive {
		return
	}
	if p.nWorkers > 0 {
		p.finishLatch.Await()
		p.finishLatch.Reset()
		p.taskFn = nil
		p.taskData = nil
		p.lps.finishTask()
	}
	p.taskActive = false
	p.statRounds.Inc(1)
}

// GetGlobalNextEventTime implements Pool.
func (p *workerPool) GetGlobalNextEventTime() timeutil.SimulationTime {
	min := timeutil.SimTimeMax
	for i := range p.minEventTimes {
		if p.minEventTimes[i].value < min {
			min = p.minEventTimes[i].value
		}
		p.minEventTimes[i].value = timeutil.SimTimeMax
	}
	return min
}

// JoinAll implements Pool.
func (p *workerPool) JoinAll() {
	if p.joined {
		return
	}
	// release every worker with the shutdown sentinel
	p.StartTask(nil, nil)
	p.AwaitTask()
	p.workerWG.Wait()
	p.joined = true
	poolLogger.Info("worker pool joined",
		logger.Int("workers", p.nWorkers))
}

// Close implements Pool.
func (p *workerPool) Close() error {
	if !p.joined {
		poolLogger.Panic("close on a pool that was not joined")
	}
	p.beginSems = nil
	p.lps = nil
	p.minEventTimes = nil
	return nil
}
