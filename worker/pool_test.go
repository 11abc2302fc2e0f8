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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"

	"github.com/simnet/simnet/config"
	"github.com/simnet/simnet/dns"
	"github.com/simnet/simnet/manager"
	"github.com/simnet/simnet/pkg/timeutil"
	"github.com/simnet/simnet/scheduler"
	"github.com/simnet/simnet/topology"
)

// testEnv wires the real collaborators a pool needs.
type testEnv struct {
	cfg   *config.SimNet
	dns   dns.DNS
	topo  topology.Topology
	sched scheduler.Scheduler
	mgr   manager.Manager
}

func newTestEnv() *testEnv {
	cfg := config.NewDefaultSimNet()
	// CI machines share CPUs, do not repin test threads
	cfg.Simulation.UseCPUPinning = false
	return newTestEnvWithConfig(cfg)
}

func newTestEnvWithConfig(cfg *config.SimNet) *testEnv {
	dnsService := dns.NewDNS()
	topo := topology.NewTopology(
		cfg.Network.DefaultLatencyMillis,
		cfg.Network.DefaultReliability,
		tally.NoopScope)
	sched := scheduler.NewScheduler()
	return &testEnv{
		cfg:   cfg,
		dns:   dnsService,
		topo:  topo,
		sched: sched,
		mgr:   manager.New(cfg, dnsService, topo, sched, tally.NoopScope),
	}
}

func (e *testEnv) newPool(t *testing.T, nWorkers, nParallel int) Pool {
	pool, err := NewPool(e.mgr, e.sched, nWorkers, nParallel, tally.NoopScope)
	assert.Nil(t, err)
	return pool
}

func shutdown(pool Pool) {
	pool.JoinAll()
	_ = pool.Close()
}

func TestNewPool_Validation(t *testing.T) {
	env := newTestEnv()
	_, err := NewPool(env.mgr, env.sched, -1, 1, tally.NoopScope)
	assert.Error(t, err)
	_, err = NewPool(env.mgr, env.sched, 1, 0, tally.NoopScope)
	assert.Error(t, err)
	_, err = NewPool(env.mgr, env.sched, 1, -2, tally.NoopScope)
	assert.Error(t, err)
}

func TestNewPool_LogicalProcessorClamp(t *testing.T) {
	env := newTestEnv()

	// parallelism above the worker count is clamped
	pool := env.newPool(t, 2, 8)
	assert.Equal(t, 2, pool.NWorkers())
	assert.Equal(t, 2, pool.NLogicalProcessors())
	shutdown(pool)

	env = newTestEnv()
	pool = env.newPool(t, 8, 2)
	assert.Equal(t, 8, pool.NWorkers())
	assert.Equal(t, 2, pool.NLogicalProcessors())
	shutdown(pool)
}

func TestPool_DispatchRunsEveryWorker(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 4, 2)
	defer shutdown(pool)

	// every worker appends its thread id to a shared append-only log
	log := make([]int, 4)
	var idx atomic.Int32
	pool.StartTask(func(w *Worker, data interface{}) {
		log[idx.Inc()-1] = w.ThreadID()
	}, nil)
	pool.AwaitTask()

	assert.Equal(t, int32(4), idx.Load())
	seen := make(map[int]bool)
	for _, id := range log {
		assert.True(t, id >= 0 && id < 4)
		assert.False(t, seen[id], "worker %d ran the task twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, 4)
}

func TestPool_AllLogicalProcessorsDispatchConcurrently(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 3, 3)
	defer shutdown(pool)

	// the task blocks on a barrier of arity 3, it only returns when
	// all three logical processors run a worker at the same time
	var barrier sync.WaitGroup
	barrier.Add(3)
	pool.StartTask(func(w *Worker, data interface{}) {
		barrier.Done()
		barrier.Wait()
	}, nil)
	pool.AwaitTask()
}

func TestPool_RepeatedRoundsAreIdempotent(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 4, 2)
	defer shutdown(pool)

	p := pool.(*workerPool)
	for round := 0; round < 10; round++ {
		var ran atomic.Int32
		pool.StartTask(func(w *Worker, data interface{}) {
			ran.Inc()
		}, nil)
		pool.AwaitTask()
		assert.Equal(t, int32(4), ran.Load())

		// between rounds every worker is queued ready on some slot
		queued := 0
		for i := 0; i < p.nLPs; i++ {
			queued += len(p.lps.readyWorkers(i))
		}
		assert.Equal(t, 4, queued)
	}
}

func TestPool_SingleWorkerSingleLP(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 1, 1)
	defer shutdown(pool)

	var ran atomic.Int32
	for round := 0; round < 3; round++ {
		pool.StartTask(func(w *Worker, data interface{}) {
			assert.Equal(t, 0, w.ThreadID())
			ran.Inc()
		}, nil)
		pool.AwaitTask()
	}
	assert.Equal(t, int32(3), ran.Load())
}

func TestPool_SerialMode(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 0, 1)

	ran := 0
	pool.StartTask(func(w *Worker, data interface{}) {
		assert.Equal(t, 0, w.ThreadID())
		assert.Equal(t, "payload", data)
		ran++
	}, "payload")
	pool.AwaitTask()
	assert.Equal(t, 1, ran)

	shutdown(pool)
}

func TestPool_TaskDataReachesWorkers(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 2, 2)
	defer shutdown(pool)

	data := [][]int{{1}, {2}}
	var sum atomic.Int64
	pool.StartTask(func(w *Worker, d interface{}) {
		sum.Add(int64(d.([][]int)[w.ThreadID()][0]))
	}, data)
	pool.AwaitTask()
	assert.Equal(t, int64(3), sum.Load())
}

func TestPool_JoinWithoutTask(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 4, 2)
	pool.JoinAll()
	// join is idempotent
	pool.JoinAll()
	assert.Nil(t, pool.Close())
}

func TestPool_DoubleDispatchPanics(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 2, 2)

	pool.StartTask(func(w *Worker, data interface{}) {}, nil)
	assert.Panics(t, func() {
		pool.StartTask(func(w *Worker, data interface{}) {}, nil)
	})
	pool.AwaitTask()
	shutdown(pool)
}

func TestPool_CloseBeforeJoinPanics(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 1, 1)
	assert.Panics(t, func() {
		_ = pool.Close()
	})
	shutdown(pool)
}

func TestPool_DispatchAfterJoinPanics(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 1, 1)
	shutdown(pool)
	assert.Panics(t, func() {
		pool.StartTask(func(w *Worker, data interface{}) {}, nil)
	})
}

func TestPool_MinEventTimeReduction(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 2, 2)
	defer shutdown(pool)

	pool.StartTask(func(w *Worker, data interface{}) {
		w.SetRoundEndTime(100)
		if w.ThreadID() == 0 {
			w.SetMinEventTimeNextRound(1000)
		} else {
			w.SetMinEventTimeNextRound(500)
		}
	}, nil)
	pool.AwaitTask()

	assert.Equal(t, timeutil.SimulationTime(500), pool.GetGlobalNextEventTime())
	// the reduction resets after every read
	assert.Equal(t, timeutil.SimTimeMax, pool.GetGlobalNextEventTime())
}

func TestWorker_SetMinEventTimeBarrier(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 0, 1)

	pool.StartTask(func(w *Worker, data interface{}) {
		w.SetRoundEndTime(100)
		// below the barrier, executes this round
		w.SetMinEventTimeNextRound(50)
		// at the barrier, also ignored
		w.SetMinEventTimeNextRound(100)
	}, nil)
	pool.AwaitTask()
	assert.Equal(t, timeutil.SimTimeMax, pool.GetGlobalNextEventTime())

	pool.StartTask(func(w *Worker, data interface{}) {
		w.SetRoundEndTime(100)
		w.SetMinEventTimeNextRound(101)
	}, nil)
	pool.AwaitTask()
	assert.Equal(t, timeutil.SimulationTime(101), pool.GetGlobalNextEventTime())

	shutdown(pool)
}

func TestPool_MinEventTimeKeepsSmallestPerRound(t *testing.T) {
	env := newTestEnv()
	pool := env.newPool(t, 0, 1)

	pool.StartTask(func(w *Worker, data interface{}) {
		w.SetRoundEndTime(10)
		w.SetMinEventTimeNextRound(900)
		w.SetMinEventTimeNextRound(300)
		w.SetMinEventTimeNextRound(600)
	}, nil)
	pool.AwaitTask()
	assert.Equal(t, timeutil.SimulationTime(300), pool.GetGlobalNextEventTime())

	shutdown(pool)
}
