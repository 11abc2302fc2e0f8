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

package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"

	"github.com/simnet/simnet/config"
	"github.com/simnet/simnet/dns"
	"github.com/simnet/simnet/models"
	"github.com/simnet/simnet/pkg/timeutil"
	"github.com/simnet/simnet/scheduler"
	"github.com/simnet/simnet/topology"
)

func newTestManager(cfg *config.SimNet) (Manager, scheduler.Scheduler) {
	sched := scheduler.NewScheduler()
	topo := topology.NewTopology(
		cfg.Network.DefaultLatencyMillis,
		cfg.Network.DefaultReliability,
		tally.NoopScope)
	return New(cfg, dns.NewDNS(), topo, sched, tally.NoopScope), sched
}

func TestManager_Accessors(t *testing.T) {
	cfg := config.NewDefaultSimNet()
	cfg.Simulation.BootstrapEndTime = config.Duration(5 * time.Second)
	m, sched := newTestManager(cfg)

	assert.NotNil(t, m.GetDNS())
	assert.NotNil(t, m.GetTopology())
	assert.Equal(t, cfg, m.GetConfig())
	assert.Equal(t, 5*timeutil.SimTimeSecond, m.BootstrapEndTime())

	assert.False(t, m.SchedulerIsRunning())
	sched.Start()
	assert.True(t, m.SchedulerIsRunning())
}

func TestManager_NodeBandwidth(t *testing.T) {
	cfg := config.NewDefaultSimNet()
	m, _ := newTestManager(cfg)

	// unknown hosts fall back to config defaults
	assert.Equal(t, cfg.Network.DefaultBandwidthUp, m.NodeBandwidthUp(models.HostID(1)))
	assert.Equal(t, cfg.Network.DefaultBandwidthDown, m.NodeBandwidthDown(models.HostID(1)))

	m.SetNodeBandwidth(models.HostID(1), 2048, 4096)
	assert.Equal(t, uint64(2048), m.NodeBandwidthUp(models.HostID(1)))
	assert.Equal(t, uint64(4096), m.NodeBandwidthDown(models.HostID(1)))
}

func TestManager_MinTimeJump(t *testing.T) {
	m, _ := newTestManager(config.NewDefaultSimNet())
	assert.Equal(t, timeutil.SimTimeMax, m.MinTimeJump())

	m.UpdateMinTimeJump(1000)
	assert.Equal(t, timeutil.SimulationTime(1000), m.MinTimeJump())

	// larger jumps do not raise the minimum
	m.UpdateMinTimeJump(5000)
	assert.Equal(t, timeutil.SimulationTime(1000), m.MinTimeJump())

	m.UpdateMinTimeJump(10)
	assert.Equal(t, timeutil.SimulationTime(10), m.MinTimeJump())

	// zero jumps are ignored, they would stall the round loop
	m.UpdateMinTimeJump(0)
	assert.Equal(t, timeutil.SimulationTime(10), m.MinTimeJump())
}

func TestManager_Counters(t *testing.T) {
	m, _ := newTestManager(config.NewDefaultSimNet())

	assert.Equal(t, uint64(0), m.PluginErrors())
	m.IncrementPluginError()
	m.IncrementPluginError()
	assert.Equal(t, uint64(2), m.PluginErrors())

	m.AddWorkerCounts(
		map[string]uint64{"packet": 3},
		map[string]uint64{"packet": 2},
		map[string]uint64{"sendto": 7},
	)
	m.AddWorkerCounts(
		map[string]uint64{"packet": 1, "event": 5},
		nil,
		map[string]uint64{"sendto": 1},
	)
	assert.Equal(t, map[string]uint64{"packet": 4, "event": 5}, m.ObjectAllocCounts())
	assert.Equal(t, map[string]uint64{"packet": 2}, m.ObjectDeallocCounts())
	assert.Equal(t, map[string]uint64{"sendto": 8}, m.SyscallCounts())
}

func TestManager_FallbackCounters(t *testing.T) {
	cfg := config.NewDefaultSimNet()
	m, _ := newTestManager(cfg)

	m.CountObjectAlloc("descriptor")
	m.CountObjectDealloc("descriptor")
	m.AddSyscallCount("read", 3)
	assert.Equal(t, map[string]uint64{"descriptor": 1}, m.ObjectAllocCounts())
	assert.Equal(t, map[string]uint64{"descriptor": 1}, m.ObjectDeallocCounts())
	assert.Equal(t, map[string]uint64{"read": 3}, m.SyscallCounts())
}

func TestManager_ObjectCountersDisabled(t *testing.T) {
	cfg := config.NewDefaultSimNet()
	cfg.Simulation.UseObjectCounters = false
	m, _ := newTestManager(cfg)

	m.CountObjectAlloc("descriptor")
	m.CountObjectDealloc("descriptor")
	assert.Empty(t, m.ObjectAllocCounts())
	assert.Empty(t, m.ObjectDeallocCounts())
}
