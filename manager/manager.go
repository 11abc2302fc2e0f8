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
	"sync"

	"github.com/uber-go/tally"
	"go.uber.org/atomic"

	"github.com/simnet/simnet/config"
	"github.com/simnet/simnet/dns"
	"github.com/simnet/simnet/models"
	"github.com/simnet/simnet/pkg/timeutil"
	"github.com/simnet/simnet/scheduler"
	"github.com/simnet/simnet/topology"
)

//go:generate mockgen -source ./manager.go -destination=./manager_mock.go -package manager

// Manager aggregates cross-worker state: configuration and topology
// access, host bandwidth, counter aggregation, and the process-wide
// fallback counters used when no worker context is active.
type Manager interface {
	// GetDNS returns the simulation's DNS service
	GetDNS() dns.DNS
	// GetTopology returns the simulated network topology
	GetTopology() topology.Topology
	// GetConfig returns the simulator configuration
	GetConfig() *config.SimNet
	// BootstrapEndTime returns the end of the bootstrap phase
	BootstrapEndTime() timeutil.SimulationTime
	// SchedulerIsRunning returns true while events may be pushed
	SchedulerIsRunning() bool
	// SetNodeBandwidth records a host's up/down bandwidth in KiB/s
	SetNodeBandwidth(hostID models.HostID, up, down uint64)
	// NodeBandwidthUp returns a host's upstream bandwidth in KiB/s
	NodeBandwidthUp(hostID models.HostID) uint64
	// NodeBandwidthDown returns a host's downstream bandwidth in KiB/s
	NodeBandwidthDown(hostID models.HostID) uint64
	// Latency returns the topology latency between two addresses
	Latency(src, dst *models.Address) float64
	// UpdateMinTimeJump lowers the smallest observed time jump
	UpdateMinTimeJump(jump timeutil.SimulationTime)
	// MinTimeJump returns the smallest observed time jump
	MinTimeJump() timeutil.SimulationTime
	// IncrementPluginError counts one plugin failure
	IncrementPluginError()
	// PluginErrors returns the plugin failure count
	PluginErrors() uint64
	// AddWorkerCounts merges a worker's alloc/dealloc/syscall counters
	AddWorkerCounts(alloc, dealloc, syscalls map[string]uint64)
	// CountObjectAlloc is the fallback alloc counter for callers
	// outside a worker thread
	CountObjectAlloc(name string)
	// CountObjectDealloc is the fallback dealloc counter for callers
	// outside a worker thread
	CountObjectDealloc(name string)
	// AddSyscallCount is the fallback syscall counter for callers
	// outside a worker thread
	AddSyscallCount(name string, count uint64)
	// ObjectAllocCounts returns a copy of the aggregated alloc counters
	ObjectAllocCounts() map[string]uint64
	// ObjectDeallocCounts returns a copy of the aggregated dealloc counters
	ObjectDeallocCounts() map[string]uint64
	// SyscallCounts returns a copy of the aggregated syscall counters
	SyscallCounts() map[string]uint64
}

// manager implements Manager.
type manager struct {
	cfg   *config.SimNet
	dns   dns.DNS
	topo  topology.Topology
	sched scheduler.Scheduler

	bootstrapEndTime timeutil.SimulationTime

	bandwidthMutex sync.RWMutex
	bandwidthUp    map[models.HostID]uint64
	bandwidthDown  map[models.HostID]uint64

	minTimeJump  atomic.Uint64
	pluginErrors atomic.Uint64

	counterMutex  sync.Mutex
	allocCounts   map[string]uint64
	deallocCounts map[string]uint64
	syscallCounts map[string]uint64

	pluginErrorCounter tally.Counter
}

// New creates a manager over the given collaborators.
func New(cfg *config.SimNet, dnsService dns.DNS, topo topology.Topology,
	sched scheduler.Scheduler, scope tally.Scope,
) Manager {
	m := &manager{
		cfg:                cfg,
		dns:                dnsService,
		topo:               topo,
		sched:              sched,
		bootstrapEndTime:   timeutil.SimulationTime(cfg.Simulation.BootstrapEndTime.Duration().Nanoseconds()),
		bandwidthUp:        make(map[models.HostID]uint64),
		bandwidthDown:      make(map[models.HostID]uint64),
		allocCounts:        make(map[string]uint64),
		deallocCounts:      make(map[string]uint64),
		syscallCounts:      make(map[string]uint64),
		pluginErrorCounter: scope.Counter("plugin_errors"),
	}
	m.minTimeJump.Store(uint64(timeutil.SimTimeMax))
	return m
}

func (m *manager) GetDNS() dns.DNS {
	return m.dns
}

func (m *manager) GetTopology() topology.Topology {
	return m.topo
}

func (m *manager) GetConfig() *config.SimNet {
	return m.cfg
}

func (m *manager) BootstrapEndTime() timeutil.SimulationTime {
	return m.bootstrapEndTime
}

func (m *manager) SchedulerIsRunning() bool {
	return m.sched.IsRunning()
}

func (m *manager) SetNodeBandwidth(hostID models.HostID, up, down uint64) {
	m.bandwidthMutex.Lock()
	defer m.bandwidthMutex.Unlock()
	m.bandwidthUp[hostID] = up
	m.bandwidthDown[hostID] = down
}

func (m *manager) NodeBandwidthUp(hostID models.HostID) uint64 {
	m.bandwidthMutex.RLock()
	defer m.bandwidthMutex.RUnlock()
	if up, ok := m.bandwidthUp[hostID]; ok {
		return up
	}
	return m.cfg.Network.DefaultBandwidthUp
}

func (m *manager) NodeBandwidthDown(hostID models.HostID) uint64 {
	m.bandwidthMutex.RLock()
	defer m.bandwidthMutex.RUnlock()
	if down, ok := m.bandwidthDown[hostID]; ok {
		return down
	}
	return m.cfg.Network.DefaultBandwidthDown
}

func (m *manager) Latency(src, dst *models.Address) float64 {
	return m.topo.GetLatency(src, dst)
}

// UpdateMinTimeJump lowers the smallest observed time jump, the delay
// between an event and the event it schedules, lock-free via
// compare-and-swap.
func (m *manager) UpdateMinTimeJump(jump timeutil.SimulationTime) {
	if jump == 0 {
		return
	}
	for {
		current := m.minTimeJump.Load()
		if uint64(jump) >= current {
			return
		}
		if m.minTimeJump.CAS(current, uint64(jump)) {
			return
		}
	}
}

func (m *manager) MinTimeJump() timeutil.SimulationTime {
	return timeutil.SimulationTime(m.minTimeJump.Load())
}

func (m *manager) IncrementPluginError() {
	m.pluginErrors.Inc()
	m.pluginErrorCounter.Inc(1)
}

func (m *manager) PluginErrors() uint64 {
	return m.pluginErrors.Load()
}

// AddWorkerCounts merges a finishing worker's counters into the
// process-wide aggregates.
func (m *manager) AddWorkerCounts(alloc, dealloc, syscalls map[string]uint64) {
	m.counterMutex.Lock()
	defer m.counterMutex.Unlock()
	for name, count := range alloc {
		m.allocCounts[name] += count
	}
	for name, count := range dealloc {
		m.deallocCounts[name] += count
	}
	for name, count := range syscalls {
		m.syscallCounts[name] += count
	}
}

func (m *manager) CountObjectAlloc(name string) {
	if !m.cfg.Simulation.UseObjectCounters {
		return
	}
	m.counterMutex.Lock()
	defer m.counterMutex.Unlock()
	m.allocCounts[name]++
}

func (m *manager) CountObjectDealloc(name string) {
	if !m.cfg.Simulation.UseObjectCounters {
		return
	}
	m.counterMutex.Lock()
	defer m.counterMutex.Unlock()
	m.deallocCounts[name]++
}

func (m *manager) AddSyscallCount(name string, count uint64) {
	m.counterMutex.Lock()
	defer m.counterMutex.Unlock()
	m.syscallCounts[name] += count
}

func (m *manager) ObjectAllocCounts() map[string]uint64 {
	m.counterMutex.Lock()
	defer m.counterMutex.Unlock()
	return copyCounts(m.allocCounts)
}

func (m *manager) ObjectDeallocCounts() map[string]uint64 {
	m.counterMutex.Lock()
	defer m.counterMutex.Unlock()
	return copyCounts(m.deallocCounts)
}

func (m *manager) SyscallCounts() map[string]uint64 {
	m.counterMutex.Lock()
	defer m.counterMutex.Unlock()
	return copyCounts(m.syscallCounts)
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for name, count := range src {
		dst[name] = count
	}
	return dst
}
