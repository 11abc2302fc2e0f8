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
	"go.uber.org/zap/zapcore"

	"github.com/simnet/simnet/config"
	"github.com/simnet/simnet/models"
	"github.com/simnet/simnet/pkg/logger"
	"github.com/simnet/simnet/pkg/timeutil"
	"github.com/simnet/simnet/topology"
)

var workerLogger = logger.GetLogger("worker", "Worker")

// Worker is the execution context of one worker thread. It is created
// on entry into the thread's main routine, owned by that thread, and
// threaded explicitly into tasks and event handlers. The coordinator
// never touches Worker fields.
type Worker struct {
	pool     *workerPool
	threadID int

	currentTime   timeutil.SimulationTime
	lastEventTime timeutil.SimulationTime
	roundEndTime  timeutil.SimulationTime
	activeHost    models.Host

	bootstrapEndTime timeutil.SimulationTime
	bootstrapActive  bool

	allocCounts   map[string]uint64
	deallocCounts map[string]uint64
	syscallCounts map[string]uint64
}

// newWorker creates the thread-local worker context.
func newWorker(p *workerPool, threadID int) *Worker {
	return &Worker{
		pool:             p,
		threadID:         threadID,
		currentTime:      timeutil.SimTimeInvalid,
		bootstrapEndTime: p.manager.BootstrapEndTime(),
		bootstrapActive:  true,
	}
}

// ThreadID returns the worker's id within the pool, 0..nWorkers-1.
func (w *Worker) ThreadID() int {
	return w.threadID
}

// CurrentTime returns the simulated time of the executing event,
// SimTimeInvalid between events.
func (w *Worker) CurrentTime() timeutil.SimulationTime {
	return w.currentTime
}

// LastEventTime returns the time of the last executed event, it is
// monotonically non-decreasing.
func (w *Worker) LastEventTime() timeutil.SimulationTime {
	return w.lastEventTime
}

// RoundEndTime returns the upper exclusive bound for events
// executable this round.
func (w *Worker) RoundEndTime() timeutil.SimulationTime {
	return w.roundEndTime
}

// SetRoundEndTime installs the round barrier, called by the round task
// before draining events.
func (w *Worker) SetRoundEndTime(t timeutil.SimulationTime) {
	w.roundEndTime = t
}

// ActiveHost returns the host whose event is executing, nil between
// events.
func (w *Worker) ActiveHost() models.Host {
	return w.activeHost
}

// IsBootstrapActive returns true while the simulation is within its
// bootstrap phase; reliability drops are suppressed then.
func (w *Worker) IsBootstrapActive() bool {
	return w.bootstrapActive
}

// RunEvent executes the event against its destination host and drops
// the event reference.
func (w *Worker) RunEvent(event *models.Event) {
	w.currentTime = event.Time()
	w.bootstrapActive = w.currentTime < w.bootstrapEndTime

	host := w.pool.sched.GetHost(event.DstHostID())
	w.activeHost = host
	event.Execute(w, host)
	event.Unref()
	w.activeHost = nil

	w.lastEventTime = w.currentTime
	w.currentTime = timeutil.SimTimeInvalid
	w.pool.statEvents.Inc(1)
}

// ScheduleTask schedules the task against the host after nanoDelay of
// simulated time. Returns false when the scheduler is not running or
// rejects the event.
func (w *Worker) ScheduleTask(task *models.Task, host models.Host, nanoDelay timeutil.SimulationTime) bool {
	if !w.pool.manager.SchedulerIsRunning() {
		return false
	}
	event := models.NewEvent(w.currentTime+nanoDelay, task, host.ID(), host.ID())
	if !w.pool.sched.Push(event, host.ID(), host.ID()) {
		event.Unref()
		return false
	}
	w.pool.manager.UpdateMinTimeJump(nanoDelay)
	return true
}

// SendPacket routes the packet from the source host through the
// topology. Delivery is scheduled at the path latency unless the
// reliability draw drops the packet; control packets and packets sent
// during the bootstrap phase are never dropped. Unresolvable addresses
// are fatal.
func (w *Worker) SendPacket(srcHost models.Host, packet *models.Packet) {
	if !w.pool.manager.SchedulerIsRunning() {
		return
	}
	dnsService := w.pool.manager.GetDNS()
	srcAddress := dnsService.ResolveIPToAddress(packet.SrcIP())
	if srcAddress == nil {
		workerLogger.Panic("unable to resolve source address",
			logger.String("ip", packet.SrcIP()))
	}
	dstAddress := dnsService.ResolveIPToAddress(packet.DstIP())
	if dstAddress == nil {
		workerLogger.Panic("unable to resolve destination address",
			logger.String("ip", packet.DstIP()))
	}

	topo := w.pool.manager.GetTopology()
	reliability := topo.GetReliability(srcAddress, dstAddress)
	draw := srcHost.Random().Float64()

	// control packets bypass the drop check, bootstrap suppresses it
	if w.bootstrapActive || packet.IsControl() || draw <= reliability {
		latency := topo.GetLatency(srcAddress, dstAddress)
		delay := timeutil.LatencyToSimTime(latency)
		deliverTime := w.currentTime + delay

		packet.Ref()
		task := models.NewTask(func(ctx models.WorkerContext, host models.Host) {
			host.DeliverPacket(packet)
		}, packet.Unref)
		event := models.NewEvent(deliverTime, task, srcAddress.HostID, dstAddress.HostID)
		if !w.pool.sched.Push(event, srcAddress.HostID, dstAddress.HostID) {
			event.Unref()
			return
		}
		packet.SetStatus(models.PacketInetSent)
		topo.IncrementPathPacketCounter(srcAddress, dstAddress)
		w.pool.manager.UpdateMinTimeJump(delay)
	} else {
		packet.SetStatus(models.PacketInetDropped)
	}
}

// BootHosts boots every host, bracketing each boot with the host's
// execution timer.
func (w *Worker) BootHosts(hosts []models.Host) {
	for _, host := range hosts {
		w.activeHost = host
		host.ContinueExecutionTimer()
		host.Boot()
		host.StopExecutionTimer()
		w.activeHost = nil
	}
}

// Finish frees all applications on each host, shuts the hosts down,
// then hands the worker's counters off to the manager.
func (w *Worker) Finish(hosts []models.Host) {
	for _, host := range hosts {
		w.activeHost = host
		host.FreeAllApplications()
		host.Shutdown()
		w.activeHost = nil
	}
	w.pool.manager.AddWorkerCounts(w.allocCounts, w.deallocCounts, w.syscallCounts)
	w.allocCounts = nil
	w.deallocCounts = nil
	w.syscallCounts = nil
}

// SetMinEventTimeNextRound contributes t to the next-round reduction.
// Times below the round barrier are ignored, those events still
// execute this round. A time equal to the barrier is ignored as well,
// although the barrier is exclusive and such an event does not run
// this round. Lock-free: at most one worker runs on a logical
// processor at a time, so the slot has a single writer.
func (w *Worker) SetMinEventTimeNextRound(t timeutil.SimulationTime) {
	if t <= w.roundEndTime {
		return
	}
	lpi := w.logicalProcessorIdx()
	slot := &w.pool.minEventTimes[lpi]
	if t < slot.value {
		slot.value = t
	}
}

// logicalProcessorIdx returns the worker's current slot, 0 in serial
// mode.
func (w *Worker) logicalProcessorIdx() int {
	if w.pool.nWorkers == 0 {
		return 0
	}
	return w.pool.workerLPIdxs[w.threadID]
}

// ResolveIPToAddress resolves an IP through the simulation's DNS.
func (w *Worker) ResolveIPToAddress(ip string) *models.Address {
	return w.pool.manager.GetDNS().ResolveIPToAddress(ip)
}

// ResolveNameToAddress resolves a host name through the simulation's DNS.
func (w *Worker) ResolveNameToAddress(name string) *models.Address {
	return w.pool.manager.GetDNS().ResolveNameToAddress(name)
}

// GetTopology returns the simulated network topology.
func (w *Worker) GetTopology() topology.Topology {
	return w.pool.manager.GetTopology()
}

// GetConfig returns the simulator configuration.
func (w *Worker) GetConfig() *config.SimNet {
	return w.pool.manager.GetConfig()
}

// GetAffinity returns the CPU the worker's logical processor is
// pinned to, affinity.CPUUnset when pinning is unsupported.
func (w *Worker) GetAffinity() int {
	return w.pool.lps.cpuID(w.logicalProcessorIdx())
}

// GetEmulatedTime returns the executing event's time on the emulated
// wall clock.
func (w *Worker) GetEmulatedTime() timeutil.EmulatedTime {
	return timeutil.ToEmulatedTime(w.currentTime)
}

// GetNodeBandwidthUp returns the host's upstream bandwidth in KiB/s.
func (w *Worker) GetNodeBandwidthUp(hostID models.HostID) uint64 {
	return w.pool.manager.NodeBandwidthUp(hostID)
}

// GetNodeBandwidthDown returns the host's downstream bandwidth in KiB/s.
func (w *Worker) GetNodeBandwidthDown(hostID models.HostID) uint64 {
	return w.pool.manager.NodeBandwidthDown(hostID)
}

// GetLatency returns the topology latency in milliseconds between two
// addresses.
func (w *Worker) GetLatency(src, dst *models.Address) float64 {
	return w.pool.manager.Latency(src, dst)
}

// UpdateMinTimeJump forwards the observed time jump to the manager.
func (w *Worker) UpdateMinTimeJump(jump timeutil.SimulationTime) {
	w.pool.manager.UpdateMinTimeJump(jump)
}

// IsFiltered returns true when log records at the level would be
// suppressed by the running log level.
func (w *Worker) IsFiltered(level zapcore.Level) bool {
	return !logger.RunningAtomicLevel.Enabled(level)
}

// IncrementPluginError counts one plugin failure with the manager.
func (w *Worker) IncrementPluginError() {
	w.pool.manager.IncrementPluginError()
}

// CountObjectAlloc counts one allocation of the named object type.
// Counting is disabled when use-object-counters is off, the map is
// never created then.
func (w *Worker) CountObjectAlloc(name string) {
	if !w.pool.manager.GetConfig().Simulation.UseObjectCounters {
		return
	}
	if w.allocCounts == nil {
		w.allocCounts = make(map[string]uint64)
	}
	w.allocCounts[name]++
}

// CountObjectDealloc counts one deallocation of the named object type.
func (w *Worker) CountObjectDealloc(name string) {
	if !w.pool.manager.GetConfig().Simulation.UseObjectCounters {
		return
	}
	if w.deallocCounts == nil {
		w.deallocCounts = make(map[string]uint64)
	}
	w.deallocCounts[name]++
}

// AddSyscallCount counts invocations of the named syscall.
func (w *Worker) AddSyscallCount(name string, count uint64) {
	if w.syscallCounts == nil {
		w.syscallCounts = make(map[string]uint64)
	}
	w.syscallCounts[name] += count
}
