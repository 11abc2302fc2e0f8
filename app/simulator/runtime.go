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

package simulator

import (
	"fmt"

	"github.com/uber-go/tally"

	"github.com/simnet/simnet/config"
	"github.com/simnet/simnet/dns"
	"github.com/simnet/simnet/host"
	"github.com/simnet/simnet/manager"
	"github.com/simnet/simnet/models"
	"github.com/simnet/simnet/pkg/logger"
	"github.com/simnet/simnet/pkg/timeutil"
	"github.com/simnet/simnet/scheduler"
	"github.com/simnet/simnet/topology"
	"github.com/simnet/simnet/worker"
)

// State represents the runtime's lifecycle state
type State int

const (
	// New marks a runtime that has not run yet
	New State = iota
	// Running marks a runtime driving simulation rounds
	Running
	// Terminated marks a finished runtime
	Terminated
	// Failed marks a runtime that could not start
	Failed
)

// runtime represents the simulator runtime dependency
type runtime struct {
	version string
	state   State
	cfg     *config.SimNet

	dnsService dns.DNS
	topo       topology.Topology
	sched      scheduler.Scheduler
	mgr        manager.Manager
	pool       worker.Pool
	hosts      []models.Host
	pingers    []*pinger

	scope tally.Scope

	log *logger.Logger
}

// Runtime drives a complete simulation from a configuration.
type Runtime interface {
	// Name returns the runtime service's name
	Name() string
	// Run runs the simulation to completion
	Run() error
	// State returns the current runtime state
	State() State
}

// NewRuntime creates the simulator runtime
func NewRuntime(version string, cfg *config.SimNet, scope tally.Scope) Runtime {
	return &runtime{
		version: version,
		state:   New,
		cfg:     cfg,
		scope:   scope,
		log:     logger.GetLogger("simulator", "Runtime"),
	}
}

// Name returns the runtime service's name
func (r *runtime) Name() string {
	return "simulator"
}

// State returns the current runtime state
func (r *runtime) State() State {
	return r.state
}

// Run builds the simulation from config and drives rounds until the
// event queue drains or the stop time is reached.
func (r *runtime) Run() error {
	r.log.Info("starting simulator",
		logger.String("version", r.version),
		logger.Int("workers", r.cfg.Simulation.Workers),
		logger.Int("parallelism", r.cfg.Simulation.Parallelism))

	if err := r.buildSimulation(); err != nil {
		r.state = Failed
		return err
	}
	r.state = Running

	stopTime := timeutil.SimulationTime(r.cfg.Simulation.StopTime.Duration().Nanoseconds())
	r.sched.Start()

	// boot all hosts from worker context, partitioned across workers
	parts := r.partitionHosts()
	r.pool.StartTask(func(w *worker.Worker, data interface{}) {
		w.BootHosts(data.([][]models.Host)[w.ThreadID()])
	}, parts)
	r.pool.AwaitTask()

	// kick the traffic generators off
	for _, p := range r.pingers {
		event := p.startEvent(timeutil.SimTimeMillisecond)
		if !r.sched.Push(event, p.self.ID(), p.self.ID()) {
			event.Unref()
		}
	}

	rounds := 0
	next := r.sched.NextEventTime()
	for next < stopTime {
		// conservative barrier: nothing scheduled from an event at
		// time t can land before t + the smallest observed time jump
		roundEnd := next + r.minTimeJump()
		if roundEnd > stopTime {
			roundEnd = stopTime
		}
		r.pool.StartTask(worker.EventRoundTask(roundEnd), nil)
		r.pool.AwaitTask()
		rounds++

		next = r.pool.GetGlobalNextEventTime()
		// a worker can push below the barrier after its neighbor's
		// drain loop already gave up, the queue head is authoritative
		if queued := r.sched.NextEventTime(); queued < next {
			next = queued
		}
	}

	r.sched.Finish()
	r.pool.StartTask(func(w *worker.Worker, data interface{}) {
		w.Finish(data.([][]models.Host)[w.ThreadID()])
	}, parts)
	r.pool.AwaitTask()

	r.pool.JoinAll()
	if err := r.pool.Close(); err != nil {
		return err
	}

	r.log.Info("simulation finished",
		logger.Int("rounds", rounds),
		logger.Int("hosts", len(r.hosts)),
		logger.Uint64("plugin_errors", r.mgr.PluginErrors()),
		logger.Any("allocations", r.mgr.ObjectAllocCounts()))
	r.state = Terminated
	return nil
}

// buildSimulation wires dns, topology, scheduler, manager, hosts and
// the worker pool together.
func (r *runtime) buildSimulation() error {
	r.dnsService = dns.NewDNS()
	r.topo = topology.NewTopology(
		r.cfg.Network.DefaultLatencyMillis,
		r.cfg.Network.DefaultReliability,
		r.scope.SubScope("topology"),
	)
	r.sched = scheduler.NewScheduler()
	r.mgr = manager.New(r.cfg, r.dnsService, r.topo, r.sched, r.scope.SubScope("manager"))

	for i := 0; i < r.cfg.Simulation.Hosts; i++ {
		hostID := models.HostID(i + 1)
		name := fmt.Sprintf("host-%d", i)
		ip := fmt.Sprintf("10.0.0.%d", i+1)
		address, err := r.dnsService.Register(hostID, name, ip)
		if err != nil {
			return err
		}
		h := host.New(host.Config{
			ID:      hostID,
			Address: address,
			Seed:    int64(hostID),
		})
		r.sched.AddHost(h)
		r.mgr.SetNodeBandwidth(hostID,
			r.cfg.Network.DefaultBandwidthUp,
			r.cfg.Network.DefaultBandwidthDown)
		r.hosts = append(r.hosts, h)
	}

	// each host pings its ring neighbor until the stop time
	stopTime := timeutil.SimulationTime(r.cfg.Simulation.StopTime.Duration().Nanoseconds())
	for i, h := range r.hosts {
		neighbor := r.hosts[(i+1)%len(r.hosts)]
		p := newPinger(h, neighbor.Address(), 100*timeutil.SimTimeMillisecond, stopTime)
		h.AddApplication(p)
		r.pingers = append(r.pingers, p)
	}

	pool, err := worker.NewPool(r.mgr, r.sched,
		r.cfg.Simulation.Workers, r.cfg.Simulation.Parallelism,
		r.scope.SubScope("pool"))
	if err != nil {
		return err
	}
	r.pool = pool
	return nil
}

// partitionHosts splits hosts across workers round-robin; serial mode
// gets a single partition.
func (r *runtime) partitionHosts() [][]models.Host {
	n := r.cfg.Simulation.Workers
	if n == 0 {
		n = 1
	}
	parts := make([][]models.Host, n)
	for i, h := range r.hosts {
		parts[i%n] = append(parts[i%n], h)
	}
	return parts
}

// minTimeJump returns the smallest safe round window.
func (r *runtime) minTimeJump() timeutil.SimulationTime {
	jump := r.mgr.MinTimeJump()
	if jump == timeutil.SimTimeMax {
		// before any latency was observed, use the default link latency
		jump = timeutil.LatencyToSimTime(r.cfg.Network.DefaultLatencyMillis)
	}
	if jump == 0 {
		jump = timeutil.SimTimeMillisecond
	}
	return jump
}
