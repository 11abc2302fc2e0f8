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

package host

import (
	"math/rand"
	"sync"
	"time"

	"github.com/simnet/simnet/models"
	"github.com/simnet/simnet/pkg/logger"
)

var hostLogger = logger.GetLogger("host", "Host")

// simHost implements models.Host. A host belongs to exactly one
// logical processor per round, so only the packet queue and execution
// timer need locking; the rest is touched by a single worker at a time.
type simHost struct {
	id       models.HostID
	address  *models.Address
	upstream *models.Address
	random   *rand.Rand

	applications []models.Application
	booted       bool

	timerMutex   sync.Mutex
	timerRunning bool
	timerStart   time.Time
	cpuTime      time.Duration

	packetMutex sync.Mutex
	received    []*models.Packet
}

// Config represents the construction parameters of a simulated host.
type Config struct {
	ID       models.HostID
	Address  *models.Address
	Upstream *models.Address
	Seed     int64
}

// New creates a powered-off host with a deterministic random source.
func New(cfg Config) models.Host {
	return &simHost{
		id:       cfg.ID,
		address:  cfg.Address,
		upstream: cfg.Upstream,
		random:   rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (h *simHost) ID() models.HostID {
	return h.id
}

func (h *simHost) Address() *models.Address {
	return h.address
}

// Boot starts the host, booting is idempotent.
func (h *simHost) Boot() {
	if h.booted {
		return
	}
	h.booted = true
	hostLogger.Debug("host booted",
		logger.String("host", h.address.Indicator()))
}

// Shutdown stops the host.
func (h *simHost) Shutdown() {
	if !h.booted {
		return
	}
	h.booted = false
	hostLogger.Debug("host shutdown",
		logger.String("host", h.address.Indicator()),
		logger.Int64("cpu_time_ns", h.cpuTime.Nanoseconds()))
}

func (h *simHost) AddApplication(app models.Application) {
	h.applications = append(h.applications, app)
}

// FreeAllApplications releases every application attached to the host.
func (h *simHost) FreeAllApplications() {
	for _, app := range h.applications {
		app.Free()
	}
	h.applications = nil
}

// ContinueExecutionTimer resumes accumulating wall time spent
// executing this host's events.
func (h *simHost) ContinueExecutionTimer() {
	h.timerMutex.Lock()
	defer h.timerMutex.Unlock()
	if h.timerRunning {
		return
	}
	h.timerRunning = true
	h.timerStart = time.Now()
}

// StopExecutionTimer pauses the execution timer.
func (h *simHost) StopExecutionTimer() {
	h.timerMutex.Lock()
	defer h.timerMutex.Unlock()
	if !h.timerRunning {
		return
	}
	h.timerRunning = false
	h.cpuTime += time.Since(h.timerStart)
}

// ExecutionTime returns the wall time accumulated by the execution timer.
func (h *simHost) ExecutionTime() time.Duration {
	h.timerMutex.Lock()
	defer h.timerMutex.Unlock()
	return h.cpuTime
}

func (h *simHost) Random() *rand.Rand {
	return h.random
}

func (h *simHost) GetUpstreamRouter(ip string) *models.Address {
	return h.upstream
}

// DeliverPacket hands an inbound packet to the host.
func (h *simHost) DeliverPacket(packet *models.Packet) {
	packet.SetStatus(models.PacketRcvDelivered)
	h.packetMutex.Lock()
	defer h.packetMutex.Unlock()
	h.received = append(h.received, packet)
}

// ReceivedPackets returns the packets delivered to this host so far.
func (h *simHost) ReceivedPackets() []*models.Packet {
	h.packetMutex.Lock()
	defer h.packetMutex.Unlock()
	out := make([]*models.Packet, len(h.received))
	copy(out, h.received)
	return out
}
