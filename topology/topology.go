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

package topology

import (
	"fmt"
	"sync"

	"github.com/uber-go/tally"

	"github.com/simnet/simnet/models"
)

//go:generate mockgen -source ./topology.go -destination=./topology_mock.go -package topology

// Topology models link properties between simulated addresses. Pairs
// without an explicit link fall back to the configured defaults.
type Topology interface {
	// GetLatency returns the one-way latency in milliseconds between two addresses
	GetLatency(src, dst *models.Address) float64
	// GetReliability returns the delivery probability within [0, 1] between two addresses
	GetReliability(src, dst *models.Address) float64
	// IncrementPathPacketCounter counts one packet sent on the path
	IncrementPathPacketCounter(src, dst *models.Address)
	// PathPacketCount returns the packets counted on the path
	PathPacketCount(src, dst *models.Address) uint64
	// AddLink overrides latency/reliability for a directed pair
	AddLink(srcIP, dstIP string, latencyMillis, reliability float64)
}

// link holds the properties of one directed path.
type link struct {
	latencyMillis float64
	reliability   float64
}

// topology implements Topology over a sparse link map with defaults.
type topology struct {
	mutex sync.RWMutex

	defaultLatencyMillis float64
	defaultReliability   float64

	links       map[string]link
	pathPackets map[string]uint64
	packetsSent tally.Counter
}

// NewTopology creates a topology with the given default link properties.
func NewTopology(defaultLatencyMillis, defaultReliability float64, scope tally.Scope) Topology {
	return &topology{
		defaultLatencyMillis: defaultLatencyMillis,
		defaultReliability:   defaultReliability,
		links:                make(map[string]link),
		pathPackets:          make(map[string]uint64),
		packetsSent:          scope.Counter("packets_sent"),
	}
}

func pathKey(srcIP, dstIP string) string {
	return fmt.Sprintf("%s->%s", srcIP, dstIP)
}

func (t *topology) AddLink(srcIP, dstIP string, latencyMillis, reliability float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.links[pathKey(srcIP, dstIP)] = link{
		latencyMillis: latencyMillis,
		reliability:   reliability,
	}
}

func (t *topology) GetLatency(src, dst *models.Address) float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if l, ok := t.links[pathKey(src.IP, dst.IP)]; ok {
		return l.latencyMillis
	}
	return t.defaultLatencyMillis
}

func (t *topology) GetReliability(src, dst *models.Address) float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if l, ok := t.links[pathKey(src.IP, dst.IP)]; ok {
		return l.reliability
	}
	return t.defaultReliability
}

func (t *topology) IncrementPathPacketCounter(src, dst *models.Address) {
	t.mutex.Lock()
	t.pathPackets[pathKey(src.IP, dst.IP)]++
	t.mutex.Unlock()
	t.packetsSent.Inc(1)
}

func (t *topology) PathPacketCount(src, dst *models.Address) uint64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.pathPackets[pathKey(src.IP, dst.IP)]
}
