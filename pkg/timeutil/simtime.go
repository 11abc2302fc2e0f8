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

package timeutil

import (
	"math"
)

// SimulationTime represents nanoseconds since the start of the simulation.
type SimulationTime uint64

// EmulatedTime represents nanoseconds since the Unix epoch as seen by
// simulated hosts. The simulation clock starts at Jan 1, 2000.
type EmulatedTime uint64

const (
	// SimTimeInvalid marks a simulation time outside any event.
	SimTimeInvalid SimulationTime = math.MaxUint64
	// SimTimeMax is the largest valid simulation time, used as the
	// "no event" sentinel by round reductions.
	SimTimeMax SimulationTime = math.MaxUint64 - 1

	SimTimeNanosecond  SimulationTime = 1
	SimTimeMicrosecond SimulationTime = 1000 * SimTimeNanosecond
	SimTimeMillisecond SimulationTime = 1000 * SimTimeMicrosecond
	SimTimeSecond      SimulationTime = 1000 * SimTimeMillisecond
	SimTimeMinute      SimulationTime = 60 * SimTimeSecond
	SimTimeHour        SimulationTime = 60 * SimTimeMinute

	// EmulatedTimeOffset is 2000-01-01T00:00:00Z expressed in
	// nanoseconds since the Unix epoch.
	EmulatedTimeOffset EmulatedTime = 946684800 * EmulatedTime(SimTimeSecond)
)

// ToEmulatedTime converts a simulation time to the emulated wall clock.
func ToEmulatedTime(t SimulationTime) EmulatedTime {
	return EmulatedTimeOffset + EmulatedTime(t)
}

// FromEmulatedTime converts an emulated wall clock time back to
// simulation time, clamping times before the simulation epoch to 0.
func FromEmulatedTime(t EmulatedTime) SimulationTime {
	if t < EmulatedTimeOffset {
		return 0
	}
	return SimulationTime(t - EmulatedTimeOffset)
}

// LatencyToSimTime converts a link latency in milliseconds to a
// simulation time delta, rounding up to a whole nanosecond.
func LatencyToSimTime(latencyMillis float64) SimulationTime {
	return SimulationTime(math.Ceil(latencyMillis * float64(SimTimeMillisecond)))
}

// MinSimTime returns the smaller of a and b.
func MinSimTime(a, b SimulationTime) SimulationTime {
	if a < b {
		return a
	}
	return b
}
