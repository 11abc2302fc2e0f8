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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmulatedTime(t *testing.T) {
	assert.Equal(t, EmulatedTimeOffset, ToEmulatedTime(0))
	assert.Equal(t, EmulatedTimeOffset+EmulatedTime(SimTimeSecond), ToEmulatedTime(SimTimeSecond))

	assert.Equal(t, SimulationTime(0), FromEmulatedTime(EmulatedTimeOffset))
	assert.Equal(t, SimTimeSecond, FromEmulatedTime(EmulatedTimeOffset+EmulatedTime(SimTimeSecond)))
	// before the simulation epoch clamps to zero
	assert.Equal(t, SimulationTime(0), FromEmulatedTime(0))
}

func TestLatencyToSimTime(t *testing.T) {
	assert.Equal(t, 5*SimTimeMillisecond, LatencyToSimTime(5))
	assert.Equal(t, SimulationTime(0), LatencyToSimTime(0))
	// fractional latencies round up to a whole nanosecond
	assert.Equal(t, SimulationTime(1500001), LatencyToSimTime(1.5000001))
	assert.Equal(t, SimulationTime(1), LatencyToSimTime(0.0000001))
}

func TestMinSimTime(t *testing.T) {
	assert.Equal(t, SimulationTime(1), MinSimTime(1, 2))
	assert.Equal(t, SimulationTime(1), MinSimTime(2, 1))
	assert.Equal(t, SimTimeMax, MinSimTime(SimTimeMax, SimTimeInvalid))
}
