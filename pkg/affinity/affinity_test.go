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

package affinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPUMap(t *testing.T) {
	m := NewCPUMap(4)
	assert.Equal(t, 4, m.N())

	// out-of-range slots are unset
	assert.Equal(t, CPUUnset, m.CPU(-1))
	assert.Equal(t, CPUUnset, m.CPU(4))

	// assignments are deterministic
	m2 := NewCPUMap(4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, m.CPU(i), m2.CPU(i))
	}
}

func TestCPUMap_MoreSlotsThanCPUs(t *testing.T) {
	// far more slots than any host has CPUs, assignment must wrap
	m := NewCPUMap(4096)
	assert.Equal(t, 4096, m.N())
	first := m.CPU(0)
	if first == CPUUnset {
		// platform without affinity support, all slots degrade to unset
		for i := 0; i < m.N(); i++ {
			assert.Equal(t, CPUUnset, m.CPU(i))
		}
	} else {
		// the assignment wraps, every slot is bound to a CPU
		for i := 0; i < m.N(); i++ {
			assert.NotEqual(t, CPUUnset, m.CPU(i))
		}
	}
}

func TestSetThreadAffinity_NoOps(t *testing.T) {
	// unset target and unchanged CPU are both no-ops
	SetThreadAffinity(0, CPUUnset, CPUUnset)
	SetThreadAffinity(0, 3, 3)
}

func TestSetThreadName(t *testing.T) {
	// long names are truncated, never an error
	SetThreadName("simnet-worker-with-a-very-long-name")
	SetThreadName("w")
}
