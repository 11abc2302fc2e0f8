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

// Package affinity maps logical processors to physical CPUs and pins
// worker threads to them. Pinning is advisory: platforms without
// affinity support degrade to a no-op and CPUUnset marks slots that
// have no CPU bound.
package affinity

import (
	"github.com/simnet/simnet/pkg/logger"
)

// CPUUnset marks a logical processor with no CPU assignment.
const CPUUnset = -1

var affinityLogger = logger.GetLogger("pkg", "Affinity")

// CPUMap assigns one CPU id to each logical processor index.
type CPUMap struct {
	cpus []int
}

// NewCPUMap builds the logical-processor to CPU assignment for n slots
// from the CPUs available to this process. When more slots than CPUs
// are requested the assignment wraps around; when the platform exposes
// no usable CPU set every slot is CPUUnset.
func NewCPUMap(n int) *CPUMap {
	available := availableCPUs()
	cpus := make([]int, n)
	for i := range cpus {
		if len(available) == 0 {
			cpus[i] = CPUUnset
			continue
		}
		cpus[i] = available[i%len(available)]
	}
	return &CPUMap{cpus: cpus}
}

// CPU returns the CPU id bound to the given logical processor index,
// or CPUUnset.
func (m *CPUMap) CPU(lpi int) int {
	if lpi < 0 || lpi >= len(m.cpus) {
		return CPUUnset
	}
	return m.cpus[lpi]
}

// N returns the number of logical processor slots in the map.
func (m *CPUMap) N() int {
	return len(m.cpus)
}

// SetThreadAffinity pins the OS thread identified by tid to newCPU.
// The previous CPU is passed so no-op updates can be skipped. Failures
// are logged and ignored, pinning is an optimization only.
func SetThreadAffinity(tid, newCPU, oldCPU int) {
	if newCPU == CPUUnset || newCPU == oldCPU {
		return
	}
	if err := setThreadAffinity(tid, newCPU); err != nil {
		affinityLogger.Warn("failed to set thread affinity",
			logger.Int("tid", tid),
			logger.Int("cpu", newCPU),
			logger.Error(err))
	}
}
