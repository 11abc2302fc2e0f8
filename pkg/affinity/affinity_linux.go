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

// +build linux

package affinity

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/simnet/simnet/pkg/logger"
)

// availableCPUs returns the CPU ids in this process's affinity mask.
func availableCPUs() []int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		affinityLogger.Warn("failed to read process affinity mask", logger.Error(err))
		return nil
	}
	// unix.CPU_SETSIZE is not exported; 1024 matches glibc's CPU_SETSIZE.
	const cpuSetSize = 1024
	var cpus []int
	for cpu := 0; cpu < cpuSetSize; cpu++ {
		if set.IsSet(cpu) {
			cpus = append(cpus, cpu)
		}
	}
	return cpus
}

func setThreadAffinity(tid, cpu int) error {
	var set unix.CPUSet
	set.Set(cpu)
	return unix.SchedSetaffinity(tid, &set)
}

// ThreadID returns the OS thread id of the calling thread.
func ThreadID() int {
	return unix.Gettid()
}

// SetThreadName names the calling OS thread for debuggers and top.
// Inability to set the name is logged as a warning only.
func SetThreadName(name string) {
	// prctl truncates at 16 bytes including the terminating NUL
	if len(name) > 15 {
		name = name[:15]
	}
	buf := append([]byte(name), 0)
	if err := unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0); err != nil {
		affinityLogger.Warn("failed to set thread name",
			logger.String("name", name),
			logger.Error(err))
	}
}
