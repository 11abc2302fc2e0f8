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

// +build !linux

package affinity

// availableCPUs reports no usable CPU set, all slots stay unpinned.
func availableCPUs() []int {
	return nil
}

func setThreadAffinity(tid, cpu int) error {
	return nil
}

// ThreadID is not available on this platform.
func ThreadID() int {
	return 0
}

// SetThreadName is a no-op on this platform.
func SetThreadName(name string) {
}
