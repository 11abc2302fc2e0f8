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

package models

import (
	"fmt"
)

// HostID identifies a simulated host.
type HostID uint32

// HostIDNone marks the absence of a host.
const HostIDNone HostID = 0

// Address binds a simulated host to its registered name and IP.
type Address struct {
	HostID HostID
	Name   string
	IP     string
}

// Indicator returns name:ip for logging.
func (a *Address) Indicator() string {
	return fmt.Sprintf("%s:%s", a.Name, a.IP)
}
