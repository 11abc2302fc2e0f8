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
	"math/rand"
)

//go:generate mockgen -source ./host.go -destination=./host_mock.go -package models

// Application is a simulated program running on a host.
type Application interface {
	// Name returns the application's name
	Name() string
	// Free releases the application's resources
	Free()
}

// Host is a simulated machine. Worker threads execute events against
// hosts; the execution timer brackets the wall time spent doing so.
type Host interface {
	// ID returns the host's identifier
	ID() HostID
	// Address returns the host's registered address
	Address() *Address
	// Boot starts the host and its applications
	Boot()
	// Shutdown stops the host
	Shutdown()
	// AddApplication attaches an application to the host
	AddApplication(app Application)
	// FreeAllApplications releases every application on the host
	FreeAllApplications()
	// ContinueExecutionTimer resumes the host's execution timer
	ContinueExecutionTimer()
	// StopExecutionTimer pauses the host's execution timer
	StopExecutionTimer()
	// Random returns the host's deterministic random source
	Random() *rand.Rand
	// GetUpstreamRouter returns the router address for an outbound IP
	GetUpstreamRouter(ip string) *Address
	// DeliverPacket hands an inbound packet to the host
	DeliverPacket(packet *Packet)
}
