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

package dns

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/simnet/simnet/models"
)

//go:generate mockgen -source ./dns.go -destination=./dns_mock.go -package dns

// DNS resolves simulated host names and IPs to addresses.
type DNS interface {
	// Register binds a host id to a name and IP, returning the address
	Register(hostID models.HostID, name, ip string) (*models.Address, error)
	// ResolveIPToAddress returns the address registered for the IP, nil when unknown
	ResolveIPToAddress(ip string) *models.Address
	// ResolveNameToAddress returns the address registered for the name, nil when unknown
	ResolveNameToAddress(name string) *models.Address
}

// dns implements DNS with mutex-guarded lookup maps.
type dns struct {
	mutex  sync.RWMutex
	byIP   map[string]*models.Address
	byName map[string]*models.Address
}

// NewDNS creates an empty DNS service.
func NewDNS() DNS {
	return &dns{
		byIP:   make(map[string]*models.Address),
		byName: make(map[string]*models.Address),
	}
}

func (d *dns) Register(hostID models.HostID, name, ip string) (*models.Address, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if _, ok := d.byIP[ip]; ok {
		return nil, errors.Errorf("ip %s is already registered", ip)
	}
	if _, ok := d.byName[name]; ok {
		return nil, errors.Errorf("name %s is already registered", name)
	}
	address := &models.Address{
		HostID: hostID,
		Name:   name,
		IP:     ip,
	}
	d.byIP[ip] = address
	d.byName[name] = address
	return address, nil
}

func (d *dns) ResolveIPToAddress(ip string) *models.Address {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.byIP[ip]
}

func (d *dns) ResolveNameToAddress(name string) *models.Address {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.byName[name]
}
