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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simnet/simnet/models"
)

func TestDNS_Register(t *testing.T) {
	d := NewDNS()
	address, err := d.Register(models.HostID(1), "relay-0", "10.0.0.1")
	assert.Nil(t, err)
	assert.Equal(t, models.HostID(1), address.HostID)
	assert.Equal(t, "relay-0", address.Name)
	assert.Equal(t, "10.0.0.1", address.IP)

	// duplicate ip
	_, err = d.Register(models.HostID(2), "relay-1", "10.0.0.1")
	assert.Error(t, err)
	// duplicate name
	_, err = d.Register(models.HostID(2), "relay-0", "10.0.0.2")
	assert.Error(t, err)
}

func TestDNS_Resolve(t *testing.T) {
	d := NewDNS()
	registered, err := d.Register(models.HostID(7), "web-0", "10.0.0.7")
	assert.Nil(t, err)

	assert.Equal(t, registered, d.ResolveIPToAddress("10.0.0.7"))
	assert.Equal(t, registered, d.ResolveNameToAddress("web-0"))

	assert.Nil(t, d.ResolveIPToAddress("10.9.9.9"))
	assert.Nil(t, d.ResolveNameToAddress("unknown"))
}
