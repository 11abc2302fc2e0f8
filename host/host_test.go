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

package host

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/simnet/simnet/models"
)

func newTestHost() *simHost {
	return New(Config{
		ID:       models.HostID(1),
		Address:  &models.Address{HostID: 1, Name: "host-0", IP: "10.0.0.1"},
		Upstream: &models.Address{HostID: 100, Name: "router-0", IP: "10.0.255.1"},
		Seed:     42,
	}).(*simHost)
}

func TestHost_Boot(t *testing.T) {
	h := newTestHost()
	assert.False(t, h.booted)
	h.Boot()
	assert.True(t, h.booted)
	// boot is idempotent
	h.Boot()
	assert.True(t, h.booted)

	h.Shutdown()
	assert.False(t, h.booted)
	h.Shutdown()
	assert.False(t, h.booted)
}

func TestHost_Applications(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newTestHost()
	app1 := models.NewMockApplication(ctrl)
	app2 := models.NewMockApplication(ctrl)
	h.AddApplication(app1)
	h.AddApplication(app2)

	app1.EXPECT().Free()
	app2.EXPECT().Free()
	h.FreeAllApplications()

	// freeing twice does not free applications twice
	h.FreeAllApplications()
}

func TestHost_ExecutionTimer(t *testing.T) {
	h := newTestHost()
	assert.Equal(t, time.Duration(0), h.ExecutionTime())

	h.ContinueExecutionTimer()
	// continuing a running timer is a no-op
	h.ContinueExecutionTimer()
	time.Sleep(5 * time.Millisecond)
	h.StopExecutionTimer()
	// stopping a stopped timer is a no-op
	h.StopExecutionTimer()

	elapsed := h.ExecutionTime()
	assert.True(t, elapsed > 0)
	// timer does not advance while stopped
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, elapsed, h.ExecutionTime())
}

func TestHost_Random(t *testing.T) {
	h1 := newTestHost()
	h2 := newTestHost()
	// same seed draws the same sequence
	assert.Equal(t, h1.Random().Float64(), h2.Random().Float64())
}

func TestHost_DeliverPacket(t *testing.T) {
	h := newTestHost()
	assert.Empty(t, h.ReceivedPackets())

	p := models.NewPacket([]byte("data"), "10.0.0.2", 80, "10.0.0.1", 80)
	h.DeliverPacket(p)

	received := h.ReceivedPackets()
	assert.Len(t, received, 1)
	assert.Equal(t, models.PacketRcvDelivered, received[0].Status())
}

func TestHost_UpstreamRouter(t *testing.T) {
	h := newTestHost()
	router := h.GetUpstreamRouter("10.0.0.2")
	assert.Equal(t, "router-0", router.Name)
}
