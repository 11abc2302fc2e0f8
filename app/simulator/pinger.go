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

package simulator

import (
	"github.com/simnet/simnet/models"
	"github.com/simnet/simnet/pkg/timeutil"
)

const pingerPort uint16 = 9

// pinger is the built-in traffic generator: it sends one payload
// packet to its peer per interval until the stop time.
type pinger struct {
	self     models.Host
	peer     *models.Address
	interval timeutil.SimulationTime
	stopTime timeutil.SimulationTime
	sent     uint64
}

func newPinger(self models.Host, peer *models.Address,
	interval, stopTime timeutil.SimulationTime,
) *pinger {
	return &pinger{
		self:     self,
		peer:     peer,
		interval: interval,
		stopTime: stopTime,
	}
}

// Name returns the application's name
func (p *pinger) Name() string {
	return "pinger"
}

// Free releases the application's resources
func (p *pinger) Free() {
}

// startEvent returns the event that kicks the pinger off at time t.
func (p *pinger) startEvent(t timeutil.SimulationTime) *models.Event {
	return models.NewEvent(t, models.NewTask(p.tick, nil),
		p.self.ID(), p.self.ID())
}

// tick sends one packet to the peer and reschedules itself.
func (p *pinger) tick(ctx models.WorkerContext, host models.Host) {
	ctx.CountObjectAlloc("packet")
	packet := models.NewPacket([]byte("ping"),
		p.self.Address().IP, pingerPort, p.peer.IP, pingerPort)
	ctx.SendPacket(host, packet)
	packet.Unref()
	ctx.CountObjectDealloc("packet")
	p.sent++

	if ctx.CurrentTime()+p.interval < p.stopTime {
		ctx.ScheduleTask(models.NewTask(p.tick, nil), host, p.interval)
	}
}
