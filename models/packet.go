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
	"go.uber.org/atomic"
)

// PacketStatus tracks a packet's progress through the simulated
// network stack.
type PacketStatus int32

const (
	// PacketNone is the initial status of a freshly created packet.
	PacketNone PacketStatus = iota
	// PacketInetSent marks a packet accepted onto a network path.
	PacketInetSent
	// PacketInetDropped marks a packet dropped by path reliability.
	PacketInetDropped
	// PacketRcvDelivered marks a packet handed to the destination host.
	PacketRcvDelivered
)

// Packet is a reference-counted simulated datagram. A payload length
// of zero marks a control packet, control packets bypass reliability
// drops.
type Packet struct {
	payload []byte
	srcIP   string
	dstIP   string
	srcPort uint16
	dstPort uint16

	priority float64
	status   atomic.Int32
	ref      atomic.Int32
}

// NewPacket creates a packet holding one reference.
func NewPacket(payload []byte, srcIP string, srcPort uint16, dstIP string, dstPort uint16) *Packet {
	p := &Packet{
		payload: payload,
		srcIP:   srcIP,
		dstIP:   dstIP,
		srcPort: srcPort,
		dstPort: dstPort,
	}
	p.ref.Store(1)
	return p
}

// PayloadLength returns the payload size in bytes.
func (p *Packet) PayloadLength() int {
	return len(p.payload)
}

// Payload returns the raw payload bytes.
func (p *Packet) Payload() []byte {
	return p.payload
}

// SrcIP returns the source IP string.
func (p *Packet) SrcIP() string {
	return p.srcIP
}

// DstIP returns the destination IP string.
func (p *Packet) DstIP() string {
	return p.dstIP
}

// SrcPort returns the source port.
func (p *Packet) SrcPort() uint16 {
	return p.srcPort
}

// DstPort returns the destination port.
func (p *Packet) DstPort() uint16 {
	return p.dstPort
}

// IsControl returns true for zero-payload packets.
func (p *Packet) IsControl() bool {
	return len(p.payload) == 0
}

// SetPriority sets the queuing priority.
func (p *Packet) SetPriority(priority float64) {
	p.priority = priority
}

// Priority returns the queuing priority.
func (p *Packet) Priority() float64 {
	return p.priority
}

// SetStatus records the packet's latest delivery status.
func (p *Packet) SetStatus(status PacketStatus) {
	p.status.Store(int32(status))
}

// Status returns the packet's latest delivery status.
func (p *Packet) Status() PacketStatus {
	return PacketStatus(p.status.Load())
}

// Ref takes an additional reference.
func (p *Packet) Ref() {
	p.ref.Inc()
}

// Unref drops one reference.
func (p *Packet) Unref() {
	p.ref.Dec()
}

// RefCount returns the current reference count.
func (p *Packet) RefCount() int32 {
	return p.ref.Load()
}
