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

package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/simnet/simnet/pkg/logger"
)

// Duration is a TOML-friendly wrapper around time.Duration
type Duration time.Duration

// UnmarshalText parses values like "30s" or "5m"
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Simulation represents the worker runtime configuration
type Simulation struct {
	Workers           int      `toml:"workers"`
	Parallelism       int      `toml:"parallelism"`
	Hosts             int      `toml:"hosts"`
	UseObjectCounters bool     `toml:"use-object-counters"`
	UseCPUPinning     bool     `toml:"use-cpu-pinning"`
	BootstrapEndTime  Duration `toml:"bootstrap-end-time"`
	StopTime          Duration `toml:"stop-time"`
}

// Network represents default link properties of the simulated topology
type Network struct {
	DefaultLatencyMillis float64 `toml:"default-latency-ms"`
	DefaultReliability   float64 `toml:"default-reliability"`
	DefaultBandwidthUp   uint64  `toml:"default-bandwidth-up"`
	DefaultBandwidthDown uint64  `toml:"default-bandwidth-down"`
}

// SimNet represents the full simulator configuration
type SimNet struct {
	Simulation Simulation    `toml:"simulation"`
	Network    Network       `toml:"network"`
	Logging    logger.Config `toml:"logging"`
}

// NewDefaultSimNet returns a configuration with defaults applied
func NewDefaultSimNet() *SimNet {
	return &SimNet{
		Simulation: Simulation{
			Workers:           1,
			Parallelism:       1,
			Hosts:             2,
			UseObjectCounters: true,
			UseCPUPinning:     true,
			BootstrapEndTime:  Duration(30 * time.Second),
			StopTime:          Duration(10 * time.Minute),
		},
		Network: Network{
			DefaultLatencyMillis: 10,
			DefaultReliability:   1.0,
			DefaultBandwidthUp:   1024,
			DefaultBandwidthDown: 1024,
		},
		Logging: *logger.NewDefaultConfig(),
	}
}

// Validate checks that the configuration is usable
func (c *SimNet) Validate() error {
	if c.Simulation.Workers < 0 {
		return errors.New("simulation.workers cannot be negative")
	}
	if c.Simulation.Parallelism < 1 {
		return errors.New("simulation.parallelism must be >= 1")
	}
	if c.Network.DefaultReliability < 0 || c.Network.DefaultReliability > 1 {
		return errors.New("network.default-reliability must be within [0, 1]")
	}
	if c.Network.DefaultLatencyMillis < 0 {
		return errors.New("network.default-latency-ms cannot be negative")
	}
	return nil
}

// LoadSimNet decodes the TOML file at path over the defaults
func LoadSimNet(path string) (*SimNet, error) {
	cfg := NewDefaultSimNet()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
