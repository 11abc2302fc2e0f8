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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/uber-go/tally"

	"github.com/simnet/simnet/app/simulator"
	"github.com/simnet/simnet/config"
	"github.com/simnet/simnet/pkg/logger"
)

const version = "0.1.0"

const logFileName = "simnet.log"

var cfgPath string

// RootCmd command of simnet cli
var RootCmd = &cobra.Command{
	Use:   "simnet",
	Short: "simnet is a parallel discrete-event network simulator",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version of simnet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("simnet %s\n", version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a simulation from a TOML configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadSimNet(cfgPath)
		if err != nil {
			return err
		}
		if err := logger.InitLogger(&cfg.Logging, logFileName); err != nil {
			return fmt.Errorf("init logger error: %s", err)
		}

		scope, closer := tally.NewRootScope(tally.ScopeOptions{
			Prefix: "simnet",
		}, time.Second)
		defer func() {
			_ = closer.Close()
		}()

		rt := simulator.NewRuntime(version, cfg, scope)
		return rt.Run()
	},
}

func init() {
	runCmd.PersistentFlags().StringVar(&cfgPath, "config", "simnet.toml",
		"simulation config file path")
	RootCmd.AddCommand(versionCmd, runCmd)
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
