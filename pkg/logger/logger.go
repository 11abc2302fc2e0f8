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

package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// SimNetModule is the module field value for runtime internal loggers
	SimNetModule = "simnet"
)

var (
	// max size of log file before rolling, in megabytes
	defaultMaxSize = 100
	// max number of rolled log files to retain
	defaultMaxBackups = 3

	// RunningAtomicLevel supports changing level on the fly
	RunningAtomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	initOnce   sync.Once
	rootLogger *zap.Logger
)

// Config represents the log configuration
type Config struct {
	Dir        string `toml:"dir"`
	Level      string `toml:"level"`
	MaxSize    int    `toml:"max-size"`
	MaxBackups int    `toml:"max-backups"`
}

// NewDefaultConfig returns a log config with console output and info level
func NewDefaultConfig() *Config {
	return &Config{
		Level:      "info",
		MaxSize:    defaultMaxSize,
		MaxBackups: defaultMaxBackups,
	}
}

// InitLogger initializes the root zap logger based on the config,
// writing to a rolling file when a dir is set, stderr otherwise.
func InitLogger(cfg *Config, fileName string) error {
	var level zapcore.Level
	if err := level.Set(cfg.Level); err != nil {
		return err
	}
	RunningAtomicLevel.SetLevel(level)

	var syncer zapcore.WriteSyncer
	if cfg.Dir == "" {
		syncer = zapcore.Lock(os.Stderr)
	} else {
		syncer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, fileName),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
		})
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		syncer,
		RunningAtomicLevel,
	)
	initOnce.Do(func() {
		rootLogger = zap.New(core)
	})
	return nil
}

// getRoot returns the root logger, falling back to a stderr logger
// when InitLogger was never called (tests, library embedding).
func getRoot() *zap.Logger {
	initOnce.Do(func() {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		rootLogger = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stderr),
			RunningAtomicLevel,
		))
	})
	return rootLogger
}

// GetLogger returns a logger tagged with module and role
func GetLogger(module, role string) *Logger {
	return &Logger{
		module: module,
		role:   role,
	}
}

// Logger is the wrapped logger of the underlying zap logger
type Logger struct {
	module string
	role   string
}

// Debug logs a message at DebugLevel
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.log().Debug(msg, fields...)
}

// Info logs a message at InfoLevel
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.log().Info(msg, fields...)
}

// Warn logs a message at WarnLevel
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.log().Warn(msg, fields...)
}

// Error logs a message at ErrorLevel
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.log().Error(msg, fields...)
}

// Panic logs a message at PanicLevel, then panics
func (l *Logger) Panic(msg string, fields ...zap.Field) {
	l.log().Panic(msg, fields...)
}

func (l *Logger) log() *zap.Logger {
	return getRoot().With(
		zap.String("module", l.module),
		zap.String("role", l.role))
}

// String constructs a field with the given key and value
func String(key, val string) zap.Field {
	return zap.String(key, val)
}

// Error constructs a field that carries an error
func Error(err error) zap.Field {
	return zap.Error(err)
}

// Int16 constructs a field with the given key and value
func Int16(key string, val int16) zap.Field {
	return zap.Int16(key, val)
}

// Int32 constructs a field with the given key and value
func Int32(key string, val int32) zap.Field {
	return zap.Int32(key, val)
}

// Int64 constructs a field with the given key and value
func Int64(key string, val int64) zap.Field {
	return zap.Int64(key, val)
}

// Int constructs a field with the given key and value
func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Uint64 constructs a field with the given key and value
func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

// Uint32 constructs a field with the given key and value
func Uint32(key string, val uint32) zap.Field {
	return zap.Uint32(key, val)
}

// Float64 constructs a field with the given key and value
func Float64(key string, val float64) zap.Field {
	return zap.Float64(key, val)
}

// Any constructs a field with the given key and an arbitrary value
func Any(key string, val interface{}) zap.Field {
	return zap.Any(key, val)
}

// Reflect constructs a field by running reflection over all values
func Reflect(key string, val interface{}) zap.Field {
	return zap.Reflect(key, val)
}

// Stack constructs a field that stores a stacktrace under the key "stack"
func Stack() zap.Field {
	return zap.Stack("stack")
}

// IsDebug returns true when the running level is debug or lower
func IsDebug() bool {
	return RunningAtomicLevel.Level() <= zapcore.DebugLevel
}
