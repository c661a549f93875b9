/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger wraps core in a zap.Logger that records the caller and adds
// stack traces to entries at error level and above.
func NewZapLogger(core zapcore.Core, options ...zap.Option) *zap.Logger {
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	return zap.New(core, append(opts, options...)...)
}

// NewFabricLogger returns a FabricLogger that writes through l.
func NewFabricLogger(l *zap.Logger, options ...zap.Option) *FabricLogger {
	options = append(options, zap.AddCallerSkip(1))
	return &FabricLogger{s: l.WithOptions(options...).Sugar()}
}

// FabricLogger is the logger handed out by MustGetLogger. Debug, Info and
// Error join their arguments with spaces.
type FabricLogger struct{ s *zap.SugaredLogger }

func (f *FabricLogger) Debug(args ...interface{}) { f.s.Debug(joinArgs(args)) }
func (f *FabricLogger) Info(args ...interface{})  { f.s.Info(joinArgs(args)) }
func (f *FabricLogger) Error(args ...interface{}) { f.s.Error(joinArgs(args)) }

func (f *FabricLogger) Debugf(template string, args ...interface{}) { f.s.Debugf(template, args...) }
func (f *FabricLogger) Warnf(template string, args ...interface{})  { f.s.Warnf(template, args...) }
func (f *FabricLogger) Errorf(template string, args ...interface{}) { f.s.Errorf(template, args...) }

// Infow logs msg with alternating keys and values as structured fields.
func (f *FabricLogger) Infow(msg string, kvPairs ...interface{}) { f.s.Infow(msg, kvPairs...) }

// Named returns a child logger; its name is appended to the parent's with a
// dot, so it can be leveled independently.
func (f *FabricLogger) Named(name string) *FabricLogger {
	return &FabricLogger{s: f.s.Named(name)}
}

// With returns a logger that adds the key value pairs to every entry.
func (f *FabricLogger) With(kvPairs ...interface{}) *FabricLogger {
	return &FabricLogger{s: f.s.With(kvPairs...)}
}

func (f *FabricLogger) IsEnabledFor(level zapcore.Level) bool {
	return f.s.Desugar().Core().Enabled(level)
}

func joinArgs(args []interface{}) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
