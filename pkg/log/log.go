// Copyright 2026 Richter Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Conf defines logger configuration.
type Conf struct {
	Output     string `mapstructure:"output"` // stdout or file
	Path       string `mapstructure:"path"`
	Filename   string `mapstructure:"filename"`
	Level      string `mapstructure:"level"`
	RotateSize int    `mapstructure:"rotateSize"` // megabytes
	RotateNum  int    `mapstructure:"rotateNum"`
	KeepDays   int    `mapstructure:"keepDays"`
}

// SetDefaults fills missing fields with sane defaults.
func (c *Conf) SetDefaults() {
	if c.Output == "" {
		c.Output = "stdout"
	}
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Output == "file" {
		if c.Path == "" {
			c.Path = "./logs"
		}
		if c.Filename == "" {
			c.Filename = "richter.log"
		}
		if c.RotateSize <= 0 {
			c.RotateSize = 100
		}
		if c.RotateNum <= 0 {
			c.RotateNum = 10
		}
		if c.KeepDays <= 0 {
			c.KeepDays = 7
		}
	}
}

var (
	mu     sync.RWMutex
	global = zap.NewNop().Sugar()
)

func init() {
	l, err := newLogger(&Conf{Output: "stdout", Level: "info"})
	if err == nil {
		global = l
	}
}

// Init builds the global logger from configuration. Safe to call once at
// startup; callers before Init get a stdout logger.
func Init(conf *Conf) error {
	l, err := newLogger(conf)
	if err != nil {
		return err
	}
	mu.Lock()
	global = l
	mu.Unlock()
	return nil
}

func newLogger(conf *Conf) (*zap.SugaredLogger, error) {
	if conf == nil {
		conf = &Conf{}
	}
	conf.SetDefaults()

	level, err := zapcore.ParseLevel(strings.ToLower(conf.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer
	var enc zapcore.Encoder
	switch conf.Output {
	case "file":
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(conf.Path, conf.Filename),
			MaxSize:    conf.RotateSize,
			MaxBackups: conf.RotateNum,
			MaxAge:     conf.KeepDays,
			Compress:   true,
		})
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		sink = zapcore.Lock(zapcore.AddSync(os.Stdout))
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, sink, level)
	return zap.New(core, zap.AddCallerSkip(1)).Sugar(), nil
}

// L returns the global sugared logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Debug(args ...any)                  { L().Debug(args...) }
func Info(args ...any)                   { L().Info(args...) }
func Warn(args ...any)                   { L().Warn(args...) }
func Error(args ...any)                  { L().Error(args...) }
func Debugw(msg string, kv ...any)       { L().Debugw(msg, kv...) }
func Infow(msg string, kv ...any)        { L().Infow(msg, kv...) }
func Warnw(msg string, kv ...any)        { L().Warnw(msg, kv...) }
func Errorw(msg string, kv ...any)       { L().Errorw(msg, kv...) }
func Fatalw(msg string, kv ...any)       { L().Fatalw(msg, kv...) }
func Infof(format string, args ...any)   { L().Infof(format, args...) }
func Errorf(format string, args ...any)  { L().Errorf(format, args...) }
func Sync() error                        { return L().Sync() }
