/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// instance implements Logger. out is set when the logger owns its output.
type instance struct {
	logger zerolog.Logger
	out    io.Closer
}

// New creates a logger that can be injected into components.
// If config is nil, DefaultConfig is used. A file output stays open until
// Close is called on the returned logger.
func New(config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := parseLevel(config)
	if err != nil {
		return nil, err
	}

	output, closer, err := openOutput(config.Output)
	if err != nil {
		return nil, err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	return &instance{
		logger: zerolog.New(output).Level(level).With().Timestamp().Logger(),
		out:    closer,
	}, nil
}

// NewWithWriter creates a logger writing JSON lines to w at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) Logger {
	return &instance{
		logger: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// ForComponent returns a Logger that tags every line with component.
// Component loggers share the parent's output and never close it.
func ForComponent(l Logger, component string) Logger {
	return &instance{logger: l.WithComponent(component)}
}

// Close releases the output opened by New, if any.
func Close(l Logger) error {
	inst, ok := l.(*instance)
	if !ok || inst.out == nil {
		return nil
	}

	err := inst.out.Close()
	inst.out = nil

	return err
}

func (l *instance) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *instance) Info() *zerolog.Event  { return l.logger.Info() }
func (l *instance) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *instance) Error() *zerolog.Event { return l.logger.Error() }
func (l *instance) With() zerolog.Context { return l.logger.With() }

func (l *instance) WithComponent(component string) zerolog.Logger {
	return l.logger.With().Str("component", component).Logger()
}

func (l *instance) SetLevel(level zerolog.Level) {
	l.logger = l.logger.Level(level)
}

func (l *instance) SetDebug(debug bool) {
	if debug {
		l.SetLevel(zerolog.DebugLevel)
	} else {
		l.SetLevel(zerolog.InfoLevel)
	}
}
