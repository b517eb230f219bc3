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

//go:generate mockgen -destination=mock_collector.go -package=collector github.com/carverauto/devicecollector/pkg/collector IPResolver,RecordAppender

package collector

import (
	"context"
	"time"

	"github.com/carverauto/devicecollector/pkg/models"
)

// IPResolver returns the public IP address or models.UnknownIP.
type IPResolver interface {
	Resolve(ctx context.Context) string
}

// RecordAppender persists a finished record.
type RecordAppender interface {
	Append(ctx context.Context, record models.Record) error
}

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
