// Copyright 2020-2025 Buf Technologies, Inc.
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

package reporter

import (
	"github.com/sirupsen/logrus"
)

// NewLogReporter returns a Reporter that logs warnings to log and fails on
// the first error, after logging it.
func NewLogReporter(log logrus.FieldLogger) Reporter {
	return NewReporter(
		func(err ErrorWithDescriptor) error {
			withElement(log, err).Error(err.Unwrap())
			return err
		},
		func(err ErrorWithDescriptor) {
			withElement(log, err).Warn(err.Unwrap())
		},
	)
}

func withElement(log logrus.FieldLogger, err ErrorWithDescriptor) logrus.FieldLogger {
	return log.WithField("element", Name(err.GetDescriptor()))
}
