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

// Package reporter contains the types used for reporting errors and warnings
// from generators.
package reporter

import "google.golang.org/protobuf/reflect/protoreflect"

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, generation of the current file stops with that
// error. Generators only report errors that make the file's output invalid,
// so returning nil merely lets the generator collect further errors before
// the file fails anyway.
type ErrorReporter func(err ErrorWithDescriptor) error

// WarningReporter is responsible for reporting the given warning. Warnings
// are conditions that skip part of the output but do not fail the file, such
// as a default value that cannot be expressed for the field it annotates.
type WarningReporter func(ErrorWithDescriptor)

// Reporter is a type that handles reporting both errors and warnings.
type Reporter interface {
	// Error is called when the given error is encountered. If the returned
	// error is non-nil, generation of the file aborts.
	Error(ErrorWithDescriptor) error
	// Warning is called when the given warning is encountered.
	Warning(ErrorWithDescriptor)
}

// NewReporter creates a new reporter that invokes the given functions on
// error or warning.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithDescriptor) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithDescriptor) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler is used by generators to report errors and warnings for a single
// file. It latches the first error returned by the Reporter.
//
// A Handler is not safe for concurrent use; generation of a file is
// sequential.
type Handler struct {
	reporter Reporter

	errsReported bool
	err          error
}

// NewHandler creates a new Handler that reports to rep. If rep is nil, a
// reporter that fails on the first error and ignores warnings is used.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports an error about d, returning a non-nil error if
// generation must stop.
func (h *Handler) HandleErrorf(d protoreflect.Descriptor, format string, args ...any) error {
	return h.HandleError(Errorf(d, format, args...))
}

// HandleError reports err. Errors that do not carry a descriptor are not
// passed to the Reporter; they are returned as is and latched.
func (h *Handler) HandleError(err error) error {
	if h.err != nil {
		return h.err
	}
	if ewd, ok := err.(ErrorWithDescriptor); ok {
		h.errsReported = true
		err = h.reporter.Error(ewd)
	}
	h.err = err
	return err
}

// HandleWarning reports a warning about d.
func (h *Handler) HandleWarning(d protoreflect.Descriptor, err error) {
	h.reporter.Warning(Error(d, err))
}

// Error returns the error that stopped generation, or ErrGenerationFailed if
// errors were reported but swallowed by the Reporter.
func (h *Handler) Error() error {
	if h.errsReported && h.err == nil {
		return ErrGenerationFailed
	}
	return h.err
}
