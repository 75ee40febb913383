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

// Package plugin runs generators as a protoc plugin.
//
// protoc writes a serialized CodeGeneratorRequest to the plugin's standard
// input and reads a CodeGeneratorResponse from its standard output.
// Diagnostics therefore go to standard error only.
//
// To insert into the files written by protoc's C++ generator, the plugin
// must run in the same protoc invocation, after --cpp_out:
//
//	protoc --cpp_out=out --cppdefaults_out=out foo.proto
package plugin

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/bufbuild/protoinject"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/reporter"
)

// LogLevelEnv is the environment variable that sets the diagnostics level,
// e.g. "debug".
const LogLevelEnv = "PROTOINJECT_LOG_LEVEL"

// Main runs the generators as a protoc plugin over standard input and
// output, and exits.
func Main(generators ...protoinject.Generator) {
	log := logrus.New()
	log.Out = os.Stderr
	if lvl, ok := os.LookupEnv(LogLevelEnv); ok {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			log.WithError(err).Warnf("ignoring %s", LogLevelEnv)
		} else {
			log.SetLevel(level)
		}
	}
	if err := Run(os.Stdin, os.Stdout, log, generators...); err != nil {
		log.Fatal(err)
	}
}

// Run reads a CodeGeneratorRequest from in and writes the response to out.
// Generation failures are reported to protoc in the response; the returned
// error is only about reading the request or writing the response.
func Run(in io.Reader, out io.Writer, log logrus.FieldLogger, generators ...protoinject.Generator) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	req := new(pluginpb.CodeGeneratorRequest)
	if err := proto.Unmarshal(data, req); err != nil {
		return fmt.Errorf("parsing request: %w", err)
	}
	resp := Generate(req, log, generators...)
	data, err = proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

// Generate runs the generators over every file to generate, in order. If any
// file fails, the response carries the error and no files. A nil log
// discards diagnostics.
func Generate(req *pluginpb.CodeGeneratorRequest, log logrus.FieldLogger, generators ...protoinject.Generator) *pluginpb.CodeGeneratorResponse {
	if log == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		log = discard
	}
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
	fail := func(err error) *pluginpb.CodeGeneratorResponse {
		resp.File = nil
		resp.Error = proto.String(err.Error())
		return resp
	}

	files, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: req.GetProtoFile()})
	if err != nil {
		return fail(fmt.Errorf("building descriptors: %w", err))
	}
	params := protoinject.ParseParameters(req.GetParameter())
	rep := reporter.NewLogReporter(log)
	created := map[string]string{}
	for _, name := range req.GetFileToGenerate() {
		file, err := files.FindFileByPath(name)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", name, err))
		}
		out := &output{source: name, created: created}
		if err := protoinject.Run(file, params, out, rep, log, generators...); err != nil {
			return fail(fmt.Errorf("%s: %w", name, err))
		}
		resp.File = append(resp.File, out.finish()...)
	}
	return resp
}

// output collects the response files produced for one schema file.
type output struct {
	source string
	// created maps each new artifact of the response to the schema file it
	// was generated for. It is shared by all files of a request.
	created map[string]string
	files   []*pluginpb.CodeGeneratorResponse_File
	bufs    []*strings.Builder
}

var _ insert.ArtifactContext = (*output)(nil)

func (o *output) OpenForInsert(artifact, point string) (io.Writer, error) {
	if err := checkName(artifact); err != nil {
		return nil, err
	}
	return o.add(&pluginpb.CodeGeneratorResponse_File{
		Name:           proto.String(artifact),
		InsertionPoint: proto.String(point),
	}), nil
}

func (o *output) OpenNew(artifact string) (io.Writer, error) {
	if err := checkName(artifact); err != nil {
		return nil, err
	}
	if prev, ok := o.created[artifact]; ok {
		return nil, fmt.Errorf("%s is already generated for %s", artifact, prev)
	}
	if o.created == nil {
		o.created = map[string]string{}
	}
	o.created[artifact] = o.source
	return o.add(&pluginpb.CodeGeneratorResponse_File{Name: proto.String(artifact)}), nil
}

func (o *output) add(f *pluginpb.CodeGeneratorResponse_File) io.Writer {
	buf := new(strings.Builder)
	o.files = append(o.files, f)
	o.bufs = append(o.bufs, buf)
	return buf
}

func (o *output) finish() []*pluginpb.CodeGeneratorResponse_File {
	for i, f := range o.files {
		f.Content = proto.String(o.bufs[i].String())
	}
	return o.files
}

// checkName enforces protoc's rules for output file names: relative,
// slash-separated and without "..".
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty artifact name")
	case path.IsAbs(name) || strings.Contains(name, "\\"):
		return fmt.Errorf("artifact name %q must be a relative, slash-separated path", name)
	case path.Clean(name) != name || strings.HasPrefix(name, "../"):
		return fmt.Errorf("artifact name %q must be clean and stay within the output directory", name)
	}
	return nil
}
