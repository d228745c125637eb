/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/mapper"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	exitError  = 1
	exitUsage  = 64 // EX_USAGE
	exitConfig = 78 // EX_CONFIG
)

// options holds the persistent flags and what setup derives from them.
type options struct {
	verbose bool
	json    bool
	config  string

	logger *slog.Logger
	mapper apis.Mapper
	// isTerminal decides between table and TSV output. Nil means a real
	// terminal check on the writer.
	isTerminal func(io.Writer) bool
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "apperr",
		Short: "Inspect the application error taxonomy",
		Long: `apperr lists the closed set of error kinds, explains how a kind and
reason resolve to an exit code, HTTP status and gRPC code, and renders
sample failures the way the application reports them.`,
		Example: `  apperr kinds
  apperr explain io fs.io.permission
  apperr --config rules.yaml render malformed_line 3 2 "D;12"`,
		PersistentPreRunE: o.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version,
	}
	root.SetVersionTemplate(versionLine() + "\n")

	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	root.PersistentFlags().BoolVar(&o.json, "json", false, "Output in JSON format")
	root.PersistentFlags().StringVar(&o.config, "config", "", "Mapper rule file (.yaml, .yml or .toml)")

	root.AddCommand(newKindsCmd(o), newExplainCmd(o), newRenderCmd(o), newVersionCmd())
	return root
}

// setup configures logging and builds the mapper.
func (o *options) setup(_ *cobra.Command, _ []string) error {
	o.logger = setupLogger(o.verbose, o.json, os.Stderr)
	slog.SetDefault(o.logger)

	if o.config == "" {
		o.mapper = mapper.Default()
		return nil
	}
	cfg, err := mapper.LoadConfig(o.config)
	if err != nil {
		return errWithCode(err, exitConfig)
	}
	opts, err := cfg.Options()
	if err != nil {
		return errWithCode(fmt.Errorf("%s: %w", o.config, err), exitConfig)
	}
	m, err := mapper.New(opts...)
	if err != nil {
		return errWithCode(fmt.Errorf("%s: %w", o.config, err), exitConfig)
	}
	o.logger.Debug("loaded mapper rules", "path", o.config, "rules", len(cfg.Rules))
	o.mapper = m
	return nil
}

// setupLogger discards records unless verbose is set.
func setupLogger(verbose, json bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func (o *options) terminal(w io.Writer) bool {
	if o.isTerminal != nil {
		return o.isTerminal(w)
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func errWithCode(err error, code int) error {
	return &codedError{err: err, code: code}
}

// codedError carries the process exit code out of a command.
type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e *codedError) Unwrap() error { return e.err }

// usageError marks bad arguments.
func usageError(format string, args ...any) error {
	return errWithCode(fmt.Errorf(format, args...), exitUsage)
}
