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
	"encoding/json"

	"dirpx.dev/apperr/adapter"
	"dirpx.dev/apperr/reason"
	"dirpx.dev/apperr/report"
	"github.com/spf13/cobra"
)

func newRenderCmd(o *options) *cobra.Command {
	var reasonFlag string
	cmd := &cobra.Command{
		Use:   "render <kind> [args...]",
		Short: "Build an error and report it, exiting with the mapped code",
		Long: `render builds an error of the given kind from positional arguments,
prints its message to stderr as the application would, and exits with
the mapped exit code. Run "apperr kinds" to see the arguments of each kind.`,
		Example: `  apperr render input_file_not_found /data/animals.txt
  apperr render invalid_animal_type Z
  apperr render io "disk full" --reason fs.io.no_space`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return usageError("render takes <kind> [args...]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(args[0])
			if err != nil {
				return err
			}
			e, err := build(k, args[1:])
			if err != nil {
				return err
			}
			if reasonFlag != "" {
				r, err := reason.Parse(reasonFlag)
				if err != nil {
					return usageError("--reason %q: %v", reasonFlag, err)
				}
				e = e.WithReason(r)
			}

			rep := report.New(cmd.ErrOrStderr(), o.logger, o.mapper)
			code := rep.Report(cmd.Context(), e)
			if o.json {
				st := o.mapper.Status(e.Kind(), e.Reason())
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(adapter.ToDescriptor(e, st)); err != nil {
					return err
				}
			}
			if code == 0 {
				return nil
			}
			return errWithCode(nil, code)
		},
	}
	cmd.Flags().StringVar(&reasonFlag, "reason", "", "Replace the kind's default reason")
	return cmd
}
