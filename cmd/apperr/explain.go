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
	"fmt"
	"strings"

	"dirpx.dev/apperr/mapper"
	"dirpx.dev/apperr/reason"
	"github.com/spf13/cobra"
)

type explainOutput struct {
	Kind   string   `json:"kind"`
	Reason string   `json:"reason,omitempty"`
	Exit   int      `json:"exit_code"`
	HTTP   int      `json:"http_status"`
	GRPC   string   `json:"grpc_code"`
	Trace  []string `json:"trace"`
}

func newExplainCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <kind> [reason]",
		Short: "Show how a kind and reason resolve to exit, HTTP and gRPC codes",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return usageError("explain takes <kind> [reason]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(args[0])
			if err != nil {
				return err
			}
			var r reason.Reason
			if len(args) == 2 {
				if r, err = reason.Parse(args[1]); err != nil {
					return usageError("%q: %v", args[1], err)
				}
			}

			trace := o.mapper.Explain(k, r)
			if !o.json {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), trace)
				return err
			}
			st := o.mapper.Status(k, r)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(explainOutput{
				Kind:   k.String(),
				Reason: r.String(),
				Exit:   st.Exit,
				HTTP:   st.HTTP,
				GRPC:   mapper.CodeName(st.GRPC),
				Trace:  strings.Split(trace, "\n"),
			})
		},
	}
}
