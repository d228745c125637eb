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
	"io"
	"strings"
	"text/tabwriter"

	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/mapper"
	"github.com/spf13/cobra"
)

// kindRow is one catalogue entry.
type kindRow struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
	Args     string `json:"args"`
	Exit     int    `json:"exit_code"`
	HTTP     int    `json:"http_status"`
	GRPC     string `json:"grpc_code"`
}

func newKindsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List every error kind with its mapped statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := o.kindRows()
			out := cmd.OutOrStdout()
			switch {
			case o.json:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case o.terminal(out):
				return writeTable(out, rows)
			default:
				return writeTSV(out, rows)
			}
		},
	}
}

func (o *options) kindRows() []kindRow {
	all := kind.All()
	rows := make([]kindRow, 0, len(all))
	for _, k := range all {
		r := sample(k).Reason()
		st := o.mapper.Status(k, r)
		rows = append(rows, kindRow{
			Kind:     k.String(),
			Category: k.Category().String(),
			Reason:   r.String(),
			Args:     argsUsage(k),
			Exit:     st.Exit,
			HTTP:     st.HTTP,
			GRPC:     mapper.CodeName(st.GRPC),
		})
	}
	return rows
}

var kindHeader = []string{"KIND", "CATEGORY", "REASON", "EXIT", "HTTP", "GRPC", "ARGS"}

func (r kindRow) fields() []string {
	return []string{r.Kind, r.Category, r.Reason, fmt.Sprint(r.Exit), fmt.Sprint(r.HTTP), r.GRPC, r.Args}
}

func writeTable(w io.Writer, rows []kindRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(kindHeader, "\t"))
	for _, r := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(r.fields(), "\t"))
	}
	return tw.Flush()
}

func writeTSV(w io.Writer, rows []kindRow) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(r.fields(), "\t")); err != nil {
			return err
		}
	}
	return nil
}
