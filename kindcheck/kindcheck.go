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

// Package kindcheck defines an analyzer that reports switch statements over
// kind.Kind which neither list every kind nor have a default clause.
//
// The taxonomy is closed: when a kind is added, every switch that branches
// on kinds has to decide what to do with it. The analyzer turns a forgotten
// case into a vet-style diagnostic.
package kindcheck

import (
	"go/ast"
	"go/constant"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// DefaultKindPkg is the import path of the kind package checked by default.
const DefaultKindPkg = "dirpx.dev/apperr/kind"

const doc = `check that switches over kind.Kind are exhaustive

A switch whose tag has type Kind from the kind package must list every
Kind constant of that package, or contain a default clause.`

// Analyzer reports non-exhaustive switches over kind.Kind.
var Analyzer = &analysis.Analyzer{
	Name:     "kindcheck",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var kindPkg string

func init() {
	Analyzer.Flags.StringVar(&kindPkg, "kindpkg", DefaultKindPkg, "import path of the package declaring the Kind type")
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.SwitchStmt)(nil)}, func(n ast.Node) {
		sw := n.(*ast.SwitchStmt)
		if sw.Tag == nil {
			return
		}
		named := kindType(pass.TypesInfo.TypeOf(sw.Tag))
		if named == nil {
			return
		}

		covered := make(map[string]bool)
		for _, stmt := range sw.Body.List {
			cc, ok := stmt.(*ast.CaseClause)
			if !ok {
				continue
			}
			if cc.List == nil {
				return // default clause
			}
			for _, e := range cc.List {
				if tv, ok := pass.TypesInfo.Types[e]; ok && tv.Value != nil && tv.Value.Kind() == constant.String {
					covered[constant.StringVal(tv.Value)] = true
				}
			}
		}

		var missing []string
		for _, c := range kindConstants(named) {
			if !covered[constant.StringVal(c.Val())] {
				missing = append(missing, c.Name())
			}
		}
		if len(missing) > 0 {
			pass.Reportf(sw.Pos(), "switch on %s.%s is missing cases: %s",
				named.Obj().Pkg().Name(), named.Obj().Name(), strings.Join(missing, ", "))
		}
	})
	return nil, nil
}

// kindType returns t as the named Kind type of kindPkg, or nil.
func kindType(t types.Type) *types.Named {
	if t == nil {
		return nil
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}
	obj := named.Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != kindPkg || obj.Name() != "Kind" {
		return nil
	}
	return named
}

// kindConstants lists the string constants of type named declared in its
// package, sorted by name.
func kindConstants(named *types.Named) []*types.Const {
	scope := named.Obj().Pkg().Scope()
	var out []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(c.Type(), named) || c.Val().Kind() != constant.String {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
