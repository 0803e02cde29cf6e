package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"

	"viewcounter/internal/infra"
)

var sqlKeywordPattern = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with|create)\b`)

type violation struct {
	file    string
	name    string
	line    int
	message string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d %s (%s)", v.file, v.line, v.message, v.name)
}

type markerSite struct {
	file string
	name string
	line int
}

// lintFiles reports SQL constants with a missing or malformed marker and
// markers reused by more than one constant.
func lintFiles(paths []string) ([]violation, error) {
	var violations []violation
	seen := make(map[string]markerSite)
	for _, path := range paths {
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			return nil, err
		}
		ast.Inspect(file, func(n ast.Node) bool {
			vs, ok := n.(*ast.ValueSpec)
			if !ok {
				return true
			}
			for i, value := range vs.Values {
				bl, ok := value.(*ast.BasicLit)
				if !ok || bl.Kind != token.STRING {
					continue
				}
				raw, err := strconv.Unquote(bl.Value)
				if err != nil || !sqlKeywordPattern.MatchString(raw) {
					continue
				}
				site := markerSite{file: path, line: fset.Position(bl.Pos()).Line}
				if i < len(vs.Names) {
					site.name = vs.Names[i].Name
				}
				marker, _, err := infra.ExtractMarker(raw)
				if err != nil {
					violations = append(violations, violation{site.file, site.name, site.line, err.Error()})
					continue
				}
				if prev, dup := seen[marker]; dup {
					violations = append(violations, violation{
						site.file, site.name, site.line,
						fmt.Sprintf("marker %s already used by %s at %s:%d", marker, prev.name, prev.file, prev.line),
					})
					continue
				}
				seen[marker] = site
			}
			return true
		})
	}
	return violations, nil
}
