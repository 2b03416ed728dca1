// Package script compiles tengo expressions used by scene specs.
package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/groundclear/groundwatch"
)

const filterResultVar = "__pass"

// Filter is a classification filter backed by a compiled tengo expression.
// The expression sees `id` (int), `tag` (string) and `tags` (the configured
// classification tag) and must evaluate to a bool.
type Filter struct {
	source   string
	compiled *tengo.Compiled
}

// CompileFilter compiles expr once. The text/strings/math stdlib modules are
// importable.
func CompileFilter(expr, classificationTag string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("script: empty filter expression")
	}

	src := fmt.Sprintf("%s := (%s)", filterResultVar, expr)
	s := tengo.NewScript([]byte(src))
	s.SetImports(stdlib.GetModuleMap("text", "strings", "math"))
	_ = s.Add("id", 0)
	_ = s.Add("tag", "")
	_ = s.Add("tags", classificationTag)

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile filter %q: %w", expr, err)
	}
	return &Filter{source: expr, compiled: compiled}, nil
}

// Eval runs the expression for c.
func (f *Filter) Eval(c groundwatch.Contact) (bool, error) {
	if f == nil || f.compiled == nil {
		return true, nil
	}
	run := f.compiled.Clone()
	if err := run.Set("id", int64(c.Object)); err != nil {
		return false, err
	}
	if err := run.Set("tag", c.Tag); err != nil {
		return false, err
	}
	if err := run.Run(); err != nil {
		return false, fmt.Errorf("script: run filter %q: %w", f.source, err)
	}
	v := run.Get(filterResultVar)
	if v.ValueType() != "bool" {
		return false, fmt.Errorf("script: filter %q returned %s, want bool", f.source, v.ValueType())
	}
	return v.Bool(), nil
}

// Passes implements groundwatch.Filter. Script errors reject the contact.
func (f *Filter) Passes(c groundwatch.Contact) bool {
	ok, err := f.Eval(c)
	if err != nil {
		log.Printf("%v", err)
		return false
	}
	return ok
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}
