// Package expand implements the shell's expansion pipeline: variable,
// positional/special, brace, glob, and (for command names only) alias
// expansion, run in that order per spec §4.4. It is grounded on the
// simplified down to the flat string environment, array table and alias
// table this shell's data model calls for.
package expand

import "sort"

// Environment is a mapping from variable name to value. Keys are unique;
// assignments always overwrite, matching spec §3.
type Environment struct {
	values   map[string]string
	exported map[string]bool
	readonly map[string]bool
	order    []string
}

// NewEnvironment builds an Environment, optionally seeded from os.Environ()-
// style "NAME=VALUE" pairs, all marked exported since that's what a real
// process environment already guarantees about its own variables.
func NewEnvironment(pairs ...string) *Environment {
	e := &Environment{
		values:   make(map[string]string),
		exported: make(map[string]bool),
		readonly: make(map[string]bool),
	}
	for _, kv := range pairs {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				e.Set(kv[:i], kv[i+1:])
				e.exported[kv[:i]] = true
				break
			}
		}
	}
	return e
}

// Get returns a variable's value and whether it is set.
func (e *Environment) Get(name string) (string, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set assigns name to value, always overwriting any previous value.
func (e *Environment) Set(name, value string) {
	if _, ok := e.values[name]; !ok {
		e.order = append(e.order, name)
	}
	e.values[name] = value
}

// Unset removes a variable entirely. A readonly variable is left untouched.
func (e *Environment) Unset(name string) {
	if _, ok := e.values[name]; !ok {
		return
	}
	if e.readonly[name] {
		return
	}
	delete(e.values, name)
	delete(e.exported, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Export marks a variable as exported to child processes; it is a no-op for
// a variable that is not yet set (declared-but-unset export is outside this
// shell's simplified model).
func (e *Environment) Export(name string) {
	if _, ok := e.values[name]; !ok {
		return
	}
	e.exported[name] = true
}

// IsExported reports whether name is marked for export.
func (e *Environment) IsExported(name string) bool {
	return e.exported[name]
}

// MarkReadonly flags name so a later SetChecked is rejected, per the
// `readonly` built-in; plain Set still overwrites it.
func (e *Environment) MarkReadonly(name string) {
	e.readonly[name] = true
}

// IsReadonly reports whether name was marked via MarkReadonly.
func (e *Environment) IsReadonly(name string) bool {
	return e.readonly[name]
}

// SetChecked behaves like Set but refuses to overwrite a readonly variable,
// returning false in that case.
func (e *Environment) SetChecked(name, value string) bool {
	if e.readonly[name] {
		return false
	}
	e.Set(name, value)
	return true
}

// Each calls fn for every variable in assignment order.
func (e *Environment) Each(fn func(name, value string, exported bool)) {
	for _, name := range e.order {
		fn(name, e.values[name], e.exported[name])
	}
}

// ExportedPairs returns "NAME=VALUE" strings for every exported variable,
// suitable for passing as a child process's environment.
func (e *Environment) ExportedPairs() []string {
	var pairs []string
	for _, name := range e.order {
		if e.exported[name] {
			pairs = append(pairs, name+"="+e.values[name])
		}
	}
	sort.Strings(pairs)
	return pairs
}

// ArrayTable maps a name to an ordered sequence of text items, referenced
// via ${name[i]} / ${name[@]} / $name (first element).
type ArrayTable struct {
	values map[string][]string
}

// NewArrayTable returns an empty ArrayTable.
func NewArrayTable() *ArrayTable {
	return &ArrayTable{values: make(map[string][]string)}
}

// Get returns the ordered items for name.
func (a *ArrayTable) Get(name string) ([]string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Set replaces the items for name.
func (a *ArrayTable) Set(name string, items []string) {
	a.values[name] = items
}

// AliasTable maps an alias name to its replacement text. Expansion applies
// only to a command's name, not its arguments, and is non-recursive.
type AliasTable struct {
	values map[string]string
	order  []string
}

// NewAliasTable returns an empty AliasTable.
func NewAliasTable() *AliasTable {
	return &AliasTable{values: make(map[string]string)}
}

// Set defines or redefines an alias.
func (a *AliasTable) Set(name, value string) {
	if _, ok := a.values[name]; !ok {
		a.order = append(a.order, name)
	}
	a.values[name] = value
}

// Unset removes an alias.
func (a *AliasTable) Unset(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Get returns an alias's replacement text.
func (a *AliasTable) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Each calls fn for every alias in definition order.
func (a *AliasTable) Each(fn func(name, value string)) {
	for _, name := range a.order {
		fn(name, a.values[name])
	}
}

// Expand performs non-recursive, name-only alias substitution: if name has
// an alias, its replacement text is returned; otherwise name is returned
// unchanged. A single pass is performed even if the replacement is itself an
// alias name, matching spec §4.4's "exactly once, before execution".
func (a *AliasTable) Expand(name string) string {
	if v, ok := a.values[name]; ok {
		return v
	}
	return name
}
