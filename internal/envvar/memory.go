package envvar

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Memory is an in-memory Environment. Names are matched case-insensitively
// like on Windows, and enumeration follows insertion order.
//
// The zero value is ready to use.
type Memory struct {
	// WriteErr, if set, is returned by Set and Delete without modifying anything.
	WriteErr error

	// ReadErr, if set, is returned by Get, GetAll and ValueKind for User and
	// Machine scope.
	ReadErr error

	// Writes counts successful calls to Set and Delete.
	Writes int

	scopes map[Scope][]memoryEntry
}

type memoryEntry struct {
	name  string
	value string
	kind  ValueKind
}

var _ Environment = &Memory{}

// Put stores a variable directly, bypassing counters and injected errors.
func (m *Memory) Put(name, value string, scope Scope, kind ValueKind) {
	if scope == Process {
		kind = None
	}
	if m.scopes == nil {
		m.scopes = map[Scope][]memoryEntry{}
	}
	entries := m.scopes[scope]
	if i := m.index(name, scope); i >= 0 {
		entries[i].value = value
		entries[i].kind = kind
		return
	}
	m.scopes[scope] = append(entries, memoryEntry{name: name, value: value, kind: kind})
}

func (m *Memory) index(name string, scope Scope) int {
	return slices.IndexFunc(m.scopes[scope], func(e memoryEntry) bool {
		return strings.EqualFold(e.name, name)
	})
}

func (m *Memory) readErr(scope Scope) error {
	if scope.Persisted() {
		return m.ReadErr
	}
	return nil
}

func (m *Memory) Get(name string, scope Scope) (string, bool, error) {
	if err := m.readErr(scope); err != nil {
		return "", false, err
	}
	i := m.index(name, scope)
	if i < 0 {
		return "", false, nil
	}
	return m.scopes[scope][i].value, true, nil
}

func (m *Memory) GetAll(scope Scope) ([]Variable, error) {
	if err := m.readErr(scope); err != nil {
		return nil, err
	}
	vars := make([]Variable, 0, len(m.scopes[scope]))
	for _, e := range m.scopes[scope] {
		vars = append(vars, Variable{Name: e.name, Value: e.value})
	}
	return vars, nil
}

func (m *Memory) ValueKind(name string, scope Scope) (ValueKind, bool, error) {
	if err := m.readErr(scope); err != nil {
		return None, false, err
	}
	i := m.index(name, scope)
	if i < 0 {
		return None, false, nil
	}
	return m.scopes[scope][i].kind, true, nil
}

func (m *Memory) Set(name, value string, scope Scope, kind ValueKind) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if err := validName(name); err != nil {
		return err
	}
	m.Put(name, value, scope, kind)
	m.Writes++
	return nil
}

func (m *Memory) Delete(name string, scope Scope) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if err := validName(name); err != nil {
		return err
	}
	if i := m.index(name, scope); i >= 0 {
		m.scopes[scope] = slices.Delete(m.scopes[scope], i, i+1)
	}
	m.Writes++
	return nil
}
