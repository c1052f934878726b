package envvar

import (
	"fmt"
	"strings"

	"github.com/hexops/winenv/internal/errors"
)

// SetOptions configure a single write.
type SetOptions struct {
	Name  string
	Scope Scope

	// Delimiter joins the values. Well-known list variables always use the
	// path list separator.
	Delimiter rune

	// Kind requested for User and Machine writes. When appending, the kind of
	// the existing value wins. When None, a String or ExpandString value being
	// replaced keeps its kind.
	Kind ValueKind

	// Append merges the values after the existing content.
	Append bool

	// Force skips confirmation.
	Force bool

	// Logf, if non-nil, receives progress messages.
	Logf func(format string, v ...any)
}

// Action is what a committed write did.
type Action int

const (
	ActionSet Action = iota
	ActionDelete
)

func (a Action) String() string {
	if a == ActionDelete {
		return "delete"
	}
	return "set"
}

// Change describes a committed write.
type Change struct {
	Name   string
	Scope  Scope
	Action Action
	Kind   ValueKind
	Value  string
}

// Setter buffers values for one variable and writes them on Commit.
//
//	s, err := NewSetter(env, confirm, opts) // setup, and read the existing value if appending
//	s.Add(values...)                          // any number of times
//	change, err := s.Commit()                 // validate, normalize, confirm, write
type Setter struct {
	env     Environment
	confirm Confirmer
	opts    SetOptions

	delim   rune
	kind    ValueKind
	pending []string
}

// NewSetter prepares a write. With opts.Append the current value is read and
// becomes the first buffered segment.
func NewSetter(env Environment, confirm Confirmer, opts SetOptions) (*Setter, error) {
	if opts.Name == "" {
		return nil, &Error{Op: "set", Scope: opts.Scope, Code: ErrArgument, Err: errors.New("name is required")}
	}
	s := &Setter{
		env:     env,
		confirm: confirm,
		opts:    opts,
		delim:   EffectiveDelimiter(opts.Name, opts.Delimiter),
		kind:    opts.Kind,
	}
	if opts.Append {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Setter) logf(format string, v ...any) {
	if s.opts.Logf != nil {
		s.opts.Logf(format, v...)
	}
}

func (s *Setter) seed() error {
	name, scope := s.opts.Name, s.opts.Scope
	s.logf("winenv: reading existing value of %s (%s)", name, scope)

	var current string
	if scope == Process {
		v, _, err := s.env.Get(name, scope)
		if err != nil {
			return storeError("append", name, scope, err)
		}
		current = v
	} else {
		kind, ok, err := s.env.ValueKind(name, scope)
		switch {
		case err != nil:
			// Unreadable counts as absent.
			s.logf("winenv: ignoring error reading %s: %v", name, err)
		case !ok:
		case !kind.Writable():
			return &Error{
				Op:    "append",
				Name:  name,
				Scope: scope,
				Code:  ErrRegistryKindValueWrong,
				Err:   fmt.Errorf("existing value is %s", kind),
			}
		default:
			v, _, err := s.env.Get(name, scope)
			if err != nil {
				s.logf("winenv: ignoring error reading %s: %v", name, err)
				break
			}
			current = v
			s.kind = kind
		}
	}
	if current != "" {
		s.pending = append([]string{current}, s.pending...)
	}
	return nil
}

// existingKind returns the kind of the stored value when a replace may keep
// it, or None.
func (s *Setter) existingKind() ValueKind {
	kind, ok, err := s.env.ValueKind(s.opts.Name, s.opts.Scope)
	if err != nil {
		s.logf("winenv: ignoring error reading kind of %s: %v", s.opts.Name, err)
		return None
	}
	if !ok || !kind.Writable() {
		return None
	}
	return kind
}

// Add buffers values in order.
func (s *Setter) Add(values ...string) {
	s.pending = append(s.pending, values...)
}

// Delimiter returns the delimiter in effect.
func (s *Setter) Delimiter() rune {
	return s.delim
}

// Commit writes the buffered values. A single empty value deletes the
// variable. The returned Change is nil if confirmation was declined.
func (s *Setter) Commit() (*Change, error) {
	name, scope := s.opts.Name, s.opts.Scope
	if s.delim == NoDelimiter && (s.opts.Append || len(s.pending) > 1) {
		return nil, &Error{Op: "set", Name: name, Scope: scope, Code: ErrDelimiterNotDetected}
	}

	if len(s.pending) == 1 && s.pending[0] == "" && !s.opts.Append {
		return s.delete()
	}

	if scope.Persisted() && !s.opts.Append && s.kind == None {
		s.kind = s.existingKind()
	}

	result := Join(s.pending, s.delim)
	if scope.Persisted() && result == "" && s.kind == None {
		return nil, &Error{
			Op:    "set",
			Name:  name,
			Scope: scope,
			Code:  ErrRegistryKindValueWrong,
			Err:   errors.New("an empty value needs an explicit type"),
		}
	}

	kind := s.kind
	if scope == Process {
		kind = None
	} else if kind == None {
		kind = String
	}

	var message string
	if s.delim == NoDelimiter {
		message = fmt.Sprintf("Set %s (%s, %s) to %q", name, scope, kind, result)
	} else {
		result = Normalize(result, s.delim)
		var preview strings.Builder
		for _, seg := range Split(result, s.delim) {
			preview.WriteString("\n    " + seg)
		}
		message = fmt.Sprintf("Set %s (%s, %s) to these %q separated values:%s", name, scope, kind, string(s.delim), preview.String())
	}

	ok, err := s.gate(message)
	if err != nil || !ok {
		return nil, err
	}
	s.logf("winenv: writing %s (%s)", name, scope)
	if err := s.env.Set(name, result, scope, kind); err != nil {
		return nil, storeError("set", name, scope, err)
	}
	return &Change{Name: name, Scope: scope, Action: ActionSet, Kind: kind, Value: result}, nil
}

func (s *Setter) delete() (*Change, error) {
	name, scope := s.opts.Name, s.opts.Scope
	ok, err := s.gate(fmt.Sprintf("Remove %s (%s)", name, scope))
	if err != nil || !ok {
		return nil, err
	}
	s.logf("winenv: deleting %s (%s)", name, scope)
	if err := s.env.Delete(name, scope); err != nil {
		return nil, storeError("delete", name, scope, err)
	}
	return &Change{Name: name, Scope: scope, Action: ActionDelete}, nil
}

// gate returns whether the mutation described by message may proceed.
func (s *Setter) gate(message string) (bool, error) {
	if s.opts.Force {
		return true, nil
	}
	if s.confirm == nil {
		return false, errors.New("confirmation required (use force to skip it)")
	}
	ok, err := s.confirm.Confirm(Prompt{Message: message, Impact: impactOf(s.opts.Scope)})
	return ok, errors.Wrap(err, "Confirm")
}

// Set runs a complete write of values.
func Set(env Environment, confirm Confirmer, opts SetOptions, values ...string) (*Change, error) {
	s, err := NewSetter(env, confirm, opts)
	if err != nil {
		return nil, err
	}
	s.Add(values...)
	return s.Commit()
}
