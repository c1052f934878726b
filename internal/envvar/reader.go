package envvar

// Record is a variable as presented to the user.
type Record struct {
	Name      string
	ValueKind ValueKind

	// Value is the stored string.
	Value string

	// Values is Value decoded into segments. It is nil for records produced
	// by List.
	Values []string `json:",omitempty"`
}

// Reader resolves variables from an Environment. It never writes.
type Reader struct {
	Env Environment
}

// List returns every variable in scope without any delimiter decoding.
func (r *Reader) List(scope Scope) ([]Record, error) {
	vars, err := r.Env.GetAll(scope)
	if err != nil {
		return nil, storeError("list", "", scope, err)
	}
	records := make([]Record, 0, len(vars))
	for _, v := range vars {
		kind, err := r.kind(v.Name, scope)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Name: v.Name, ValueKind: kind, Value: v.Value})
	}
	return records, nil
}

// Lookup returns the named variable with its value split on delim, or on the
// path list separator if name is a well-known list variable.
func (r *Reader) Lookup(name string, scope Scope, delim rune) (*Record, error) {
	raw, err := r.Raw(name, scope)
	if err != nil {
		return nil, err
	}
	kind, err := r.kind(name, scope)
	if err != nil {
		return nil, err
	}
	return &Record{
		Name:      name,
		ValueKind: kind,
		Value:     raw,
		Values:    Split(raw, EffectiveDelimiter(name, delim)),
	}, nil
}

// Raw returns the stored string of name verbatim.
func (r *Reader) Raw(name string, scope Scope) (string, error) {
	raw, ok, err := r.Env.Get(name, scope)
	if err != nil {
		return "", storeError("get", name, scope, err)
	}
	if !ok || raw == "" {
		return "", &Error{Op: "get", Name: name, Scope: scope, Code: ErrNotFound}
	}
	return raw, nil
}

func (r *Reader) kind(name string, scope Scope) (ValueKind, error) {
	if scope == Process {
		return None, nil
	}
	kind, _, err := r.Env.ValueKind(name, scope)
	if err != nil {
		return None, storeError("get", name, scope, err)
	}
	return kind, nil
}
