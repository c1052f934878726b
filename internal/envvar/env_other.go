//go:build !windows

package envvar

// systemEnvironment only reaches the process scope; User and Machine live in
// the Windows registry.
type systemEnvironment struct {
	proc processEnvironment
}

func (e systemEnvironment) Get(name string, scope Scope) (string, bool, error) {
	if scope != Process {
		return "", false, ErrScopeUnsupported
	}
	v, ok := e.proc.get(name)
	return v, ok, nil
}

func (e systemEnvironment) GetAll(scope Scope) ([]Variable, error) {
	if scope != Process {
		return nil, ErrScopeUnsupported
	}
	return e.proc.getAll(), nil
}

func (e systemEnvironment) ValueKind(name string, scope Scope) (ValueKind, bool, error) {
	if scope != Process {
		return None, false, ErrScopeUnsupported
	}
	_, ok := e.proc.get(name)
	return None, ok, nil
}

func (e systemEnvironment) Set(name, value string, scope Scope, kind ValueKind) error {
	if scope != Process {
		return ErrScopeUnsupported
	}
	return e.proc.set(name, value)
}

func (e systemEnvironment) Delete(name string, scope Scope) error {
	if scope != Process {
		return ErrScopeUnsupported
	}
	return e.proc.unset(name)
}
