package envvar

import (
	"os"
	"strings"
)

// Variable is a name and its stored string, as enumerated from a scope.
type Variable struct {
	Name  string
	Value string
}

// Environment is the host store for environment variables. Implementations
// report an absent variable with ok == false and a nil error.
type Environment interface {
	// Get returns the stored value of name.
	Get(name string, scope Scope) (value string, ok bool, err error)

	// GetAll enumerates every variable in scope.
	GetAll(scope Scope) ([]Variable, error)

	// ValueKind returns the registry kind of name. Process scope always
	// reports None.
	ValueKind(name string, scope Scope) (kind ValueKind, ok bool, err error)

	// Set writes value under name. kind is ignored for Process scope.
	Set(name, value string, scope Scope, kind ValueKind) error

	// Delete removes name. Deleting an absent variable is not an error.
	Delete(name string, scope Scope) error
}

// System returns the environment of the running host.
func System() Environment {
	return systemEnvironment{}
}

// processEnvironment reads and writes the live process environment block.
type processEnvironment struct{}

func (processEnvironment) get(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (processEnvironment) getAll() []Variable {
	environ := os.Environ()
	vars := make([]Variable, 0, len(environ))
	for _, kv := range environ {
		// Windows keeps per-drive working directories as "=C:=C:\dir"; the
		// search starts past the first byte so those names survive intact.
		if kv == "" {
			continue
		}
		i := strings.Index(kv[1:], "=")
		if i < 0 {
			continue
		}
		i++
		vars = append(vars, Variable{Name: kv[:i], Value: kv[i+1:]})
	}
	return vars
}

func (processEnvironment) set(name, value string) error {
	if err := validName(name); err != nil {
		return err
	}
	return os.Setenv(name, value)
}

func (processEnvironment) unset(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return os.Unsetenv(name)
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, "=\x00") {
		return ErrArgument
	}
	return nil
}
