package envvar

import (
	"fmt"
	"strings"
)

// Scope selects which environment store a variable belongs to.
type Scope int

const (
	// Process is the live environment block of the current process.
	Process Scope = iota

	// User is HKEY_CURRENT_USER\Environment.
	User

	// Machine is HKEY_LOCAL_MACHINE\SYSTEM\CurrentControlSet\Control\Session Manager\Environment.
	Machine
)

// Registry subkeys backing the persisted scopes.
const (
	UserKeyPath    = `Environment`
	MachineKeyPath = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
)

func (s Scope) String() string {
	switch s {
	case Process:
		return "Process"
	case User:
		return "User"
	case Machine:
		return "Machine"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Persisted reports whether the scope is stored in the registry.
func (s Scope) Persisted() bool {
	return s == User || s == Machine
}

// MarshalText encodes the scope by name.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseScope parses "process", "user" or "machine", ignoring case.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "process":
		return Process, nil
	case "user":
		return User, nil
	case "machine":
		return Machine, nil
	}
	return 0, fmt.Errorf("invalid target %q (expected process, user or machine)", s)
}

// ValueKind is the registry type tag of a stored value. The numeric values
// match the Windows REG_* constants.
type ValueKind uint32

const (
	None         ValueKind = 0  // REG_NONE
	String       ValueKind = 1  // REG_SZ
	ExpandString ValueKind = 2  // REG_EXPAND_SZ
	Binary       ValueKind = 3  // REG_BINARY
	DWord        ValueKind = 4  // REG_DWORD
	MultiString  ValueKind = 7  // REG_MULTI_SZ
	QWord        ValueKind = 11 // REG_QWORD
)

func (k ValueKind) String() string {
	switch k {
	case None:
		return "None"
	case String:
		return "String"
	case ExpandString:
		return "ExpandString"
	case Binary:
		return "Binary"
	case DWord:
		return "DWord"
	case MultiString:
		return "MultiString"
	case QWord:
		return "QWord"
	default:
		return "Unknown"
	}
}

// Writable reports whether a variable may be written with this kind.
func (k ValueKind) Writable() bool {
	return k == String || k == ExpandString
}

// MarshalText encodes the kind by name.
func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseValueKind parses "None", "String" or "ExpandString", ignoring case.
// Other kinds can be reported but never requested.
func ParseValueKind(s string) (ValueKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "string":
		return String, nil
	case "expandstring":
		return ExpandString, nil
	}
	return None, fmt.Errorf("invalid type %q (expected String or ExpandString)", s)
}
