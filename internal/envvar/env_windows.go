package envvar

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/hexops/winenv/internal/errors"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// systemEnvironment serves Process from the process block and User/Machine
// from the registry.
type systemEnvironment struct {
	proc processEnvironment
}

func rootKey(scope Scope) (registry.Key, string, error) {
	switch scope {
	case User:
		return registry.CURRENT_USER, UserKeyPath, nil
	case Machine:
		return registry.LOCAL_MACHINE, MachineKeyPath, nil
	default:
		return 0, "", ErrScopeUnsupported
	}
}

func openKey(scope Scope, access uint32) (registry.Key, error) {
	root, path, err := rootKey(scope)
	if err != nil {
		return 0, err
	}
	return registry.OpenKey(root, path, access)
}

func (e systemEnvironment) Get(name string, scope Scope) (string, bool, error) {
	if scope == Process {
		v, ok := e.proc.get(name)
		return v, ok, nil
	}
	k, err := openKey(scope, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "OpenKey")
	}
	defer k.Close()

	v, err := readValue(k, name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "readValue "+name)
	}
	return v, true, nil
}

func (e systemEnvironment) GetAll(scope Scope) ([]Variable, error) {
	if scope == Process {
		return e.proc.getAll(), nil
	}
	k, err := openKey(scope, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "OpenKey")
	}
	defer k.Close()

	ki, err := k.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "Stat")
	}
	names, err := k.ReadValueNames(int(ki.ValueCount))
	if err != nil {
		return nil, errors.Wrap(err, "ReadValueNames")
	}
	vars := make([]Variable, 0, len(names))
	for _, name := range names {
		v, err := readValue(k, name)
		if err != nil {
			return nil, errors.Wrap(err, "readValue "+name)
		}
		vars = append(vars, Variable{Name: name, Value: v})
	}
	return vars, nil
}

func (e systemEnvironment) ValueKind(name string, scope Scope) (ValueKind, bool, error) {
	if scope == Process {
		_, ok := e.proc.get(name)
		return None, ok, nil
	}
	k, err := openKey(scope, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return None, false, nil
	} else if err != nil {
		return None, false, errors.Wrap(err, "OpenKey")
	}
	defer k.Close()

	_, valtype, err := k.GetValue(name, nil)
	if errors.Is(err, registry.ErrNotExist) {
		return None, false, nil
	} else if err != nil {
		return None, false, errors.Wrap(err, "GetValue "+name)
	}
	return ValueKind(valtype), true, nil
}

func (e systemEnvironment) Set(name, value string, scope Scope, kind ValueKind) error {
	if scope == Process {
		return e.proc.set(name, value)
	}
	root, path, err := rootKey(scope)
	if err != nil {
		return err
	}
	k, _, err := registry.CreateKey(root, path, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(registryError(err), "CreateKey")
	}
	defer k.Close()

	if kind == ExpandString {
		err = k.SetExpandStringValue(name, value)
	} else {
		err = k.SetStringValue(name, value)
	}
	if err != nil {
		return errors.Wrap(registryError(err), "SetValue "+name)
	}
	broadcastSettingChange()
	return nil
}

func (e systemEnvironment) Delete(name string, scope Scope) error {
	if scope == Process {
		return e.proc.unset(name)
	}
	k, err := openKey(scope, registry.SET_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return nil
	} else if err != nil {
		return errors.Wrap(registryError(err), "OpenKey")
	}
	defer k.Close()

	err = k.DeleteValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return nil
	} else if err != nil {
		return errors.Wrap(registryError(err), "DeleteValue "+name)
	}
	broadcastSettingChange()
	return nil
}

// readValue formats any registry value as a string. Integers are decimal,
// multi-strings are newline separated and anything else is hex.
func readValue(k registry.Key, name string) (string, error) {
	size, valtype, err := k.GetValue(name, nil)
	if err != nil {
		return "", err
	}
	switch valtype {
	case registry.SZ, registry.EXPAND_SZ:
		s, _, err := k.GetStringValue(name)
		return s, err
	case registry.DWORD, registry.QWORD:
		n, _, err := k.GetIntegerValue(name)
		return strconv.FormatUint(n, 10), err
	case registry.MULTI_SZ:
		ss, _, err := k.GetStringsValue(name)
		return strings.Join(ss, "\n"), err
	}
	buf := make([]byte, size)
	n, _, err := k.GetValue(name, buf)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", buf[:n]), nil
}

// registryError marks errors the registry raises for a malformed name or value.
func registryError(err error) error {
	if errors.Is(err, windows.ERROR_INVALID_PARAMETER) || errors.Is(err, windows.ERROR_INVALID_DATA) {
		return fmt.Errorf("%w: %w", ErrArgument, err)
	}
	return err
}

var (
	modUser32               = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeoutW = modUser32.NewProc("SendMessageTimeoutW")
)

const (
	hwndBroadcast   = 0xffff
	wmSettingChange = 0x001a
	smtoAbortIfHung = 0x0002
)

// broadcastSettingChange tells running programs (Explorer, new shells) to
// reload the persisted environment. Failures are ignored.
func broadcastSettingChange() {
	if procSendMessageTimeoutW.Find() != nil {
		return
	}
	param, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}
	var result uintptr
	_, _, _ = procSendMessageTimeoutW.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(param)),
		smtoAbortIfHung,
		5000,
		uintptr(unsafe.Pointer(&result)),
	)
}
