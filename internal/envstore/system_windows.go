//go:build windows

package envstore

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows/registry"
)

// System returns the machine-scope store for this platform.
func System() Store {
	return registryStore{}
}

const machineEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

// registryStore reads and writes the HKLM environment key. Writes require an
// elevated process; an access-denied error from the registry is returned
// as-is for the caller to report.
type registryStore struct{}

func (registryStore) Get(name string) (string, bool, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, machineEnvKey, registry.QUERY_VALUE)
	if err != nil {
		return "", false, fmt.Errorf("open machine environment key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", name, err)
	}
	return value, true, nil
}

func (registryStore) Set(name, value string) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, machineEnvKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open machine environment key for write: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(name, value); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	broadcastEnvironmentChange()
	return nil
}

// broadcastEnvironmentChange tells running shells that the environment key
// changed (WM_SETTINGCHANGE). New processes started from Explorer see the
// value without a reboot; already-running processes still need a restart.
func broadcastEnvironmentChange() {
	const (
		hwndBroadcast   = 0xFFFF
		wmSettingChange = 0x001A
		smtoAbortIfHung = 0x0002
	)

	user32 := syscall.NewLazyDLL("user32.dll")
	proc := user32.NewProc("SendMessageTimeoutW")
	env, err := syscall.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}
	// Best effort: a failed broadcast only delays when shells see the change.
	proc.Call(hwndBroadcast, wmSettingChange, 0, uintptr(unsafe.Pointer(env)), smtoAbortIfHung, 5000, 0)
}
