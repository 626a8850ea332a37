package stklos

import (
	"os"
	"path/filepath"
)

// ResolveLoadFile walks the load path in order and returns the first
// prefix+filename that exists. The second result is false when no entry
// matches. An absolute or directly reachable filename resolves to
// itself.
func (vm *VM) ResolveLoadFile(filename string) (string, bool) {
	if _, err := os.Stat(filename); err == nil {
		return filename, true
	}
	for _, dir := range vm.LoadPath {
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// AddLoadPath prepends dir to the load path after verifying it is an
// existing directory, so later additions take priority over earlier
// ones.
func (vm *VM) AddLoadPath(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return NewEvalError("load-path: no such directory:", dir)
	}
	if !fi.IsDir() {
		return NewEvalError("load-path: not a directory:", dir)
	}
	vm.LoadPath = append([]string{dir}, vm.LoadPath...)
	return nil
}

// LoadFile resolves filename against the load path, reads it, and
// evaluates its contents in the current module.
func (vm *VM) LoadFile(filename string) error {
	path, ok := vm.ResolveLoadFile(filename)
	if !ok {
		return NewEvalError("cannot find file:", filename)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return NewEvalError("cannot read file:", path)
	}
	_, err = vm.DoString(string(src))
	return err
}
