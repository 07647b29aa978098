package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Lifecycle failures are contained at the module boundary: every error in
// this file marks a single module (or one cycle of modules) inactive without
// taking the host process down.

var (
	// ErrModuleDisabled signals a clean opt-out from Initialize, e.g. when an
	// optional API key is absent. Modules wrap it; callers check errors.Is.
	ErrModuleDisabled = errors.New("module disabled")

	// ErrDuplicateModule rejects a second registration under the same name.
	ErrDuplicateModule = errors.New("module name already registered")

	// ErrInvalidModuleInfo marks metadata that fails the module contract.
	ErrInvalidModuleInfo = errors.New("invalid module info")
)

// DiscoveryError wraps a per-module failure during registration or the
// discovery scan. The affected module is skipped; the scan continues.
type DiscoveryError struct {
	Module string
	Err    error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for module %q: %v", e.Module, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// MissingDependencyError reports a declared hard dependency that names no
// registered module.
type MissingDependencyError struct {
	Module     string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("module %q depends on %q which is not registered", e.Module, e.Dependency)
}

// CyclicDependencyError names every module participating in one dependency
// cycle. None of the members is initialized.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// InitializationError wraps a module's own Initialize failure.
type InitializationError struct {
	Module string
	Err    error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("module %q failed to initialize: %v", e.Module, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// DependencySkippedError is the derived failure recorded for a module whose
// hard dependency did not become active.
type DependencySkippedError struct {
	Module     string
	Dependency string
}

func (e *DependencySkippedError) Error() string {
	return fmt.Sprintf("module %q skipped: dependency %q is not active", e.Module, e.Dependency)
}
