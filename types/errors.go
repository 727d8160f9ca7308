package types

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a setup that can not be built: unsupported shape/degree pairs,
// missing boundary conditions, incompatible scheme choices. It is fatal for setup.
type ConfigurationError struct {
	Component string
	Detail    string
	Err       error
}

func NewConfigurationError(component, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Component: component, Detail: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", e.Component, e.Detail, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Detail)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// PhysicalInfeasibilityError reports a state that has no physical meaning, such as negative
// density or pressure, vacuum generation or a non-finite residual. It aborts the current step.
type PhysicalInfeasibilityError struct {
	Component string
	Detail    string
	State     []float64
}

func NewPhysicalInfeasibilityError(component string, state []float64, format string,
	args ...any) *PhysicalInfeasibilityError {
	var st []float64
	if state != nil {
		st = append(st, state...)
	}
	return &PhysicalInfeasibilityError{Component: component, Detail: fmt.Sprintf(format, args...), State: st}
}

func (e *PhysicalInfeasibilityError) Error() string {
	if len(e.State) != 0 {
		return fmt.Sprintf("physically infeasible state in %s: %s, state = %v", e.Component, e.Detail, e.State)
	}
	return fmt.Sprintf("physically infeasible state in %s: %s", e.Component, e.Detail)
}

// NumericalStallError reports an iterative solve that did not converge in its iteration budget
type NumericalStallError struct {
	Component  string
	Iterations int
	Residual   float64
}

func (e *NumericalStallError) Error() string {
	return fmt.Sprintf("%s failed to converge after %d iterations, residual = %g",
		e.Component, e.Iterations, e.Residual)
}

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsPhysicalInfeasibility(err error) bool {
	var target *PhysicalInfeasibilityError
	return errors.As(err, &target)
}

func IsNumericalStall(err error) bool {
	var target *NumericalStallError
	return errors.As(err, &target)
}
