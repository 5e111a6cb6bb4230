package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter se devuelve cuando un input no permite simular (valuaciones <= 0,
	// años no crecientes, cantidad incorrecta de puntos de control).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUndefinedROI se devuelve cuando el gasto total en convertibles es cero.
	// Con gasto cero el ROI no existe: nunca se convierte en NaN, Inf ni 0.
	ErrUndefinedROI = errors.New("undefined ROI: zero convertible spend")
)

// ParamError identifica el input rechazado. errors.Is(err, ErrInvalidParameter) es true.
type ParamError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func invalid(field string, value any, reason string) error {
	return &ParamError{Field: field, Value: value, Reason: reason}
}
