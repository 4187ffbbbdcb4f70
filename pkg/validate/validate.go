// Package validate is a thin wrapper around go-playground/validator with one shared instance.
package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Struct validates a struct using its `validate` tags.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single value against tag.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
