package project

import (
	"fmt"
	"strings"
)

// Validate checks the fields a project must carry to enter the catalog.
func Validate(p *Project) error {
	if p == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !p.Stage.Valid() {
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, p.Stage)
	}
	if !p.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, p.Mode)
	}
	if strings.TrimSpace(p.Chain) == "" {
		return fmt.Errorf("%w: chain is required", ErrInvalidInput)
	}
	return nil
}
