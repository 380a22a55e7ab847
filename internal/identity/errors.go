package identity

import (
	"fmt"

	"github.com/nomadstar/classplanner/internal/diag"
)

func duplicateNameError(source, name string) error {
	return &diag.FatalError{
		Kind:    diag.DuplicateName,
		Message: fmt.Sprintf("duplicate name %q within the %s table", name, source),
	}
}
