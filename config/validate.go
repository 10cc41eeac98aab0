package config

import (
	"errors"
	"fmt"
)

// ErrInvalidProject is matched by every ValidationError.
var ErrInvalidProject = errors.New("config: invalid project")

// ValidationError reports a structural problem of one document.
type ValidationError struct {
	Kind    Kind
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %q: %s", e.Kind, e.Path, e.Message)
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidProject
}

// Validate checks the structure of the project tree. It reports missing names,
// duplicate sibling names and primary key or index columns that do not name a
// column of their table. Foreign keys referencing unknown or disabled columns
// are not reported; generation skips them.
func Validate(p *Project) error {
	var errs []error
	report := func(d Document, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Kind:    d.Kind(),
			Path:    Path(d),
			Message: fmt.Sprintf(format, args...),
		})
	}
	_ = Walk(p, func(d Document) error {
		if d.Name() == "" && d.Kind() != KindProject {
			report(d, "missing name")
		}
		for _, key := range childKeys[d.Kind()] {
			seen := make(map[string]bool)
			for _, c := range Children(d, key) {
				if n := c.Name(); n != "" {
					if seen[n] {
						report(c, "duplicate name in %s", key)
					}
					seen[n] = true
				}
			}
		}
		switch d := d.(type) {
		case *PrimaryKeyColumn:
			if _, ok := d.FindColumn(); !ok {
				report(d, "unknown column %q", d.ColumnName())
			}
		case *IndexColumn:
			if _, ok := d.FindColumn(); !ok {
				report(d, "unknown column %q", d.ColumnName())
			}
		case *ForeignKeyColumn:
			if _, ok := d.FindColumn(); !ok {
				report(d, "unknown column %q", d.ColumnName())
			}
		}
		return nil
	})
	return errors.Join(errs...)
}
