package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sadopc/studytrackr/internal/streak"
)

// dateValue is a YYYY-MM-DD flag. The zero value means "not set".
type dateValue struct {
	date streak.Date
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if d.date.IsZero() {
		return ""
	}
	return d.date.String()
}

func (d *dateValue) Set(s string) error {
	parsed, err := streak.ParseDate(s)
	if err != nil {
		return err
	}
	d.date = parsed
	return nil
}

func (d *dateValue) Type() string { return "date" }

// or returns the flag's date, or fallback when unset.
func (d *dateValue) or(fallback streak.Date) streak.Date {
	if d.date.IsZero() {
		return fallback
	}
	return d.date
}

// enumValue restricts a string flag to a fixed set.
type enumValue struct {
	allowed []string
	value   string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnum(def string, allowed ...string) *enumValue {
	return &enumValue{allowed: allowed, value: def}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(s)
	for _, a := range e.allowed {
		if a == s {
			e.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return "string" }
