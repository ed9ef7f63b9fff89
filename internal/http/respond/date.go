package respond

import (
	"strings"
	"time"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
)

// ParseDate reads a YYYY-MM-DD value. A blank value yields nil.
func ParseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperr.Validation("%s must be a date in YYYY-MM-DD format", field)
	}

	return &t, nil
}
