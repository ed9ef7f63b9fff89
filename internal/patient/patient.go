package patient

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
)

const idPrefix = "PaCPC-"

var ErrNotFound = apperr.NotFound("patient")

// Patient is an animal registered at the clinic together with its owner's contact details.
// Optional fields are empty strings when unknown.
type Patient struct {
	ID        string
	Name      string
	OwnerName string

	Type   string // species, e.g. Canine, Feline
	Breed  string
	Colour string
	Age    string
	Gender string
	Weight string

	Phone   string
	Email   string
	Address string

	CreatedAt time.Time
}

// FormatID renders a patient counter value as a patient id, e.g. 10000 -> "PaCPC-10000".
func FormatID(n int64) string {
	return fmt.Sprintf("%s%05d", idPrefix, n)
}

// ParseID extracts the counter value from a patient id. It reports false for ids
// that were not minted from the patient counter.
func ParseID(id string) (int64, bool) {
	var n int64
	if _, err := fmt.Sscanf(id, idPrefix+"%d", &n); err != nil {
		return 0, false
	}

	if FormatID(n) != id {
		return 0, false
	}

	return n, true
}
