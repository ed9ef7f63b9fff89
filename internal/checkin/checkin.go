package checkin

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
)

type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

var ErrNotFound = apperr.NotFound("check-in")

// ParseStatus accepts "open" or "done", ignoring case and surrounding space.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", apperr.Validation("status must be one of open, done")
	}
}

// CheckIn is one clinical visit with SOAP notes. PatientName and OwnerName are a
// snapshot taken at creation and are not updated when the patient changes.
type CheckIn struct {
	ID          string
	PatientID   string // empty when the visit is not linked to a registered patient
	PatientName string
	OwnerName   string
	Doctor      string
	Date        time.Time

	Complaint   string
	Subjective  string
	Objective   string
	Assessment  string
	Plan        string
	Procedures  string
	Medications string
	Followup    string

	Status    Status
	CreatedAt time.Time
}

// NewID builds a check-in id from the creation time in base 36 followed by
// six random hex characters.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]

	return strconv.FormatInt(now.UnixMilli(), 36) + suffix
}
