package checkin

import (
	"time"

	"github.com/MrJamesThe3rd/vetclinic/internal/checkin"
)

type checkInResponse struct {
	ID          string         `json:"id"`
	PatientID   *string        `json:"patient_id"`
	PatientName string         `json:"patient_name"`
	OwnerName   string         `json:"owner_name"`
	Doctor      string         `json:"doctor"`
	Date        string         `json:"date"`
	Complaint   string         `json:"complaint"`
	Subjective  string         `json:"subjective"`
	Objective   string         `json:"objective"`
	Assessment  string         `json:"assessment"`
	Plan        string         `json:"plan"`
	Procedures  string         `json:"procedures"`
	Medications string         `json:"medications"`
	Followup    string         `json:"followup"`
	Status      checkin.Status `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toResponse(c *checkin.CheckIn) checkInResponse {
	resp := checkInResponse{
		ID:          c.ID,
		PatientName: c.PatientName,
		OwnerName:   c.OwnerName,
		Doctor:      c.Doctor,
		Date:        c.Date.Format(time.DateOnly),
		Complaint:   c.Complaint,
		Subjective:  c.Subjective,
		Objective:   c.Objective,
		Assessment:  c.Assessment,
		Plan:        c.Plan,
		Procedures:  c.Procedures,
		Medications: c.Medications,
		Followup:    c.Followup,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}

	if c.PatientID != "" {
		resp.PatientID = new(c.PatientID)
	}

	return resp
}

func toResponseList(checkIns []*checkin.CheckIn) []checkInResponse {
	resp := make([]checkInResponse, len(checkIns))
	for i, c := range checkIns {
		resp[i] = toResponse(c)
	}

	return resp
}
