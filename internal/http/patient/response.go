package patient

import (
	"time"

	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

type patientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerName string    `json:"owner_name"`
	Type      string    `json:"type"`
	Breed     string    `json:"breed"`
	Colour    string    `json:"colour"`
	Age       string    `json:"age"`
	Gender    string    `json:"gender"`
	Weight    string    `json:"weight"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(p *patient.Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		Name:      p.Name,
		OwnerName: p.OwnerName,
		Type:      p.Type,
		Breed:     p.Breed,
		Colour:    p.Colour,
		Age:       p.Age,
		Gender:    p.Gender,
		Weight:    p.Weight,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
	}
}

func toResponseList(patients []*patient.Patient) []patientResponse {
	resp := make([]patientResponse, len(patients))
	for i, p := range patients {
		resp[i] = toResponse(p)
	}

	return resp
}
