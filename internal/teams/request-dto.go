package teams

import (
	"strings"

	"padang/internal/remote"
)

// RegisterTeamRequest is the body of POST /api/register-team
type RegisterTeamRequest struct {
	TeamName         string          `json:"teamName" binding:"required,max=200"`
	Venue            string          `json:"venue" binding:"required"`
	Slot             string          `json:"slot" binding:"required"`
	Players          []PlayerRequest `json:"players" binding:"required,min=1,dive"`
	PaymentStatus    string          `json:"paymentStatus" binding:"required,oneof=paid pending"`
	RegistrationDate string          `json:"registrationDate" binding:"omitempty,datetime=2006-01-02"`
	PaymentRef       string          `json:"paymentRef" binding:"omitempty,max=64"`
}

type PlayerRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	IDNumber string `json:"idNum" binding:"required,max=50"`
}

// ToModel builds the team to persist; registrationDate defaults to today
func (r RegisterTeamRequest) ToModel(today string) *Team {
	team := &Team{
		TeamName:         strings.TrimSpace(r.TeamName),
		Venue:            r.Venue,
		Slot:             r.Slot,
		PaymentStatus:    r.PaymentStatus,
		RegistrationDate: r.RegistrationDate,
		PaymentRef:       r.PaymentRef,
		Players:          make([]Player, 0, len(r.Players)),
	}
	if team.RegistrationDate == "" {
		team.RegistrationDate = today
	}
	for i, p := range r.Players {
		team.Players = append(team.Players, Player{
			Position: i + 1,
			Name:     strings.TrimSpace(p.Name),
			IDNumber: strings.TrimSpace(p.IDNumber),
		})
	}
	return team
}

// FromWire builds a request from the wire format, used by the seeder
func FromWire(t remote.TeamRegistration) RegisterTeamRequest {
	req := RegisterTeamRequest{
		TeamName:         t.TeamName,
		Venue:            t.Venue,
		Slot:             t.Slot,
		PaymentStatus:    t.PaymentStatus,
		RegistrationDate: t.RegistrationDate,
		PaymentRef:       t.PaymentRef,
	}
	for _, p := range t.Players {
		req.Players = append(req.Players, PlayerRequest{Name: p.Name, IDNumber: p.IDNumber})
	}
	return req
}
