package registration

import "strings"

type PlayerInput struct {
	Name     string `json:"name" validate:"required"`
	IDNumber string `json:"id_number" validate:"required"`
}

// Submission is the team roster entered on the registration step
type Submission struct {
	TeamName string        `json:"team_name" validate:"required"`
	Players  []PlayerInput `json:"players" validate:"dive"`
}

// normalize trims every field the way the form does before validating
func (s Submission) normalize() Submission {
	out := Submission{
		TeamName: strings.TrimSpace(s.TeamName),
		Players:  make([]PlayerInput, len(s.Players)),
	}
	for i, p := range s.Players {
		out.Players[i] = PlayerInput{
			Name:     strings.TrimSpace(p.Name),
			IDNumber: strings.TrimSpace(p.IDNumber),
		}
	}
	return out
}
