package teams

import (
	"sort"
	"time"

	"padang/internal/remote"

	"github.com/google/uuid"
)

// Team is a registration stored by the reference remote store
type Team struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamName         string    `json:"team_name" gorm:"not null;size:200"`
	Venue            string    `json:"venue" gorm:"not null;size:100;uniqueIndex:idx_team_venue_slot_paid,where:payment_status = 'paid'"`
	Slot             string    `json:"slot" gorm:"not null;size:20;uniqueIndex:idx_team_venue_slot_paid,where:payment_status = 'paid'"`
	PaymentStatus    string    `json:"payment_status" gorm:"not null;size:20;index"`
	RegistrationDate string    `json:"registration_date" gorm:"type:date"`
	PaymentRef       string    `json:"payment_ref" gorm:"size:64"`
	Players          []Player  `json:"players" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Player is one roster entry of a team
type Player struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	Position int       `json:"position" gorm:"not null"`
	Name     string    `json:"name" gorm:"not null;size:200"`
	IDNumber string    `json:"id_number" gorm:"not null;size:50"`
}

// VenueSlot is one booked (venue, slot) pair
type VenueSlot struct {
	Venue string
	Slot  string
}

// ToWire converts the stored team to the remote store wire format
func (t *Team) ToWire() remote.TeamRegistration {
	players := make([]Player, len(t.Players))
	copy(players, t.Players)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Position < players[j].Position })

	out := remote.TeamRegistration{
		TeamName:         t.TeamName,
		Venue:            t.Venue,
		Slot:             t.Slot,
		Players:          make([]remote.Player, 0, len(players)),
		PaymentStatus:    t.PaymentStatus,
		RegistrationDate: t.RegistrationDate,
		PaymentRef:       t.PaymentRef,
	}
	for _, p := range players {
		out.Players = append(out.Players, remote.Player{Name: p.Name, IDNumber: p.IDNumber})
	}
	return out
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}

func (Player) TableName() string {
	return "team_players"
}
