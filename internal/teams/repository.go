package teams

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, team *Team) error
	List(ctx context.Context) ([]Team, error)
	ExistsForSlot(ctx context.Context, venue, slot, paymentStatus string) (bool, error)
	BookedSlots(ctx context.Context, paymentStatus string) ([]VenueSlot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the team with its players in one transaction. A second paid
// team for the same venue slot violates idx_team_venue_slot_paid.
func (r *repository) Create(ctx context.Context, team *Team) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(team).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlot
	}
	return err
}

func (r *repository) List(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *repository) ExistsForSlot(ctx context.Context, venue, slot, paymentStatus string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Team{}).
		Where("venue = ? AND slot = ? AND payment_status = ?", venue, slot, paymentStatus).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) BookedSlots(ctx context.Context, paymentStatus string) ([]VenueSlot, error) {
	var rows []VenueSlot
	err := r.db.WithContext(ctx).Model(&Team{}).
		Select("venue, slot").
		Where("payment_status = ?", paymentStatus).
		Order("venue ASC, slot ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
