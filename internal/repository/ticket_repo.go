package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, eventID, id uuid.UUID) (*models.Ticket, error)
	AddSold(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("price_cents ASC, created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, eventID, id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", eventID).
		First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// AddSold adjusts quantity_sold by quantity, which may be negative when a
// payment fails and inventory is released.
func (r *ticketRepository) AddSold(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Update("quantity_sold", gorm.Expr("GREATEST(quantity_sold + ?, 0)", quantity)).Error
}
