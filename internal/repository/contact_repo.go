package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

const contactColumns = `id, name, email, subject, message, status, created_at, updated_at`

// contactRepo is the concrete implementation of ContactRepository
type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact message repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

// Create stores a contact-form submission
func (r *contactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages ("+contactColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Status, msg.CreatedAt, msg.UpdatedAt,
	)
	return translate(err)
}

// GetByID retrieves a contact message by ID
func (r *contactRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	msg, err := scanContact(r.db.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contact_messages WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return msg, err
}

// UpdateStatus marks a message read or archived
func (r *contactRepo) UpdateStatus(ctx context.Context, id string, status models.ContactStatus, updatedAt time.Time) error {
	return affectedOne(r.db.ExecContext(ctx,
		"UPDATE contact_messages SET status = $2, updated_at = $3 WHERE id = $1", id, status, updatedAt,
	))
}

// List returns one page of contact messages, newest first, and the full filtered count
func (r *contactRepo) List(ctx context.Context, filter models.ContactFilter) ([]*models.ContactMessage, int, error) {
	w := &where{}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contact_messages"+w.String()+" ORDER BY created_at DESC, id"+limit, args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := make([]*models.ContactMessage, 0, filter.Limit)
	for rows.Next() {
		msg, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, msg)
	}
	return messages, total, rows.Err()
}

// CountByStatus returns the number of contact messages in status
func (r *contactRepo) CountByStatus(ctx context.Context, status models.ContactStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages WHERE status = $1", status).Scan(&count)
	return count, err
}

func scanContact(s scanner) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	err := s.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.Status, &msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
