package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

const subscriberColumns = `id, email, name, status, source, created_at, updated_at`

// subscriberRepo is the concrete implementation of SubscriberRepository
type subscriberRepo struct {
	db *database.DB
}

// NewSubscriberRepo creates a new subscriber repository
func NewSubscriberRepo(db *database.DB) SubscriberRepository {
	return &subscriberRepo{db: db}
}

// Create inserts a new subscriber; the email column is unique
func (r *subscriberRepo) Create(ctx context.Context, s *models.Subscriber) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO subscribers ("+subscriberColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		s.ID, strings.ToLower(s.Email), s.Name, s.Status, s.Source, s.CreatedAt, s.UpdatedAt,
	)
	return translate(err)
}

// Update writes name, status and source of an existing subscriber
func (r *subscriberRepo) Update(ctx context.Context, s *models.Subscriber) error {
	return affectedOne(r.db.ExecContext(ctx,
		"UPDATE subscribers SET name = $2, status = $3, source = $4, updated_at = $5 WHERE id = $1",
		s.ID, s.Name, s.Status, s.Source, s.UpdatedAt,
	))
}

// GetByEmail retrieves a subscriber by email, ignoring case
func (r *subscriberRepo) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	s, err := scanSubscriber(r.db.QueryRowContext(ctx,
		"SELECT "+subscriberColumns+" FROM subscribers WHERE email = $1", strings.ToLower(email),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// List returns one page of subscribers, newest first, and the full filtered count
func (r *subscriberRepo) List(ctx context.Context, filter models.SubscriberFilter) ([]*models.Subscriber, int, error) {
	w := &where{}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+subscriberColumns+" FROM subscribers"+w.String()+" ORDER BY created_at DESC, id"+limit, args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	subscribers := make([]*models.Subscriber, 0, filter.Limit)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, 0, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, total, rows.Err()
}

// CountByStatus returns the number of subscribers in status
func (r *subscriberRepo) CountByStatus(ctx context.Context, status models.SubscriberStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers WHERE status = $1", status).Scan(&count)
	return count, err
}

// StreamAll streams all subscribers for export
func (r *subscriberRepo) StreamAll(ctx context.Context, callback func(*models.Subscriber) error) error {
	rows, err := r.db.QueryContext(ctx, "SELECT "+subscriberColumns+" FROM subscribers ORDER BY created_at")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return err
		}
		if err := callback(s); err != nil {
			return err
		}
	}

	return rows.Err()
}

func scanSubscriber(sc scanner) (*models.Subscriber, error) {
	var s models.Subscriber
	err := sc.Scan(&s.ID, &s.Email, &s.Name, &s.Status, &s.Source, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
