// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/models"
	sq "github.com/Masterminds/squirrel"
)

// orderRepository is the SQL-backed implementation of [OrderRepository].
// Order records are write-once; the repository therefore exposes a single
// INSERT and read-only lookups.
type orderRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOrderRepository constructs an [OrderRepository] backed by the provided
// database connection and logger.
func NewOrderRepository(db *DB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating order repository")
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateOrder persists the order record and returns it with the
// server-assigned ID filled in. All other fields are taken verbatim from the
// caller: the workflow computes hashes, paths, and timestamps before this
// point, and the record is never updated afterwards.
func (r *orderRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createOrder,
		order.SenderID,
		order.RecipientName,
		order.Amount,
		order.VideoName,
		order.VideoHash,
		order.EncryptedPath,
		order.WrappedKeyPath,
		order.ExpiresAt,
		order.Active,
		order.SenderPublicKey,
		order.Signature,
		order.SignedAt,
		order.CreatedAt,
	)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error: row is nil")
		return models.Order{}, fmt.Errorf("%w: %w", ErrOrderNotSaved, err)
	}

	if err := row.Scan(&order.ID); err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error: scanning error")
		return models.Order{}, fmt.Errorf("%w: %w", ErrOrderNotSaved, err)
	}

	return order, nil
}

// FindOrderByID retrieves a single order record.
//
// Error handling:
//   - Empty result set → [ErrOrderNotFound].
//   - Any other scan/driver failure → wrapped as [ErrScanningRow].
func (r *orderRepository) FindOrderByID(ctx context.Context, orderID int64) (models.Order, error) {
	log := logger.FromContext(ctx)

	var order models.Order
	row := r.db.QueryRowContext(ctx, findOrderByID, orderID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*orderRepository.FindOrderByID").Msg("error: row is nil")
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	err := scanOrder(row, &order)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.FindOrderByID").Msg("error: scanning error")
		return models.Order{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return order, nil
}

// FindOrdersByRecipient lists all orders addressed to the given display
// name, newest first. The query is built with squirrel so the recipient
// filter stays parameterised and the column list stays in one place.
func (r *orderRepository) FindOrdersByRecipient(ctx context.Context, recipientName string) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(orderColumns...).
		From(models.Order{}.TableName()).
		Where(sq.Eq{"recipient_name": recipientName}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.FindOrdersByRecipient").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.FindOrdersByRecipient").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			log.Err(err).Str("func", "*orderRepository.FindOrdersByRecipient").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return orders, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, order *models.Order) error {
	return row.Scan(
		&order.ID,
		&order.SenderID,
		&order.RecipientName,
		&order.Amount,
		&order.VideoName,
		&order.VideoHash,
		&order.EncryptedPath,
		&order.WrappedKeyPath,
		&order.ExpiresAt,
		&order.Active,
		&order.SenderPublicKey,
		&order.Signature,
		&order.SignedAt,
		&order.CreatedAt,
	)
}
