package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// orderRepository is the PostgreSQL-backed implementation of
// [OrderRepository].
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

// ReplaceOrder performs the whole redemption write atomically:
//
//  1. insert the claim's jti into redeemed_claims — a duplicate means the
//     claim was already spent, so the transaction aborts with
//     [ErrClaimAlreadyRedeemed] before any state changes;
//  2. lock the user row and read its selection and history;
//  3. delete any prior open order for the user;
//  4. insert the new order carrying the claim's item snapshot;
//  5. append the snapshot to the user's history and clear the selection.
//
// The row lock serialises concurrent redemptions for the same user; the
// loser then fails on step 1's primary key.
func (r *orderRepository) ReplaceOrder(ctx context.Context, userID, jti string, items []string) (models.Order, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.ReplaceOrder").Msg("error: beginning transaction failed")
		return models.Order{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertRedeemedClaim, jti, userID); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Order{}, ErrClaimAlreadyRedeemed
		}
		log.Err(err).Str("func", "*orderRepository.ReplaceOrder").Msg("error: recording redeemed claim failed")
		return models.Order{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var rawItems, rawHistory []byte
	row := tx.QueryRowContext(ctx, selectUserSelectionForUpdate, userID)
	if err := row.Scan(&rawItems, &rawHistory); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*orderRepository.ReplaceOrder").Msg("error: locking user row failed")
		return models.Order{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if _, err := tx.ExecContext(ctx, deleteOrderByUser, userID); err != nil {
		log.Err(err).Str("func", "*orderRepository.ReplaceOrder").Msg("error: removing prior order failed")
		return models.Order{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	order := models.Order{
		OrderID: uuid.NewString(),
		UserID:  userID,
		Items:   items,
	}

	orderItems, err := marshalItems(items)
	if err != nil {
		return models.Order{}, err
	}

	row = tx.QueryRowContext(ctx, createOrder, order.OrderID, order.UserID, orderItems)
	if err := row.Scan(&order.CreatedAt); err != nil {
		log.Err(err).Str("func", "*orderRepository.ReplaceOrder").Msg("error: order insert failed")
		return models.Order{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	history, err := unmarshalHistory(rawHistory)
	if err != nil {
		return models.Order{}, err
	}
	history = append(history, items)

	rawHistory, err = marshalHistory(history)
	if err != nil {
		return models.Order{}, err
	}

	if _, err := tx.ExecContext(ctx, clearSelectionIntoHistory, userID, rawHistory); err != nil {
		log.Err(err).Str("func", "*orderRepository.ReplaceOrder").Msg("error: archiving selection failed")
		return models.Order{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*orderRepository.ReplaceOrder").Msg("error: committing transaction failed")
		return models.Order{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return order, nil
}

// DeleteOrder removes an order by ID. Missing IDs are a no-op.
func (r *orderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteOrderByID, orderID); err != nil {
		log.Err(err).Str("func", "*orderRepository.DeleteOrder").Msg("error: order delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListOrders returns every open order, oldest first.
func (r *orderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listOrders)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.ListOrders").Msg("error: listing orders failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var order models.Order
		var rawItems []byte
		if err := rows.Scan(&order.OrderID, &order.UserID, &rawItems, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if order.Items, err = unmarshalItems(rawItems); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return orders, nil
}
