package repository

import (
	"database/sql"
	"stockdash/internal/model"

	"github.com/lib/pq"
)

type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// AddToWatchlist returns false when the symbol is already on the user's watchlist.
func (r *WatchlistRepository) AddToWatchlist(item *model.WatchlistItem) (bool, error) {
	err := r.db.QueryRow(`
		INSERT INTO watchlist(user_id, symbol, company)
		VALUES($1, $2, $3)
		ON CONFLICT (user_id, symbol) DO NOTHING
		RETURNING id, added_at
	`, item.UserID, item.Symbol, item.Company).Scan(&item.ID, &item.AddedAt)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// RemoveFromWatchlist returns false when there was nothing to remove.
func (r *WatchlistRepository) RemoveFromWatchlist(userID, symbol string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM watchlist WHERE user_id = $1 AND symbol = $2
	`, userID, symbol)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *WatchlistRepository) GetWatchlist(userID string) ([]model.WatchlistItem, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, symbol, company, added_at
		FROM watchlist
		WHERE user_id = $1
		ORDER BY added_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.WatchlistItem
	for rows.Next() {
		var w model.WatchlistItem
		if err := rows.Scan(&w.ID, &w.UserID, &w.Symbol, &w.Company, &w.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *WatchlistRepository) GetSymbolsByUserID(userID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT symbol FROM watchlist
		WHERE user_id = $1
		ORDER BY added_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return symbols, nil
}

func (r *WatchlistRepository) GetSymbolsByUserIDs(ids []string) (map[string][]string, error) {
	rows, err := r.db.Query(`
		SELECT user_id, symbol FROM watchlist
		WHERE user_id = ANY($1)
		ORDER BY added_at DESC
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var id, symbol string
		if err := rows.Scan(&id, &symbol); err != nil {
			return nil, err
		}
		result[id] = append(result[id], symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
