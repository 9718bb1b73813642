package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rowanvale/lantern/internal/game/player"
)

// ErrPlayerNotFound is returned when no saved player exists for an account.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository persists player state as opaque JSON snapshots, one per
// account. The schema stays stable as the player model evolves; only the
// snapshot payload changes.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Save upserts the account's player snapshot.
//
// Precondition: accountID must reference an existing account; p must be non-nil.
// Postcondition: A later Load for the same account returns an equivalent player.
func (r *PlayerRepository) Save(ctx context.Context, accountID int64, p *player.Player) error {
	data, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("serializing player: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO players (account_id, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = NOW()`,
		accountID, data,
	)
	if err != nil {
		return fmt.Errorf("saving player snapshot: %w", err)
	}
	return nil
}

// Load retrieves the account's saved player.
//
// Postcondition: Returns the player, or ErrPlayerNotFound when the account
// has never saved.
func (r *PlayerRepository) Load(ctx context.Context, accountID int64) (*player.Player, error) {
	var data []byte
	err := r.db.QueryRow(ctx,
		`SELECT snapshot FROM players WHERE account_id = $1`,
		accountID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("querying player snapshot: %w", err)
	}

	p, err := player.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("deserializing player: %w", err)
	}
	return p, nil
}
