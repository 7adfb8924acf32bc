package postgres

import (
	"context"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LinkRepository struct {
	db *pgxpool.Pool
}

func NewLinkRepository(db *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{db: db}
}

// Create inserts the link, relying on the unique index on slug for
// reservation. A duplicate slug surfaces as a pgconn.PgError with code
// 23505, which the service layer translates.
func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) error {
	query := `
		INSERT INTO links (slug, target_url, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, click_count, created_at, updated_at
	`

	return r.db.QueryRow(ctx, query, link.Slug, link.TargetURL, link.OwnerID).
		Scan(&link.ID, &link.ClickCount, &link.CreatedAt, &link.UpdatedAt)
}

func (r *LinkRepository) GetBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	var link domain.Link

	query := `
		SELECT id, slug, target_url, owner_id, click_count, created_at, updated_at
		FROM links
		WHERE slug = $1
	`

	row := r.db.QueryRow(ctx, query, slug)

	err := row.Scan(
		&link.ID,
		&link.Slug,
		&link.TargetURL,
		&link.OwnerID,
		&link.ClickCount,
		&link.CreatedAt,
		&link.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &link, nil
}

// IncrementClicks bumps the click counter in a single UPDATE so that
// concurrent redirects never lose an increment.
func (r *LinkRepository) IncrementClicks(ctx context.Context, linkID int64) error {
	query := `
		UPDATE links
		SET click_count = click_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, linkID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
