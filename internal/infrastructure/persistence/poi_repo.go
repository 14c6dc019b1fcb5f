package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"homescout/internal/domain"
	"homescout/internal/domain/entity"
	"homescout/pkg/errcodes"
	"homescout/pkg/lox"
)

type POIRepository struct {
	db *sqlx.DB
}

func NewPOIRepository(db *sqlx.DB) *POIRepository {
	return &POIRepository{db: db}
}

func (r *POIRepository) ListByCommunity(ctx context.Context, communityID int64) ([]entity.NearbyPOI, error) {
	const query = `
		SELECT id, community_id, category, name, distance, walk_time
		FROM nearby_pois
		WHERE community_id = $1
		ORDER BY category, distance NULLS LAST, id`

	var schemas []poiSchema
	if err := r.db.SelectContext(ctx, &schemas, query, communityID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list pois")
	}

	return lox.Map(schemas, func(s poiSchema) entity.NearbyPOI {
		return s.toDomain()
	}), nil
}

// ReplaceForCommunity атомарно заменяет окружение комплекса: свежая
// выборка гео-сервиса полностью вытесняет прошлую.
func (r *POIRepository) ReplaceForCommunity(ctx context.Context, communityID int64, pois []entity.NearbyPOI) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM nearby_pois WHERE community_id = $1`, communityID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete pois")
	}

	const insert = `
		INSERT INTO nearby_pois (community_id, category, name, distance, walk_time)
		VALUES ($1, $2, $3, $4, $5)`

	for _, poi := range pois {
		if _, err := tx.ExecContext(ctx, insert,
			communityID, poi.Category, poi.Name, poi.Distance, poi.WalkTime,
		); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert poi")
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit transaction")
	}

	return nil
}
