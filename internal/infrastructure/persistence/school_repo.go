package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"homescout/internal/domain"
	"homescout/internal/domain/entity"
	"homescout/pkg/errcodes"
	"homescout/pkg/lox"
)

type SchoolDistrictRepository struct {
	db *sqlx.DB
}

func NewSchoolDistrictRepository(db *sqlx.DB) *SchoolDistrictRepository {
	return &SchoolDistrictRepository{db: db}
}

// LatestForCommunity возвращает закрепление с самым свежим годом.
// Записи без года уходят в конец выборки; при отсутствии записей — nil.
func (r *SchoolDistrictRepository) LatestForCommunity(ctx context.Context, communityID int64) (*entity.SchoolDistrict, error) {
	const query = `
		SELECT id, community_id, primary_school, middle_school, school_rank, year
		FROM school_districts
		WHERE community_id = $1
		ORDER BY (year IS NULL), year DESC
		LIMIT 1`

	var schema schoolSchema
	if err := r.db.GetContext(ctx, &schema, query, communityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get school district")
	}

	district := schema.toDomain()

	return &district, nil
}

func (r *SchoolDistrictRepository) ListByCommunity(ctx context.Context, communityID int64) ([]entity.SchoolDistrict, error) {
	const query = `
		SELECT id, community_id, primary_school, middle_school, school_rank, year
		FROM school_districts
		WHERE community_id = $1
		ORDER BY (year IS NULL), year DESC, id`

	var schemas []schoolSchema
	if err := r.db.SelectContext(ctx, &schemas, query, communityID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list school districts")
	}

	return lox.Map(schemas, func(s schoolSchema) entity.SchoolDistrict {
		return s.toDomain()
	}), nil
}

// ReplaceForCommunity атомарно заменяет закрепления комплекса.
func (r *SchoolDistrictRepository) ReplaceForCommunity(
	ctx context.Context,
	communityID int64,
	districts []entity.SchoolDistrict,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM school_districts WHERE community_id = $1`, communityID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete school districts")
	}

	const insert = `
		INSERT INTO school_districts (community_id, primary_school, middle_school, school_rank, year)
		VALUES ($1, $2, $3, $4, $5)`

	for _, district := range districts {
		if _, err := tx.ExecContext(ctx, insert,
			communityID, district.PrimarySchool, district.MiddleSchool, district.Rank, district.Year,
		); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert school district")
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit transaction")
	}

	return nil
}
