package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"homescout/internal/domain"
	"homescout/internal/domain/entity"
	"homescout/pkg/errcodes"
	"homescout/pkg/lox"
)

const communityColumns = `id, name, city, district, address, lat, lng,
	avg_price, build_year, total_units, green_ratio, volume_ratio,
	property_company, property_fee, developer, parking_ratio,
	source_url, updated_at`

type CommunityRepository struct {
	db *sqlx.DB
}

func NewCommunityRepository(db *sqlx.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// Filter выбирает кандидатов по городу, району и ценовому окну.
// Сортировка по id даёт стабильный порядок вставки — вторичный ключ
// детерминированного ранжирования.
func (r *CommunityRepository) Filter(ctx context.Context, filter domain.CommunityFilter) ([]entity.Community, error) {
	var (
		conditions = []string{"city = ?"}
		args       = []any{filter.City}
	)

	if filter.District != nil {
		conditions = append(conditions, "district = ?")
		args = append(args, *filter.District)
	}

	priceCondition := "(avg_price >= ? AND avg_price <= ?)"
	if filter.IncludeNullPrice {
		priceCondition = "(avg_price IS NULL OR (avg_price >= ? AND avg_price <= ?))"
	}
	conditions = append(conditions, priceCondition)
	args = append(args, filter.PriceMin, filter.PriceMax)

	query := "SELECT " + communityColumns + " FROM communities WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY id"

	var schemas []communitySchema
	if err := r.db.SelectContext(ctx, &schemas, r.db.Rebind(query), args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to filter communities")
	}

	return lox.Map(schemas, func(s communitySchema) entity.Community {
		return s.toDomain()
	}), nil
}

// GetByID возвращает комплекс или nil, nil, если записи нет.
func (r *CommunityRepository) GetByID(ctx context.Context, id int64) (*entity.Community, error) {
	query := "SELECT " + communityColumns + " FROM communities WHERE id = $1"

	var schema communitySchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get community")
	}

	community := schema.toDomain()

	return &community, nil
}

// UpsertBySource сохраняет запись краулера: вставка или обновление
// по source_url. Идентификатор записи проставляется в сущность.
func (r *CommunityRepository) UpsertBySource(ctx context.Context, community *entity.Community) error {
	const query = `
		INSERT INTO communities (
			name, city, district, address, lat, lng,
			avg_price, build_year, total_units, green_ratio, volume_ratio,
			property_company, property_fee, developer, parking_ratio,
			source_url, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())
		ON CONFLICT (source_url) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			address = COALESCE(EXCLUDED.address, communities.address),
			lat = COALESCE(EXCLUDED.lat, communities.lat),
			lng = COALESCE(EXCLUDED.lng, communities.lng),
			avg_price = COALESCE(EXCLUDED.avg_price, communities.avg_price),
			build_year = COALESCE(EXCLUDED.build_year, communities.build_year),
			total_units = COALESCE(EXCLUDED.total_units, communities.total_units),
			green_ratio = COALESCE(EXCLUDED.green_ratio, communities.green_ratio),
			volume_ratio = COALESCE(EXCLUDED.volume_ratio, communities.volume_ratio),
			property_company = COALESCE(EXCLUDED.property_company, communities.property_company),
			property_fee = COALESCE(EXCLUDED.property_fee, communities.property_fee),
			developer = COALESCE(EXCLUDED.developer, communities.developer),
			parking_ratio = COALESCE(EXCLUDED.parking_ratio, communities.parking_ratio),
			updated_at = now()
		RETURNING id`

	row := r.db.QueryRowxContext(ctx, query,
		community.Name, community.City, community.District, community.Address,
		community.Lat, community.Lng,
		community.AvgPrice, community.BuildYear, community.TotalUnits,
		community.GreenRatio, community.VolumeRatio,
		community.PropertyCompany, community.PropertyFee,
		community.Developer, community.ParkingRatio,
		community.SourceURL,
	)

	if err := row.Scan(&community.ID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert community")
	}

	return nil
}
