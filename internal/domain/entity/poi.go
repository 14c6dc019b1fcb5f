package entity

import "homescout/internal/domain/value"

// NearbyPOI — объект инфраструктуры рядом с комплексом.
// Distance == nil означает, что провайдер не вернул расстояние: такая
// запись не участвует в дистанционных корзинах оценки, но всё ещё
// считается присутствием категории.
type NearbyPOI struct {
	ID          int64             `json:"id" db:"id"`
	CommunityID int64             `json:"community_id" db:"community_id"`
	Category    value.POICategory `json:"category" db:"category"`
	Name        string            `json:"name" db:"name"`
	Distance    *int              `json:"distance,omitempty" db:"distance"`
	WalkTime    *int              `json:"walk_time,omitempty" db:"walk_time"`
}
