package entity

import (
	"time"
)

// Community — каноническая запись жилого комплекса, собранная краулером.
// Опциональные атрибуты моделируются указателями: nil означает "данных нет",
// что принципиально отличается от нуля на всех этапах оценки.
type Community struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	City     string  `json:"city" db:"city"`
	District *string `json:"district,omitempty" db:"district"`
	Address  *string `json:"address,omitempty" db:"address"`

	Lat *float64 `json:"lat,omitempty" db:"lat"`
	Lng *float64 `json:"lng,omitempty" db:"lng"`

	AvgPrice    *int     `json:"avg_price,omitempty" db:"avg_price"`
	BuildYear   *int     `json:"build_year,omitempty" db:"build_year"`
	TotalUnits  *int     `json:"total_units,omitempty" db:"total_units"`
	GreenRatio  *float64 `json:"green_ratio,omitempty" db:"green_ratio"`
	VolumeRatio *float64 `json:"volume_ratio,omitempty" db:"volume_ratio"`

	PropertyCompany *string  `json:"property_company,omitempty" db:"property_company"`
	PropertyFee     *float64 `json:"property_fee,omitempty" db:"property_fee"`
	Developer       *string  `json:"developer,omitempty" db:"developer"`
	ParkingRatio    *string  `json:"parking_ratio,omitempty" db:"parking_ratio"`

	SourceURL *string   `json:"source_url,omitempty" db:"source_url"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
