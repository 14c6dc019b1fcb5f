package persistence

import (
	"time"

	"homescout/internal/domain/entity"
	"homescout/internal/domain/value"
)

// communitySchema — представление строки таблицы communities.
type communitySchema struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	City            string    `db:"city"`
	District        *string   `db:"district"`
	Address         *string   `db:"address"`
	Lat             *float64  `db:"lat"`
	Lng             *float64  `db:"lng"`
	AvgPrice        *int      `db:"avg_price"`
	BuildYear       *int      `db:"build_year"`
	TotalUnits      *int      `db:"total_units"`
	GreenRatio      *float64  `db:"green_ratio"`
	VolumeRatio     *float64  `db:"volume_ratio"`
	PropertyCompany *string   `db:"property_company"`
	PropertyFee     *float64  `db:"property_fee"`
	Developer       *string   `db:"developer"`
	ParkingRatio    *string   `db:"parking_ratio"`
	SourceURL       *string   `db:"source_url"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (s *communitySchema) toDomain() entity.Community {
	return entity.Community{
		ID:              s.ID,
		Name:            s.Name,
		City:            s.City,
		District:        s.District,
		Address:         s.Address,
		Lat:             s.Lat,
		Lng:             s.Lng,
		AvgPrice:        s.AvgPrice,
		BuildYear:       s.BuildYear,
		TotalUnits:      s.TotalUnits,
		GreenRatio:      s.GreenRatio,
		VolumeRatio:     s.VolumeRatio,
		PropertyCompany: s.PropertyCompany,
		PropertyFee:     s.PropertyFee,
		Developer:       s.Developer,
		ParkingRatio:    s.ParkingRatio,
		SourceURL:       s.SourceURL,
		UpdatedAt:       s.UpdatedAt,
	}
}

// schoolSchema — представление строки таблицы school_districts.
type schoolSchema struct {
	ID            int64   `db:"id"`
	CommunityID   int64   `db:"community_id"`
	PrimarySchool *string `db:"primary_school"`
	MiddleSchool  *string `db:"middle_school"`
	SchoolRank    *string `db:"school_rank"`
	Year          *int    `db:"year"`
}

func (s *schoolSchema) toDomain() entity.SchoolDistrict {
	var rank *value.SchoolRank
	if s.SchoolRank != nil {
		r := value.SchoolRank(*s.SchoolRank)
		rank = &r
	}

	return entity.SchoolDistrict{
		ID:            s.ID,
		CommunityID:   s.CommunityID,
		PrimarySchool: s.PrimarySchool,
		MiddleSchool:  s.MiddleSchool,
		Rank:          rank,
		Year:          s.Year,
	}
}

// poiSchema — представление строки таблицы nearby_pois.
type poiSchema struct {
	ID          int64  `db:"id"`
	CommunityID int64  `db:"community_id"`
	Category    string `db:"category"`
	Name        string `db:"name"`
	Distance    *int   `db:"distance"`
	WalkTime    *int   `db:"walk_time"`
}

func (s *poiSchema) toDomain() entity.NearbyPOI {
	return entity.NearbyPOI{
		ID:          s.ID,
		CommunityID: s.CommunityID,
		Category:    value.POICategory(s.Category),
		Name:        s.Name,
		Distance:    s.Distance,
		WalkTime:    s.WalkTime,
	}
}
