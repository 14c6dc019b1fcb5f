package entity

import "homescout/internal/domain/value"

// SchoolDistrict — закреплённые за комплексом школы и их уровень.
// У комплекса бывает ноль или несколько записей за разные годы;
// для оценки берётся запись с самым свежим годом.
type SchoolDistrict struct {
	ID            int64             `json:"id" db:"id"`
	CommunityID   int64             `json:"community_id" db:"community_id"`
	PrimarySchool *string           `json:"primary_school,omitempty" db:"primary_school"`
	MiddleSchool  *string           `json:"middle_school,omitempty" db:"middle_school"`
	Rank          *value.SchoolRank `json:"school_rank,omitempty" db:"school_rank"`
	Year          *int              `json:"year,omitempty" db:"year"`
}
