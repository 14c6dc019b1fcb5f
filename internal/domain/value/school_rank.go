package value

// SchoolRank — уровень школы, закреплённой за жилым комплексом.
// Отсутствие записи об учебном заведении — валидное состояние,
// оно отличается от "школа есть, но уровень не распознан".
type SchoolRank string

const (
	RankCityKey     SchoolRank = "市重点"
	RankDistrictKey SchoolRank = "区重点"
	RankOrdinary    SchoolRank = "普通"
)

func (r SchoolRank) String() string {
	return string(r)
}
