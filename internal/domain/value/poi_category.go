package value

// POICategory — категория объекта инфраструктуры рядом с комплексом.
type POICategory string

const (
	CategoryTransit  POICategory = "地铁"
	CategoryHospital POICategory = "医院"
	CategoryMall     POICategory = "商场"
	CategoryPark     POICategory = "公园"
	CategorySchool   POICategory = "学校"
)

func (c POICategory) String() string {
	return string(c)
}

// Categories перечисляет все поддерживаемые категории в фиксированном
// порядке — порядок важен для детерминированных обходов.
func Categories() []POICategory {
	return []POICategory{
		CategoryTransit,
		CategoryHospital,
		CategoryMall,
		CategoryPark,
		CategorySchool,
	}
}
