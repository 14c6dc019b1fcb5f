// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// SearchRequest — поисковый запрос подбора комплексов.
type SearchRequest struct {
	City     string   `json:"city" validate:"required"`
	District *string  `json:"district,omitempty"`
	PriceMin int      `json:"price_min" validate:"gte=0"`
	PriceMax int      `json:"price_max" validate:"gte=0"`
	Weights  *Weights `json:"weights,omitempty"`
}

// Weights — пользовательские веса измерений оценки.
type Weights struct {
	Price        float64 `json:"price" validate:"gte=0,lte=1"`
	School       float64 `json:"school" validate:"gte=0,lte=1"`
	Facilities   float64 `json:"facilities" validate:"gte=0,lte=1"`
	PropertyMgmt float64 `json:"property_mgmt" validate:"gte=0,lte=1"`
	Developer    float64 `json:"developer" validate:"gte=0,lte=1"`
}

// SubScores — баллы по измерениям, каждый в диапазоне [0,10].
type SubScores struct {
	Price        float64 `json:"price"`
	School       float64 `json:"school"`
	Facilities   float64 `json:"facilities"`
	PropertyMgmt float64 `json:"property_mgmt"`
	Developer    float64 `json:"developer"`
}

// CommunityBrief — строка результата поиска.
type CommunityBrief struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	District  *string   `json:"district,omitempty"`
	AvgPrice  *int      `json:"avg_price,omitempty"`
	Score     float64   `json:"score"`
	SubScores SubScores `json:"sub_scores"`
	Pros      []string  `json:"pros"`
	Cons      []string  `json:"cons"`
	Tags      []string  `json:"tags"`
}

type SearchResponse struct {
	Total       int              `json:"total"`
	Communities []CommunityBrief `json:"communities"`
}

// CommunityDetail — полная карточка комплекса с оценкой и окружением.
type CommunityDetail struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	City            string   `json:"city"`
	District        *string  `json:"district,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	AvgPrice        *int     `json:"avg_price,omitempty"`
	BuildYear       *int     `json:"build_year,omitempty"`
	TotalUnits      *int     `json:"total_units,omitempty"`
	GreenRatio      *float64 `json:"green_ratio,omitempty"`
	VolumeRatio     *float64 `json:"volume_ratio,omitempty"`
	PropertyCompany *string  `json:"property_company,omitempty"`
	PropertyFee     *float64 `json:"property_fee,omitempty"`
	Developer       *string  `json:"developer,omitempty"`
	ParkingRatio    *string  `json:"parking_ratio,omitempty"`

	Score     float64   `json:"score"`
	SubScores SubScores `json:"sub_scores"`
	Pros      []string  `json:"pros"`
	Cons      []string  `json:"cons"`
	Tags      []string  `json:"tags"`

	SchoolDistricts []SchoolDistrict `json:"school_districts"`
	NearbyPOIs      []NearbyPOI      `json:"nearby_pois"`
}

type SchoolDistrict struct {
	PrimarySchool *string `json:"primary_school,omitempty"`
	MiddleSchool  *string `json:"middle_school,omitempty"`
	SchoolRank    *string `json:"school_rank,omitempty"`
	Year          *int    `json:"year,omitempty"`
}

type NearbyPOI struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Distance *int   `json:"distance,omitempty"`
	WalkTime *int   `json:"walk_time,omitempty"`
}

// CrawlRequest — постановка обхода района в очередь.
type CrawlRequest struct {
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
	Pages    int    `json:"pages" validate:"gte=0,lte=100"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
