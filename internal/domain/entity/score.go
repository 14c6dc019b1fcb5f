package entity

// SubScores — пять измерений оценки, каждое в диапазоне [0,10].
// Набор всегда заполнен целиком: отсутствующие исходные данные
// отображаются в нейтральное или нулевое значение своего измерения.
type SubScores struct {
	Price        float64 `json:"price"`
	School       float64 `json:"school"`
	Facilities   float64 `json:"facilities"`
	PropertyMgmt float64 `json:"property_mgmt"`
	Developer    float64 `json:"developer"`
}

// ScoredCommunity — результат оценки одного комплекса в рамках запроса.
// Живёт только в пределах запроса и никогда не сохраняется: оценки
// пересчитываются заново при каждом обращении.
type ScoredCommunity struct {
	Community Community `json:"community"`
	Score     float64   `json:"score"`
	SubScores SubScores `json:"sub_scores"`
	Pros      []string  `json:"pros"`
	Cons      []string  `json:"cons"`
	Tags      []string  `json:"tags"`
}
