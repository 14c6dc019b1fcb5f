package value

// Weights — пользовательские веса пяти измерений оценки.
// Сумма весов должна давать 1.0, но движок это не навязывает:
// перекошенная сумма пропорционально перекашивает итоговый балл,
// ответственность за нормализацию лежит на вызывающей стороне.
type Weights struct {
	Price        float64
	School       float64
	Facilities   float64
	PropertyMgmt float64
	Developer    float64
}

// DefaultWeights возвращает веса по умолчанию для поиска без настройки.
func DefaultWeights() Weights {
	return Weights{
		Price:        0.30,
		School:       0.25,
		Facilities:   0.20,
		PropertyMgmt: 0.15,
		Developer:    0.10,
	}
}
