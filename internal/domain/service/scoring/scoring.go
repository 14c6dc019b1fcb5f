// Package scoring реализует пять независимых измерений оценки жилого
// комплекса и взвешенную свёртку в итоговый балл. Все функции чистые,
// без ввода-вывода: одинаковые входы всегда дают одинаковый результат.
package scoring

import (
	"math"

	"homescout/internal/domain/entity"
	"homescout/internal/domain/value"
)

// Веса важности категорий инфраструктуры.
var categoryWeights = map[value.POICategory]float64{
	value.CategoryTransit:  3.0,
	value.CategoryHospital: 2.0,
	value.CategoryMall:     2.0,
	value.CategoryPark:     1.5,
	value.CategorySchool:   1.5,
}

const unknownCategoryWeight = 1.0

// Соответствие уровня школы баллу. Ровно один уровень — ровно один балл,
// без интерполяции.
var schoolRankScores = map[value.SchoolRank]float64{
	value.RankCityKey:     10.0,
	value.RankDistrictKey: 7.0,
	value.RankOrdinary:    5.0,
}

// Балл за уровень, который присутствует, но не входит в известный набор.
const unrecognizedRankScore = 3.0

// Engine — движок оценки. Таблицы рангов передаются при создании и
// дальше не меняются.
type Engine struct {
	tables RankTables
}

// RankTables — справочники признанных управляющих компаний и застройщиков.
type RankTables interface {
	PropertyTopTier(name string) bool
	PropertySecondTier(name string) bool
	DeveloperTopTier(name string) bool
	DeveloperSecondTier(name string) bool
}

func NewEngine(tables RankTables) *Engine {
	return &Engine{tables: tables}
}

// PriceScore оценивает ценовую конкурентность: цена — сигнал затрат,
// ниже — лучше в пределах бюджета.
//
//   - нет цены → 5.0 (нейтрально)
//   - цена ≤ нижней границы → 10.0
//   - в пределах бюджета → линейно от 10.0 до 6.0
//   - превышение до 20% → линейно от 4.0 до 1.0
//   - превышение от 20% → 1.0
func (e *Engine) PriceScore(avgPrice *int, priceMin, priceMax int) float64 {
	if avgPrice == nil {
		return 5.0
	}

	price := float64(*avgPrice)
	minP := float64(priceMin)
	maxP := float64(priceMax)

	if price <= minP {
		return 10.0
	}

	upperBound := maxP * 1.2
	if price >= upperBound {
		return 1.0
	}

	if price > maxP {
		ratio := (price - maxP) / (upperBound - maxP)
		return round1(4.0 - ratio*3.0)
	}

	priceRange := maxP - minP
	if priceRange == 0 {
		return 10.0
	}

	ratio := (price - minP) / priceRange
	return round1(10.0 - ratio*4.0)
}

// SchoolScore оценивает закреплённую школу по уровню.
// nil означает отсутствие школы и даёт 0.0; присутствующий, но
// нераспознанный уровень — консервативные 3.0.
func (e *Engine) SchoolScore(rank *value.SchoolRank) float64 {
	if rank == nil {
		return 0.0
	}

	if score, ok := schoolRankScores[*rank]; ok {
		return score
	}

	return unrecognizedRankScore
}

// FacilitiesScore оценивает инфраструктуру: каждый POI с известным
// расстоянием получает балл своей дистанционной корзины, итог —
// среднее по баллам, взвешенное важностью категории, с потолком 10.0.
// POI без расстояния пропускаются. Пустой список — 0.0.
func (e *Engine) FacilitiesScore(pois []entity.NearbyPOI) float64 {
	if len(pois) == 0 {
		return 0.0
	}

	var weightedSum, totalWeight float64

	for _, poi := range pois {
		if poi.Distance == nil {
			continue
		}

		weight, ok := categoryWeights[poi.Category]
		if !ok {
			weight = unknownCategoryWeight
		}

		weightedSum += distanceScore(*poi.Distance) * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0.0
	}

	return round1(math.Min(weightedSum/totalWeight, 10.0))
}

func distanceScore(distance int) float64 {
	switch {
	case distance <= 500:
		return 10.0
	case distance <= 1000:
		return 7.0
	case distance <= 2000:
		return 4.0
	default:
		return 1.0
	}
}

// PropertyScore оценивает управление комплексом: базовые 5.0 плюс
// поправки за ранг управляющей компании (ранги взаимоисключающие,
// верхний уровень имеет приоритет), озеленение и плотность застройки.
func (e *Engine) PropertyScore(company *string, fee, greenRatio, volumeRatio *float64) float64 {
	score := 5.0

	if company != nil {
		switch {
		case e.tables.PropertyTopTier(*company):
			score += 3.0
		case e.tables.PropertySecondTier(*company):
			score += 1.5
		}
	}

	if greenRatio != nil {
		switch {
		case *greenRatio >= 0.35:
			score += 1.0
		case *greenRatio < 0.20:
			score -= 1.0
		}
	}

	if volumeRatio != nil {
		switch {
		case *volumeRatio <= 2.0:
			score += 1.0
		case *volumeRatio > 4.0:
			score -= 1.0
		}
	}

	return round1(clamp(score, 0.0, 10.0))
}

// DeveloperScore оценивает застройщика по справочнику брендов.
// Нераспознанный застройщик получает те же 3.0, что и отсутствующий —
// консервативное значение по умолчанию, не штраф.
func (e *Engine) DeveloperScore(developer *string) float64 {
	if developer == nil {
		return 3.0
	}

	if e.tables.DeveloperTopTier(*developer) {
		return 10.0
	}

	if e.tables.DeveloperSecondTier(*developer) {
		return 7.0
	}

	return 3.0
}

// TotalScore — взвешенная сумма пяти измерений, два знака после запятой.
// Все пять под-оценок обязательны; веса предполагаются валидированными
// на границе (неотрицательными).
func (e *Engine) TotalScore(sub entity.SubScores, weights value.Weights) float64 {
	total := sub.Price*weights.Price +
		sub.School*weights.School +
		sub.Facilities*weights.Facilities +
		sub.PropertyMgmt*weights.PropertyMgmt +
		sub.Developer*weights.Developer

	return round2(total)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
