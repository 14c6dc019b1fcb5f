// Package insight выводит человекочитаемые плюсы, минусы и теги из
// под-оценок и сырых атрибутов комплекса. Анализ чистый и реентерабельный:
// без разделяемого состояния, порядок измерений фиксирован, поэтому
// одинаковые входы дают побайтово одинаковые списки.
package insight

import (
	"fmt"
	"strconv"

	"homescout/internal/domain/entity"
	"homescout/internal/domain/value"
)

const (
	proThreshold = 8.0
	conThreshold = 4.0

	// Максимальное расстояние до метро для тега "地铁旁" (метры).
	transitNearbyDistance = 500

	unknownValue = "未知"
)

// Attributes — атрибуты комплекса, подставляемые в шаблоны.
type Attributes struct {
	AvgPrice        *int
	PropertyCompany *string
	Developer       *string
}

// Result — результат анализа одного комплекса.
type Result struct {
	Pros []string
	Cons []string
	Tags []string
}

type dimension struct {
	score func(entity.SubScores) float64
	pro   func(Attributes) string
	con   func(Attributes) string
}

// Закрытый набор шаблонов, по одному на измерение. Порядок фиксирован,
// чтобы вывод был детерминированным.
var dimensions = []dimension{
	{
		score: func(s entity.SubScores) float64 { return s.Price },
		pro: func(a Attributes) string {
			return fmt.Sprintf("性价比高，均价 %s 元/㎡", intOrUnknown(a.AvgPrice))
		},
		con: func(a Attributes) string {
			return fmt.Sprintf("价格偏高，均价 %s 元/㎡", intOrUnknown(a.AvgPrice))
		},
	},
	{
		score: func(s entity.SubScores) float64 { return s.School },
		pro:   func(Attributes) string { return "对口优质学校" },
		con:   func(Attributes) string { return "学区一般或无对口学校" },
	},
	{
		score: func(s entity.SubScores) float64 { return s.Facilities },
		pro:   func(Attributes) string { return "周边配套齐全" },
		con:   func(Attributes) string { return "周边配套不足" },
	},
	{
		score: func(s entity.SubScores) float64 { return s.PropertyMgmt },
		pro: func(a Attributes) string {
			return fmt.Sprintf("物业管理品质优良（%s）", stringOrUnknown(a.PropertyCompany))
		},
		con: func(Attributes) string { return "物业管理品质较低" },
	},
	{
		score: func(s entity.SubScores) float64 { return s.Developer },
		pro: func(a Attributes) string {
			return fmt.Sprintf("知名开发商（%s）", stringOrUnknown(a.Developer))
		},
		con: func(Attributes) string { return "开发商知名度不高" },
	},
}

// Analyze классифицирует измерения: балл ≥ 8.0 даёт плюс, ≤ 4.0 — минус,
// промежуток не даёт ничего. Теги выводятся независимо от плюсов/минусов.
func Analyze(
	sub entity.SubScores,
	attrs Attributes,
	schoolRank *value.SchoolRank,
	pois []entity.NearbyPOI,
) Result {
	result := Result{
		Pros: []string{},
		Cons: []string{},
		Tags: []string{},
	}

	for _, dim := range dimensions {
		score := dim.score(sub)
		switch {
		case score >= proThreshold:
			result.Pros = append(result.Pros, dim.pro(attrs))
		case score <= conThreshold:
			result.Cons = append(result.Cons, dim.con(attrs))
		}
	}

	result.Tags = appendTags(result.Tags, sub, schoolRank, pois)

	return result
}

func appendTags(
	tags []string,
	sub entity.SubScores,
	schoolRank *value.SchoolRank,
	pois []entity.NearbyPOI,
) []string {
	if schoolRank != nil {
		switch *schoolRank {
		case value.RankCityKey:
			tags = append(tags, "市重点学区")
		case value.RankDistrictKey:
			tags = append(tags, "区重点学区")
		}
	}

	for _, poi := range pois {
		if poi.Category == value.CategoryTransit &&
			poi.Distance != nil && *poi.Distance <= transitNearbyDistance {
			tags = append(tags, "地铁旁")
			break
		}
	}

	if sub.Price >= proThreshold {
		tags = append(tags, "高性价比")
	}

	return tags
}

func intOrUnknown(v *int) string {
	if v == nil {
		return unknownValue
	}
	return strconv.Itoa(*v)
}

func stringOrUnknown(v *string) string {
	if v == nil || *v == "" {
		return unknownValue
	}
	return *v
}
