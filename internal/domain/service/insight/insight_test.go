package insight_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"homescout/internal/domain/entity"
	"homescout/internal/domain/service/insight"
	"homescout/internal/domain/value"
)

func TestAnalyzeThresholds(t *testing.T) {
	rq := require.New(t)

	price := 45000
	company := "优质物业"
	developer := "品牌开发商"

	attrs := insight.Attributes{
		AvgPrice:        &price,
		PropertyCompany: &company,
		Developer:       &developer,
	}

	sub := entity.SubScores{
		Price:        9.0, // pro
		School:       4.0, // con, boundary inclusive
		Facilities:   5.5, // neither
		PropertyMgmt: 8.0, // pro, boundary inclusive
		Developer:    2.0, // con
	}

	result := insight.Analyze(sub, attrs, nil, nil)

	rq.Equal([]string{
		"性价比高，均价 45000 元/㎡",
		"物业管理品质优良（优质物业）",
	}, result.Pros)

	rq.Equal([]string{
		"学区一般或无对口学校",
		"开发商知名度不高",
	}, result.Cons)
}

func TestAnalyzeUnknownPlaceholders(t *testing.T) {
	rq := require.New(t)

	sub := entity.SubScores{Price: 2.0, PropertyMgmt: 9.0, Developer: 9.0}

	result := insight.Analyze(sub, insight.Attributes{}, nil, nil)

	rq.Contains(result.Cons, "价格偏高，均价 未知 元/㎡")
	rq.Contains(result.Pros, "物业管理品质优良（未知）")
	rq.Contains(result.Pros, "知名开发商（未知）")
}

func TestAnalyzeTags(t *testing.T) {
	rq := require.New(t)

	cityKey := value.RankCityKey
	districtKey := value.RankDistrictKey
	near := 300
	far := 800

	testCases := []struct {
		name       string
		sub        entity.SubScores
		schoolRank *value.SchoolRank
		pois       []entity.NearbyPOI
		expected   []string
	}{
		{
			name:     "no signals",
			sub:      entity.SubScores{Price: 5.0},
			expected: []string{},
		},
		{
			name:       "city key school",
			schoolRank: &cityKey,
			expected:   []string{"市重点学区"},
		},
		{
			name:       "district key school",
			schoolRank: &districtKey,
			expected:   []string{"区重点学区"},
		},
		{
			name: "transit within 500m",
			pois: []entity.NearbyPOI{
				{Category: value.CategoryTransit, Distance: &near},
			},
			expected: []string{"地铁旁"},
		},
		{
			name: "transit too far",
			pois: []entity.NearbyPOI{
				{Category: value.CategoryTransit, Distance: &far},
			},
			expected: []string{},
		},
		{
			name: "hospital nearby is not transit",
			pois: []entity.NearbyPOI{
				{Category: value.CategoryHospital, Distance: &near},
			},
			expected: []string{},
		},
		{
			name:     "good value",
			sub:      entity.SubScores{Price: 8.0},
			expected: []string{"高性价比"},
		},
		{
			name:       "all tags in fixed order",
			sub:        entity.SubScores{Price: 9.5},
			schoolRank: &cityKey,
			pois: []entity.NearbyPOI{
				{Category: value.CategoryTransit, Distance: &near},
				{Category: value.CategoryTransit, Distance: &near},
			},
			expected: []string{"市重点学区", "地铁旁", "高性价比"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			result := insight.Analyze(tc.sub, insight.Attributes{}, tc.schoolRank, tc.pois)

			rq.Equal(tc.expected, result.Tags, tc.name)
		})
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	rq := require.New(t)

	price := 38000
	cityKey := value.RankCityKey
	near := 200

	sub := entity.SubScores{Price: 8.7, School: 10, Facilities: 3.1, PropertyMgmt: 6, Developer: 9}
	attrs := insight.Attributes{AvgPrice: &price}
	pois := []entity.NearbyPOI{{Category: value.CategoryTransit, Distance: &near}}

	first := insight.Analyze(sub, attrs, &cityKey, pois)
	second := insight.Analyze(sub, attrs, &cityKey, pois)

	rq.Equal(first, second)
}

func TestAnalyzeEmptyListsAreNotNil(t *testing.T) {
	rq := require.New(t)

	result := insight.Analyze(entity.SubScores{Price: 5, School: 5, Facilities: 5, PropertyMgmt: 5, Developer: 5}, insight.Attributes{}, nil, nil)

	rq.NotNil(result.Pros)
	rq.NotNil(result.Cons)
	rq.NotNil(result.Tags)
	rq.Empty(result.Pros)
	rq.Empty(result.Cons)
	rq.Empty(result.Tags)
}
