package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"homescout/internal/domain/entity"
	"homescout/internal/domain/service/scoring"
	"homescout/internal/domain/value"
	"homescout/internal/rank"
)

func newEngine(t *testing.T) *scoring.Engine {
	t.Helper()

	tables := rank.NewTables(
		[]string{"优质物业"},
		[]string{"次级物业"},
		[]string{"品牌开发商"},
		[]string{"区域开发商"},
	)

	return scoring.NewEngine(tables)
}

func TestPriceScore(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	price := func(v int) *int { return &v }

	testCases := []struct {
		name     string
		avgPrice *int
		priceMin int
		priceMax int
		expected float64
	}{
		{name: "no price is neutral", avgPrice: nil, priceMin: 30000, priceMax: 60000, expected: 5.0},
		{name: "at lower bound", avgPrice: price(30000), priceMin: 30000, priceMax: 60000, expected: 10.0},
		{name: "below lower bound", avgPrice: price(10000), priceMin: 30000, priceMax: 60000, expected: 10.0},
		{name: "mid budget", avgPrice: price(50000), priceMin: 30000, priceMax: 60000, expected: 7.3},
		{name: "at upper bound", avgPrice: price(60000), priceMin: 30000, priceMax: 60000, expected: 6.0},
		{name: "halfway into overshoot band", avgPrice: price(66000), priceMin: 30000, priceMax: 60000, expected: 2.5},
		{name: "at overshoot cap", avgPrice: price(72000), priceMin: 30000, priceMax: 60000, expected: 1.0},
		{name: "far above budget", avgPrice: price(200000), priceMin: 30000, priceMax: 60000, expected: 1.0},
		{name: "degenerate window at price", avgPrice: price(50000), priceMin: 50000, priceMax: 50000, expected: 10.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.InDelta(tc.expected, engine.PriceScore(tc.avgPrice, tc.priceMin, tc.priceMax), 0.001, tc.name)
		})
	}
}

func TestSchoolScore(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	rank := func(v value.SchoolRank) *value.SchoolRank { return &v }

	rq.InDelta(0.0, engine.SchoolScore(nil), 0.001)
	rq.InDelta(10.0, engine.SchoolScore(rank(value.RankCityKey)), 0.001)
	rq.InDelta(7.0, engine.SchoolScore(rank(value.RankDistrictKey)), 0.001)
	rq.InDelta(5.0, engine.SchoolScore(rank(value.RankOrdinary)), 0.001)
	rq.InDelta(3.0, engine.SchoolScore(rank(value.SchoolRank("某未知等级"))), 0.001)
}

func TestFacilitiesScore(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	distance := func(v int) *int { return &v }

	testCases := []struct {
		name     string
		pois     []entity.NearbyPOI
		expected float64
	}{
		{name: "empty list", pois: nil, expected: 0.0},
		{
			name: "all distances unknown",
			pois: []entity.NearbyPOI{
				{Category: value.CategoryTransit, Distance: nil},
			},
			expected: 0.0,
		},
		{
			name: "single close transit",
			pois: []entity.NearbyPOI{
				{Category: value.CategoryTransit, Distance: distance(400)},
			},
			expected: 10.0,
		},
		{
			name: "weighted mix",
			pois: []entity.NearbyPOI{
				{Category: value.CategoryTransit, Distance: distance(400)},
				{Category: value.CategoryHospital, Distance: distance(1500)},
			},
			// (10*3.0 + 4*2.0) / 5.0
			expected: 7.6,
		},
		{
			name: "unknown category gets unit weight",
			pois: []entity.NearbyPOI{
				{Category: value.POICategory("加油站"), Distance: distance(3000)},
			},
			expected: 1.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.InDelta(tc.expected, engine.FacilitiesScore(tc.pois), 0.001, tc.name)
		})
	}
}

func TestFacilitiesScoreCloserIsNotWorse(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	near, far := 300, 1800
	closer := engine.FacilitiesScore([]entity.NearbyPOI{
		{Category: value.CategoryTransit, Distance: &near},
	})
	farther := engine.FacilitiesScore([]entity.NearbyPOI{
		{Category: value.CategoryTransit, Distance: &far},
	})

	rq.GreaterOrEqual(closer, farther)
}

func TestPropertyScore(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	str := func(v string) *string { return &v }
	f64 := func(v float64) *float64 { return &v }

	testCases := []struct {
		name        string
		company     *string
		greenRatio  *float64
		volumeRatio *float64
		expected    float64
	}{
		{name: "no data is base", expected: 5.0},
		{name: "top tier company", company: str("优质物业"), expected: 8.0},
		{name: "second tier company", company: str("次级物业"), expected: 6.5},
		{name: "unknown company", company: str("无名物业"), expected: 5.0},
		{name: "everything favorable caps at ten", company: str("优质物业"), greenRatio: f64(0.40), volumeRatio: f64(1.5), expected: 10.0},
		{name: "everything unfavorable", greenRatio: f64(0.10), volumeRatio: f64(5.0), expected: 3.0},
		{name: "green boundary rewards at 0.35", greenRatio: f64(0.35), expected: 6.0},
		{name: "green dead zone", greenRatio: f64(0.25), expected: 5.0},
		{name: "volume boundary rewards at 2.0", volumeRatio: f64(2.0), expected: 6.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.InDelta(tc.expected, engine.PropertyScore(tc.company, nil, tc.greenRatio, tc.volumeRatio), 0.001, tc.name)
		})
	}
}

func TestDeveloperScore(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	str := func(v string) *string { return &v }

	rq.InDelta(3.0, engine.DeveloperScore(nil), 0.001)
	rq.InDelta(10.0, engine.DeveloperScore(str("品牌开发商")), 0.001)
	rq.InDelta(7.0, engine.DeveloperScore(str("区域开发商")), 0.001)
	rq.InDelta(3.0, engine.DeveloperScore(str("无名开发商")), 0.001)
}

func TestDeveloperScoreWithEmbeddedTables(t *testing.T) {
	rq := require.New(t)

	tables, err := rank.Load()
	rq.NoError(err)

	engine := scoring.NewEngine(tables)

	vanke := "万科"
	rq.InDelta(10.0, engine.DeveloperScore(&vanke), 0.001)
}

func TestTotalScore(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	weights := value.DefaultWeights()

	perfect := entity.SubScores{Price: 10, School: 10, Facilities: 10, PropertyMgmt: 10, Developer: 10}
	rq.InDelta(10.0, engine.TotalScore(perfect, weights), 0.001)

	zero := entity.SubScores{}
	rq.InDelta(0.0, engine.TotalScore(zero, weights), 0.001)

	mixed := entity.SubScores{Price: 8, School: 6, Facilities: 4, PropertyMgmt: 10, Developer: 2}
	rq.InDelta(6.4, engine.TotalScore(mixed, weights), 0.001)
}

func TestTotalScoreWeightSensitivity(t *testing.T) {
	rq := require.New(t)
	engine := newEngine(t)

	sub := entity.SubScores{Price: 9, School: 2, Facilities: 5, PropertyMgmt: 5, Developer: 5}

	priceHeavy := value.Weights{Price: 0.6, School: 0.1, Facilities: 0.1, PropertyMgmt: 0.1, Developer: 0.1}
	schoolHeavy := value.Weights{Price: 0.1, School: 0.6, Facilities: 0.1, PropertyMgmt: 0.1, Developer: 0.1}

	rq.Greater(engine.TotalScore(sub, priceHeavy), engine.TotalScore(sub, schoolHeavy))
}
