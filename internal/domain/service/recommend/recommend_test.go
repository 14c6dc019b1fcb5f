package recommend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"homescout/internal/domain"
	"homescout/internal/domain/entity"
	"homescout/internal/domain/service/recommend"
	"homescout/internal/domain/service/scoring"
	"homescout/internal/domain/value"
	"homescout/internal/rank"
	"homescout/pkg/errcodes"
)

type fakeCommunityRepo struct {
	communities []entity.Community
	lastFilter  domain.CommunityFilter
}

func (f *fakeCommunityRepo) Filter(_ context.Context, filter domain.CommunityFilter) ([]entity.Community, error) {
	f.lastFilter = filter
	return f.communities, nil
}

func (f *fakeCommunityRepo) GetByID(_ context.Context, id int64) (*entity.Community, error) {
	for _, c := range f.communities {
		if c.ID == id {
			return &c, nil
		}
	}

	return nil, nil
}

type fakeSchoolRepo struct {
	byCommunity map[int64]*entity.SchoolDistrict
}

func (f *fakeSchoolRepo) LatestForCommunity(_ context.Context, communityID int64) (*entity.SchoolDistrict, error) {
	return f.byCommunity[communityID], nil
}

type fakePOIRepo struct {
	byCommunity map[int64][]entity.NearbyPOI
}

func (f *fakePOIRepo) ListByCommunity(_ context.Context, communityID int64) ([]entity.NearbyPOI, error) {
	return f.byCommunity[communityID], nil
}

func newService(communities *fakeCommunityRepo) *recommend.Service {
	engine := scoring.NewEngine(rank.NewTables(nil, nil, nil, nil))

	return recommend.NewService(
		communities,
		&fakeSchoolRepo{byCommunity: map[int64]*entity.SchoolDistrict{}},
		&fakePOIRepo{byCommunity: map[int64][]entity.NearbyPOI{}},
		engine,
	)
}

func intPtr(v int) *int { return &v }

func TestSearchRanksByScoreDescending(t *testing.T) {
	rq := require.New(t)

	repo := &fakeCommunityRepo{
		communities: []entity.Community{
			{ID: 1, Name: "金桥花园", City: "上海", AvgPrice: intPtr(55000)},
			{ID: 2, Name: "世纪名苑", City: "上海", AvgPrice: intPtr(40000)},
		},
	}

	service := newService(repo)

	results, err := service.Search(context.Background(), recommend.Query{
		City:     "上海",
		PriceMin: 30000,
		PriceMax: 60000,
		Weights:  value.DefaultWeights(),
	})
	rq.NoError(err)
	rq.Len(results, 2)

	// Дешевле внутри бюджета — выше.
	rq.Equal(int64(2), results[0].Community.ID)
	rq.Equal(int64(1), results[1].Community.ID)
	rq.Greater(results[0].Score, results[1].Score)
}

func TestSearchTieBreaksByID(t *testing.T) {
	rq := require.New(t)

	repo := &fakeCommunityRepo{
		communities: []entity.Community{
			{ID: 7, Name: "绿洲二期", City: "上海"},
			{ID: 3, Name: "绿洲一期", City: "上海"},
		},
	}

	service := newService(repo)

	for range 5 {
		results, err := service.Search(context.Background(), recommend.Query{
			City:     "上海",
			PriceMin: 0,
			PriceMax: recommend.UnboundedPriceMax,
			Weights:  value.DefaultWeights(),
		})
		rq.NoError(err)
		rq.Len(results, 2)
		rq.Equal(results[0].Score, results[1].Score)
		rq.Equal(int64(3), results[0].Community.ID)
		rq.Equal(int64(7), results[1].Community.ID)
	}
}

func TestSearchNullPriceWindowBoundary(t *testing.T) {
	rq := require.New(t)

	repo := &fakeCommunityRepo{}
	service := newService(repo)

	testCases := []struct {
		name             string
		priceMin         int
		priceMax         int
		includeNullPrice bool
	}{
		{name: "unbounded window admits null price", priceMin: 0, priceMax: recommend.UnboundedPriceMax, includeNullPrice: true},
		{name: "above unbounded threshold", priceMin: 0, priceMax: recommend.UnboundedPriceMax + 1, includeNullPrice: true},
		{name: "bounded ceiling excludes null price", priceMin: 0, priceMax: recommend.UnboundedPriceMax - 1, includeNullPrice: false},
		{name: "bounded floor excludes null price", priceMin: 1, priceMax: recommend.UnboundedPriceMax, includeNullPrice: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			_, err := service.Search(context.Background(), recommend.Query{
				City:     "上海",
				PriceMin: tc.priceMin,
				PriceMax: tc.priceMax,
				Weights:  value.DefaultWeights(),
			})
			rq.NoError(err)
			rq.Equal(tc.includeNullPrice, repo.lastFilter.IncludeNullPrice, tc.name)
		})
	}
}

func TestSearchPassesDistrict(t *testing.T) {
	rq := require.New(t)

	repo := &fakeCommunityRepo{}
	service := newService(repo)

	district := "pudong"

	_, err := service.Search(context.Background(), recommend.Query{
		City:     "上海",
		District: &district,
		PriceMin: 0,
		PriceMax: recommend.UnboundedPriceMax,
		Weights:  value.DefaultWeights(),
	})
	rq.NoError(err)
	rq.NotNil(repo.lastFilter.District)
	rq.Equal("pudong", *repo.lastFilter.District)
	rq.Equal("上海", repo.lastFilter.City)
}

func TestSearchEmptyResultIsSuccess(t *testing.T) {
	rq := require.New(t)

	service := newService(&fakeCommunityRepo{})

	results, err := service.Search(context.Background(), recommend.Query{
		City:     "苏州",
		PriceMin: 0,
		PriceMax: recommend.UnboundedPriceMax,
		Weights:  value.DefaultWeights(),
	})
	rq.NoError(err)
	rq.Empty(results)
}

func TestScoreOneMissingDataDegradesToNeutral(t *testing.T) {
	rq := require.New(t)

	repo := &fakeCommunityRepo{
		communities: []entity.Community{
			{ID: 1, Name: "无名小区", City: "上海"},
		},
	}

	service := newService(repo)

	scored, err := service.ScoreOne(context.Background(), 1, value.DefaultWeights())
	rq.NoError(err)

	// Цена и управление нейтральны, школа и инфраструктура отсутствуют,
	// застройщик неизвестен.
	rq.InDelta(5.0, scored.SubScores.Price, 0.001)
	rq.InDelta(0.0, scored.SubScores.School, 0.001)
	rq.InDelta(0.0, scored.SubScores.Facilities, 0.001)
	rq.InDelta(5.0, scored.SubScores.PropertyMgmt, 0.001)
	rq.InDelta(3.0, scored.SubScores.Developer, 0.001)

	// 2.55 по шкале [0,10] → 25.5 по витринной шкале.
	rq.InDelta(25.5, scored.Score, 0.001)
}

func TestScoreOneNotFound(t *testing.T) {
	rq := require.New(t)

	service := newService(&fakeCommunityRepo{})

	_, err := service.ScoreOne(context.Background(), 404, value.DefaultWeights())
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.CommunityNotFound, code)
}

func TestScoreOneUsesUnboundedWindow(t *testing.T) {
	rq := require.New(t)

	// Цена далеко за любым разумным бюджетом, но в безграничном окне
	// это всё ещё верх шкалы, а не дисквалификация.
	repo := &fakeCommunityRepo{
		communities: []entity.Community{
			{ID: 1, Name: "汤臣一品", City: "上海", AvgPrice: intPtr(120000)},
		},
	}

	service := newService(repo)

	scored, err := service.ScoreOne(context.Background(), 1, value.DefaultWeights())
	rq.NoError(err)
	rq.Greater(scored.SubScores.Price, 9.0)
}
