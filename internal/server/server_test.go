package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"homescout/internal/domain"
	"homescout/internal/domain/entity"
	"homescout/internal/domain/service/recommend"
	"homescout/internal/domain/value"
	"homescout/internal/infrastructure/crawler"
	"homescout/internal/server"
	"homescout/internal/tasks"
	"homescout/pkg/errcodes"
)

type fakeSearchService struct {
	lastQuery recommend.Query
	results   []entity.ScoredCommunity
}

func (f *fakeSearchService) Search(_ context.Context, q recommend.Query) ([]entity.ScoredCommunity, error) {
	f.lastQuery = q
	return f.results, nil
}

type fakeScoreService struct {
	scored entity.ScoredCommunity
	err    error
}

func (f *fakeScoreService) ScoreOne(context.Context, int64, value.Weights) (entity.ScoredCommunity, error) {
	return f.scored, f.err
}

type fakeSchoolLister struct{}

func (fakeSchoolLister) ListByCommunity(context.Context, int64) ([]entity.SchoolDistrict, error) {
	return nil, nil
}

type fakePOILister struct{}

func (fakePOILister) ListByCommunity(context.Context, int64) ([]entity.NearbyPOI, error) {
	return nil, nil
}

type fakeEnqueuer struct {
	enqueued []*asynq.Task
	err      error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.enqueued = append(f.enqueued, task)

	return &asynq.TaskInfo{ID: "task-1"}, nil
}

func newRouter(
	search *fakeSearchService,
	score *fakeScoreService,
	queue *fakeEnqueuer,
) http.Handler {
	srv := server.NewServer(
		server.NewSearchServer(search),
		server.NewCommunityServer(score, fakeSchoolLister{}, fakePOILister{}),
		server.NewCrawlServer(queue, crawler.NewBeikeParser()),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	return router
}

func scoredFixture(id int64, name string, score float64) entity.ScoredCommunity {
	return entity.ScoredCommunity{
		Community: entity.Community{ID: id, Name: name, City: "上海"},
		Score:     score,
		Pros:      []string{},
		Cons:      []string{},
		Tags:      []string{},
	}
}

func TestPostSearch(t *testing.T) {
	rq := require.New(t)

	search := &fakeSearchService{
		results: []entity.ScoredCommunity{
			scoredFixture(2, "世纪名苑", 86.6),
			scoredFixture(1, "金桥花园", 54.1),
		},
	}
	router := newRouter(search, &fakeScoreService{}, &fakeEnqueuer{})

	body := `{"city":"上海","district":"pudong","price_min":30000,"price_max":60000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusOK, rec.Code)

	var response struct {
		Total       int `json:"total"`
		Communities []struct {
			ID    int64   `json:"id"`
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"communities"`
	}
	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &response))

	rq.Equal(2, response.Total)
	rq.Equal("世纪名苑", response.Communities[0].Name)
	rq.InDelta(86.6, response.Communities[0].Score, 0.001)

	rq.Equal("上海", search.lastQuery.City)
	rq.NotNil(search.lastQuery.District)
	rq.Equal("pudong", *search.lastQuery.District)
	rq.Equal(30000, search.lastQuery.PriceMin)
	rq.Equal(60000, search.lastQuery.PriceMax)
	rq.Equal(value.DefaultWeights(), search.lastQuery.Weights, "omitted weights fall back to defaults")
}

func TestPostSearchZeroCeilingMeansUnbounded(t *testing.T) {
	rq := require.New(t)

	search := &fakeSearchService{}
	router := newRouter(search, &fakeScoreService{}, &fakeEnqueuer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"city":"上海"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusOK, rec.Code)
	rq.Equal(recommend.UnboundedPriceMax, search.lastQuery.PriceMax)
}

func TestPostSearchValidation(t *testing.T) {
	rq := require.New(t)

	router := newRouter(&fakeSearchService{}, &fakeScoreService{}, &fakeEnqueuer{})

	testCases := []struct {
		name string
		body string
	}{
		{name: "broken json", body: `{"city":`},
		{name: "missing city", body: `{"price_min":0}`},
		{name: "negative price", body: `{"city":"上海","price_min":-1}`},
		{name: "weight above one", body: `{"city":"上海","weights":{"price":1.5}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			rq.Equal(http.StatusBadRequest, rec.Code, tc.name)
		})
	}
}

func TestGetCommunity(t *testing.T) {
	rq := require.New(t)

	score := &fakeScoreService{scored: scoredFixture(5, "翠湖天地", 77.2)}
	router := newRouter(&fakeSearchService{}, score, &fakeEnqueuer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/community/5", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusOK, rec.Code)

	var response struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}
	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	rq.Equal(int64(5), response.ID)
	rq.Equal("翠湖天地", response.Name)
	rq.InDelta(77.2, response.Score, 0.001)
}

func TestGetCommunityInvalidID(t *testing.T) {
	rq := require.New(t)

	router := newRouter(&fakeSearchService{}, &fakeScoreService{}, &fakeEnqueuer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/community/abc", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusBadRequest, rec.Code)
	rq.Contains(rec.Body.String(), errcodes.InvalidCommunityID.String())
}

func TestGetCommunityNotFound(t *testing.T) {
	rq := require.New(t)

	score := &fakeScoreService{err: domain.NewError(errcodes.CommunityNotFound, "community not found")}
	router := newRouter(&fakeSearchService{}, score, &fakeEnqueuer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/community/404", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusNotFound, rec.Code)
}

func TestGetConfigWeights(t *testing.T) {
	rq := require.New(t)

	router := newRouter(&fakeSearchService{}, &fakeScoreService{}, &fakeEnqueuer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config/weights", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusOK, rec.Code)

	var weights map[string]float64
	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &weights))
	rq.InDelta(0.30, weights["price"], 0.001)
	rq.InDelta(0.25, weights["school"], 0.001)
	rq.InDelta(0.10, weights["developer"], 0.001)
}

func TestPostCrawl(t *testing.T) {
	rq := require.New(t)

	queue := &fakeEnqueuer{}
	router := newRouter(&fakeSearchService{}, &fakeScoreService{}, queue)

	body := `{"city":"上海","district":"pudong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawl", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusAccepted, rec.Code)
	rq.Len(queue.enqueued, 1)
	rq.Equal(tasks.TypeCrawlDistrict, queue.enqueued[0].Type())

	var payload tasks.CrawlDistrictPayload
	rq.NoError(json.Unmarshal(queue.enqueued[0].Payload(), &payload))
	rq.Equal("上海", payload.City)
	rq.Equal("pudong", payload.District)
	rq.Equal(3, payload.Pages, "default page count")
}

func TestPostCrawlUnsupportedCity(t *testing.T) {
	rq := require.New(t)

	queue := &fakeEnqueuer{}
	router := newRouter(&fakeSearchService{}, &fakeScoreService{}, queue)

	body := `{"city":"北京","district":"chaoyang"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawl", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	rq.Equal(http.StatusBadRequest, rec.Code)
	rq.Empty(queue.enqueued)
}
