// Package geo оборачивает внешний гео-сервис (高德) поиска POI вокруг точки.
// Отсутствие координат или API-ключа — валидное состояние: клиент
// возвращает пустой результат, и балл инфраструктуры честно падает к нулю.
package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"

	"homescout/internal/domain/entity"
	"homescout/internal/domain/value"
	"homescout/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	defaultBaseURL = "https://restapi.amap.com/v3/place/around"
	defaultRadius  = 1000

	requestTimeout = 10 * time.Second

	responseCacheTTL = 5 * time.Minute

	// Пешая скорость для оценки времени в пути, метров в минуту.
	walkSpeed = 80
)

// Коды категорий POI провайдера.
var categoryTypes = map[value.POICategory]string{
	value.CategoryTransit:  "150500",
	value.CategoryHospital: "090100",
	value.CategoryMall:     "060100|060200",
	value.CategoryPark:     "110200",
	value.CategorySchool:   "141200",
}

type Client struct {
	apiKey  string
	baseURL string
	radius  int
	client  *http.Client
	cache   *gocache.Cache
}

type Option func(*Client)

// WithBaseURL подменяет адрес провайдера (для тестов).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithRadius(radius int) Option {
	return func(c *Client) {
		if radius > 0 {
			c.radius = radius
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		radius:  defaultRadius,
		client: &http.Client{
			Timeout:   requestTimeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport),
		},
		cache: gocache.New(responseCacheTTL, responseCacheTTL),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type amapResponse struct {
	Status string    `json:"status"`
	Pois   []amapPOI `json:"pois"`
}

type amapPOI struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// SearchNearby ищет POI заданной категории вокруг точки. Без ключа или
// для неизвестной категории возвращает пустой результат без ошибки.
func (c *Client) SearchNearby(
	ctx context.Context,
	lat, lng float64,
	category value.POICategory,
	radius int,
) ([]entity.NearbyPOI, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	typeCode, ok := categoryTypes[category]
	if !ok {
		return nil, nil
	}

	if radius <= 0 {
		radius = c.radius
	}

	cacheKey := fmt.Sprintf("%.6f:%.6f:%s:%d", lat, lng, category, radius)
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]entity.NearbyPOI), nil
	}

	reqURL := c.buildSearchURL(lat, lng, typeCode, radius)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var parsed amapResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	pois := parsePOIs(parsed, category)
	c.cache.Set(cacheKey, pois, gocache.DefaultExpiration)

	return pois, nil
}

// SearchAllCategories собирает POI всех поддерживаемых категорий.
func (c *Client) SearchAllCategories(ctx context.Context, lat, lng float64) ([]entity.NearbyPOI, error) {
	var all []entity.NearbyPOI

	for _, category := range value.Categories() {
		pois, err := c.SearchNearby(ctx, lat, lng, category, c.radius)
		if err != nil {
			return nil, fmt.Errorf("SearchNearby %s: %w", category, err)
		}

		all = append(all, pois...)
	}

	return all, nil
}

func (c *Client) buildSearchURL(lat, lng float64, typeCode string, radius int) string {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("location", fmt.Sprintf("%f,%f", lng, lat))
	params.Set("types", typeCode)
	params.Set("radius", strconv.Itoa(radius))
	params.Set("output", "json")
	params.Set("extensions", "base")

	return c.baseURL + "?" + params.Encode()
}

func parsePOIs(resp amapResponse, category value.POICategory) []entity.NearbyPOI {
	pois := make([]entity.NearbyPOI, 0, len(resp.Pois))

	for _, poi := range resp.Pois {
		record := entity.NearbyPOI{
			Category: category,
			Name:     poi.Name,
		}

		// Провайдер отдаёт расстояние строкой; нечитаемое значение
		// оставляет Distance пустым, запись при этом сохраняется.
		if distance, err := strconv.Atoi(poi.Distance); err == nil {
			walkTime := max(distance/walkSpeed, 1)
			record.Distance = &distance
			record.WalkTime = &walkTime
		}

		pois = append(pois, record)
	}

	return pois
}
