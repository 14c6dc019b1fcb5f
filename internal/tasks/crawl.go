// Package tasks описывает фоновые задачи очереди и их обработчики.
package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const TypeCrawlDistrict = "crawl:district"

// CrawlDistrictPayload — задание на обход одного района.
type CrawlDistrictPayload struct {
	City     string `json:"city"`
	District string `json:"district"`
	Pages    int    `json:"pages"`
}

func NewCrawlDistrictTask(city, district string, pages int) (*asynq.Task, error) {
	payload, err := json.Marshal(CrawlDistrictPayload{
		City:     city,
		District: district,
		Pages:    pages,
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeCrawlDistrict, payload), nil
}

// DistrictCrawler выполняет синхронный обход района.
type DistrictCrawler interface {
	Run(ctx context.Context, city, district string, pages int) error
}

// CrawlHandler строит обходчик на каждую задачу: загрузчик страниц держит
// состояние паузы и ротации заголовков и не разделяется между задачами.
type CrawlHandler struct {
	newCrawler func() DistrictCrawler
}

func NewCrawlHandler(newCrawler func() DistrictCrawler) *CrawlHandler {
	return &CrawlHandler{newCrawler: newCrawler}
}

func (h *CrawlHandler) HandleCrawlDistrict(ctx context.Context, task *asynq.Task) error {
	var payload CrawlDistrictPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := h.newCrawler().Run(ctx, payload.City, payload.District, payload.Pages); err != nil {
		return fmt.Errorf("crawler.Run: %w", err)
	}

	return nil
}
