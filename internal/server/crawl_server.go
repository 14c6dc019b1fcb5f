package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hibiken/asynq"

	"homescout/internal/tasks"
	"homescout/pkg/contextx"
	"homescout/pkg/httpx/reply"
	"homescout/pkg/httpx/req"
	"homescout/pkg/logx"
	"homescout/pkg/rest"
)

const defaultCrawlPages = 3

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// listURLBuilder проверяет, что город поддержан источником, до постановки
// задачи в очередь: ошибка конфигурации видна сразу, а не в логах воркера.
type listURLBuilder interface {
	BuildListURL(city, district string, page int) (string, error)
}

type CrawlServer struct {
	queue   taskEnqueuer
	builder listURLBuilder
}

func NewCrawlServer(queue taskEnqueuer, builder listURLBuilder) CrawlServer {
	return CrawlServer{
		queue:   queue,
		builder: builder,
	}
}

func (s CrawlServer) postV1Crawl(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CrawlRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if _, err := s.builder.BuildListURL(request.City, request.District, 1); err != nil {
		return fmt.Errorf("builder.BuildListURL: %w", err)
	}

	pages := request.Pages
	if pages <= 0 {
		pages = defaultCrawlPages
	}

	task, err := tasks.NewCrawlDistrictTask(request.City, request.District, pages)
	if err != nil {
		return fmt.Errorf("tasks.NewCrawlDistrictTask: %w", err)
	}

	info, err := s.queue.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("queue.EnqueueContext: %w", err)
	}

	contextx.LoggerFromContextOrDefault(ctx).Info("crawl task enqueued",
		slog.String("task-id", info.ID),
		slog.String(logx.FieldCity, request.City),
		slog.String(logx.FieldDistrict, request.District),
	)

	reply.Accepted(w)

	return nil
}
