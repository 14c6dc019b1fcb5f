// Package worker реализует пакетный обход источника: страницы списка,
// детальные карточки, сохранение записей и обновление окружения.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"homescout/internal/domain/entity"
	"homescout/internal/infrastructure/crawler"
	"homescout/pkg/contextx"
	"homescout/pkg/logx"
)

type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type PageParser interface {
	BuildListURL(city, district string, page int) (string, error)
	ParseListPage(html string) []crawler.ListingSummary
	ParseDetailPage(html string) crawler.DetailFields
}

type CommunityStore interface {
	UpsertBySource(ctx context.Context, community *entity.Community) error
	GetByID(ctx context.Context, id int64) (*entity.Community, error)
}

type POIWriter interface {
	ReplaceForCommunity(ctx context.Context, communityID int64, pois []entity.NearbyPOI) error
}

type POIFinder interface {
	SearchAllCategories(ctx context.Context, lat, lng float64) ([]entity.NearbyPOI, error)
}

// VisitLog помнит недавно обойденные районы.
type VisitLog interface {
	Visited(ctx context.Context, city, district string) (bool, error)
	MarkVisited(ctx context.Context, city, district string, ttl time.Duration) error
}

// Crawler — пакетный обходчик района. Ошибка одной карточки не прерывает
// пакет: запись пропускается, обход продолжается.
type Crawler struct {
	fetcher     PageFetcher
	parser      PageParser
	communities CommunityStore
	pois        POIWriter
	geo         POIFinder
	visits      VisitLog

	revisitTTL time.Duration

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewCrawler(
	fetcher PageFetcher,
	parser PageParser,
	communities CommunityStore,
	pois POIWriter,
	geo POIFinder,
	visits VisitLog,
) *Crawler {
	return &Crawler{
		fetcher:     fetcher,
		parser:      parser,
		communities: communities,
		pois:        pois,
		geo:         geo,
		visits:      visits,
		revisitTTL:  7 * 24 * time.Hour,
	}
}

// WithRevisitTTL задаёт срок, в течение которого район не обходится повторно.
func (w *Crawler) WithRevisitTTL(ttl time.Duration) *Crawler {
	if ttl > 0 {
		w.revisitTTL = ttl
	}
	return w
}

// Start запускает обход в фоне. Повторный Start до завершения — ошибка.
func (w *Crawler) Start(ctx context.Context, city, district string, pages int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("crawler is already running")
	}

	crawlCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(crawlCtx, city, district, pages); err != nil && !errors.Is(err, context.Canceled) {
			contextx.LoggerFromContextOrDefault(crawlCtx).Error("crawl failed",
				slog.String(logx.FieldCity, city),
				slog.String(logx.FieldDistrict, district),
				logx.Error(err),
			)
		}
	}()

	return nil
}

// Stop отменяет текущий обход и дожидается его завершения.
func (w *Crawler) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// Run обходит район синхронно: страницы списка по порядку, карточки по
// списку. Недавно обойденный район пропускается целиком.
func (w *Crawler) Run(ctx context.Context, city, district string, pages int) error {
	logger := contextx.LoggerFromContextOrDefault(ctx).With(
		slog.String(logx.FieldCity, city),
		slog.String(logx.FieldDistrict, district),
	)

	visited, err := w.visits.Visited(ctx, city, district)
	if err != nil {
		return err
	}

	if visited {
		logger.Info("district recently crawled, skipping")
		return nil
	}

	var saved int

	for page := 1; page <= pages; page++ {
		listURL, err := w.parser.BuildListURL(city, district, page)
		if err != nil {
			return err
		}

		html, err := w.fetcher.Fetch(ctx, listURL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			// Недоступная страница списка обрывает пагинацию: дальше
			// почти наверняка та же блокировка источника.
			logger.Warn("list page fetch failed", slog.Int(logx.FieldPage, page), logx.Error(err))
			break
		}

		listings := w.parser.ParseListPage(html)
		if len(listings) == 0 {
			logger.Info("empty list page, stopping pagination", slog.Int(logx.FieldPage, page))
			break
		}

		for _, listing := range listings {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if err := w.processListing(ctx, logger, city, district, listing); err != nil {
				logger.Warn("listing skipped", slog.String(logx.FieldURL, listing.SourceURL), logx.Error(err))
				continue
			}

			saved++
		}
	}

	if err := w.visits.MarkVisited(ctx, city, district, w.revisitTTL); err != nil {
		return err
	}

	logger.Info("crawl finished", slog.Int("communities-saved", saved))

	return nil
}

func (w *Crawler) processListing(
	ctx context.Context,
	logger *slog.Logger,
	city, district string,
	listing crawler.ListingSummary,
) error {
	community := entity.Community{
		Name:     listing.Name,
		City:     city,
		District: &district,
		AvgPrice: listing.AvgPrice,
	}

	if listing.SourceURL != "" {
		community.SourceURL = &listing.SourceURL

		detailHTML, err := w.fetcher.Fetch(ctx, listing.SourceURL)
		if err != nil {
			// Карточка недоступна — сохраняем то, что дал список.
			logger.Debug("detail page fetch failed", slog.String(logx.FieldURL, listing.SourceURL), logx.Error(err))
		} else {
			fields := w.parser.ParseDetailPage(detailHTML)
			community.PropertyCompany = fields.PropertyCompany
			community.PropertyFee = fields.PropertyFee
			community.BuildYear = fields.BuildYear
			community.VolumeRatio = fields.VolumeRatio
			community.GreenRatio = fields.GreenRatio
			community.Developer = fields.Developer
			community.TotalUnits = fields.TotalUnits
			community.ParkingRatio = fields.ParkingRatio
		}
	}

	if err := w.communities.UpsertBySource(ctx, &community); err != nil {
		return err
	}

	return w.refreshPOIs(ctx, logger, community.ID)
}

// refreshPOIs обновляет окружение комплекса, если у сохранённой записи
// есть координаты. Источник списков координат не отдаёт, поэтому сверяемся
// с хранилищем: координаты могли прийти из прошлых обогащений.
func (w *Crawler) refreshPOIs(ctx context.Context, logger *slog.Logger, communityID int64) error {
	stored, err := w.communities.GetByID(ctx, communityID)
	if err != nil {
		return err
	}

	if stored == nil || stored.Lat == nil || stored.Lng == nil {
		return nil
	}

	pois, err := w.geo.SearchAllCategories(ctx, *stored.Lat, *stored.Lng)
	if err != nil {
		// Гео-сервис необязателен: запись остаётся с прошлым окружением.
		logger.Debug("poi refresh failed", slog.Int64(logx.FieldCommunityID, communityID), logx.Error(err))
		return nil
	}

	if len(pois) == 0 {
		return nil
	}

	return w.pois.ReplaceForCommunity(ctx, communityID, pois)
}
