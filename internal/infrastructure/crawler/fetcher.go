package crawler

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"homescout/internal/metrics"
	"homescout/pkg/httpx"
)

const (
	fetchTimeout   = 30 * time.Second
	logFieldMaxLen = 2048
)

// Пул наборов заголовков, имитирующих браузер. Ротация наборов снижает
// вероятность тривиального отпечатка краулера.
var headerPool = []map[string]string{
	{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
	},
	{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Accept-Language": "zh-CN,zh;q=0.8,en-US;q=0.6",
	},
	{
		"User-Agent": "Mozilla/5.0 (X11; Linux x86_64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		"Accept-Language": "zh-CN,zh;q=0.9",
	},
}

// FetchFailure классифицирует неуспешную загрузку страницы: транспортную
// ошибку или не-2xx ответ. Ошибка никогда не фатальна для пакета обхода —
// решение повторить, пропустить или прервать принимает вызывающая сторона.
type FetchFailure struct {
	URL   string
	Cause error
}

func (f *FetchFailure) Error() string {
	return fmt.Sprintf("fetch %s: %v", f.URL, f.Cause)
}

func (f *FetchFailure) Unwrap() error {
	return f.Cause
}

// Fetcher выполняет вежливую загрузку страниц: перед каждым запросом
// выдерживается случайная пауза из окна [delayMin, delayMax], заголовки
// берутся ротацией из пула. Повторов внутри нет.
//
// Экземпляр не потокобезопасен: каждая задача обхода владеет собственным
// Fetcher со своим таймером паузы и состоянием ротации.
type Fetcher struct {
	client   *http.Client
	delayMin time.Duration
	delayMax time.Duration
	rnd      *rand.Rand
	rotation int
}

func NewFetcher(delayMin, delayMax time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout:   fetchTimeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, httpx.WithLogFieldMaxLen(logFieldMaxLen)),
		},
		delayMin: delayMin,
		delayMax: delayMax,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // jitter, not crypto
	}
}

// Fetch загружает страницу и возвращает её тело. Пауза вежливости
// отменяема через контекст.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.delay(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	for name, v := range f.nextHeaders() {
		req.Header.Set(name, v)
	}

	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.FetchTotal.WithLabelValues(metrics.FetchResultTransport).Inc()
		return "", &FetchFailure{URL: url, Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.FetchTotal.WithLabelValues(metrics.FetchResultHTTPError).Inc()
		return "", &FetchFailure{URL: url, Cause: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FetchTotal.WithLabelValues(metrics.FetchResultTransport).Inc()
		return "", &FetchFailure{URL: url, Cause: fmt.Errorf("io.ReadAll: %w", err)}
	}

	metrics.FetchTotal.WithLabelValues(metrics.FetchResultOK).Inc()

	return string(body), nil
}

func (f *Fetcher) delay(ctx context.Context) error {
	if f.delayMax <= 0 {
		return nil
	}

	wait := f.delayMin
	if window := f.delayMax - f.delayMin; window > 0 {
		wait += time.Duration(f.rnd.Int63n(int64(window)))
	}

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fetcher) nextHeaders() map[string]string {
	headers := headerPool[f.rotation%len(headerPool)]
	f.rotation++

	return headers
}
