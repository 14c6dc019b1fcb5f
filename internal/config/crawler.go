package config

import "time"

type Crawler struct {
	DelayMin     time.Duration `env:"CRAWLER_DELAY_MIN" envDefault:"2s"`
	DelayMax     time.Duration `env:"CRAWLER_DELAY_MAX" envDefault:"5s"`
	CacheDays    int           `env:"CRAWLER_CACHE_DAYS" envDefault:"7"`
	MaxPages     int           `env:"CRAWLER_MAX_PAGES" envDefault:"3"`
	QueueWorkers int           `env:"CRAWLER_QUEUE_WORKERS" envDefault:"2"`
	ScoreWorkers int           `env:"SCORE_WORKERS" envDefault:"8"`
}
