package config

type Amap struct {
	APIKey string `env:"AMAP_API_KEY" json:"-"`
	Radius int    `env:"AMAP_RADIUS" envDefault:"1000"`
}
