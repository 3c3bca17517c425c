package config

type Database struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite://app.db"`
}

func (d Database) GetDatabaseURL() string {
	return d.DatabaseURL
}
