package config

type Log struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"text"`
	File        string `env:"LOG_FILE"`
	FieldMaxLen int    `env:"LOG_FIELD_MAX_LEN" envDefault:"4096"`
}
