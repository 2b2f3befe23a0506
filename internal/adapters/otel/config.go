package otel

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string `envconfig:"ENDPOINT"`
	Enabled  bool   `envconfig:"ENABLED"`
	Insecure bool   `envconfig:"INSECURE"`
}

// Active reports whether metrics should be exported at all.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}
