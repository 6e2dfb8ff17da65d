package config

// ApplyDefaults sets default values for any zero values in cfg.
// Storage paths deliberately have no defaults; Load rejects a config that
// leaves them unset.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Scrape.TimeoutSeconds == 0 {
		cfg.Scrape.TimeoutSeconds = 20
	}
	if cfg.Scrape.UserAgent == "" {
		cfg.Scrape.UserAgent = "Mozilla/5.0 (compatible; cvpress/1.0)"
	}
	if cfg.Generate.MinTextChars == 0 {
		cfg.Generate.MinTextChars = 80
	}
	if cfg.Generate.MaxUploadBytes == 0 {
		cfg.Generate.MaxUploadBytes = 20 << 20
	}
}
