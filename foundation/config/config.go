package config

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Services: Services{
			Diarizer: Service{Endpoint: "http://localhost:8081/diarize", TimeoutSeconds: 60},
			Graph:    Service{Endpoint: "http://localhost:8082/relationship-graph", TimeoutSeconds: 15},
			Summary:  Service{Endpoint: "http://localhost:8082/summary-report", TimeoutSeconds: 15},
			Vision: Vision{
				Endpoint:       "http://localhost:8000/analyze",
				TimeoutSeconds: 15,
				MinConfidence:  0.8,
			},
		},
	}
}

// Load reads the collaborator configuration file. Fields left zero in
// the file fall back to their defaults.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, err
	}
	fillDefaults(&cfg)

	return cfg, nil
}

func fillDefaults(cfg *Config) {
	def := Default()
	fillService(&cfg.Services.Diarizer, def.Services.Diarizer)
	fillService(&cfg.Services.Graph, def.Services.Graph)
	fillService(&cfg.Services.Summary, def.Services.Summary)
	if cfg.Services.Vision.Endpoint == "" {
		cfg.Services.Vision.Endpoint = def.Services.Vision.Endpoint
	}
	if cfg.Services.Vision.TimeoutSeconds <= 0 {
		cfg.Services.Vision.TimeoutSeconds = def.Services.Vision.TimeoutSeconds
	}
	if cfg.Services.Vision.MinConfidence <= 0 {
		cfg.Services.Vision.MinConfidence = def.Services.Vision.MinConfidence
	}
}

func fillService(s *Service, def Service) {
	if s.Endpoint == "" {
		s.Endpoint = def.Endpoint
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = def.TimeoutSeconds
	}
}

// Timeout converts a service's configured timeout to a duration.
func (s Service) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Timeout converts the vision service's configured timeout to a duration.
func (v Vision) Timeout() time.Duration {
	return time.Duration(v.TimeoutSeconds) * time.Second
}
