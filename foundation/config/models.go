package config

// Config is the collaborator configuration file: where the external
// generation services live and how long to wait for them.
type Config struct {
	Services Services `json:"services"`
}

type Services struct {
	Diarizer Service `json:"diarizer"`
	Graph    Service `json:"graph"`
	Summary  Service `json:"summary"`
	Vision   Vision  `json:"vision"`
}

type Service struct {
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Vision struct {
	Endpoint       string  `json:"endpoint"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	Enabled        bool    `json:"enabled"`
	MinConfidence  float64 `json:"min_confidence"`
}
