package chroma

import (
	"net/http"
	"strings"
	"time"

	"github.com/manhnguyen1206/deckflow/internal/config"
)

type implClient struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the configured Chroma API service.
func New(cfg config.ChromaConfig) Client {
	return &implClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}
