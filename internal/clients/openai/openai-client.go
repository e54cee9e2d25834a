package openai_client

import (
	"github.com/init-pkg/menu-import/internal/config"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

func New(cfg *config.Config) *openai.Client {
	oc := cfg.Clients.OpenAI

	opts := []option.RequestOption{
		option.WithAPIKey(oc.ApiKey),
		option.WithMaxRetries(oc.MaxRetries),
	}
	if oc.BaseUrl != "" {
		opts = append(opts, option.WithBaseURL(oc.BaseUrl))
	}

	var cl = openai.NewClient(opts...)
	return &cl
}
