package opensearch_client

import (
	"crypto/tls"
	"net/http"

	"github.com/init-pkg/menu-import/internal/config"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// New returns nil when no address is configured; search is then disabled.
func New(cfg *config.Config) (*opensearchapi.Client, error) {
	oc := cfg.Clients.OpenSearch
	if len(oc.Addresses) == 0 {
		return nil, nil
	}

	return opensearchapi.NewClient(
		opensearchapi.Config{
			Client: opensearch.Config{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{InsecureSkipVerify: oc.InsecureSkipVerify},
				},
				Addresses: oc.Addresses,
				Username:  oc.Username,
				Password:  oc.Password,
			},
		},
	)
}
