package semantic_search_service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/internal/config"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

const defaultLimit = 20

type menuItemDocument struct {
	ID             string   `json:"id"`
	BranchID       string   `json:"branch_id"`
	CategoryID     string   `json:"category_id"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	NameEN         string   `json:"name_en"`
	NameAR         string   `json:"name_ar,omitempty"`
	Price          float64  `json:"price"`
	Status         string   `json:"status"`
	AvailableMeals []string `json:"available_meals"`
	CuisineType    string   `json:"cuisine_type"`
}

// Service indexes imported menu items in OpenSearch and runs text search over
// them. Without a client, indexing is skipped and search is unavailable.
type Service struct {
	log              *slog.Logger
	opensearchClient *opensearchapi.Client
	index            string
}

var _ app.MenuSearchIndex = &Service{}

func New(log *slog.Logger, cfg *config.Config, opensearchClient *opensearchapi.Client) *Service {
	return &Service{
		log:              log,
		opensearchClient: opensearchClient,
		index:            cfg.Clients.OpenSearch.Index,
	}
}

func toDocument(it app.IndexedMenuItem) menuItemDocument {
	return menuItemDocument{
		ID:             it.ID,
		BranchID:       it.BranchID,
		CategoryID:     it.CategoryID,
		Category:       it.Category,
		Subcategory:    it.Subcategory,
		NameEN:         it.NameEN,
		NameAR:         it.NameAR,
		Price:          it.Price,
		Status:         it.Status,
		AvailableMeals: it.AvailableMeals,
		CuisineType:    it.CuisineType,
	}
}

// bulkBody renders the items as a bulk request: an index action line followed
// by the document, one pair per item.
func bulkBody(index string, items []app.IndexedMenuItem) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, it := range items {
		action := map[string]any{"index": map[string]any{"_index": index, "_id": it.ID}}
		if err := enc.Encode(action); err != nil {
			return nil, err
		}
		if err := enc.Encode(toDocument(it)); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (this *Service) IndexItems(ctx context.Context, items []app.IndexedMenuItem) error {
	if this.opensearchClient == nil || len(items) == 0 {
		return nil
	}

	body, err := bulkBody(this.index, items)
	if err != nil {
		return fmt.Errorf("build bulk body: %w", err)
	}

	resp, err := this.opensearchClient.Bulk(ctx, opensearchapi.BulkReq{
		Index: this.index,
		Body:  bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("bulk index into %s: %w", this.index, err)
	}
	if resp.Errors {
		return fmt.Errorf("bulk index into %s: some of %d items were rejected", this.index, len(items))
	}

	this.log.Info("menu items indexed", "index", this.index, "items", len(items))
	return nil
}

// buildSearchQuery matches names in both languages, category and cuisine,
// restricted to one branch when branchID is set.
func buildSearchQuery(branchID, query string, limit int) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":     query,
					"fields":    []string{"name_en^3", "name_ar^3", "category^2", "subcategory", "cuisine_type"},
					"fuzziness": "AUTO",
				},
			},
		},
	}
	if branchID != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"match_phrase": map[string]interface{}{"branch_id": branchID},
			},
		}
	}

	return map[string]interface{}{
		"size":  limit,
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func (this *Service) Search(ctx context.Context, branchID, query string, limit int) ([]app.SearchHit, error) {
	if this.opensearchClient == nil {
		return nil, app.ErrSearchDisabled
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	queryJSON, err := json.Marshal(buildSearchQuery(branchID, query, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	searchResp, err := this.opensearchClient.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{this.index},
		Body:    bytes.NewReader(queryJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search in index %s: %w", this.index, err)
	}

	results := make([]app.SearchHit, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		var doc menuItemDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			this.log.Warn("skipping unreadable search hit", "id", hit.ID, "err", err)
			continue
		}
		results = append(results, app.SearchHit{
			ID:          doc.ID,
			NameEN:      doc.NameEN,
			NameAR:      doc.NameAR,
			Category:    doc.Category,
			Subcategory: doc.Subcategory,
			Price:       doc.Price,
			CuisineType: doc.CuisineType,
			Score:       float64(hit.Score),
		})
	}

	return results, nil
}
