// internal/catalog/catalog.go
package catalog

import (
	"strings"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/dataload"
)

// Item is one catalog product.
type Item struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	NameEn     string `json:"name_en"`
	Category   string `json:"category"`
	Price      int    `json:"price"`
	IsSeasonal bool   `json:"is_seasonal"`
}

// Catalog is the product catalog file: items plus the category code
// to display-name table.
type Catalog struct {
	Items      []Item            `json:"items"`
	Categories map[string]string `json:"categories"`
}

// SearchParams filter the catalog. IncludeSeasonal defaults to true at
// the handler boundary.
type SearchParams struct {
	Category        string
	Keyword         string
	IncludeSeasonal bool
}

// FiltersApplied echoes the normalized filters back to the caller.
// Empty filters come back as null in JSON.
type FiltersApplied struct {
	Category        *string `json:"category"`
	Keyword         *string `json:"keyword"`
	IncludeSeasonal bool    `json:"include_seasonal"`
}

// SearchResult is the catalog search response.
type SearchResult struct {
	TotalCount     int               `json:"total_count"`
	FiltersApplied FiltersApplied    `json:"filters_applied"`
	Categories     map[string]string `json:"categories"`
	Items          []Item            `json:"items"`
}

// Service serves catalog searches over the cached catalog file.
type Service struct {
	loader *dataload.Loader[Catalog]
}

func NewService(path string) *Service {
	return &Service{loader: dataload.New[Catalog](path)}
}

// Reset drops the cached catalog. Test use.
func (s *Service) Reset() {
	s.loader.Reset()
}

// Search filters catalog items by category, keyword (matched against the
// Japanese and English names, case-insensitively), and the seasonal flag.
func (s *Service) Search(params SearchParams) (*SearchResult, error) {
	catalog, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	category := strings.ToLower(strings.TrimSpace(params.Category))
	keyword := strings.TrimSpace(params.Keyword)
	keywordLower := strings.ToLower(keyword)

	items := []Item{}
	for _, item := range catalog.Items {
		if category != "" && item.Category != category {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(item.Name), keywordLower) &&
			!strings.Contains(strings.ToLower(item.NameEn), keywordLower) {
			continue
		}
		if !params.IncludeSeasonal && item.IsSeasonal {
			continue
		}
		items = append(items, item)
	}

	filters := FiltersApplied{IncludeSeasonal: params.IncludeSeasonal}
	if category != "" {
		filters.Category = &category
	}
	if keyword != "" {
		filters.Keyword = &keyword
	}

	return &SearchResult{
		TotalCount:     len(items),
		FiltersApplied: filters,
		Categories:     catalog.Categories,
		Items:          items,
	}, nil
}
