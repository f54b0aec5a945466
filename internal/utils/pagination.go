// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fripetn/storefront/internal/models"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// maxVerbatimPages is the largest page count rendered without ellipsis
// compression.
const maxVerbatimPages = 5

type PaginationParams struct {
	Page     int    `json:"page"`
	Category string `json:"category"`
}

// PageResult is a paginated view over a filtered catalog snapshot.
type PageResult struct {
	Items       []models.Product `json:"items"`
	CurrentPage int              `json:"current_page"`
	TotalPages  int              `json:"total_pages"`
	TotalItems  int              `json:"total_items"`
}

// PageRef is one entry in a compressed page-number sequence: either a page
// number or an ellipsis gap marker.
type PageRef struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	category := c.DefaultQuery("category", CategoryAll)

	if page < 1 {
		page = 1
	}
	if category == "" {
		category = CategoryAll
	}

	return PaginationParams{
		Page:     page,
		Category: category,
	}
}

// FilterByCategory keeps products whose category equals the given tag
// exactly (case-sensitive). The "all" sentinel returns the input unchanged.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == CategoryAll {
		return products
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Paginate computes the visible slice of the category-filtered product list
// for the requested page. Out-of-range pages clamp into [1, totalPages]
// rather than failing; an empty filtered list still yields one (empty) page.
func Paginate(products []models.Product, category string, page, pageSize int) PageResult {
	filtered := FilterByCategory(products, category)

	totalPages := int(math.Ceil(float64(len(filtered)) / float64(pageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	currentPage := page
	if currentPage > totalPages {
		currentPage = totalPages
	}
	if currentPage < 1 {
		currentPage = 1
	}

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageResult{
		Items:       filtered[start:end],
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  len(filtered),
	}
}

// PageNumbers produces the page-number sequence for navigation controls.
// Up to five pages are emitted verbatim; beyond that the sequence is the
// first page, a window around the current page, and the last page, with
// ellipsis markers on gaps. The result never exceeds seven entries.
func PageNumbers(current, total int) []PageRef {
	var pages []PageRef

	if total <= maxVerbatimPages {
		for i := 1; i <= total; i++ {
			pages = append(pages, PageRef{Page: i})
		}
		return pages
	}

	pages = append(pages, PageRef{Page: 1})

	start := current - 1
	if start < 2 {
		start = 2
	}
	end := current + 1
	if end > total-1 {
		end = total - 1
	}

	// Fixed windows at the edges keep the sequence width constant.
	if current <= 3 {
		start = 2
		end = 4
	} else if current >= total-2 {
		start = total - 3
		end = total - 1
	}

	if start > 2 {
		pages = append(pages, PageRef{Ellipsis: true})
	}
	for i := start; i <= end; i++ {
		pages = append(pages, PageRef{Page: i})
	}
	if end < total-1 {
		pages = append(pages, PageRef{Ellipsis: true})
	}

	pages = append(pages, PageRef{Page: total})
	return pages
}

func SetPaginationHeaders(c *gin.Context, result PageResult) {
	c.Header("X-Total-Count", strconv.Itoa(result.TotalItems))
	c.Header("X-Page", strconv.Itoa(result.CurrentPage))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
