// internal/utils/pagination_test.go
package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fripetn/storefront/internal/models"
)

func makeProducts(n int, category string) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, models.Product{
			ID:       i,
			Name:     fmt.Sprintf("Product %d", i),
			Price:    float64(i),
			Category: category,
		})
	}
	return products
}

func TestPaginateThirteenItemsPageSizeSix(t *testing.T) {
	products := makeProducts(13, "shoes")

	page1 := Paginate(products, "shoes", 1, 6)
	assert.Len(t, page1.Items, 6)
	assert.Equal(t, 1, page1.CurrentPage)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, 13, page1.TotalItems)

	page2 := Paginate(products, "shoes", 2, 6)
	assert.Len(t, page2.Items, 6)

	page3 := Paginate(products, "shoes", 3, 6)
	assert.Len(t, page3.Items, 1)

	// Out-of-range request clamps to the last page
	page5 := Paginate(products, "shoes", 5, 6)
	assert.Equal(t, 3, page5.CurrentPage)
	assert.Len(t, page5.Items, 1)
	assert.Equal(t, 13, page5.Items[0].ID)
}

func TestPaginateEmptyCatalogStillHasOnePage(t *testing.T) {
	result := Paginate(nil, CategoryAll, 1, 6)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, result.TotalItems)
}

func TestPaginateCategoryFilterIsExact(t *testing.T) {
	products := append(makeProducts(4, "shoes"), makeProducts(3, "Shoes")...)

	result := Paginate(products, "shoes", 1, 10)
	assert.Equal(t, 4, result.TotalItems)

	all := Paginate(products, CategoryAll, 1, 10)
	assert.Equal(t, 7, all.TotalItems)

	none := Paginate(products, "perfumes", 1, 10)
	assert.Equal(t, 0, none.TotalItems)
	assert.Equal(t, 1, none.TotalPages)
}

func TestPaginateCoversEveryItemExactlyOnce(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 12, 13, 25, 100} {
		for _, size := range []int{1, 3, 6, 10} {
			products := makeProducts(n, "clothes")
			first := Paginate(products, "clothes", 1, size)

			expectedPages := (n + size - 1) / size
			if expectedPages < 1 {
				expectedPages = 1
			}
			require.Equal(t, expectedPages, first.TotalPages, "n=%d size=%d", n, size)

			seen := make(map[int]int)
			for page := 1; page <= first.TotalPages; page++ {
				result := Paginate(products, "clothes", page, size)
				require.Equal(t, page, result.CurrentPage)
				for _, item := range result.Items {
					seen[item.ID]++
				}
			}

			require.Len(t, seen, n, "n=%d size=%d", n, size)
			for id, count := range seen {
				require.Equal(t, 1, count, "item %d appeared %d times", id, count)
			}
		}
	}
}

func TestPaginatePageClampsLow(t *testing.T) {
	products := makeProducts(10, "shoes")
	result := Paginate(products, "shoes", -3, 6)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Len(t, result.Items, 6)
}

func TestPageNumbersSmallTotalsAreVerbatim(t *testing.T) {
	for total := 1; total <= 5; total++ {
		pages := PageNumbers(1, total)
		require.Len(t, pages, total)
		for i, ref := range pages {
			assert.False(t, ref.Ellipsis)
			assert.Equal(t, i+1, ref.Page)
		}
	}
}

func TestPageNumbersSequences(t *testing.T) {
	tests := []struct {
		current, total int
		want           []PageRef
	}{
		{1, 10, []PageRef{{Page: 1}, {Page: 2}, {Page: 3}, {Page: 4}, {Ellipsis: true}, {Page: 10}}},
		{3, 10, []PageRef{{Page: 1}, {Page: 2}, {Page: 3}, {Page: 4}, {Ellipsis: true}, {Page: 10}}},
		{5, 10, []PageRef{{Page: 1}, {Ellipsis: true}, {Page: 4}, {Page: 5}, {Page: 6}, {Ellipsis: true}, {Page: 10}}},
		{8, 10, []PageRef{{Page: 1}, {Ellipsis: true}, {Page: 7}, {Page: 8}, {Page: 9}, {Page: 10}}},
		{10, 10, []PageRef{{Page: 1}, {Ellipsis: true}, {Page: 7}, {Page: 8}, {Page: 9}, {Page: 10}}},
		{4, 6, []PageRef{{Page: 1}, {Ellipsis: true}, {Page: 3}, {Page: 4}, {Page: 5}, {Page: 6}}},
	}

	for _, tt := range tests {
		got := PageNumbers(tt.current, tt.total)
		assert.Equal(t, tt.want, got, "current=%d total=%d", tt.current, tt.total)
	}
}

func TestPageNumbersBoundedAndComplete(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			pages := PageNumbers(current, total)
			require.LessOrEqual(t, len(pages), 7, "current=%d total=%d", current, total)

			hasFirst, hasLast, hasCurrent := false, false, false
			for _, ref := range pages {
				if ref.Ellipsis {
					continue
				}
				if ref.Page == 1 {
					hasFirst = true
				}
				if ref.Page == total {
					hasLast = true
				}
				if ref.Page == current {
					hasCurrent = true
				}
			}
			require.True(t, hasFirst, "missing first page: current=%d total=%d", current, total)
			require.True(t, hasLast, "missing last page: current=%d total=%d", current, total)
			require.True(t, hasCurrent, "missing current page: current=%d total=%d", current, total)
		}
	}
}
