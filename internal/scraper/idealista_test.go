package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingURL(t *testing.T) {
	testCases := []struct {
		name      string
		baseURL   string
		city      string
		operation Operation
		page      int
		expected  string
	}{
		{
			name:      "sale first page",
			baseURL:   "https://www.idealista.com",
			city:      "madrid",
			operation: OperationSale,
			page:      1,
			expected:  "https://www.idealista.com/en/venta-viviendas/madrid-madrid/",
		},
		{
			name:      "sale second page",
			baseURL:   "https://www.idealista.com",
			city:      "madrid",
			operation: OperationSale,
			page:      2,
			expected:  "https://www.idealista.com/en/venta-viviendas/madrid-madrid/pagina-2.htm",
		},
		{
			name:      "rental first page",
			baseURL:   "https://www.idealista.com",
			city:      "barcelona",
			operation: OperationRental,
			page:      1,
			expected:  "https://www.idealista.com/en/alquiler-viviendas/barcelona-barcelona/",
		},
		{
			name:      "rental later page",
			baseURL:   "https://www.idealista.com",
			city:      "valencia",
			operation: OperationRental,
			page:      7,
			expected:  "https://www.idealista.com/en/alquiler-viviendas/valencia-valencia/pagina-7.htm",
		},
		{
			name:      "trailing slash on base",
			baseURL:   "http://127.0.0.1:8080/",
			city:      "madrid",
			operation: OperationSale,
			page:      1,
			expected:  "http://127.0.0.1:8080/en/venta-viviendas/madrid-madrid/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			url := ListingURL(tc.baseURL, tc.city, tc.operation, tc.page)
			assert.Equal(t, tc.expected, url)
		})
	}
}

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation("sale")
	assert.NoError(t, err)
	assert.Equal(t, OperationSale, op)

	op, err = ParseOperation("rental")
	assert.NoError(t, err)
	assert.Equal(t, OperationRental, op)

	_, err = ParseOperation("venta")
	assert.Error(t, err)

	_, err = ParseOperation("")
	assert.Error(t, err)
}

func TestOperationPathSegment(t *testing.T) {
	assert.Equal(t, "venta", OperationSale.PathSegment())
	assert.Equal(t, "alquiler", OperationRental.PathSegment())
}
