package pagination

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Pagination
	}{
		{query: "", want: Pagination{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{query: "?page=3&limit=10", want: Pagination{Page: 3, Limit: 10, Offset: 20}},
		{query: "?page=0&limit=-5", want: Pagination{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{query: "?page=x&limit=100000", want: Pagination{Page: 1, Limit: MaxLimit, Offset: 0}},
		{
			query: "?page=184467440737095518",
			want: Pagination{
				Page:   math.MaxInt / DefaultLimit,
				Limit:  DefaultLimit,
				Offset: (math.MaxInt/DefaultLimit - 1) * DefaultLimit,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got Pagination
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = ParseFromRequest(c)
				return nil
			})
			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Pagination{Page: 2, Limit: 2, Offset: 2}
	assert.Equal(t, []int{3, 4}, Slice(&p, items))
	assert.Equal(t, int64(5), p.Total)

	p = Pagination{Page: 3, Limit: 2, Offset: 4}
	assert.Equal(t, []int{5}, Slice(&p, items))

	p = Pagination{Page: 9, Limit: 2, Offset: 16}
	assert.Empty(t, Slice(&p, items))

	p = Pagination{Limit: 2, Offset: -4}
	assert.Empty(t, Slice(&p, items))

	p = Pagination{Limit: math.MaxInt, Offset: 1}
	assert.Equal(t, []int{2, 3, 4, 5}, Slice(&p, items))
}

func TestResponse(t *testing.T) {
	p := Pagination{Page: 1, Limit: 2, Total: 5}
	raw, err := json.Marshal(Response(p, []int{1, 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[1,2],"meta":{"current_page":1,"per_page":2,"total_items":5,"total_pages":3}}`, string(raw))
}
