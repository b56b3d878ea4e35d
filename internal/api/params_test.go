package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextWithQuery(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantNumber int
		wantSize   int
	}{
		{"defaults", "", 1, defaultPageSize},
		{"explicit page and size", "page=3&page_size=25", 3, 25},
		{"zero page clamps to one", "page=0", 1, defaultPageSize},
		{"negative page clamps to one", "page=-5", 1, defaultPageSize},
		{"zero size falls back to default", "page_size=0", 1, defaultPageSize},
		{"oversized page_size clamps to max", "page_size=1000", 1, maxPageSize},
		{"garbage input falls back", "page=abc&page_size=xyz", 1, defaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageParams(contextWithQuery(tt.query), defaultPageSize)
			if got.Number != tt.wantNumber {
				t.Errorf("Number = %d, want %d", got.Number, tt.wantNumber)
			}
			if got.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", got.Size, tt.wantSize)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     page
		expected int
	}{
		{"first page", page{Number: 1, Size: 10}, 0},
		{"second page", page{Number: 2, Size: 10}, 10},
		{"custom size", page{Number: 3, Size: 25}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Offset(); got != tt.expected {
				t.Errorf("Offset() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantID int64
		wantOK bool
	}{
		{"valid ID", "42", 42, true},
		{"zero rejected", "0", 0, false},
		{"negative rejected", "-1", 0, false},
		{"non-numeric rejected", "abc", 0, false},
		{"empty rejected", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := idParam(c, "id")
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("idParam(%q) = (%d, %v), want (%d, %v)", tt.value, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
