package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func paramsForQuery(query string) PaginationParams {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	p := paramsForQuery("page=3&limit=10")
	require.Equal(t, 3, p.Page)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, 20, p.Offset)
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	p := paramsForQuery("")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.Limit)
	require.Equal(t, 0, p.Offset)
}

func TestGetPaginationParams_ClampsOutOfRange(t *testing.T) {
	p := paramsForQuery("page=0&limit=1000")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.Limit)

	p = paramsForQuery("page=-5&limit=-1")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.Limit)
}
