package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/uniportal/internal/domain"
)

func testContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/items?"+query, nil)
	return c
}

func TestParsePageRequest(t *testing.T) {
	assert.Equal(t, domain.PageRequest{Page: 2, Size: 25}, ParsePageRequest(testContext("page=2&size=25")))
	assert.Equal(t, domain.PageRequest{Page: 1, Size: domain.MaxPageSize}, ParsePageRequest(testContext("page=-1&size=500")))
	assert.Equal(t, domain.PageRequest{Page: 1, Size: 10}, ParsePageRequest(testContext("size=0")))
	assert.Equal(t, domain.PageRequest{Page: 1, Size: 10}, ParsePageRequest(testContext("page=abc")))
}

func TestQueryHelpers(t *testing.T) {
	c := testContext("semester=2&courseId=99&bookmarked=true")
	assert.Equal(t, 2, QueryInt(c, "semester"))
	assert.Equal(t, int64(99), QueryInt64(c, "courseId"))
	assert.True(t, QueryBool(c, "bookmarked"))
	assert.False(t, QueryBool(c, "missing"))
	assert.Equal(t, 0, QueryInt(c, "missing"))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 15*time.Minute, ParseDuration("15m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-06-01", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDate("01/06/2024 09:30", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, 9, got.Hour())

	assert.Nil(t, ParseOptionalDate("not a date", nil))
}
