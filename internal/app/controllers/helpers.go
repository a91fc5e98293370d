// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/auth"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// parseIDParam reads a positive int64 path parameter, writing a 400 when invalid
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requireQueryID reads a positive int64 query parameter, writing a 400 when absent
func requireQueryID(ctx *gin.Context, name string) (int64, bool) {
	id := helpers.QueryInt64(ctx, name)
	if id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, name+" is required").WithField(name)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// seriesTypeQuery reads an optional series type; ok is false when the value is unknown
func seriesTypeQuery(ctx *gin.Context) (models.SeriesType, bool) {
	raw := ctx.Query("type")
	if raw == "" {
		return "", true
	}
	t, ok := models.ParseSeriesType(raw)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "type must be one of TD, TP, Exam").WithField("type")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	}
	return t, ok
}

// levelQuery reads the level filter in its canonical upper-case form
func levelQuery(ctx *gin.Context) models.Level {
	return models.Level(strings.ToUpper(strings.TrimSpace(ctx.Query("level"))))
}

// courseQuery reads the catalog filters, sort key and page from the query string
func courseQuery(ctx *gin.Context) services.CourseQuery {
	sortKey, _ := domain.ParseCourseSortKey(ctx.Query("sort"))
	search := ctx.Query("search")
	if search == "" {
		search = ctx.Query("q")
	}
	return services.CourseQuery{
		Filter: domain.CourseFilter{
			Level:          levelQuery(ctx),
			Semester:       helpers.QueryInt(ctx, "semester"),
			AcademicYear:   ctx.Query("academicYear"),
			Search:         search,
			Status:         models.CourseStatus(ctx.Query("status")),
			BookmarkedOnly: helpers.QueryBool(ctx, "bookmarked"),
		},
		Sort: sortKey,
		Page: helpers.ParsePageRequest(ctx),
	}
}

// viewer describes the caller to the student-facing services
func viewer(ctx *gin.Context) services.Viewer {
	session := auth.SessionFrom(ctx)
	return services.Viewer{UserID: session.UserID(), IsAdmin: session.IsAdmin()}
}

func respondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data))
}

func respondCreated(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(data))
}

// respondCSV sends body as a dated attachment named <name>-YYYYMMDD.csv
func respondCSV(ctx *gin.Context, name, body string) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
