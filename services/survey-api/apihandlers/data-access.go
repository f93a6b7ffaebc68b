package apihandlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ppmonster111/Nutritional/pkg/apihelpers"
	mw "github.com/ppmonster111/Nutritional/pkg/apihelpers/middlewares"
	"github.com/ppmonster111/Nutritional/pkg/survey/engine"
	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// AddDataReaderAPI registers the endpoints used by trusted backend
// clients (exports, dashboards, form management). They authenticate
// with an API key instead of a respondent token.
func (h *HttpEndpoints) AddDataReaderAPI(rg *gin.RouterGroup) {
	dataGroup := rg.Group("/data/:instanceID")
	dataGroup.Use(mw.HasValidAPIKey(h.dataReaderAPIKeys))
	dataGroup.Use(h.useRequestedInstance())
	{
		dataGroup.GET("/submissions", h.getSubmissions)
		dataGroup.GET("/submissions/count", h.getSubmissionsCount)

		dataGroup.GET("/forms/:slug", h.getPublishedForm)
		dataGroup.GET("/forms/:slug/versions", h.getFormVersions)
		dataGroup.GET("/forms/:slug/versions/:version", h.getFormVersion)
		dataGroup.POST("/forms", mw.RequirePayload(), h.publishFormVersion)
	}
}

func (h *HttpEndpoints) useRequestedInstance() gin.HandlerFunc {
	return func(c *gin.Context) {
		instanceID := c.Param("instanceID")
		if !mw.IsInstanceAllowed(instanceID, h.allowedInstanceIDs) {
			slog.Warn("instance not allowed", slog.String("instanceID", instanceID))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid instance id"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *HttpEndpoints) getSubmissions(c *gin.Context) {
	instanceID := c.Param("instanceID")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submissions, paginationInfo, err := h.surveyDBConn.GetSubmissions(instanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("failed to fetch submissions", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch submissions"})
		return
	}

	if c.DefaultQuery("flatten", "") != "true" {
		c.JSON(http.StatusOK, gin.H{
			"submissions": submissions,
			"pagination":  paginationInfo,
		})
		return
	}

	locale := c.DefaultQuery("locale", h.defaultLocale)

	// forms are looked up once per slug and version
	formCache := map[string]*surveyTypes.Form{}
	rows := make([]map[string]string, 0, len(submissions))
	for _, submission := range submissions {
		cacheKey := fmt.Sprintf("%s@%d", submission.FormSlug, submission.FormVersion)
		form, ok := formCache[cacheKey]
		if !ok {
			form, err = h.surveyDBConn.GetFormVersion(instanceID, submission.FormSlug, submission.FormVersion)
			if err != nil {
				slog.Error("form version not found for submission", slog.String("slug", submission.FormSlug), slog.Int("version", submission.FormVersion), slog.String("error", err.Error()))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "form version missing for stored submission"})
				return
			}
			formCache[cacheKey] = form
		}

		row := engine.FlattenAnswers(*form, submission.Answers, locale)
		row["sessionId"] = submission.SessionID
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":       rows,
		"pagination": paginationInfo,
	})
}

func (h *HttpEndpoints) getSubmissionsCount(c *gin.Context) {
	instanceID := c.Param("instanceID")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.surveyDBConn.GetSubmissionsCount(instanceID, query.Filter)
	if err != nil {
		slog.Error("failed to count submissions", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *HttpEndpoints) getPublishedForm(c *gin.Context) {
	instanceID := c.Param("instanceID")

	form, err := h.surveyDBConn.GetCurrentFormVersion(instanceID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *HttpEndpoints) getFormVersions(c *gin.Context) {
	instanceID := c.Param("instanceID")

	versions, err := h.surveyDBConn.GetFormVersions(instanceID, c.Param("slug"))
	if err != nil {
		slog.Error("failed to fetch form versions", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch form versions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

func (h *HttpEndpoints) getFormVersion(c *gin.Context) {
	instanceID := c.Param("instanceID")

	version, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version"})
		return
	}

	form, err := h.surveyDBConn.GetFormVersion(instanceID, c.Param("slug"), version)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "form version not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

// publishFormVersion stores a new schema version and unpublishes the
// previous one.
func (h *HttpEndpoints) publishFormVersion(c *gin.Context) {
	instanceID := c.Param("instanceID")

	var form surveyTypes.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if form.Slug == "" || len(form.Sections) < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form needs a slug and at least one section"})
		return
	}

	if err := h.surveyDBConn.SaveFormVersion(instanceID, &form); err != nil {
		slog.Error("failed to save form version", slog.String("instanceID", instanceID), slog.String("slug", form.Slug), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save form version"})
		return
	}

	slog.Info("new form version published", slog.String("instanceID", instanceID), slog.String("slug", form.Slug), slog.Int("version", form.Version))
	c.JSON(http.StatusOK, gin.H{"form": form})
}
