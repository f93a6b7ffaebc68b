package apihandlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mw "github.com/ppmonster111/Nutritional/pkg/apihelpers/middlewares"
	jwthandling "github.com/ppmonster111/Nutritional/pkg/jwt-handling"
	"github.com/ppmonster111/Nutritional/pkg/survey/engine"
	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

func (h *HttpEndpoints) AddSurveyFlowAPI(rg *gin.RouterGroup) {
	surveyGroup := rg.Group("/survey")

	surveyGroup.POST("/session", mw.RequirePayload(), h.startSession)

	authedGroup := surveyGroup.Group("")
	authedGroup.Use(mw.GetAndValidateRespondentJWT(h.tokenSignKey))
	{
		authedGroup.GET("/forms/:slug", h.getCurrentForm)
		authedGroup.GET("/session/snapshot", h.getSessionSnapshot)
		authedGroup.PUT("/session/snapshot", mw.RequirePayload(), h.putSessionSnapshot)
		authedGroup.DELETE("/session/snapshot", h.removeSessionSnapshot)
		authedGroup.GET("/summary", h.getSummary)
		authedGroup.POST("/submit", mw.RequirePayload(), h.submitSurvey)
	}
}

type StartSessionReq struct {
	InstanceID string `json:"instanceId"`
	FormSlug   string `json:"formSlug"`
	Respondent struct {
		LineUserID  string `json:"lineUserId"`
		DisplayName string `json:"displayName"`
		PictureURL  string `json:"pictureUrl"`
		Email       string `json:"email"`
	} `json:"respondent"`
}

// startSession upserts the respondent profile, opens (or resumes) a
// survey session and returns a respondent token scoped to it.
func (h *HttpEndpoints) startSession(c *gin.Context) {
	var req StartSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.InstanceID == "" || req.FormSlug == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if !mw.IsInstanceAllowed(req.InstanceID, h.allowedInstanceIDs) {
		slog.Error("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid instance id"})
		return
	}

	respondentID := req.Respondent.LineUserID
	if respondentID == "" {
		// anonymous respondent, one-off identity
		respondentID = uuid.NewString()
	} else {
		profile := surveyTypes.RespondentProfile{
			ID:          respondentID,
			LineUserID:  req.Respondent.LineUserID,
			DisplayName: req.Respondent.DisplayName,
			PictureURL:  req.Respondent.PictureURL,
			Email:       req.Respondent.Email,
		}
		if err := h.surveyDBConn.UpsertProfile(req.InstanceID, profile); err != nil {
			slog.Error("failed to upsert respondent profile", slog.String("instanceID", req.InstanceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save respondent profile"})
			return
		}
	}

	session, err := h.surveyDBConn.EnsureOpenSession(req.InstanceID, respondentID, req.FormSlug)
	if err != nil {
		slog.Error("failed to open survey session", slog.String("instanceID", req.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open survey session"})
		return
	}

	token, err := jwthandling.GenerateNewRespondentToken(
		h.tokenExpiresIn,
		respondentID,
		req.InstanceID,
		session.SessionID,
		map[string]string{
			"formSlug": req.FormSlug,
		},
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate respondent token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":   session.SessionID,
		"accessToken": token,
		"expiresIn":   h.tokenExpiresIn.Seconds(),
	})
}

func (h *HttpEndpoints) getCurrentForm(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)

	slug := c.Param("slug")
	form, err := h.surveyDBConn.GetCurrentFormVersion(token.InstanceID, slug)
	if err != nil {
		slog.Error("form not found", slog.String("instanceID", token.InstanceID), slog.String("slug", slug), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *HttpEndpoints) getSessionSnapshot(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)

	key := c.DefaultQuery("key", engine.SNAPSHOT_KEY)
	if !isAllowedSnapshotKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot key"})
		return
	}

	store := h.surveyDBConn.SnapshotStoreForSession(token.InstanceID, token.SessionID)
	value, err := store.Get(key)
	if err != nil {
		slog.Error("failed to read session snapshot", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": string(value),
	})
}

type SnapshotReq struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *HttpEndpoints) putSessionSnapshot(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)

	var req SnapshotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isAllowedSnapshotKey(req.Key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot key"})
		return
	}

	store := h.surveyDBConn.SnapshotStoreForSession(token.InstanceID, token.SessionID)
	if err := store.Set(req.Key, []byte(req.Value)); err != nil {
		slog.Error("failed to save session snapshot", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "snapshot saved"})
}

func (h *HttpEndpoints) removeSessionSnapshot(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)

	key := c.DefaultQuery("key", engine.SNAPSHOT_KEY)
	if !isAllowedSnapshotKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot key"})
		return
	}

	store := h.surveyDBConn.SnapshotStoreForSession(token.InstanceID, token.SessionID)
	if err := store.Remove(key); err != nil {
		slog.Error("failed to remove session snapshot", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "snapshot removed"})
}

// getSummary reconstructs the wizard from the stored session snapshot
// and returns the derived metrics and scores without submitting.
func (h *HttpEndpoints) getSummary(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)

	formSlug := token.Payload["formSlug"]
	form, err := h.surveyDBConn.GetCurrentFormVersion(token.InstanceID, formSlug)
	if err != nil {
		slog.Error("form not found", slog.String("instanceID", token.InstanceID), slog.String("slug", formSlug), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	store := h.surveyDBConn.SnapshotStoreForSession(token.InstanceID, token.SessionID)
	wizard, err := engine.NewWizard(*form, engine.Config{
		Locale:            h.defaultLocale,
		SessionID:         token.SessionID,
		EmailDomainSuffix: h.emailDomainSuffix,
		Store:             store,
	})
	if err != nil {
		slog.Error("failed to set up summary view", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": wizard.Summary()})
}

func isAllowedSnapshotKey(key string) bool {
	return key == engine.SNAPSHOT_KEY || key == engine.FINISHED_KEY
}

func otherTextTargetKey(key string) (string, bool) {
	if strings.HasSuffix(key, engine.OTHER_TEXT_SUFFIX) {
		return strings.TrimSuffix(key, engine.OTHER_TEXT_SUFFIX), true
	}
	return key, false
}
