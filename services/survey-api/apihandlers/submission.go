package apihandlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/ppmonster111/Nutritional/pkg/jwt-handling"
	"github.com/ppmonster111/Nutritional/pkg/survey/engine"

	surveyDB "github.com/ppmonster111/Nutritional/pkg/db/survey"
)

// dbSubmissionSink stores finished payloads through the survey DB,
// keyed by session ID so retried submits overwrite instead of
// duplicating.
type dbSubmissionSink struct {
	dbConn       *surveyDB.SurveyDBService
	instanceID   string
	respondentID string
}

func (s dbSubmissionSink) Insert(ctx context.Context, payload engine.SubmissionPayload) error {
	return s.dbConn.UpsertSubmission(s.instanceID, s.respondentID, payload)
}

type SubmitSurveyReq struct {
	Answers map[string]engine.Answer `json:"answers"`
}

// submitSurvey replays the submitted answers through the wizard so the
// same completeness, clamping and email rules apply server side, then
// stores the normalized payload and closes the session.
func (h *HttpEndpoints) submitSurvey(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)

	var req SubmitSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	formSlug := token.Payload["formSlug"]
	form, err := h.surveyDBConn.GetCurrentFormVersion(token.InstanceID, formSlug)
	if err != nil {
		slog.Error("form not found", slog.String("instanceID", token.InstanceID), slog.String("slug", formSlug), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	session, err := h.surveyDBConn.GetSessionByID(token.InstanceID, token.SessionID)
	if err != nil {
		slog.Error("survey session not found", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "survey session not found"})
		return
	}

	wizard, err := engine.NewWizard(*form, engine.Config{
		Locale:            h.defaultLocale,
		SessionID:         token.SessionID,
		EmailDomainSuffix: h.emailDomainSuffix,
		Store:             engine.NewMemorySessionStore(),
		Sink: dbSubmissionSink{
			dbConn:       h.surveyDBConn,
			instanceID:   token.InstanceID,
			respondentID: session.RespondentID,
		},
	})
	if err != nil {
		slog.Error("failed to set up submission", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process submission"})
		return
	}

	seedWizardAnswers(wizard, req.Answers)

	// walk the sections so every page is validated
	for wizard.Step() < len(wizard.Sections())-1 {
		if !wizard.Next() {
			sec := wizard.CurrentSection()
			slog.Info("submission rejected by validation",
				slog.String("sessionID", token.SessionID),
				slog.String("section", sec.Key),
				slog.String("field", wizard.FocusField()))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "section is incomplete",
				"section": sec.Key,
				"field":   wizard.FocusField(),
			})
			return
		}
	}

	// summary must be computed before submit clears the answers
	summary := wizard.Summary()
	stress := wizard.StressSummary()

	if err := wizard.Submit(c.Request.Context()); err != nil {
		slog.Error("failed to store submission", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store submission"})
		return
	}

	if err := h.surveyDBConn.FinishSession(token.InstanceID, token.SessionID); err != nil {
		slog.Error("failed to close survey session", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
	}

	// the hosted snapshot is no longer needed
	snapStore := h.surveyDBConn.SnapshotStoreForSession(token.InstanceID, token.SessionID)
	if err := snapStore.Remove(engine.SNAPSHOT_KEY); err != nil {
		slog.Error("failed to remove session snapshot", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
	}
	if err := snapStore.Set(engine.FINISHED_KEY, []byte("true")); err != nil {
		slog.Error("failed to flag finished session", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
	}

	if stress != nil && stress.Advisory {
		go func(sessionID string, score int, severity string) {
			if err := h.advisoryNotifier.NotifyHighStress(sessionID, formSlug, score, severity); err != nil {
				slog.Error("failed to notify care team", slog.String("sessionID", sessionID), slog.String("error", err.Error()))
			}
		}(token.SessionID, stress.Score, stress.Band.Severity)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  engine.SUBMISSION_STATUS_SUBMITTED,
		"summary": summary,
	})
}

// seedWizardAnswers replays the posted answers into a fresh wizard.
// Selections go through SetSelection so the special-option rules hold
// for persisted payloads too; sidecar "other" texts are applied after
// all selections and only stick while their option is selected.
func seedWizardAnswers(wizard *engine.Wizard, answers map[string]engine.Answer) {
	sidecars := map[string]string{}
	for key, answer := range answers {
		if target, isOther := otherTextTargetKey(key); isOther {
			sidecars[target] = answer.Value
			continue
		}
		if answer.IsMulti() {
			wizard.SetSelection(key, answer.Values)
			continue
		}
		wizard.SetValue(key, answer.Value)
	}
	for target, text := range sidecars {
		wizard.SetOtherText(target, text)
	}
}
