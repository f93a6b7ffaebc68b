package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ppmonster111/Nutritional/pkg/notifications"

	surveyDB "github.com/ppmonster111/Nutritional/pkg/db/survey"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	surveyDBConn       *surveyDB.SurveyDBService
	advisoryNotifier   *notifications.StressAdvisoryNotifier
	tokenSignKey       string
	tokenExpiresIn     time.Duration
	allowedInstanceIDs []string
	dataReaderAPIKeys  []string
	defaultLocale      string
	emailDomainSuffix  string
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	surveyDBConn *surveyDB.SurveyDBService,
	advisoryNotifier *notifications.StressAdvisoryNotifier,
	allowedInstanceIDs []string,
	dataReaderAPIKeys []string,
	defaultLocale string,
	emailDomainSuffix string,
) *HttpEndpoints {
	return &HttpEndpoints{
		surveyDBConn:       surveyDBConn,
		advisoryNotifier:   advisoryNotifier,
		tokenSignKey:       tokenSignKey,
		tokenExpiresIn:     tokenExpiresIn,
		allowedInstanceIDs: allowedInstanceIDs,
		dataReaderAPIKeys:  dataReaderAPIKeys,
		defaultLocale:      defaultLocale,
		emailDomainSuffix:  emailDomainSuffix,
	}
}
