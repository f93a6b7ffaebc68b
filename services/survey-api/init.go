package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ppmonster111/Nutritional/pkg/apihelpers"
	"github.com/ppmonster111/Nutritional/pkg/db"
	"github.com/ppmonster111/Nutritional/pkg/notifications"
	"github.com/ppmonster111/Nutritional/pkg/utils"
	"gopkg.in/yaml.v2"

	surveyDB "github.com/ppmonster111/Nutritional/pkg/db/survey"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_DB_USERNAME = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD = "SURVEY_DB_PASSWORD"

	ENV_RESPONDENT_JWT_SIGN_KEY = "RESPONDENT_JWT_SIGN_KEY"

	ENV_SMTP_USERNAME = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD = "SMTP_PASSWORD"
)

type SurveyApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// API keys accepted on the data access endpoints
	DataReaderAPIKeys []string `json:"data_reader_api_keys" yaml:"data_reader_api_keys"`

	// DB configs
	DBConfigs struct {
		SurveyDB db.DBConfigYaml `json:"survey_db" yaml:"survey_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Survey module config
	SurveyConfigs struct {
		DefaultLocale     string `json:"default_locale" yaml:"default_locale"`
		EmailDomainSuffix string `json:"email_domain_suffix" yaml:"email_domain_suffix"`

		RespondentJWTConfig struct {
			SignKey   string `json:"sign_key" yaml:"sign_key"`
			ExpiresIn string `json:"expires_in" yaml:"expires_in"`
		} `json:"respondent_jwt_config" yaml:"respondent_jwt_config"`
	} `json:"survey_configs" yaml:"survey_configs"`

	StressAdvisory notifications.StressAdvisoryConfig `json:"stress_advisory" yaml:"stress_advisory"`
}

const DEFAULT_RESPONDENT_TOKEN_EXPIRY = "24h"

var (
	surveyDBService *surveyDB.SurveyDBService

	stressAdvisoryNotifier *notifications.StressAdvisoryNotifier

	respondentTokenExpiresIn time.Duration
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	// JWT configs
	expInVal := conf.SurveyConfigs.RespondentJWTConfig.ExpiresIn
	if expInVal == "" {
		expInVal = DEFAULT_RESPONDENT_TOKEN_EXPIRY
	}
	respondentTokenExpiresIn, err = utils.ParseDurationString(expInVal)
	if err != nil {
		slog.Error("invalid respondent token expiry", slog.String("error", err.Error()), slog.String("value", expInVal))
		panic(err)
	}

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	initStressAdvisoryNotifier()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_SURVEY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.SurveyDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_SURVEY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.SurveyDB.Password = dbPassword
	}

	if respondentJwtSignKey := os.Getenv(ENV_RESPONDENT_JWT_SIGN_KEY); respondentJwtSignKey != "" {
		conf.SurveyConfigs.RespondentJWTConfig.SignKey = respondentJwtSignKey
	}

	if smtpUsername := os.Getenv(ENV_SMTP_USERNAME); smtpUsername != "" {
		for i := range conf.StressAdvisory.SmtpServerConfig.Servers {
			conf.StressAdvisory.SmtpServerConfig.Servers[i].SetUsername(smtpUsername)
		}
	}

	if smtpPassword := os.Getenv(ENV_SMTP_PASSWORD); smtpPassword != "" {
		for i := range conf.StressAdvisory.SmtpServerConfig.Servers {
			conf.StressAdvisory.SmtpServerConfig.Servers[i].SetPassword(smtpPassword)
		}
	}
}

func initDBs() {
	var err error
	surveyDBService, err = surveyDB.NewSurveyDBService(db.DBConfigFromYamlObj(conf.DBConfigs.SurveyDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Survey DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func initStressAdvisoryNotifier() {
	var err error
	stressAdvisoryNotifier, err = notifications.NewStressAdvisoryNotifier(conf.StressAdvisory)
	if err != nil {
		slog.Error("Error setting up stress advisory notifier", slog.String("error", err.Error()))
		panic(err)
	}
}
