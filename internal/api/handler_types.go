package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nwestbury/pulselog/internal/db"
	"github.com/nwestbury/pulselog/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool

	repositories    *db.Repositories
	authService     *services.AuthService
	logService      *services.LogService
	insightService  *services.InsightService
	summaryService  *services.SummaryService
	exportService   *services.ExportService
	settingsService *services.SettingsService
}

const (
	authCookieName     = "pulselog_auth"
	contextUserKey     = "current_user"
	contextLocationKey = "current_location"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
