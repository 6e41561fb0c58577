package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/techagentng/dutyreport/models"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(requestLogger(s.Logger))
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origin := s.Config.AccessControlAllowOrigin; origin == "" || origin == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = strings.Split(origin, ",")
	}
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  s.Config.LoginRateWindow(),
		Limit: s.Config.LoginRateLimit,
	})
	limitRate := limitLoginRate(store)

	apirouter := router.Group("/api/v1")
	apirouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	apirouter.POST("/auth/login", limitRate, s.handleLogin())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.POST("/auth/logout", s.handleLogout())
	authorized.GET("/auth/me", s.handleShowProfile())

	admin := authorized.Group("/")
	admin.Use(RequireRole(models.RoleAdmin))

	authorized.GET("/zones", s.handleGetZones())
	authorized.GET("/zones/:id", s.handleGetZone())
	admin.POST("/zones", s.handleCreateZone())
	admin.PUT("/zones/:id", s.handleUpdateZone())
	admin.DELETE("/zones/:id", s.handleDeleteZone())

	authorized.GET("/units", s.handleGetUnits())
	authorized.GET("/units/:id", s.handleGetUnit())
	admin.POST("/units", s.handleCreateUnit())
	admin.PUT("/units/:id", s.handleUpdateUnit())
	admin.DELETE("/units/:id", s.handleDeleteUnit())

	authorized.GET("/police-stations", s.handleGetStations())
	authorized.GET("/police-stations/:id", s.handleGetStation())
	admin.POST("/police-stations", s.handleCreateStation())
	admin.PUT("/police-stations/:id", s.handleUpdateStation())
	admin.DELETE("/police-stations/:id", s.handleDeleteStation())

	authorized.GET("/officers", s.handleGetOfficers())
	authorized.GET("/officers/:id", s.handleGetOfficer())
	admin.POST("/officers", s.handleCreateOfficer())
	admin.PUT("/officers/:id", s.handleUpdateOfficer())
	admin.POST("/officers/:id/photo", s.handleUploadOfficerPhoto())
	admin.DELETE("/officers/:id", s.handleDeleteOfficer())

	authorized.GET("/duty-type", s.handleGetDutyTypes())
	authorized.GET("/duty-type/:id", s.handleGetDutyType())
	admin.POST("/duty-type", s.handleCreateDutyType())
	admin.PUT("/duty-type/:id", s.handleUpdateDutyType())
	admin.DELETE("/duty-type/:id", s.handleDeleteDutyType())

	authorized.GET("/arrangements", s.handleGetArrangements())
	authorized.GET("/arrangements/:id", s.handleGetArrangement())
	admin.POST("/arrangements", s.handleCreateArrangement())
	admin.PUT("/arrangements/:id", s.handleUpdateArrangement())
	admin.DELETE("/arrangements/:id", s.handleDeleteArrangement())

	authorized.GET("/reports", s.handleGetReports())
	authorized.GET("/reports/summary", s.handleGetReportSummary())
	authorized.GET("/reports/export/excel", s.handleExportExcel())
	authorized.GET("/reports/export/pdf", s.handleExportPDF())
	admin.POST("/reports", s.handleCreateReport())
	admin.DELETE("/reports/:id", s.handleDeleteReport())

	admin.GET("/users", s.handleGetUsers())
	admin.POST("/users", s.handleCreateUser())
	admin.GET("/users/:id", s.handleGetUser())
	admin.PUT("/users/:id", s.handleUpdateUser())
	admin.DELETE("/users/:id", s.handleDeleteUser())
}
