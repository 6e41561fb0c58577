package main

import (
	"context"
	"log"
	"time"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	"github.com/techagentng/dutyreport/server"
	"github.com/techagentng/dutyreport/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := config.NewLogger(conf)

	gormDB, err := db.GetDB(conf)
	if err != nil {
		logger.WithError(err).Fatal("connecting to database")
	}
	if err := db.SeedRoles(gormDB.DB); err != nil {
		logger.WithError(err).Fatal("seeding roles")
	}
	if err := db.SeedAdmin(gormDB.DB, conf.AdminEmail, conf.AdminPassword, conf.AdminName); err != nil {
		logger.WithError(err).Fatal("seeding admin account")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mediaRepo, err := db.NewS3MediaRepo(ctx, conf)
	if err != nil {
		logger.WithError(err).Fatal("configuring object storage")
	}
	if conf.AWSBucket == "" {
		logger.Warn("no AWS bucket configured, image uploads will fail")
	}

	var blacklist db.TokenBlacklist
	if conf.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(ctx, conf.RedisAddr)
		if err != nil {
			logger.WithError(err).Fatal("connecting to redis")
		}
		defer redisClient.Close()
		blacklist = db.NewRedisBlacklist(redisClient, logger)
	} else {
		blacklist = db.NewTableBlacklist(gormDB)
	}

	authRepo := db.NewAuthRepo(gormDB)
	zoneRepo := db.NewZoneRepo(gormDB)
	unitRepo := db.NewUnitRepo(gormDB)
	stationRepo := db.NewPoliceStationRepo(gormDB)
	officerRepo := db.NewOfficerRepo(gormDB)
	dutyTypeRepo := db.NewDutyTypeRepo(gormDB)
	arrangementRepo := db.NewArrangementRepo(gormDB)
	deploymentRepo := db.NewDeploymentRepo(gormDB)

	mediaService := services.NewMediaService(mediaRepo, conf, logger)
	authService := services.NewAuthService(authRepo, zoneRepo, unitRepo, blacklist, conf, logger)
	organizationService := services.NewOrganizationService(zoneRepo, unitRepo, stationRepo, conf, logger)
	dutyService := services.NewDutyService(dutyTypeRepo, arrangementRepo, conf, logger)
	officerService := services.NewOfficerService(officerRepo, zoneRepo, unitRepo, stationRepo, mediaService, conf, logger)
	deploymentService := services.NewDeploymentService(services.DeploymentRepos{
		Deployments:  deploymentRepo,
		Zones:        zoneRepo,
		Units:        unitRepo,
		Stations:     stationRepo,
		DutyTypes:    dutyTypeRepo,
		Arrangements: arrangementRepo,
		Officers:     officerRepo,
	}, mediaService, conf, logger)

	s := &server.Server{
		Config:              conf,
		Logger:              logger,
		AuthRepository:      authRepo,
		Blacklist:           blacklist,
		AuthService:         authService,
		OrganizationService: organizationService,
		DutyService:         dutyService,
		OfficerService:      officerService,
		DeploymentService:   deploymentService,
	}

	if err := s.Start(); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
