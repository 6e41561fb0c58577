package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	errs "github.com/techagentng/dutyreport/errors"
	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/services/summary"
)

// DeploymentService records daily deployment submissions and reads them
// back per day, raw or aggregated.
type DeploymentService interface {
	CreateRecord(ctx context.Context, req *models.DeploymentRequest, images []*multipart.FileHeader) (*models.DeploymentRecord, error)
	GetRecords(ctx context.Context, date string, scope models.Scope) ([]models.DeploymentRecord, error)
	GetSummary(ctx context.Context, date string, scope models.Scope) (*summary.Summary, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

type deploymentService struct {
	Config          *config.Config
	logger          *logrus.Logger
	deploymentRepo  db.DeploymentRepository
	zoneRepo        db.ZoneRepository
	unitRepo        db.UnitRepository
	stationRepo     db.PoliceStationRepository
	dutyTypeRepo    db.DutyTypeRepository
	arrangementRepo db.ArrangementRepository
	officerRepo     db.OfficerRepository
	mediaService    MediaService
}

type DeploymentRepos struct {
	Deployments  db.DeploymentRepository
	Zones        db.ZoneRepository
	Units        db.UnitRepository
	Stations     db.PoliceStationRepository
	DutyTypes    db.DutyTypeRepository
	Arrangements db.ArrangementRepository
	Officers     db.OfficerRepository
}

func NewDeploymentService(repos DeploymentRepos, mediaService MediaService, conf *config.Config, logger *logrus.Logger) DeploymentService {
	return &deploymentService{
		Config:          conf,
		logger:          logger,
		deploymentRepo:  repos.Deployments,
		zoneRepo:        repos.Zones,
		unitRepo:        repos.Units,
		stationRepo:     repos.Stations,
		dutyTypeRepo:    repos.DutyTypes,
		arrangementRepo: repos.Arrangements,
		officerRepo:     repos.Officers,
		mediaService:    mediaService,
	}
}

func (s *deploymentService) allocation() summary.PersonnelAllocation {
	return summary.NewPersonnelAllocation(s.Config.StaffOfficers, s.Config.MalePersonnel, s.Config.FemalePersonnel)
}

// recordFromRequest checks every reference the record makes. References
// are only checked here, at write time.
func (s *deploymentService) recordFromRequest(ctx context.Context, req *models.DeploymentRequest) (*models.DeploymentRecord, error) {
	date, err := time.ParseInLocation(summary.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, errs.Validation("date must be in YYYY-MM-DD format")
	}

	zoneID, err := parseID(req.ZoneID, "zoneId")
	if err != nil {
		return nil, err
	}
	unitID, err := parseID(req.UnitID, "unitId")
	if err != nil {
		return nil, err
	}
	stationID, err := parseID(req.PoliceStationID, "policeStationId")
	if err != nil {
		return nil, err
	}
	dutyTypeID, err := parseID(req.DutyTypeID, "dutyTypeId")
	if err != nil {
		return nil, err
	}
	officerID, err := parseID(req.VerifyingOfficerID, "verifyingOfficerId")
	if err != nil {
		return nil, err
	}
	arrangementID, err := parseOptionalID(req.ArrangementID, "arrangementId")
	if err != nil {
		return nil, err
	}

	if _, err := s.zoneRepo.FindZoneByID(ctx, zoneID); err != nil {
		return nil, referenceError(s.logger, err, "zone")
	}
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return nil, referenceError(s.logger, err, "unit")
	}
	if unit.ZoneID != zoneID {
		return nil, errs.Validation("unit does not belong to the zone")
	}
	station, err := s.stationRepo.FindStationByID(ctx, stationID)
	if err != nil {
		return nil, referenceError(s.logger, err, "police station")
	}
	if station.UnitID != nil && *station.UnitID != unitID {
		return nil, errs.Validation("police station does not belong to the unit")
	}
	if _, err := s.dutyTypeRepo.FindDutyTypeByID(ctx, dutyTypeID); err != nil {
		return nil, referenceError(s.logger, err, "duty type")
	}
	if arrangementID != nil {
		if _, err := s.arrangementRepo.FindArrangementByID(ctx, *arrangementID); err != nil {
			return nil, referenceError(s.logger, err, "arrangement")
		}
	}
	officer, err := s.officerRepo.FindOfficerByID(ctx, officerID)
	if err != nil {
		return nil, referenceError(s.logger, err, "verifying officer")
	}
	if !officer.IsActive {
		return nil, errs.Validation("verifying officer is inactive")
	}

	images := models.StringList{}
	images = append(images, req.Images...)
	return &models.DeploymentRecord{
		Date:               date,
		ZoneID:             zoneID,
		UnitID:             unitID,
		PoliceStationID:    stationID,
		DutyTypeID:         dutyTypeID,
		ArrangementID:      arrangementID,
		DayDutyCount:       req.DayDutyCount,
		NightDutyCount:     req.NightDutyCount,
		DayTotalPhotos:     req.DayTotalPhotos,
		NightTotalPhotos:   req.NightTotalPhotos,
		VerifyingOfficerID: officerID,
		Remarks:            req.Remarks,
		Images:             images,
	}, nil
}

func (s *deploymentService) CreateRecord(ctx context.Context, req *models.DeploymentRequest, images []*multipart.FileHeader) (*models.DeploymentRecord, error) {
	record, err := s.recordFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(images) > 0 {
		folder := "deployments/" + record.Date.Format(summary.DateLayout)
		media, err := s.mediaService.UploadImages(ctx, folder, images)
		if err != nil {
			return nil, err
		}
		record.Images = append(record.Images, ImageURLs(media)...)
	}

	if err := s.deploymentRepo.Create(ctx, record); err != nil {
		return nil, storeError(s.logger, "CreateRecord", err, "deployment record")
	}
	s.logger.WithFields(logrus.Fields{
		"recordId":  record.ID,
		"stationId": record.PoliceStationID,
		"date":      req.Date,
	}).Info("deployment record created")

	created, err := s.deploymentRepo.FindByID(ctx, record.ID)
	if err != nil {
		return nil, storeError(s.logger, "CreateRecord", err, "deployment record")
	}
	return created, nil
}

func (s *deploymentService) GetRecords(ctx context.Context, date string, scope models.Scope) ([]models.DeploymentRecord, error) {
	start, end, err := summary.DayBounds(date)
	if err != nil {
		return nil, err
	}
	records, err := s.deploymentRepo.FindByDateRange(ctx, start, end, scope)
	if err != nil {
		return nil, storeError(s.logger, "GetRecords", err, "deployment records")
	}
	return records, nil
}

func (s *deploymentService) GetSummary(ctx context.Context, date string, scope models.Scope) (*summary.Summary, error) {
	start, end, err := summary.DayBounds(date)
	if err != nil {
		return nil, err
	}
	records, err := s.deploymentRepo.FindByDateRange(ctx, start, end, scope)
	if err != nil {
		return nil, storeError(s.logger, "GetSummary", err, "deployment records")
	}
	return summary.Build(start, records, s.allocation()), nil
}

func (s *deploymentService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.deploymentRepo.DeleteByID(ctx, id); err != nil {
		return storeError(s.logger, "DeleteRecord", err, "deployment record")
	}
	return nil
}
