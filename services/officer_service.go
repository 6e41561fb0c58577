package services

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	"github.com/techagentng/dutyreport/models"
)

type OfficerService interface {
	CreateOfficer(ctx context.Context, req *models.OfficerRequest) (*models.Officer, error)
	GetOfficers(ctx context.Context, includeInactive bool) ([]models.Officer, error)
	GetOfficer(ctx context.Context, id uuid.UUID) (*models.Officer, error)
	UpdateOfficer(ctx context.Context, id uuid.UUID, req *models.OfficerRequest) (*models.Officer, error)
	UploadPhoto(ctx context.Context, id uuid.UUID, photo *multipart.FileHeader) (*models.Officer, error)
	DeleteOfficer(ctx context.Context, id uuid.UUID) error
}

type officerService struct {
	Config       *config.Config
	logger       *logrus.Logger
	officerRepo  db.OfficerRepository
	zoneRepo     db.ZoneRepository
	unitRepo     db.UnitRepository
	stationRepo  db.PoliceStationRepository
	mediaService MediaService
}

func NewOfficerService(officerRepo db.OfficerRepository, zoneRepo db.ZoneRepository, unitRepo db.UnitRepository, stationRepo db.PoliceStationRepository, mediaService MediaService, conf *config.Config, logger *logrus.Logger) OfficerService {
	return &officerService{
		Config:       conf,
		logger:       logger,
		officerRepo:  officerRepo,
		zoneRepo:     zoneRepo,
		unitRepo:     unitRepo,
		stationRepo:  stationRepo,
		mediaService: mediaService,
	}
}

func (s *officerService) officerFromRequest(ctx context.Context, req *models.OfficerRequest, officer *models.Officer) error {
	found, err := s.officerRepo.IsBadgeNumberExist(ctx, req.BadgeNumber, officer.ID)
	if err != nil {
		return storeError(s.logger, "officerFromRequest", err, "officer")
	}
	if found {
		return duplicate("officer", "badge number", req.BadgeNumber)
	}

	zoneID, err := parseID(req.ZoneID, "zoneId")
	if err != nil {
		return err
	}
	if _, err := s.zoneRepo.FindZoneByID(ctx, zoneID); err != nil {
		return referenceError(s.logger, err, "zone")
	}
	unitID, err := parseOptionalID(req.UnitID, "unitId")
	if err != nil {
		return err
	}
	if unitID != nil {
		if _, err := s.unitRepo.FindUnitByID(ctx, *unitID); err != nil {
			return referenceError(s.logger, err, "unit")
		}
	}
	stationID, err := parseOptionalID(req.PoliceStationID, "policeStationId")
	if err != nil {
		return err
	}
	if stationID != nil {
		if _, err := s.stationRepo.FindStationByID(ctx, *stationID); err != nil {
			return referenceError(s.logger, err, "police station")
		}
	}

	officer.Name = req.Name
	officer.BadgeNumber = req.BadgeNumber
	officer.Rank = req.Rank
	officer.ZoneID = zoneID
	officer.UnitID = unitID
	officer.PoliceStationID = stationID
	officer.ContactNumber = req.ContactNumber
	officer.Email = req.Email
	return nil
}

func (s *officerService) CreateOfficer(ctx context.Context, req *models.OfficerRequest) (*models.Officer, error) {
	officer := &models.Officer{IsActive: true}
	if err := s.officerFromRequest(ctx, req, officer); err != nil {
		return nil, err
	}
	if err := s.officerRepo.CreateOfficer(ctx, officer); err != nil {
		return nil, storeError(s.logger, "CreateOfficer", err, "officer")
	}
	return s.GetOfficer(ctx, officer.ID)
}

func (s *officerService) GetOfficers(ctx context.Context, includeInactive bool) ([]models.Officer, error) {
	officers, err := s.officerRepo.FindAllOfficers(ctx, includeInactive)
	if err != nil {
		return nil, storeError(s.logger, "GetOfficers", err, "officers")
	}
	return officers, nil
}

func (s *officerService) GetOfficer(ctx context.Context, id uuid.UUID) (*models.Officer, error) {
	officer, err := s.officerRepo.FindOfficerByID(ctx, id)
	if err != nil {
		return nil, storeError(s.logger, "GetOfficer", err, "officer")
	}
	return officer, nil
}

func (s *officerService) UpdateOfficer(ctx context.Context, id uuid.UUID, req *models.OfficerRequest) (*models.Officer, error) {
	officer, err := s.GetOfficer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.officerFromRequest(ctx, req, officer); err != nil {
		return nil, err
	}
	if err := s.officerRepo.UpdateOfficer(ctx, officer); err != nil {
		return nil, storeError(s.logger, "UpdateOfficer", err, "officer")
	}
	return s.GetOfficer(ctx, id)
}

func (s *officerService) UploadPhoto(ctx context.Context, id uuid.UUID, photo *multipart.FileHeader) (*models.Officer, error) {
	if _, err := s.GetOfficer(ctx, id); err != nil {
		return nil, err
	}
	media, err := s.mediaService.UploadImage(ctx, "officers/"+id.String(), photo)
	if err != nil {
		return nil, err
	}
	if err := s.officerRepo.UpdateOfficerPhoto(ctx, id, media.FullSizeURL); err != nil {
		return nil, storeError(s.logger, "UploadPhoto", err, "officer")
	}
	return s.GetOfficer(ctx, id)
}

// DeleteOfficer deactivates the officer. The row is kept.
func (s *officerService) DeleteOfficer(ctx context.Context, id uuid.UUID) error {
	if err := s.officerRepo.DeactivateOfficer(ctx, id); err != nil {
		return storeError(s.logger, "DeleteOfficer", err, "officer")
	}
	return nil
}
