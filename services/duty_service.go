package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	"github.com/techagentng/dutyreport/models"
)

// DutyService manages the duty type and arrangement catalogs.
type DutyService interface {
	CreateDutyType(ctx context.Context, req *models.DutyTypeRequest) (*models.DutyType, error)
	GetDutyTypes(ctx context.Context) ([]models.DutyType, error)
	GetDutyType(ctx context.Context, id uuid.UUID) (*models.DutyType, error)
	UpdateDutyType(ctx context.Context, id uuid.UUID, req *models.DutyTypeRequest) (*models.DutyType, error)
	DeleteDutyType(ctx context.Context, id uuid.UUID) error

	CreateArrangement(ctx context.Context, req *models.ArrangementRequest) (*models.Arrangement, error)
	GetArrangements(ctx context.Context) ([]models.Arrangement, error)
	GetArrangement(ctx context.Context, id uuid.UUID) (*models.Arrangement, error)
	UpdateArrangement(ctx context.Context, id uuid.UUID, req *models.ArrangementRequest) (*models.Arrangement, error)
	DeleteArrangement(ctx context.Context, id uuid.UUID) error
}

type dutyService struct {
	Config          *config.Config
	logger          *logrus.Logger
	dutyTypeRepo    db.DutyTypeRepository
	arrangementRepo db.ArrangementRepository
}

func NewDutyService(dutyTypeRepo db.DutyTypeRepository, arrangementRepo db.ArrangementRepository, conf *config.Config, logger *logrus.Logger) DutyService {
	return &dutyService{
		Config:          conf,
		logger:          logger,
		dutyTypeRepo:    dutyTypeRepo,
		arrangementRepo: arrangementRepo,
	}
}

func (s *dutyService) checkDutyTypeName(ctx context.Context, name string, excludeID uuid.UUID) error {
	found, err := s.dutyTypeRepo.IsDutyTypeNameExist(ctx, name, excludeID)
	if err != nil {
		return storeError(s.logger, "checkDutyTypeName", err, "duty type")
	}
	if found {
		return duplicate("duty type", "name", name)
	}
	return nil
}

func (s *dutyService) CreateDutyType(ctx context.Context, req *models.DutyTypeRequest) (*models.DutyType, error) {
	if err := s.checkDutyTypeName(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}
	dutyType := &models.DutyType{Name: req.Name, Description: req.Description}
	if err := s.dutyTypeRepo.CreateDutyType(ctx, dutyType); err != nil {
		return nil, storeError(s.logger, "CreateDutyType", err, "duty type")
	}
	return dutyType, nil
}

func (s *dutyService) GetDutyTypes(ctx context.Context) ([]models.DutyType, error) {
	dutyTypes, err := s.dutyTypeRepo.FindAllDutyTypes(ctx)
	if err != nil {
		return nil, storeError(s.logger, "GetDutyTypes", err, "duty types")
	}
	return dutyTypes, nil
}

func (s *dutyService) GetDutyType(ctx context.Context, id uuid.UUID) (*models.DutyType, error) {
	dutyType, err := s.dutyTypeRepo.FindDutyTypeByID(ctx, id)
	if err != nil {
		return nil, storeError(s.logger, "GetDutyType", err, "duty type")
	}
	return dutyType, nil
}

func (s *dutyService) UpdateDutyType(ctx context.Context, id uuid.UUID, req *models.DutyTypeRequest) (*models.DutyType, error) {
	dutyType, err := s.GetDutyType(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkDutyTypeName(ctx, req.Name, id); err != nil {
		return nil, err
	}
	dutyType.Name = req.Name
	dutyType.Description = req.Description
	if err := s.dutyTypeRepo.UpdateDutyType(ctx, dutyType); err != nil {
		return nil, storeError(s.logger, "UpdateDutyType", err, "duty type")
	}
	return dutyType, nil
}

// DeleteDutyType removes only the duty type. No unit or station refers to
// duty types, so there is nothing to cascade to.
func (s *dutyService) DeleteDutyType(ctx context.Context, id uuid.UUID) error {
	if err := s.dutyTypeRepo.DeleteDutyTypeByID(ctx, id); err != nil {
		return storeError(s.logger, "DeleteDutyType", err, "duty type")
	}
	return nil
}

func (s *dutyService) CreateArrangement(ctx context.Context, req *models.ArrangementRequest) (*models.Arrangement, error) {
	arrangement := &models.Arrangement{Name: req.Name}
	if err := s.arrangementRepo.CreateArrangement(ctx, arrangement); err != nil {
		return nil, storeError(s.logger, "CreateArrangement", err, "arrangement")
	}
	return arrangement, nil
}

func (s *dutyService) GetArrangements(ctx context.Context) ([]models.Arrangement, error) {
	arrangements, err := s.arrangementRepo.FindAllArrangements(ctx)
	if err != nil {
		return nil, storeError(s.logger, "GetArrangements", err, "arrangements")
	}
	return arrangements, nil
}

func (s *dutyService) GetArrangement(ctx context.Context, id uuid.UUID) (*models.Arrangement, error) {
	arrangement, err := s.arrangementRepo.FindArrangementByID(ctx, id)
	if err != nil {
		return nil, storeError(s.logger, "GetArrangement", err, "arrangement")
	}
	return arrangement, nil
}

func (s *dutyService) UpdateArrangement(ctx context.Context, id uuid.UUID, req *models.ArrangementRequest) (*models.Arrangement, error) {
	arrangement, err := s.GetArrangement(ctx, id)
	if err != nil {
		return nil, err
	}
	arrangement.Name = req.Name
	if err := s.arrangementRepo.UpdateArrangement(ctx, arrangement); err != nil {
		return nil, storeError(s.logger, "UpdateArrangement", err, "arrangement")
	}
	return arrangement, nil
}

func (s *dutyService) DeleteArrangement(ctx context.Context, id uuid.UUID) error {
	if err := s.arrangementRepo.DeleteArrangementByID(ctx, id); err != nil {
		return storeError(s.logger, "DeleteArrangement", err, "arrangement")
	}
	return nil
}
