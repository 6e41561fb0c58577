package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	"github.com/techagentng/dutyreport/models"
)

// OrganizationService manages the zone → unit → station hierarchy.
type OrganizationService interface {
	CreateZone(ctx context.Context, req *models.ZoneRequest) (*models.Zone, error)
	GetZones(ctx context.Context) ([]models.Zone, error)
	GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	UpdateZone(ctx context.Context, id uuid.UUID, req *models.ZoneRequest) (*models.Zone, error)
	DeleteZone(ctx context.Context, id uuid.UUID) error

	CreateUnit(ctx context.Context, req *models.UnitRequest) (*models.Unit, error)
	GetUnits(ctx context.Context, zoneID *uuid.UUID) ([]models.Unit, error)
	GetUnit(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	UpdateUnit(ctx context.Context, id uuid.UUID, req *models.UnitRequest) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	CreateStation(ctx context.Context, req *models.PoliceStationRequest) (*models.PoliceStation, error)
	GetStations(ctx context.Context, unitID *uuid.UUID) ([]models.PoliceStation, error)
	GetStation(ctx context.Context, id uuid.UUID) (*models.PoliceStation, error)
	UpdateStation(ctx context.Context, id uuid.UUID, req *models.PoliceStationRequest) (*models.PoliceStation, error)
	DeleteStation(ctx context.Context, id uuid.UUID) error
}

type organizationService struct {
	Config      *config.Config
	logger      *logrus.Logger
	zoneRepo    db.ZoneRepository
	unitRepo    db.UnitRepository
	stationRepo db.PoliceStationRepository
}

func NewOrganizationService(zoneRepo db.ZoneRepository, unitRepo db.UnitRepository, stationRepo db.PoliceStationRepository, conf *config.Config, logger *logrus.Logger) OrganizationService {
	return &organizationService{
		Config:      conf,
		logger:      logger,
		zoneRepo:    zoneRepo,
		unitRepo:    unitRepo,
		stationRepo: stationRepo,
	}
}

func (s *organizationService) CreateZone(ctx context.Context, req *models.ZoneRequest) (*models.Zone, error) {
	if err := s.checkZoneName(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}
	zone := &models.Zone{Name: req.Name}
	if err := s.zoneRepo.CreateZone(ctx, zone); err != nil {
		return nil, storeError(s.logger, "CreateZone", err, "zone")
	}
	return zone, nil
}

func (s *organizationService) checkZoneName(ctx context.Context, name string, excludeID uuid.UUID) error {
	found, err := s.zoneRepo.IsZoneNameExist(ctx, name, excludeID)
	if err != nil {
		return storeError(s.logger, "checkZoneName", err, "zone")
	}
	if found {
		return duplicate("zone", "name", name)
	}
	return nil
}

func (s *organizationService) GetZones(ctx context.Context) ([]models.Zone, error) {
	zones, err := s.zoneRepo.FindAllZones(ctx)
	if err != nil {
		return nil, storeError(s.logger, "GetZones", err, "zones")
	}
	return zones, nil
}

func (s *organizationService) GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	zone, err := s.zoneRepo.FindZoneByID(ctx, id)
	if err != nil {
		return nil, storeError(s.logger, "GetZone", err, "zone")
	}
	return zone, nil
}

func (s *organizationService) UpdateZone(ctx context.Context, id uuid.UUID, req *models.ZoneRequest) (*models.Zone, error) {
	zone, err := s.GetZone(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkZoneName(ctx, req.Name, id); err != nil {
		return nil, err
	}
	zone.Name = req.Name
	if err := s.zoneRepo.UpdateZone(ctx, zone); err != nil {
		return nil, storeError(s.logger, "UpdateZone", err, "zone")
	}
	return zone, nil
}

func (s *organizationService) DeleteZone(ctx context.Context, id uuid.UUID) error {
	if err := s.zoneRepo.DeleteZoneCascade(ctx, id); err != nil {
		return storeError(s.logger, "DeleteZone", err, "zone")
	}
	s.logger.WithField("zoneId", id).Info("zone deleted with its units and stations")
	return nil
}

// unitFromRequest validates the zone reference and fills unit.
func (s *organizationService) unitFromRequest(ctx context.Context, req *models.UnitRequest, unit *models.Unit) error {
	zoneID, err := parseID(req.ZoneID, "zoneId")
	if err != nil {
		return err
	}
	zone, err := s.zoneRepo.FindZoneByID(ctx, zoneID)
	if err != nil {
		return referenceError(s.logger, err, "zone")
	}
	unit.Name = req.Name
	unit.Type = req.Type
	unit.ZoneID = zoneID
	unit.Zone = zone
	return nil
}

func (s *organizationService) CreateUnit(ctx context.Context, req *models.UnitRequest) (*models.Unit, error) {
	unit := &models.Unit{}
	if err := s.unitFromRequest(ctx, req, unit); err != nil {
		return nil, err
	}
	if err := s.unitRepo.CreateUnit(ctx, unit); err != nil {
		return nil, storeError(s.logger, "CreateUnit", err, "unit")
	}
	return unit, nil
}

func (s *organizationService) GetUnits(ctx context.Context, zoneID *uuid.UUID) ([]models.Unit, error) {
	units, err := s.unitRepo.FindAllUnits(ctx, zoneID)
	if err != nil {
		return nil, storeError(s.logger, "GetUnits", err, "units")
	}
	return units, nil
}

func (s *organizationService) GetUnit(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	unit, err := s.unitRepo.FindUnitByID(ctx, id)
	if err != nil {
		return nil, storeError(s.logger, "GetUnit", err, "unit")
	}
	return unit, nil
}

func (s *organizationService) UpdateUnit(ctx context.Context, id uuid.UUID, req *models.UnitRequest) (*models.Unit, error) {
	unit, err := s.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.unitFromRequest(ctx, req, unit); err != nil {
		return nil, err
	}
	if err := s.unitRepo.UpdateUnit(ctx, unit); err != nil {
		return nil, storeError(s.logger, "UpdateUnit", err, "unit")
	}
	return unit, nil
}

func (s *organizationService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	if err := s.unitRepo.DeleteUnitCascade(ctx, id); err != nil {
		return storeError(s.logger, "DeleteUnit", err, "unit")
	}
	s.logger.WithField("unitId", id).Info("unit deleted with its stations")
	return nil
}

func (s *organizationService) stationFromRequest(ctx context.Context, req *models.PoliceStationRequest, station *models.PoliceStation) error {
	unitID, err := parseOptionalID(req.UnitID, "unitId")
	if err != nil {
		return err
	}
	station.Unit = nil
	if unitID != nil {
		unit, err := s.unitRepo.FindUnitByID(ctx, *unitID)
		if err != nil {
			return referenceError(s.logger, err, "unit")
		}
		station.Unit = unit
	}
	station.Name = req.Name
	station.Address = req.Address
	station.UnitID = unitID
	return nil
}

func (s *organizationService) CreateStation(ctx context.Context, req *models.PoliceStationRequest) (*models.PoliceStation, error) {
	station := &models.PoliceStation{}
	if err := s.stationFromRequest(ctx, req, station); err != nil {
		return nil, err
	}
	if err := s.stationRepo.CreateStation(ctx, station); err != nil {
		return nil, storeError(s.logger, "CreateStation", err, "police station")
	}
	return station, nil
}

func (s *organizationService) GetStations(ctx context.Context, unitID *uuid.UUID) ([]models.PoliceStation, error) {
	stations, err := s.stationRepo.FindAllStations(ctx, unitID)
	if err != nil {
		return nil, storeError(s.logger, "GetStations", err, "police stations")
	}
	return stations, nil
}

func (s *organizationService) GetStation(ctx context.Context, id uuid.UUID) (*models.PoliceStation, error) {
	station, err := s.stationRepo.FindStationByID(ctx, id)
	if err != nil {
		return nil, storeError(s.logger, "GetStation", err, "police station")
	}
	return station, nil
}

func (s *organizationService) UpdateStation(ctx context.Context, id uuid.UUID, req *models.PoliceStationRequest) (*models.PoliceStation, error) {
	station, err := s.GetStation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.stationFromRequest(ctx, req, station); err != nil {
		return nil, err
	}
	if err := s.stationRepo.UpdateStation(ctx, station); err != nil {
		return nil, storeError(s.logger, "UpdateStation", err, "police station")
	}
	return station, nil
}

func (s *organizationService) DeleteStation(ctx context.Context, id uuid.UUID) error {
	if err := s.stationRepo.DeleteStationByID(ctx, id); err != nil {
		return storeError(s.logger, "DeleteStation", err, "police station")
	}
	return nil
}
