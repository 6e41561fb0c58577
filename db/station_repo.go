package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PoliceStationRepository interface {
	CreateStation(ctx context.Context, station *models.PoliceStation) error
	FindAllStations(ctx context.Context, unitID *uuid.UUID) ([]models.PoliceStation, error)
	FindStationByID(ctx context.Context, id uuid.UUID) (*models.PoliceStation, error)
	UpdateStation(ctx context.Context, station *models.PoliceStation) error
	DeleteStationByID(ctx context.Context, id uuid.UUID) error
}

type stationRepo struct {
	DB *gorm.DB
}

func NewPoliceStationRepo(db *GormDB) PoliceStationRepository {
	return &stationRepo{db.DB}
}

func (s *stationRepo) CreateStation(ctx context.Context, station *models.PoliceStation) error {
	return errors.Wrap(s.DB.WithContext(ctx).Omit(clause.Associations).Create(station).Error, "creating police station")
}

func (s *stationRepo) FindAllStations(ctx context.Context, unitID *uuid.UUID) ([]models.PoliceStation, error) {
	stations := []models.PoliceStation{}
	query := s.DB.WithContext(ctx).Preload("Unit")
	if unitID != nil {
		query = query.Where("unit_id = ?", *unitID)
	}
	if err := query.Order("name ASC").Find(&stations).Error; err != nil {
		return nil, errors.Wrap(err, "listing police stations")
	}
	return stations, nil
}

func (s *stationRepo) FindStationByID(ctx context.Context, id uuid.UUID) (*models.PoliceStation, error) {
	var station models.PoliceStation
	if err := s.DB.WithContext(ctx).Preload("Unit").First(&station, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding police station %s", id)
	}
	return &station, nil
}

func (s *stationRepo) UpdateStation(ctx context.Context, station *models.PoliceStation) error {
	return errors.Wrapf(s.DB.WithContext(ctx).Omit(clause.Associations).Save(station).Error, "updating police station %s", station.ID)
}

func (s *stationRepo) DeleteStationByID(ctx context.Context, id uuid.UUID) error {
	result := s.DB.WithContext(ctx).Delete(&models.PoliceStation{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "deleting police station %s", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
