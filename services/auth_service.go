package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	apiError "github.com/techagentng/dutyreport/errors"
	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/services/jwt"
	"github.com/techagentng/dutyreport/services/utils"
)

// AuthService covers sign-in, sign-out and user administration.
type AuthService interface {
	LoginUser(ctx context.Context, loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	Logout(ctx context.Context, accessToken string) error
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, req *models.UserRequest) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, userID uuid.UUID) error
}

type authService struct {
	Config    *config.Config
	logger    *logrus.Logger
	authRepo  db.AuthRepository
	zoneRepo  db.ZoneRepository
	unitRepo  db.UnitRepository
	blacklist db.TokenBlacklist
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, zoneRepo db.ZoneRepository, unitRepo db.UnitRepository, blacklist db.TokenBlacklist, conf *config.Config, logger *logrus.Logger) AuthService {
	return &authService{
		Config:    conf,
		logger:    logger,
		authRepo:  authRepo,
		zoneRepo:  zoneRepo,
		unitRepo:  unitRepo,
		blacklist: blacklist,
	}
}

func (a *authService) LoginUser(ctx context.Context, loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(ctx, loginRequest.Email)
	if err != nil {
		if apiError.FromStore(err, "user").Kind == apiError.KindNotFound {
			return nil, apiError.ErrInvalidPassword
		}
		config.LogError(a.logger, "services", "LoginUser", "finding user", loginRequest.Email, err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := utils.VerifyPassword(foundUser.HashedPassword, loginRequest.Password); err != nil {
		a.logger.WithField("email", foundUser.Email).Warn("invalid password")
		return nil, apiError.ErrInvalidPassword
	}
	if !foundUser.IsActive {
		return nil, apiError.ErrInactiveUser
	}

	accessToken, expiresAt, err := jwt.GenerateToken(foundUser.ID, foundUser.Email, foundUser.Role.Name, a.Config.JWTSecret, a.Config.AccessTokenTTL())
	if err != nil {
		config.LogError(a.logger, "services", "LoginUser", "generating token", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        foundUser,
	}, nil
}

func (a *authService) Logout(ctx context.Context, accessToken string) error {
	ttl := a.Config.AccessTokenTTL()
	if claims, err := jwt.ValidateAndGetClaims(accessToken, a.Config.JWTSecret); err == nil {
		ttl = jwt.RemainingTTL(claims)
	}
	if err := a.blacklist.AddToBlackList(ctx, accessToken, ttl); err != nil {
		config.LogError(a.logger, "services", "Logout", "blacklisting token", nil, err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (a *authService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := a.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(a.logger, "GetUserProfile", err, "user")
	}
	return user, nil
}

func (a *authService) role(ctx context.Context, name string) (*models.Role, error) {
	if name == "" {
		name = models.RoleUser
	}
	role, err := a.authRepo.FindRoleByName(ctx, name)
	if err != nil {
		return nil, referenceError(a.logger, err, "role")
	}
	return role, nil
}

// scope resolves a user's read scope. Both ids are optional; a unit must sit
// inside the zone, and a unit given without a zone scopes to the unit's zone.
func (a *authService) scope(ctx context.Context, rawZone, rawUnit string) (*uuid.UUID, *uuid.UUID, error) {
	zoneID, err := parseOptionalID(strings.TrimSpace(rawZone), "zoneId")
	if err != nil {
		return nil, nil, err
	}
	unitID, err := parseOptionalID(strings.TrimSpace(rawUnit), "unitId")
	if err != nil {
		return nil, nil, err
	}

	if zoneID != nil {
		if _, err := a.zoneRepo.FindZoneByID(ctx, *zoneID); err != nil {
			return nil, nil, referenceError(a.logger, err, "zone")
		}
	}
	if unitID != nil {
		unit, err := a.unitRepo.FindUnitByID(ctx, *unitID)
		if err != nil {
			return nil, nil, referenceError(a.logger, err, "unit")
		}
		if zoneID == nil {
			zoneID = &unit.ZoneID
		} else if unit.ZoneID != *zoneID {
			return nil, nil, apiError.Validation("unit does not belong to the zone")
		}
	}
	return zoneID, unitID, nil
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func (a *authService) CreateUser(ctx context.Context, req *models.UserRequest) (*models.User, error) {
	found, err := a.authRepo.IsEmailExist(ctx, req.Email)
	if err != nil {
		return nil, storeError(a.logger, "CreateUser", err, "user")
	}
	if found {
		return nil, duplicate("user", "email", req.Email)
	}
	if err := models.ValidatePassword(req.Password); err != nil {
		return nil, apiError.Validation(err.Error())
	}

	role, err := a.role(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	zoneID, unitID, err := a.scope(ctx, req.ZoneID, req.UnitID)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		config.LogError(a.logger, "services", "CreateUser", "hashing password", nil, err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: hashedPassword,
		RoleID:         role.ID,
		ZoneID:         zoneID,
		UnitID:         unitID,
		IsActive:       true,
	}
	if err := a.authRepo.CreateUser(ctx, user); err != nil {
		return nil, storeError(a.logger, "CreateUser", err, "user")
	}
	user.Role = *role
	return user, nil
}

func (a *authService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.authRepo.FindAllUsers(ctx)
	if err != nil {
		return nil, storeError(a.logger, "GetAllUsers", err, "users")
	}
	return users, nil
}

func (a *authService) UpdateUser(ctx context.Context, userID uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := a.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		if err := models.ValidatePassword(req.Password); err != nil {
			return nil, apiError.Validation(err.Error())
		}
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			config.LogError(a.logger, "services", "UpdateUser", "hashing password", nil, err)
			return nil, apiError.ErrInternalServerError
		}
		user.HashedPassword = hashedPassword
	}
	if req.Role != "" {
		role, err := a.role(ctx, req.Role)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
	}
	if req.ZoneID != nil || req.UnitID != nil {
		rawZone, rawUnit := idString(user.ZoneID), idString(user.UnitID)
		if req.ZoneID != nil {
			rawZone = *req.ZoneID
		}
		if req.UnitID != nil {
			rawUnit = *req.UnitID
		}
		if user.ZoneID, user.UnitID, err = a.scope(ctx, rawZone, rawUnit); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := a.authRepo.UpdateUser(ctx, user); err != nil {
		return nil, storeError(a.logger, "UpdateUser", err, "user")
	}
	return user, nil
}

func (a *authService) DeleteUser(ctx context.Context, actor *models.User, userID uuid.UUID) error {
	if actor != nil && actor.ID == userID {
		return apiError.Validation("you cannot delete your own account")
	}
	if err := a.authRepo.DeleteUserByID(ctx, userID); err != nil {
		return storeError(a.logger, "DeleteUser", err, "user")
	}
	return nil
}
