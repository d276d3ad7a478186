package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/models"
	"servic-backend/policy"
	"servic-backend/services/interfaces"
	"servic-backend/utils"
)

const minPasswordLength = 6

type Registration struct {
	Phone     string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// RoleAssignment sets an account's role. BuildingID is only kept for managers.
type RoleAssignment struct {
	Role       string
	BuildingID *uuid.UUID
}

type AccountService struct {
	users     interfaces.IUserRepository
	buildings interfaces.IBuildingRepository
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewAccountService(users interfaces.IUserRepository, buildings interfaces.IBuildingRepository, log logrus.FieldLogger) *AccountService {
	return &AccountService{users: users, buildings: buildings, log: log, now: time.Now}
}

// Register creates a USER account. A phone number already on file is
// rejected before anything is written.
func (s *AccountService) Register(ctx context.Context, in Registration) (models.User, error) {
	phone := utils.NormalizePhone(in.Phone)
	if !utils.ValidatePhone(phone) {
		return models.User{}, validationError("invalid phone number format")
	}
	if len(in.Password) < minPasswordLength {
		return models.User{}, validationError("password must be at least %d characters", minPasswordLength)
	}

	exists, err := s.users.ExistsByPhone(ctx, phone)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrDuplicatePhone
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Phone:     phone,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Password:  hashed,
		Role:      models.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			return models.User{}, ErrDuplicatePhone
		}
		return models.User{}, err
	}

	s.log.WithField("user_id", user.ID).Info("account registered")
	return user, nil
}

// Authenticate checks credentials given a phone number or email.
func (s *AccountService) Authenticate(ctx context.Context, identifier, password string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if phone := utils.NormalizePhone(identifier); errors.Is(err, interfaces.ErrRecordNotFound) && phone != identifier {
		user, err = s.users.GetByIdentifier(ctx, phone)
	}
	if errors.Is(err, interfaces.ErrRecordNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return models.User{}, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	} else {
		user.LastLogin = &now
	}
	return user, nil
}

// Principal loads the current state of an authenticated account.
func (s *AccountService) Principal(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, lookupError(err, "account")
	}
	return user, nil
}

// Get returns an account; staff may read any, others only themselves.
func (s *AccountService) Get(ctx context.Context, actor models.User, id uuid.UUID) (models.User, error) {
	if !policy.IsStaff(actor) && actor.ID != id {
		return models.User{}, forbidden("view this account")
	}
	return s.Principal(ctx, id)
}

// List returns accounts, optionally only those holding role.
func (s *AccountService) List(ctx context.Context, actor models.User, role *models.Role) ([]models.User, error) {
	if !policy.IsStaff(actor) {
		return nil, forbidden("list accounts")
	}
	return s.users.List(ctx, role)
}

// AssignRole changes an account's role. Only admins may do this.
func (s *AccountService) AssignRole(ctx context.Context, actor models.User, id uuid.UUID, in RoleAssignment) (models.User, error) {
	if !policy.IsAdmin(actor) {
		return models.User{}, forbidden("assign roles")
	}
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return models.User{}, validationError("%v", err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, lookupError(err, "account")
	}

	user.Role = role
	user.ManagedBuildingID = nil
	if role == models.RoleManager && in.BuildingID != nil {
		if _, err := s.buildings.GetByID(ctx, *in.BuildingID); err != nil {
			return models.User{}, referenceError(err, "building")
		}
		b := *in.BuildingID
		user.ManagedBuildingID = &b
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"actor_id": actor.ID,
		"role":     role,
	}).Info("account role changed")
	return user, nil
}

// EnsureAdmin promotes the account with phone to ADMIN, creating it with
// password when it does not exist yet. created reports which happened.
func (s *AccountService) EnsureAdmin(ctx context.Context, in Registration) (user models.User, created bool, err error) {
	phone := utils.NormalizePhone(in.Phone)
	if !utils.ValidatePhone(phone) {
		return models.User{}, false, validationError("invalid phone number format")
	}

	user, err = s.users.GetByIdentifier(ctx, phone)
	switch {
	case err == nil:
		user.Role = models.RoleAdmin
		user.ManagedBuildingID = nil
		if err := s.users.Update(ctx, &user); err != nil {
			return models.User{}, false, err
		}
		return user, false, nil
	case !errors.Is(err, interfaces.ErrRecordNotFound):
		return models.User{}, false, err
	}

	user, err = s.Register(ctx, in)
	if err != nil {
		return models.User{}, false, err
	}
	user.Role = models.RoleAdmin
	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

// ProfileUpdate carries the self-service account fields; nil means unchanged.
// Changing the password requires the current one.
type ProfileUpdate struct {
	FirstName       *string
	LastName        *string
	Email           *string
	CurrentPassword string
	NewPassword     string
}

func (s *AccountService) UpdateProfile(ctx context.Context, actor models.User, in ProfileUpdate) (models.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return models.User{}, lookupError(err, "account")
	}

	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.NewPassword != "" {
		if !utils.CheckPasswordHash(in.CurrentPassword, user.Password) {
			return models.User{}, ErrInvalidCredentials
		}
		if len(in.NewPassword) < minPasswordLength {
			return models.User{}, validationError("password must be at least %d characters", minPasswordLength)
		}
		if user.Password, err = utils.HashPassword(in.NewPassword); err != nil {
			return models.User{}, err
		}
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
