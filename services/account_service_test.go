package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"servic-backend/models"
	"servic-backend/services/interfaces"
	mock_interfaces "servic-backend/services/interfaces/mocks"
	"servic-backend/utils"
)

func newAccountService(t *testing.T) (*AccountService, *mock_interfaces.MockIUserRepository, *mock_interfaces.MockIBuildingRepository) {
	ctrl := gomock.NewController(t)
	users := mock_interfaces.NewMockIUserRepository(ctrl)
	buildings := mock_interfaces.NewMockIBuildingRepository(ctrl)
	logger, _ := logtest.NewNullLogger()
	svc := NewAccountService(users, buildings, logger)
	svc.now = func() time.Time { return fixedNow }
	return svc, users, buildings
}

func TestRegister_CreatesUserAccount(t *testing.T) {
	svc, users, _ := newAccountService(t)
	users.EXPECT().ExistsByPhone(gomock.Any(), "+996555123456").Return(false, nil)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		u.ID = uuid.New()
		return nil
	})

	user, err := svc.Register(context.Background(), Registration{
		Phone:     "+996 555 123-456",
		FirstName: " Aida ",
		Password:  "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "+996555123456", user.Phone)
	assert.Equal(t, "Aida", user.FirstName)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, utils.CheckPasswordHash("secret1", user.Password))
}

func TestRegister_DuplicatePhoneCreatesNothing(t *testing.T) {
	svc, users, _ := newAccountService(t)
	users.EXPECT().ExistsByPhone(gomock.Any(), "+14155552671").Return(true, nil)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Register(context.Background(), Registration{Phone: "+14155552671", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateRaceIsStillValidationError(t *testing.T) {
	svc, users, _ := newAccountService(t)
	users.EXPECT().ExistsByPhone(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(interfaces.ErrDuplicateKey)

	_, err := svc.Register(context.Background(), Registration{Phone: "+14155552671", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newAccountService(t)

	for name, in := range map[string]Registration{
		"bad phone":      {Phone: "call me", Password: "secret1"},
		"short password": {Phone: "+14155552671", Password: "12345"},
	} {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, users, _ := newAccountService(t)
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	stored := models.User{ID: uuid.New(), Phone: "+14155552671", Email: "a@example.com", Password: hash}

	users.EXPECT().GetByIdentifier(gomock.Any(), "a@example.com").Return(stored, nil).Times(2)
	users.EXPECT().TouchLastLogin(gomock.Any(), stored.ID, fixedNow).Return(nil)

	user, err := svc.Authenticate(context.Background(), "a@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, fixedNow, *user.LastLogin)

	_, err = svc.Authenticate(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_FormattedPhoneFallsBackToNormalized(t *testing.T) {
	svc, users, _ := newAccountService(t)
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	stored := models.User{ID: uuid.New(), Phone: "+14155552671", Password: hash}

	gomock.InOrder(
		users.EXPECT().GetByIdentifier(gomock.Any(), "+1 415 555 2671").Return(models.User{}, interfaces.ErrRecordNotFound),
		users.EXPECT().GetByIdentifier(gomock.Any(), "+14155552671").Return(stored, nil),
	)
	users.EXPECT().TouchLastLogin(gomock.Any(), stored.ID, gomock.Any()).Return(nil)

	user, err := svc.Authenticate(context.Background(), "+1 415 555 2671", "secret1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

func TestAuthenticate_UnknownAccount(t *testing.T) {
	svc, users, _ := newAccountService(t)
	users.EXPECT().GetByIdentifier(gomock.Any(), "nobody@example.com").Return(models.User{}, interfaces.ErrRecordNotFound)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListAccounts_StaffOnly(t *testing.T) {
	svc, users, _ := newAccountService(t)

	_, err := svc.List(context.Background(), customer(), nil)
	assert.ErrorIs(t, err, ErrForbidden)

	role := models.RoleManager
	users.EXPECT().List(gomock.Any(), &role).Return([]models.User{{ID: uuid.New(), Role: role}}, nil)
	list, err := svc.List(context.Background(), admin(), &role)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetAccount_SelfOrStaff(t *testing.T) {
	svc, users, _ := newAccountService(t)
	me := customer()
	users.EXPECT().GetByID(gomock.Any(), me.ID).Return(me, nil)

	got, err := svc.Get(context.Background(), me, me.ID)
	require.NoError(t, err)
	assert.Equal(t, me.ID, got.ID)

	_, err = svc.Get(context.Background(), me, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAssignRole(t *testing.T) {
	svc, users, buildings := newAccountService(t)
	target := customer()
	building := uuid.New()

	_, err := svc.AssignRole(context.Background(), target, target.ID, RoleAssignment{Role: "ADMIN"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AssignRole(context.Background(), admin(), target.ID, RoleAssignment{Role: "OWNER"})
	assert.ErrorIs(t, err, ErrValidation)

	users.EXPECT().GetByID(gomock.Any(), target.ID).Return(target, nil)
	buildings.EXPECT().GetByID(gomock.Any(), building).Return(models.Building{ID: building}, nil)
	users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	user, err := svc.AssignRole(context.Background(), admin(), target.ID, RoleAssignment{Role: "manager", BuildingID: &building})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)
	assert.True(t, user.Manages(&building))
}

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	svc, users, _ := newAccountService(t)
	existing := customer()
	existing.Phone = "+14155552671"
	users.EXPECT().GetByIdentifier(gomock.Any(), existing.Phone).Return(existing, nil)
	users.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		assert.Equal(t, models.RoleAdmin, u.Role)
		return nil
	})

	user, created, err := svc.EnsureAdmin(context.Background(), Registration{Phone: existing.Phone})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _ := newAccountService(t)
	hashed, err := utils.HashPassword("oldpass")
	require.NoError(t, err)
	me := customer()
	me.Password = hashed
	users.EXPECT().GetByID(gomock.Any(), me.ID).Return(me, nil).AnyTimes()

	_, err = svc.UpdateProfile(context.Background(), me, ProfileUpdate{CurrentPassword: "wrong", NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.UpdateProfile(context.Background(), me, ProfileUpdate{CurrentPassword: "oldpass", NewPassword: "abc"})
	assert.ErrorIs(t, err, ErrValidation)

	name := " Aida "
	users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	user, err := svc.UpdateProfile(context.Background(), me, ProfileUpdate{FirstName: &name, CurrentPassword: "oldpass", NewPassword: "newpass"})
	require.NoError(t, err)
	assert.Equal(t, "Aida", user.FirstName)
	assert.True(t, utils.CheckPasswordHash("newpass", user.Password))
	assert.Equal(t, models.RoleUser, user.Role)
}
