package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

func newProfileService() (*ProfileService, *fakeProfileRepo, *fakeMethodRepo) {
	profileRepo := newFakeProfileRepo()
	methodRepo := newFakeMethodRepo()
	return NewProfileService(profileRepo, methodRepo), profileRepo, methodRepo
}

func TestCreatePaymentMethodSeedsPresetFields(t *testing.T) {
	svc, _, _ := newProfileService()

	method, err := svc.CreatePaymentMethod(context.Background(), &CreatePaymentMethodInput{
		OwnerID: uuid.New(),
		Type:    enum.PaymentMethodTypeBank,
		Name:    "Main Account",
	})
	require.NoError(t, err)

	assert.Len(t, method.Fields, 4)
	for _, name := range []string{"Bank Name", "Account Name", "Account Number", "Routing Number"} {
		val, ok := method.Fields[name]
		assert.True(t, ok, "expected preset field %q", name)
		assert.Empty(t, val)
	}
}

func TestCreatePaymentMethodKeepsProvidedFields(t *testing.T) {
	svc, _, _ := newProfileService()

	method, err := svc.CreatePaymentMethod(context.Background(), &CreatePaymentMethodInput{
		OwnerID: uuid.New(),
		Type:    enum.PaymentMethodTypeCrypto,
		Name:    "Cold Wallet",
		Fields:  map[string]string{"Wallet Address": "0xabc"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Wallet Address": "0xabc"}, method.Fields)
}

func TestCreatePaymentMethodRejectsUnknownType(t *testing.T) {
	svc, _, _ := newProfileService()

	_, err := svc.CreatePaymentMethod(context.Background(), &CreatePaymentMethodInput{
		OwnerID: uuid.New(),
		Type:    enum.PaymentMethodType("cheque"),
		Name:    "Cheque",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}

func TestGetProfileScopedToOwner(t *testing.T) {
	svc, profileRepo, _ := newProfileService()

	profile := &entity.CompanyProfile{OwnerID: uuid.New(), Name: "Studio", Email: "a@b.c"}
	require.NoError(t, profileRepo.Create(context.Background(), profile))

	_, err := svc.GetProfile(context.Background(), uuid.New(), profile.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFoundError(err))

	got, err := svc.GetProfile(context.Background(), profile.OwnerID, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
}

func TestListProfilesReturnsEmptySlice(t *testing.T) {
	svc, _, _ := newProfileService()

	profiles, err := svc.ListProfiles(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}
