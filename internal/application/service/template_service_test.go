package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

func TestCreateTemplateDefaults(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	ownerID := uuid.New()

	template, err := svc.CreateTemplate(context.Background(), &CreateTemplateInput{
		OwnerID: ownerID,
		Name:    "Studio",
		Family:  enum.TemplateFamily("brutalist"),
	})
	require.NoError(t, err)

	assert.Equal(t, enum.TemplateFamilyProfessional, template.Family, "unknown families degrade to professional")
	assert.True(t, template.LogoVisible)
	assert.True(t, template.ShowNotes)
	assert.True(t, template.ShowPayment)
	assert.False(t, template.IsDefault)
	require.Len(t, template.Fields, 5)
	assert.Equal(t, "description", template.Fields[0].ID)
}

func TestCreateTemplateRequiresName(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	_, err := svc.CreateTemplate(context.Background(), &CreateTemplateInput{
		OwnerID: uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}

func TestSetDefaultTemplateExclusivity(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	ownerID := uuid.New()

	first, err := svc.CreateTemplate(context.Background(), &CreateTemplateInput{OwnerID: ownerID, Name: "First"})
	require.NoError(t, err)
	second, err := svc.CreateTemplate(context.Background(), &CreateTemplateInput{OwnerID: ownerID, Name: "Second"})
	require.NoError(t, err)

	_, err = svc.SetDefaultTemplate(context.Background(), ownerID, first.ID)
	require.NoError(t, err)
	flagged, err := svc.SetDefaultTemplate(context.Background(), ownerID, second.ID)
	require.NoError(t, err)
	assert.True(t, flagged.IsDefault)

	templates, err := svc.ListTemplates(context.Background(), ownerID)
	require.NoError(t, err)

	defaults := 0
	for _, tmpl := range templates {
		if tmpl.IsDefault {
			defaults++
			assert.Equal(t, second.ID, tmpl.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSetDefaultTemplateScopedToOwner(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)

	other, err := svc.CreateTemplate(context.Background(), &CreateTemplateInput{OwnerID: uuid.New(), Name: "Foreign"})
	require.NoError(t, err)

	_, err = svc.SetDefaultTemplate(context.Background(), uuid.New(), other.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFoundError(err))
}

func TestUpdateTemplateNeverTouchesDefaultFlag(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	ownerID := uuid.New()

	template, err := svc.CreateTemplate(context.Background(), &CreateTemplateInput{OwnerID: ownerID, Name: "Studio"})
	require.NoError(t, err)
	_, err = svc.SetDefaultTemplate(context.Background(), ownerID, template.ID)
	require.NoError(t, err)

	name := "Renamed"
	family := enum.TemplateFamilyMinimalist
	updated, err := svc.UpdateTemplate(context.Background(), ownerID, template.ID, &UpdateTemplateInput{
		Name:   &name,
		Family: &family,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, enum.TemplateFamilyMinimalist, updated.Family)
	assert.True(t, updated.IsDefault, "renaming must not clear the default flag")
}

func TestGetDefaultTemplateReturnsNilWhenUnset(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	template, err := svc.GetDefaultTemplate(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, template)
}
