package wizard

import (
	"testing"

	"digibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() models.ContactInfo {
	return models.ContactInfo{Name: "Jane Doe", Phone: "+212612345678", Email: "jane@example.com"}
}

func TestSteps_DependOnService(t *testing.T) {
	tests := []struct {
		service string
		titles  []string
	}{
		{"", []string{"Service Selection", "Service Details", "Contact Information", "Review & Submit"}},
		{ServiceWordPress, []string{"Service Selection", "Service Details", "Contact Information", "Review & Submit"}},
		{ServiceVideoEditing, []string{"Service Selection", "Service Details", "Contact Information", "Review & Submit"}},
		{ServiceTShirtPrinting, []string{"Service Selection", "Service Details", "File Upload", "Contact Information", "Review & Submit"}},
		{ServiceGraphicDesign, []string{"Service Selection", "Service Details", "File Upload", "Contact Information", "Review & Submit"}},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			steps := Steps(tt.service)
			require.Len(t, steps, len(tt.titles))
			for i, s := range steps {
				assert.Equal(t, i+1, s.ID)
				assert.Equal(t, tt.titles[i], s.Title)
			}
		})
	}
}

func TestController_AdvanceWithoutServicePublishesError(t *testing.T) {
	c := NewController(NewRecord(), 1)

	assert.False(t, c.Advance())
	assert.Equal(t, 1, c.CurrentStep())
	assert.Contains(t, c.Errors(), "service")
}

func TestController_AdvanceDoesNotMutateRecord(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceWordPress))
	before := c.Record().Clone()

	assert.True(t, c.Advance())
	assert.False(t, c.Advance())
	assert.Equal(t, before, c.Record())
}

func TestController_RetreatClampsAtFirstStep(t *testing.T) {
	c := NewController(NewRecord(), 1)
	c.Retreat()
	assert.Equal(t, 1, c.CurrentStep())

	require.NoError(t, c.SelectService(ServiceWordPress))
	require.True(t, c.Advance())
	c.Retreat()
	assert.Equal(t, 1, c.CurrentStep())
}

func TestController_JumpToGatedByEarlierSteps(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceWordPress))

	assert.False(t, c.JumpTo(3), "details are incomplete")
	assert.Equal(t, 1, c.CurrentStep())

	assert.True(t, c.JumpTo(2))
	assert.True(t, c.JumpTo(2))
	assert.Equal(t, 2, c.CurrentStep())

	assert.False(t, c.JumpTo(0))
	assert.False(t, c.JumpTo(9))
	assert.Equal(t, 2, c.CurrentStep())
}

func TestController_ServiceChangeResetsDetails(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceWordPress))
	require.NoError(t, c.SetDetail("websiteType", "new"))

	require.NoError(t, c.SelectService(ServiceWordPress))
	assert.Equal(t, "new", c.Record().ServiceDetails["websiteType"], "reselecting keeps details")

	require.NoError(t, c.SelectService(ServiceGraphicDesign))
	assert.Empty(t, c.Record().ServiceDetails)
}

func TestController_ChangeService(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceVideoEditing))
	require.NoError(t, c.SetDetail("videoLength", "20"))
	require.True(t, c.JumpTo(2))

	c.ChangeService()
	assert.Equal(t, 1, c.CurrentStep())
	assert.Empty(t, c.Record().Service)
	assert.Empty(t, c.Record().ServiceDetails)
}

func TestController_SelectServiceSnapsWhenUploadStepToggles(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceTShirtPrinting))
	require.NoError(t, c.SetDetails(map[string]string{"printingMethod": "dtf", "quantity": "3", "sizes": "m"}))
	require.NoError(t, c.SetContact(validContact()))
	require.True(t, c.JumpTo(4))

	require.NoError(t, c.SelectService(ServiceWordPress))
	assert.Equal(t, 2, c.CurrentStep())
}

func TestController_SelectServiceWithoutToggleReturnsToDetails(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceGraphicDesign))
	require.NoError(t, c.SetDetails(map[string]string{"designType": "logo", "dimensions": "500x500", "conceptCount": "2"}))
	require.NoError(t, c.SetContact(validContact()))
	require.True(t, c.JumpTo(5))

	require.NoError(t, c.SelectService(ServiceTShirtPrinting))
	assert.Equal(t, 2, c.CurrentStep())
	assert.Equal(t, StepDetails, c.Current().Kind)
	assert.Len(t, c.Steps(), 5)
	assert.False(t, c.JumpTo(3), "details are empty after the switch")
}

func TestController_ReselectingSameServiceKeepsIndex(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceWordPress))
	require.NoError(t, c.SetDetails(map[string]string{"websiteType": "new", "pageCount": "portfolio"}))
	require.NoError(t, c.SetContact(validContact()))
	require.True(t, c.JumpTo(4))

	require.NoError(t, c.SelectService(ServiceWordPress))
	assert.Equal(t, 4, c.CurrentStep())
}

func TestController_NewControllerClampsIndex(t *testing.T) {
	r := NewRecord()
	r.Service = ServiceWordPress
	assert.Equal(t, 4, NewController(r, 7).CurrentStep())
	assert.Equal(t, 1, NewController(r, -2).CurrentStep())
}

func TestController_SetDetailRejectsForeignFields(t *testing.T) {
	c := NewController(NewRecord(), 1)
	assert.ErrorIs(t, c.SetDetail("websiteType", "new"), ErrNoService)

	require.NoError(t, c.SelectService(ServiceWordPress))
	var fe *FieldError
	require.ErrorAs(t, c.SetDetail("quantity", "4"), &fe)
	assert.Equal(t, "quantity", fe.Field)

	assert.Error(t, c.SetDetails(map[string]string{"pageCount": "press", "designType": "logo"}))
	assert.NotContains(t, c.Record().ServiceDetails, "pageCount", "batch writes are all or nothing")
}

func TestController_SelectUnknownService(t *testing.T) {
	c := NewController(NewRecord(), 1)
	assert.ErrorIs(t, c.SelectService("plumbing"), ErrUnknownService)
	assert.Empty(t, c.Record().Service)
}

func TestController_SetContactDefaultsAndNormalizes(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SetContact(models.ContactInfo{Name: " Ali ", Phone: "06 12 34 56 78", Email: "ali@example.ma"}))

	got := c.Record().ContactInfo
	assert.Equal(t, "Ali", got.Name)
	assert.Equal(t, "+212612345678", got.Phone)
	assert.Equal(t, ChannelWhatsApp, got.PreferredContact)

	assert.ErrorIs(t, c.SetContact(models.ContactInfo{PreferredContact: "pigeon"}), ErrInvalidChannel)
}

func TestController_Files(t *testing.T) {
	c := NewController(NewRecord(), 1)
	c.AddFiles([]models.FileDescriptor{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	assert.True(t, c.RemoveFile("b"))
	assert.False(t, c.RemoveFile("b"))
	require.Len(t, c.Record().Files, 2)
	assert.Equal(t, "a", c.Record().Files[0].ID)
	assert.Equal(t, "c", c.Record().Files[1].ID)
}

func TestController_TShirtEndToEnd(t *testing.T) {
	c := NewController(NewRecord(), 1)

	require.NoError(t, c.SelectService(ServiceTShirtPrinting))
	require.True(t, c.Advance())
	assert.Equal(t, StepDetails, c.Current().Kind)

	require.NoError(t, c.SetDetails(map[string]string{"printingMethod": "dtf", "quantity": "7", "sizes": "m"}))
	require.True(t, c.Advance())
	assert.Equal(t, StepFiles, c.Current().Kind)

	require.True(t, c.Advance())
	assert.Equal(t, StepContact, c.Current().Kind)

	require.NoError(t, c.SetContact(validContact()))
	require.True(t, c.Advance())
	assert.Equal(t, StepReview, c.Current().Kind)
	assert.Equal(t, 5, c.CurrentStep())
	assert.True(t, c.IsLast())
	assert.True(t, c.Complete())

	require.True(t, c.Advance())
	assert.Equal(t, 5, c.CurrentStep(), "advance clamps at the last step")
}

func TestController_EmbroideryNeedsExtraFields(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceTShirtPrinting))
	require.True(t, c.Advance())
	require.NoError(t, c.SetDetails(map[string]string{"printingMethod": "embroidery", "quantity": "12", "sizes": "l"}))

	require.False(t, c.Advance())
	assert.Contains(t, c.Errors(), "embroideryGarmentType")
	assert.Contains(t, c.Errors(), "embroideryType")
	assert.Contains(t, c.Errors(), "embroideryPlacement")
}

func TestController_WordPressMaintenanceRequiresURL(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceWordPress))
	require.True(t, c.Advance())

	require.NoError(t, c.SetDetails(map[string]string{"websiteType": "maintenance", "pageCount": "elementor"}))
	require.False(t, c.Advance())
	assert.Equal(t, "Existing Url is required", c.Errors()["existingUrl"])

	require.NoError(t, c.SetDetail("existingUrl", "https://example.ma"))
	require.True(t, c.Advance())
	assert.Equal(t, StepContact, c.Current().Kind)
	assert.Equal(t, 3, c.CurrentStep())
	assert.Empty(t, c.Errors())
}

func TestController_ValidateAll(t *testing.T) {
	c := NewController(NewRecord(), 1)
	require.NoError(t, c.SelectService(ServiceGraphicDesign))

	errs := c.ValidateAll()
	assert.Contains(t, errs, "designType")
	assert.Contains(t, errs, "name")
	assert.False(t, c.Complete())
}
