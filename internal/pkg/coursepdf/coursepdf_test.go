package coursepdf

import (
	"bytes"
	"testing"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ProducesPDF(t *testing.T) {
	g := NewGenerator(Institution{Name: "Bathudi Automotive Technical Center", Phone: "+27689176294"})
	course := &models.Course{
		Title:               "Automotive Engine Repairer",
		Duration:            "12 months",
		Level:               models.CourseLevelIntermediate,
		Credits:             120,
		Description:         "Diagnose and repair petrol and diesel engines.",
		CareerOpportunities: "Engine fitter, workshop technician",
		RegistrationFee:     661.25,
		RequirementsList: []models.CourseRequirement{
			{RequirementType: models.RequirementMatric, Description: "Grade 12 certificate", IsRequired: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, course))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestFeeLines_SkipsZeroAmounts(t *testing.T) {
	got := feeLines(&models.Course{RegistrationFee: 661.25, MonthlyPayment: 1500})
	assert.Equal(t, "Registration fee: R661.25\nMonthly payment: R1500.00", got)
}
