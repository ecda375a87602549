package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

func validDraft() ProductDraft {
	d := New()
	d.Name = "Alphonso Mango"
	d.Details = "Ratnagiri, box of 12"
	d.Price = "799.50"
	d.Quantity = "20"
	return d
}

func TestNewDraftDefaults(t *testing.T) {
	d := New()
	assert.Equal(t, domain.CategoryFruits, d.Category)
	assert.Equal(t, domain.UnitKilogram, d.Unit)
	assert.Empty(t, d.Name)
}

func TestValidateAccepts(t *testing.T) {
	v, err := validDraft().Validate()
	require.NoError(t, err)

	assert.Equal(t, "Alphonso Mango", v.Name)
	assert.Equal(t, 799.5, v.Price)
	assert.Equal(t, 20, v.Quantity)
	assert.Zero(t, v.Discount)
	assert.Zero(t, v.Tax)
}

func TestValidateParsesPercentages(t *testing.T) {
	d := validDraft()
	d.DiscountPercent = " 12.5 "
	d.TaxPercent = "5"

	v, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, 12.5, v.Discount)
	assert.Equal(t, 5.0, v.Tax)
	assert.Equal(t, " 12.5 ", d.DiscountPercent)
}

func TestValidateRejects(t *testing.T) {
	type TestCase struct {
		Name    string
		Mutate  func(d *ProductDraft)
		Message string
	}

	testCases := []TestCase{
		{Name: "zero price", Mutate: func(d *ProductDraft) { d.Price = "0" }, Message: MsgRequiredFields},
		{Name: "non numeric price", Mutate: func(d *ProductDraft) { d.Price = "abc" }, Message: MsgRequiredFields},
		{Name: "NaN price", Mutate: func(d *ProductDraft) { d.Price = "NaN" }, Message: MsgRequiredFields},
		{Name: "negative quantity", Mutate: func(d *ProductDraft) { d.Quantity = "-1" }, Message: MsgRequiredFields},
		{Name: "fractional quantity", Mutate: func(d *ProductDraft) { d.Quantity = "2.5" }, Message: MsgRequiredFields},
		{Name: "blank name", Mutate: func(d *ProductDraft) { d.Name = "   " }, Message: MsgRequiredFields},
		{Name: "blank details", Mutate: func(d *ProductDraft) { d.Details = "" }, Message: MsgRequiredFields},
		{Name: "unknown category", Mutate: func(d *ProductDraft) { d.Category = "Electronics" }, Message: MsgOptionalFields},
		{Name: "unknown unit", Mutate: func(d *ProductDraft) { d.Unit = "ton" }, Message: MsgOptionalFields},
		{Name: "discount above 100", Mutate: func(d *ProductDraft) { d.DiscountPercent = "101" }, Message: MsgOptionalFields},
		{Name: "negative tax", Mutate: func(d *ProductDraft) { d.TaxPercent = "-3" }, Message: MsgOptionalFields},
		{Name: "garbage tax", Mutate: func(d *ProductDraft) { d.TaxPercent = "five" }, Message: MsgOptionalFields},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			d := validDraft()
			tc.Mutate(&d)
			before := d

			_, err := d.Validate()

			require.Error(t, err)
			assert.True(t, errs.IsKind(err, errs.KindValidation))
			assert.Equal(t, tc.Message, errs.PublicMessage(err))
			assert.Equal(t, before, d)
		})
	}
}

func TestValidateReportsRequiredFieldsFirst(t *testing.T) {
	d := validDraft()
	d.Name = ""
	d.Unit = "ton"

	_, err := d.Validate()
	assert.Equal(t, MsgRequiredFields, errs.PublicMessage(err))
}
