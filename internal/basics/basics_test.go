package basics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

func TestDepartment_LocationName(t *testing.T) {
	tests := []struct {
		loc  *string
		want string
	}{
		{exercise.Ptr(LocationSofia), "Sofia"},
		{exercise.Ptr(LocationSliven), "Sliven"},
		{exercise.Ptr(LocationYambol), "Yambol"},
		{nil, ""},
	}
	for _, tt := range tests {
		d := Department{Location: tt.loc}
		assert.Equal(t, tt.want, d.LocationName())
	}
}

func TestCallers(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := ListDepartments(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, `HR Human Resources (Yambol): 1 employees
IT Information Technology (Sofia): 12 employees
OPS Operations (no location): 1 employees`, got)

	got, err = ListEmployees(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov <ivan@example.com>, born 1990-04-12, full time\n"+
		"Maria Ivanova <maria@example.com>, born 1995-09-03, part time", got)

	got, err = ListProjects(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Research: no budget\nWebsite: budget 15000.00", got)

	var p Project
	require.NoError(t, db.Where("name = ?", "Research").First(&p).Error)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, exercise.FormatDate(exercise.Today()), exercise.FormatDate(*p.StartDate))
}

func TestConstraints(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	err := store.TranslateError(db.Create(&Department{Code: "FIN", Name: "Operations"}).Error)
	assert.ErrorIs(t, err, types.ErrDuplicate)

	err = db.Create(&Department{Code: "LONGER", Name: "Legal", Location: exercise.Ptr("VT")}).Error
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{
		"code: Ensure this value has at most 4 characters (it has 6).",
		"location: Value 'VT' is not a valid choice.",
	}, ve.Lines())

	err = db.Create(&Employee{Name: "X", EmailAddress: "nope", Photo: "https://example.com/x.png", BirthDate: exercise.Date(2000, time.January, 1)}).Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"email_address: Enter a valid email address."}, ve.Lines())
}
