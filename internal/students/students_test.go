package students

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

func TestReplaceDomain(t *testing.T) {
	assert.Equal(t, "a.b@uni-students.com", ReplaceDomain("a.b@university.com", StudentsDomain))
	assert.Equal(t, "nodomain", ReplaceDomain("nodomain", StudentsDomain))
}

func TestLab(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)

	require.NoError(t, AddStudents(ctx, db))
	require.NoError(t, UpdateStudentsEmails(ctx, db))

	got, err := StudentsInfo(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, `Student №FC5204: John Doe; Email: john.doe@uni-students.com
Student №FE0054: Jane Smith; Email: jane.smith@uni-students.com
Student №FH2014: Alice Johnson; Email: alice.johnson@uni-students.com
Student №FH2015: Bob Wilson; Email: bob.wilson@uni-students.com`, got)

	assert.ErrorIs(t, AddStudents(ctx, db), types.ErrDuplicate)

	n, err := TruncateStudents(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	got, err = StudentsInfo(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, got)
}
