package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpAndLoad(t *testing.T) {
	ctx := context.Background()
	models := []any{&owner{}, &pet{}, &tag{}}

	src := attachFile(t, t.TempDir())
	require.NoError(t, src.Migrate(ctx, models...))
	o := owner{Name: "Ana", Tags: []tag{{Label: "vip"}, {Label: "new"}}}
	require.NoError(t, src.DB().Create(&o).Error)
	require.NoError(t, src.DB().Create(&pet{Name: "Rex", OwnerID: o.ID}).Error)

	dumpDir := t.TempDir()
	counts, err := src.Dump(ctx, dumpDir, models...)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"owners": 1, "pets": 1, "tags": 2, "owner_tags": 2}, counts)

	dst := attachFile(t, t.TempDir())
	require.NoError(t, dst.Migrate(ctx, models...))
	loaded, err := dst.Load(ctx, dumpDir, models...)
	require.NoError(t, err)
	assert.Equal(t, counts, loaded)

	var got owner
	require.NoError(t, dst.DB().Preload("Tags").First(&got, o.ID).Error)
	assert.Equal(t, "Ana", got.Name)
	assert.Len(t, got.Tags, 2)

	var pets []pet
	require.NoError(t, dst.DB().Where("owner_id = ?", o.ID).Find(&pets).Error)
	assert.Len(t, pets, 1)
}

func TestLoad_SkipsMalformedLinesAndUnknownFields(t *testing.T) {
	ctx := context.Background()
	b := attachFile(t, t.TempDir())
	require.NoError(t, b.Migrate(ctx, &owner{}, &pet{}, &tag{}))

	dir := t.TempDir()
	content := `{"id": 1, "name": "Ana", "future_field": true}
not json
{"id": 2, "name": "Bo"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "owners.jsonl"), []byte(content), 0o644))

	counts, err := b.Load(ctx, dir, &owner{})
	require.NoError(t, err)
	assert.Equal(t, 2, counts["owners"])
}

func TestLoad_NewRowsAfterLoadGetFreshIDs(t *testing.T) {
	ctx := context.Background()
	b := attachFile(t, t.TempDir())
	require.NoError(t, b.Migrate(ctx, &owner{}))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "owners.jsonl"), []byte(`{"id": 7, "name": "Ana"}`+"\n"), 0o644))
	_, err := b.Load(ctx, dir, &owner{})
	require.NoError(t, err)

	next := owner{Name: "Bo"}
	require.NoError(t, b.DB().Create(&next).Error)
	assert.Greater(t, next.ID, uint(7))
}

func TestSequenceResetSQL(t *testing.T) {
	assert.Equal(t,
		`SELECT setval(pg_get_serial_sequence('"owners"', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM "owners"`,
		sequenceResetSQL("owners"))
	assert.Equal(t,
		`SELECT setval(pg_get_serial_sequence('"we""ird''s"', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM "we""ird's"`,
		sequenceResetSQL(`we"ird's`))
}

func TestResetSequences_NoOpOutsidePostgres(t *testing.T) {
	b := attachFile(t, t.TempDir())
	require.NoError(t, b.Migrate(context.Background(), &owner{}))
	assert.NoError(t, resetSequences(b.DB(), []string{"owners", "missing_table"}))
}

func TestReadJSONL_MissingFile(t *testing.T) {
	records, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
