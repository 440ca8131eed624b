//go:build integration

package content_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sekolahku_backend/internals/databases/dbtest"
	"sekolahku_backend/internals/seeds/content"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	testDB = dbtest.Open()
	os.Exit(m.Run())
}

func TestSeedFromJSONIsIdempotent(t *testing.T) {
	dbtest.Truncate(t, testDB, "news", "achievements", "downloads")
	ctx := context.Background()

	first, err := content.SeedFromJSON(ctx, testDB, "data_content.json")
	require.NoError(t, err)
	assert.Positive(t, first.News)

	second, err := content.SeedFromJSON(ctx, testDB, "data_content.json")
	require.NoError(t, err)
	assert.Equal(t, content.Stats{}, second)

	var published int64
	require.NoError(t, testDB.Table("news").Where("is_published = TRUE").Count(&published).Error)
	assert.EqualValues(t, first.News, published)
}

func TestSeedMissingFile(t *testing.T) {
	_, err := content.SeedFromJSON(context.Background(), testDB, "tidak-ada.json")
	assert.Error(t, err)
}
