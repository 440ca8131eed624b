package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/media/dto"
	"sekolahku_backend/internals/features/media/model"
	helper "sekolahku_backend/internals/helpers"
)

func intp(i int) *int { return &i }

func TestResolveCover(t *testing.T) {
	assert.Nil(t, ResolveCover(nil))

	list := []model.MediaItemModel{
		{URL: "b", DisplayOrder: 2},
		{URL: "a", DisplayOrder: 1},
	}
	require.NotNil(t, ResolveCover(list))
	assert.Equal(t, "a", ResolveCover(list).URL, "tanpa isMain pakai urutan terkecil")

	list = append(list, model.MediaItemModel{URL: "main", DisplayOrder: 9, IsMain: true})
	assert.Equal(t, "main", ResolveCover(list).URL)
	assert.Equal(t, "main", *CoverURL(list))
	assert.Nil(t, CoverURL(nil))
}

func TestBuildItemsSingleMain(t *testing.T) {
	id := uuid.New()
	items := BuildItems(constants.EntityGallery, id, []dto.MediaInput{
		{URL: " https://cdn/a.webp ", Type: "image"},
		{URL: "https://cdn/b.webp", Type: "image", IsMain: true},
		{URL: "https://cdn/c.webp", Type: "image", IsMain: true},
	})

	require.Len(t, items, 3)
	mains := 0
	for i, it := range items {
		assert.Equal(t, constants.EntityGallery, it.EntityType)
		assert.Equal(t, id, it.EntityID)
		assert.Equal(t, i, it.DisplayOrder, "urutan default = posisi")
		if it.IsMain {
			mains++
			assert.Equal(t, "https://cdn/b.webp", it.URL, "yang pertama ditandai menang")
		}
	}
	assert.Equal(t, 1, mains)
	assert.Equal(t, "https://cdn/a.webp", items[0].URL)
}

func TestBuildItemsExplicitOrder(t *testing.T) {
	items := BuildItems(constants.EntityNews, uuid.New(), []dto.MediaInput{
		{URL: "https://x/2", Type: "video", DisplayOrder: intp(5)},
		{URL: "https://x/1", Type: "image", DisplayOrder: intp(0)},
	})
	assert.Equal(t, "https://x/1", items[0].URL)
	assert.Equal(t, 5, items[1].DisplayOrder)
}

func TestValidateInputsPrefixesIndex(t *testing.T) {
	err := ValidateInputs([]dto.MediaInput{
		{URL: "https://ok/x.webp", Type: "image"},
		{URL: "bukan url", Type: "audio"},
	})
	var ae *helper.AppError
	require.ErrorAs(t, err, &ae)
	assert.NotEmpty(t, ae.Fields["media[1].url"])
	assert.NotEmpty(t, ae.Fields["media[1].type"])
	assert.Empty(t, ae.Fields["media[0].url"])

	assert.NoError(t, ValidateInputs(nil))
}
