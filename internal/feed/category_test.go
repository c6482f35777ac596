package feed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.NotEmpty(t, c.Icon())
	}

	got, err := ParseCategory("mess")
	require.NoError(t, err)
	assert.Equal(t, CategoryMess, got)

	_, err = ParseCategory("Gym")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCategoryValid(t *testing.T) {
	assert.False(t, Category(0).Valid())
	assert.False(t, Category(9).Valid())
	assert.Equal(t, "", Category(9).Icon())
	assert.True(t, CategoryGeneral.Valid())
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Category `json:"c"`
	}{CategoryCafe})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"Cafe"}`, string(data))

	var v struct {
		C Category `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"Laundry"}`), &v))
	assert.Equal(t, CategoryLaundry, v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"c":"Pool"}`), &v))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("All")
	require.NoError(t, err)
	assert.True(t, f.IsAll())
	assert.Equal(t, "All", f.String())

	f, err = ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, All, f)

	f, err = ParseFilter("Cafe")
	require.NoError(t, err)
	c, ok := f.Category()
	assert.True(t, ok)
	assert.Equal(t, CategoryCafe, c)
	assert.True(t, f.Match(Post{Category: CategoryCafe}))
	assert.False(t, f.Match(Post{Category: CategoryMess}))

	_, err = ParseFilter("Gym")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("UP")
	require.NoError(t, err)
	assert.Equal(t, Up, d)
	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)
	assert.Equal(t, "down", d.String())

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
