// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleWishlistActsAsSet(t *testing.T) {
	user := &User{}

	added := user.ToggleWishlist("p1")
	assert.True(t, added)
	assert.True(t, user.WishlistContains("p1"))

	// toggling again removes, never duplicates
	removed := user.ToggleWishlist("p1")
	assert.False(t, removed)
	assert.False(t, user.WishlistContains("p1"))
	assert.Empty(t, user.Wishlist)
}

func TestToggleWishlistKeepsOtherEntries(t *testing.T) {
	user := &User{}
	user.ToggleWishlist("p1")
	user.ToggleWishlist("p2")
	user.ToggleWishlist("p3")

	user.ToggleWishlist("p2")

	assert.Equal(t, []string{"p1", "p3"}, []string(user.Wishlist))
}

func TestUpsertAddressAssignsID(t *testing.T) {
	user := &User{}
	user.UpsertAddress(Address{Label: "Home", Street: "12 Lane"})

	assert.Len(t, user.Addresses, 1)
	assert.NotEmpty(t, user.Addresses[0].ID)
}

func TestUpsertAddressReplacesByID(t *testing.T) {
	user := &User{}
	user.UpsertAddress(Address{ID: "a1", Label: "Home", City: "Pune"})
	user.UpsertAddress(Address{ID: "a2", Label: "Office", City: "Mumbai"})

	user.UpsertAddress(Address{ID: "a1", Label: "Home", City: "Nashik"})

	assert.Len(t, user.Addresses, 2)
	assert.Equal(t, "Nashik", user.Addresses.FindByID("a1").City)
}

func TestRemoveAddress(t *testing.T) {
	user := &User{}
	user.UpsertAddress(Address{ID: "a1", Label: "Home"})

	assert.True(t, user.RemoveAddress("a1"))
	assert.False(t, user.RemoveAddress("a1"))
	assert.Nil(t, user.Addresses.FindByID("a1"))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	user := &User{}
	assert.NoError(t, user.SetPassword("S3cret!pass"))
	assert.NotEqual(t, "S3cret!pass", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("S3cret!pass"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestDefaultShopSettings(t *testing.T) {
	settings := DefaultShopSettings()
	assert.Equal(t, SettingsID, settings.ID)
	assert.NotEmpty(t, settings.ShopName)
	assert.NotEmpty(t, settings.Phone)
}
