package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressesParsesSerializedForms(t *testing.T) {
	t.Run("array payload", func(t *testing.T) {
		u := User{RawAddress: `[{"line1":"1 Park St","city":"Mumbai"},{"line1":"2 Hill Rd","city":"Delhi"}]`}
		addrs := u.Addresses()
		require.Len(t, addrs, 2)
		assert.Equal(t, "Delhi", addrs[1].City)
	})

	t.Run("single object payload", func(t *testing.T) {
		u := User{RawAddress: `{"line1":"1 Park St","city":"Mumbai"}`}
		addrs := u.Addresses()
		require.Len(t, addrs, 1)
		assert.Equal(t, "Mumbai", addrs[0].City)
	})

	t.Run("empty and invalid payloads", func(t *testing.T) {
		assert.Nil(t, (&User{}).Addresses())
		assert.Nil(t, (&User{RawAddress: "   "}).Addresses())
		assert.Nil(t, (&User{RawAddress: "not json"}).Addresses())
	})
}

func TestDefaultAddressResolution(t *testing.T) {
	flagged := []Address{
		{Line1: "1 Park St", City: "Mumbai"},
		{Line1: "2 Hill Rd", City: "Delhi", IsDefault: true},
	}
	def, ok := DefaultAddress(flagged)
	require.True(t, ok)
	assert.Equal(t, "Delhi", def.City)

	// No flagged default: the first entry stands in.
	unflagged := []Address{
		{Line1: "1 Park St", City: "Mumbai"},
		{Line1: "2 Hill Rd", City: "Delhi"},
	}
	def, ok = DefaultAddress(unflagged)
	require.True(t, ok)
	assert.Equal(t, "Mumbai", def.City)

	_, ok = DefaultAddress(nil)
	assert.False(t, ok)
}

func TestAddressTextFlattensForSearch(t *testing.T) {
	text := AddressText([]Address{
		{Line1: "12 MG Road", City: "Pune", State: "MH", Country: "India", PostalCode: "411001"},
	})
	assert.Contains(t, text, "Pune")
	assert.Contains(t, text, "411001")
}

func TestEnumHelpers(t *testing.T) {
	assert.True(t, IsValidGender("kids"))
	assert.False(t, IsValidGender("unknown"))

	assert.True(t, IsValidEnquiryStatus("responded"))
	assert.False(t, IsValidEnquiryStatus("archived"))
}
