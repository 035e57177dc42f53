package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUserWire_OmitsPIN(t *testing.T) {
	payload, err := json.Marshal(AdminUser{
		ID:       1,
		Username: "admin",
		PIN:      "4321",
		AILimit:  100,
	})
	require.NoError(t, err)

	body := string(payload)
	assert.NotContains(t, body, "4321")
	assert.NotContains(t, body, `"pin"`)
	assert.Contains(t, body, `"username":"admin"`)
	assert.Contains(t, body, `"aiLimit":100`)
}

func TestUserWire_OmitsCredentials(t *testing.T) {
	payload, err := json.Marshal(User{
		ID:           1,
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		PIN:          "9876",
	})
	require.NoError(t, err)

	body := string(payload)
	assert.NotContains(t, body, "9876")
	assert.NotContains(t, body, "$2a$10$hash")
	assert.NotContains(t, body, `"pin"`)
	assert.NotContains(t, body, "password")
}
