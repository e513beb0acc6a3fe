package permissions_test

import (
	"net/http"
	"testing"

	"resto/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)

	tests := []struct {
		path     string
		method   string
		skip     bool
		guest    bool
		operator bool
	}{
		{path: "/v1/menu", method: http.MethodGet, skip: true},
		{path: "/v1/menu/{id}/image", method: http.MethodPut, operator: true},
		{path: "/v1/reservations", method: http.MethodPost, guest: true},
		{path: "/v1/reservations/{id}", method: http.MethodPut, operator: true},
		{path: "/v1/reservations/{id}/cancel", method: http.MethodPost, guest: true},
		{path: "/v1/contact", method: http.MethodPost, skip: true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)

			if !tt.skip {
				assert.Equal(t, tt.guest, permission.Allows(permissions.RoleGuest))
				assert.Equal(t, tt.operator, permission.Allows(permissions.RoleOperator))
			}
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	permission := permissions.Get().FindPermissions("/v1/unknown", http.MethodDelete)

	assert.False(t, permission.Skip)
	assert.True(t, permission.Allows(permissions.RoleGuest))
}
