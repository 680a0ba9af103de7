package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/permissions"
	"hotel/shared/constant"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		method string
		path   string
		public bool
		roles  []string
	}{
		{method: http.MethodGet, path: "/api/health", public: true},
		{method: http.MethodPost, path: "/api/auth/logout", public: true},
		{method: http.MethodGet, path: "/api/auth/profile", roles: []string{constant.RoleUser, constant.RoleAdmin}},
		{method: http.MethodGet, path: "/api/rooms/{id}", public: true},
		{method: http.MethodPut, path: "/api/rooms/{id}", roles: []string{constant.RoleAdmin}},
		{method: http.MethodPost, path: "/api/rooms/{id}/images", roles: []string{constant.RoleAdmin}},
		{method: http.MethodDelete, path: "/api/bookings/{id}", roles: []string{constant.RoleUser, constant.RoleAdmin}},
		{method: http.MethodGet, path: "/api/bookings/admin/dashboard/stats", roles: []string{constant.RoleAdmin}},
		{method: http.MethodPost, path: "/api/contacts", public: true},
		{method: http.MethodGet, path: "/api/contacts", roles: []string{constant.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.public, permission.Skip)

			if !tt.public {
				assert.ElementsMatch(t, tt.roles, permission.Permissions)
			}
		})
	}
}

func TestFindPermissions_UnknownRouteRequiresAuth(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[]}`))
	require.NoError(t, err)

	permission := data.FindPermissions("/api/unknown", http.MethodGet)

	assert.False(t, permission.Skip)
	assert.True(t, permission.Allows(constant.RoleUser))
}

func TestPermission_Allows(t *testing.T) {
	adminOnly := permissions.Permission{Permissions: []string{constant.RoleAdmin}}

	assert.True(t, adminOnly.Allows(constant.RoleAdmin))
	assert.False(t, adminOnly.Allows(constant.RoleUser))
	assert.False(t, adminOnly.Allows(""))
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{`))

	assert.Error(t, err)
}
