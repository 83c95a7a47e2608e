package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatdesk/shared/constant"
)

func TestGet_EmbeddedFile(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{name: "unlock is public", path: "/v1/auth/unlock", method: http.MethodPost, skip: true},
		{name: "scanner may toggle", path: "/v1/attendance/toggle", method: http.MethodPost, roles: []string{constant.RoleOperator, constant.RoleScanner}},
		{name: "member admin is operator only", path: "/v1/members/{id}", method: http.MethodDelete, roles: []string{constant.RoleOperator}},
		{name: "trailing slash is ignored", path: "/v1/rooms", method: http.MethodPost, roles: []string{constant.RoleOperator}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, p.Skip)
			assert.Equal(t, tt.roles, p.Permissions)
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data := parse([]byte(`{"endpoints":[{"path":"/v1/rooms/","method":"GET","permissions":["operator"]}]}`))
	require.NotNil(t, data)

	assert.Equal(t, Permission{}, data.FindPermissions("/v1/rooms/", http.MethodPost))
	assert.Equal(t, Permission{}, data.FindPermissions("/v1/nowhere", http.MethodGet))
}

func TestParse_Invalid(t *testing.T) {
	assert.Nil(t, parse([]byte(`{`)))
}
