package permissions

import (
	_ "embed"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	byRoute map[string]Permission
}

// FindPermissions looks up a route pattern. "/v1/rooms" and "/v1/rooms/" are the same endpoint.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.byRoute[routeKey(method, path)]
}

func routeKey(method, path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return method + " " + path
}

func Get() *PermissionData {
	return parse(permissionsData)
}

func parse(data []byte) *PermissionData {
	var permissions PermissionData

	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	permissions.byRoute = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := permissions.byRoute[key]; dup {
			log.Warn().Str("route", key).Msg("duplicate permission entry, keeping the first")

			continue
		}

		permissions.byRoute[key] = endpoint
	}

	log.Info().Int("endpoints", len(permissions.byRoute)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
