package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jihan212/BUBT-DX/internal/common"
)

func decodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return common.NewError(common.CodeValidation, "request body is required", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath returns the path segment at index, counting from the start of
// the trimmed path: /api/jobs/{id} → index 2.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(parts) {
		return "", common.NewError(common.CodeNotFound, "not found", nil)
	}
	parsed, err := common.ParseUUID(parts[index])
	if err != nil {
		return "", common.NewError(common.CodeNotFound, "invalid id format", err)
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "missing session", nil)
}
