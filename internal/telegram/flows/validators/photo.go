package validators

import "strings"

// PhotoID accepts the file id of an uploaded photo.
func PhotoID(raw string, _ map[string]string) Result {
	id := strings.TrimSpace(raw)
	if id == "" {
		return Reject(ReasonPhotoMissing, nil)
	}
	return Accept(id)
}
