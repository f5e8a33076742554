package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const MaxAvatarBytes = 5 * 1024 * 1024

// ValidateAvatar accepts an empty reference (no avatar), a plain URL/path, or
// a base64 data URI holding an image of at most MaxAvatarBytes.
func ValidateAvatar(ref string) error {
	if ref == "" || !strings.HasPrefix(ref, "data:") {
		return nil
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return fmt.Errorf("avatar data uri is missing its payload")
	}
	mime, _, _ := strings.Cut(header, ";")
	if !strings.HasPrefix(mime, "image/") {
		return fmt.Errorf("avatar must be an image, got %q", mime)
	}
	if !strings.HasSuffix(header, ";base64") {
		return fmt.Errorf("avatar data uri must be base64 encoded")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxAvatarBytes+2 {
		return fmt.Errorf("avatar exceeds %d bytes", MaxAvatarBytes)
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decode avatar: %w", err)
	}
	if len(decoded) > MaxAvatarBytes {
		return fmt.Errorf("avatar exceeds %d bytes", MaxAvatarBytes)
	}
	return nil
}
