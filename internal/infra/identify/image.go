package identify

import (
	"strings"

	"toolcatalog/internal/domain"
)

const (
	imageDataPrefix = "data:image/"
	base64Marker    = ";base64,"
)

// ValidateImage checks that image is a base64 image data URL.
func ValidateImage(image string) error {
	const op = "identify.validate_image"
	switch {
	case image == "":
		return &domain.Error{Code: domain.CodeInvalidArgument, Op: op, Message: "Image is required", Cause: domain.ErrInvalidImagePayload}
	case !strings.HasPrefix(image, imageDataPrefix), !strings.Contains(image, base64Marker):
		return &domain.Error{Code: domain.CodeInvalidArgument, Op: op, Message: "Image must be a base64 image data URL", Cause: domain.ErrInvalidImagePayload}
	}
	return nil
}
