package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elexus/guest-registry/internal/core/ports"
)

const photoFormField = "photo"

// readPhoto extracts the optional photo from a multipart create/update
// request. It returns (nil, nil) when no file was submitted. Size and
// content-type limits are enforced here so oversize or non-image uploads
// never reach the service layer.
func readPhoto(c echo.Context, maxBytes int64) (*ports.PhotoUpload, error) {
	fh, err := c.FormFile(photoFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}

	if fh.Size > maxBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo exceeds size limit")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	defer src.Close()

	// The declared size is client-controlled; cap the read regardless.
	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	if int64(len(data)) > maxBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo exceeds size limit")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "photo must be an image")
	}

	return &ports.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
