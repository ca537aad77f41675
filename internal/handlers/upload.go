package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const maxUploadMemory = 10 << 20

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formImages reads every file sent under field. Non-multipart requests have none.
func formImages(c echo.Context, field string) ([]services.ImageUpload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	if err := c.Request().ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, models.NewValidationError("Invalid multipart form")
	}
	form := c.Request().MultipartForm
	if form == nil {
		return nil, nil
	}
	headers := form.File[field]
	uploads := make([]services.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		upload, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

// formImage reads a single optional file sent under field.
func formImage(c echo.Context, field string) (*services.ImageUpload, error) {
	uploads, err := formImages(c, field)
	if err != nil || len(uploads) == 0 {
		return nil, err
	}
	return &uploads[0], nil
}

func readUpload(fh *multipart.FileHeader) (services.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return services.ImageUpload{}, models.NewValidationError("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.ImageUpload{}, models.NewValidationError("Could not read uploaded file")
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return services.ImageUpload{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}
