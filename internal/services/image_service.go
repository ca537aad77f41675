package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"time"

	// Register decoders for the formats accepted on upload.
	_ "image/gif"
	_ "image/png"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

const (
	MaxPostImages = 5

	postImageSize   = 950
	avatarImageSize = 500
	jpegQuality     = 90

	postImageDir   = "post"
	avatarImageDir = "users"
)

// ImageUpload is one uploaded file as received from the client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageService validates, resizes and stores uploaded images.
type ImageService struct {
	store  storage.FileStore
	logger *zap.Logger
	now    func() time.Time
}

func NewImageService(store storage.FileStore, logger *zap.Logger) *ImageService {
	return &ImageService{store: store, logger: logger, now: time.Now}
}

type encodedImage struct {
	name string
	data []byte
}

// ProcessPostImages stores listing photos and returns their file names. An
// empty postID names the files for a listing that is being created. Nothing
// is written unless every file validates and encodes.
func (s *ImageService) ProcessPostImages(ctx context.Context, postID string, files []ImageUpload) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > MaxPostImages {
		return nil, models.NewValidationError(fmt.Sprintf("You can upload at most %d images", MaxPostImages))
	}
	if err := checkImageTypes(files); err != nil {
		return nil, err
	}

	ts := s.now().UnixMilli()
	prefix := "new-products-" + uuid.NewString()
	if postID != "" {
		prefix = "updated-products-" + postID
	}

	encoded := make([]encodedImage, 0, len(files))
	for i, f := range files {
		data, err := resizeAndEncode(f.Data, postImageSize, postImageSize)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, encodedImage{
			name: fmt.Sprintf("%s-%d-%d.jpeg", prefix, ts, i+1),
			data: data,
		})
	}
	return s.saveAll(ctx, postImageDir, encoded)
}

// ProcessAvatar stores a profile photo and returns its file name.
func (s *ImageService) ProcessAvatar(ctx context.Context, userID uint, file ImageUpload) (string, error) {
	if err := checkImageTypes([]ImageUpload{file}); err != nil {
		return "", err
	}
	data, err := resizeAndEncode(file.Data, avatarImageSize, avatarImageSize)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("user-%d-%d.jpeg", userID, s.now().UnixMilli())
	names, err := s.saveAll(ctx, avatarImageDir, []encodedImage{{name: name, data: data}})
	if err != nil {
		return "", err
	}
	return names[0], nil
}

func (s *ImageService) saveAll(ctx context.Context, dir string, images []encodedImage) ([]string, error) {
	names := make([]string, 0, len(images))
	for _, img := range images {
		if err := s.store.Save(ctx, dir, img.name, img.data); err != nil {
			s.logger.Error("failed to store image", zap.String("dir", dir), zap.String("name", img.name), zap.Error(err))
			return nil, models.NewInternalError(err)
		}
		names = append(names, img.name)
	}
	s.logger.Debug("images stored", zap.String("dir", dir), zap.Strings("names", names))
	return names, nil
}

func checkImageTypes(files []ImageUpload) error {
	for _, f := range files {
		if !strings.HasPrefix(strings.ToLower(f.ContentType), "image") {
			return models.NewValidationError("Not an image! Please upload only images.")
		}
	}
	return nil
}

// resizeAndEncode crops the centre of the source to the target aspect ratio,
// scales it to exactly width x height and re-encodes it as JPEG.
func resizeAndEncode(raw []byte, width, height int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, models.NewValidationError("Could not read image. Please upload a valid image file.")
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, coverRect(src.Bounds(), width, height), xdraw.Src, nil)

	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// coverRect returns the largest centred sub-rectangle of b with the aspect
// ratio width:height.
func coverRect(b image.Rectangle, width, height int) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	cropW, cropH := w, h
	if w*height > h*width {
		cropW = h * width / height
	} else {
		cropH = w * height / width
	}
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}
	x0 := b.Min.X + (w-cropW)/2
	y0 := b.Min.Y + (h-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
