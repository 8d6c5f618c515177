package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

var ErrInvalidImageType = errors.New("invalid file type: only jpg, jpeg, png allowed")

// Selfie kinds used in stored file names.
const (
	SelfieCheckIn  = "check_in"
	SelfieCheckOut = "check_out"
)

// Target size window for stored selfies.
const (
	selfieMaxSize = 150 * 1024
	selfieMinSize = 50 * 1024
)

type FileService interface {
	// UploadSelfie compresses the photo and stores it as
	// selfies/{date}/{employeeID}-{kind}-{unix}.jpg, returning the stored key.
	UploadSelfie(ctx context.Context, employeeID string, at time.Time, file io.Reader, filename string, kind string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadSelfie implements FileService.
func (s *fileServiceImpl) UploadSelfie(ctx context.Context, employeeID string, at time.Time, file io.Reader, filename string, kind string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrInvalidImageType
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, selfieMaxSize, selfieMinSize)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// Always JPEG after compression
	name := fmt.Sprintf("%s-%s-%d.jpg", employeeID, kind, at.Unix())
	key := path.Join("selfies", at.Format("2006-01-02"), name)

	stored, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload selfie: %w", err)
	}

	return stored, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// compressImage re-encodes an image as JPEG aiming for [minSize, maxSize] bytes.
// Quality drops in steps of 5 down to 50; if the result is still too large the
// image is downscaled and encoded at quality 70.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}

		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	bounds := img.Bounds()
	targetSize := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := max(int(float64(bounds.Dx())*ratio), 1)
	newHeight := max(int(float64(bounds.Dy())*ratio), 1)

	return encodeJPEG(resizeImage(img, newWidth, newHeight), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
