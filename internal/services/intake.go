package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"healthcare-plus/internal/logger"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/sirupsen/logrus"
)

// rasterExtensions are the upload extensions accepted as-is. Anything else
// other than .pdf is rejected.
var rasterExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// FileIntake persists uploads under timestamp-derived names and normalizes
// them to a single effective image path for model submission.
type FileIntake struct {
	uploadDir string
}

func NewFileIntake(uploadDir string) (*FileIntake, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileIntake{uploadDir: uploadDir}, nil
}

// SaveUpload writes the uploaded file into the upload directory under a
// fresh millisecond-timestamp name, keeping the original extension.
func (fi *FileIntake) SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	dstPath := filepath.Join(fi.uploadDir, fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext))

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to store upload %s: %w", fh.Filename, err)
	}

	logger.WithFields(logrus.Fields{
		"originalName": fh.Filename,
		"storedPath":   dstPath,
		"size":         fh.Size,
	}).Debug("Stored upload")

	return dstPath, nil
}

// Resolve picks the effective image for the request. A PDF document is
// rasterized (first page only) and takes precedence over any separately
// uploaded image. The returned extra paths are intermediate files the
// caller must remove along with the uploads.
func (fi *FileIntake) Resolve(imagePath, docPath string) (effective string, extra []string, err error) {
	if imagePath == "" && docPath == "" {
		return "", nil, ErrNoFile
	}

	effective = imagePath

	if docPath != "" {
		switch ext := strings.ToLower(filepath.Ext(docPath)); {
		case ext == ".pdf":
			converted, convErr := fi.ConvertPDFFirstPage(docPath)
			if convErr != nil {
				return "", nil, convErr
			}
			effective = converted
			extra = append(extra, converted)
		case rasterExtensions[ext]:
			if effective == "" {
				effective = docPath
			}
		default:
			return "", nil, ErrUnsupportedFormat
		}
	}

	if effective == "" {
		return "", nil, ErrUnsupportedFormat
	}
	if ext := strings.ToLower(filepath.Ext(effective)); !rasterExtensions[ext] {
		return "", nil, ErrUnsupportedFormat
	}

	return effective, extra, nil
}

// ConvertPDFFirstPage renders page one of the PDF to a PNG in the upload
// directory and returns its path. Remaining pages are ignored.
func (fi *FileIntake) ConvertPDFFirstPage(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", pdfPath, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", fmt.Errorf("PDF %s has no pages", pdfPath)
	}

	img, err := doc.Image(0)
	if err != nil {
		return "", fmt.Errorf("failed to render first PDF page: %w", err)
	}

	outPath := filepath.Join(fi.uploadDir, fmt.Sprintf("%d.png", time.Now().UnixMilli()))
	if err := imaging.Save(img, outPath); err != nil {
		return "", fmt.Errorf("failed to save rasterized page: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"pdf":       pdfPath,
		"image":     outPath,
		"pageCount": doc.NumPage(),
	}).Info("Converted PDF first page to image")

	return outPath, nil
}

// EncodeDataURI reads the image and returns it as an inline data URI. The
// declared MIME subtype is taken verbatim from the file extension; no
// content sniffing is done.
func (fi *FileIntake) EncodeDataURI(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(imagePath)), ".")
	return fmt.Sprintf("data:image/%s;base64,%s", ext, base64.StdEncoding.EncodeToString(data)), nil
}

// Remove deletes stored files best-effort. Handlers defer this on every
// exit path.
func (fi *FileIntake) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.WithFields(logrus.Fields{
				"path":  p,
				"error": err.Error(),
			}).Warn("Failed to remove upload")
		}
	}
}
