package file

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxUploadSize is the largest document or receipt we accept.
const MaxUploadSize = 5 << 20 // 5MB

// AcceptedContentTypes are the only formats document review works with.
var AcceptedContentTypes = []string{"application/pdf", "image/jpeg", "image/png"}

func IsAcceptedContentType(contentType string) bool {
	for _, accepted := range AcceptedContentTypes {
		if contentType == accepted {
			return true
		}
	}
	return false
}

type Uploader interface {
	UploadFile(fileName string) (string, error)
	DeleteFile(fileURL string) error
}

type FileUploader struct {
	cloudName string
	apiKey    string
	apiSecret string
}

func New(cloudName, apiKey, apiSecret string) *FileUploader {
	return &FileUploader{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

func (f *FileUploader) UploadFile(fileName string) (string, error) {
	cld, err := cloudinary.NewFromParams(f.cloudName, f.apiKey, f.apiSecret)
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	uploadResult, err := cld.Upload.Upload(ctx, fileName, uploader.UploadParams{})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}

// DeleteFile removes a previously uploaded asset given its delivery
// URL. Used when a client re-uploads a document type so we don't keep
// stale files around.
func (f *FileUploader) DeleteFile(fileURL string) error {
	publicID := publicIDFromURL(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not derive public id from url: %s", fileURL)
	}

	cld, err := cloudinary.NewFromParams(f.cloudName, f.apiKey, f.apiSecret)
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL extracts the asset's public id from a delivery URL
// such as .../upload/v12345/abcdef.pdf -> abcdef.
func publicIDFromURL(fileURL string) string {
	parts := strings.Split(fileURL, "/")
	if len(parts) == 0 {
		return ""
	}

	last := parts[len(parts)-1]
	if dot := strings.LastIndex(last, "."); dot > 0 {
		last = last[:dot]
	}

	return last
}
