package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"complainhub/pkg/errors"
)

// Complaint attachments arrive as data URLs from the submission form.
const maxImageBytes = 5 * 1024 * 1024

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadDataURL decodes a base64 data URL and stores it as a complaint
// attachment, returning the public object URL.
func (c *CloudStorageClient) UploadDataURL(ctx context.Context, dataURL string) (string, error) {
	contentType, payload, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext := imageExtensions[contentType]
	objectName := fmt.Sprintf("complaints/%s.%s", uuid.New().String(), ext)

	writer := c.client.Bucket(c.bucketName).Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := writer.Write(payload); err != nil {
		writer.Close()
		return "", errors.Internal("Failed to upload attachment", err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.Internal("Failed to finalize attachment upload", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// ParseDataURL validates and decodes a "data:<type>;base64,<payload>" URL,
// enforcing the supported image types and the 5MB cap.
func ParseDataURL(dataURL string) (contentType string, payload []byte, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, errors.BadRequest("Attachment must be a data URL", nil)
	}

	meta, encoded, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found {
		return "", nil, errors.BadRequest("Malformed data URL", nil)
	}

	contentType = strings.TrimSuffix(meta, ";base64")
	if _, ok := imageExtensions[contentType]; !ok {
		return "", nil, errors.BadRequest(fmt.Sprintf("Unsupported image type %q", contentType), nil)
	}

	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, errors.BadRequest("Attachment is not valid base64", err)
	}
	if len(payload) > maxImageBytes {
		return "", nil, errors.BadRequest("Attachment is too large (max 5MB)", nil)
	}

	return contentType, payload, nil
}
