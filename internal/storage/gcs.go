package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSClient stores exported report artifacts in a private bucket. The bucket
// is optional; when none is configured the export response still succeeds and
// the export record keeps a null file URL.
type GCSClient struct {
	client     *storage.Client
	bucketName string
}

func NewGCSClient(bucketName, credentialsPath string) (*GCSClient, error) {
	ctx := context.Background()

	var client *storage.Client
	var err error

	if credentialsPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsPath))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadExport writes the rendered PDF and returns a signed download URL.
func (g *GCSClient) UploadExport(ctx context.Context, reportID string, pdf []byte) (string, error) {
	objectName := exportObjectName(reportID)

	obj := g.client.Bucket(g.bucketName).Object(objectName)
	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/pdf"

	if _, err := io.Copy(writer, bytes.NewReader(pdf)); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	url, err := g.signedURL(objectName, 24*time.Hour)
	if err != nil {
		return "", err
	}

	return url, nil
}

func (g *GCSClient) signedURL(objectName string, expiry time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	}

	url, err := g.client.Bucket(g.bucketName).SignedURL(objectName, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return url, nil
}

func (g *GCSClient) Close() error {
	return g.client.Close()
}

func exportObjectName(reportID string) string {
	return fmt.Sprintf("exports/%s/%d.pdf", reportID, time.Now().UnixNano())
}
