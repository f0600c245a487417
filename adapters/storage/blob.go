package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"go.uber.org/zap"

	"subscription-audit/internal/config"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

const (
	// Standard Azurite development account
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// BlobAPI is the subset of the azblob client the sink needs
type BlobAPI interface {
	UploadBuffer(ctx context.Context, containerName string, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

// BlobSink writes reports to Azure Blob Storage
type BlobSink struct {
	client    BlobAPI
	container string
	blobName  string
}

// NewBlobSink creates a blob sink. An http service URL is treated as
// Azurite and uses its shared key; anything else uses DefaultAzureCredential.
func NewBlobSink(cfg config.AzureConfig, container, blobName string) (*BlobSink, error) {
	if cfg.ServiceURL == "" {
		return nil, errors.New(errors.TypeConfig, "storage.azure.service_url is required for azblob destinations")
	}

	var client *azblob.Client
	if isLocal(cfg.ServiceURL) {
		cred, err := azblob.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
		if err != nil {
			return nil, errors.Storage("failed to create shared key credential", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(cfg.ServiceURL, cred, nil)
		if err != nil {
			return nil, errors.Storage("failed to create blob client with shared key", err)
		}
	} else {
		cred, err := newDefaultAzureCredential()
		if err != nil {
			return nil, errors.Storage("failed to create default azure credential", err)
		}
		client, err = azblob.NewClient(cfg.ServiceURL, cred, nil)
		if err != nil {
			return nil, errors.Storage("failed to create blob client", err)
		}
	}

	return NewBlobSinkWithClient(client, container, blobName), nil
}

// NewBlobSinkWithClient creates a blob sink around an existing client
func NewBlobSinkWithClient(client BlobAPI, container, blobName string) *BlobSink {
	return &BlobSink{client: client, container: container, blobName: blobName}
}

// Location returns the azblob:// URL
func (s *BlobSink) Location() string {
	return fmt.Sprintf("azblob://%s/%s", s.container, s.blobName)
}

// Write uploads data as a block blob
func (s *BlobSink) Write(ctx context.Context, data []byte, contentType string) error {
	logging.Debug("uploading report",
		zap.String("container", s.container),
		zap.String("blob_name", s.blobName),
		zap.Int("size_bytes", len(data)))

	_, err := s.client.UploadBuffer(ctx, s.container, s.blobName, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return errors.Storage("failed to upload report", err).WithContext("location", s.Location())
	}
	return nil
}

// isLocal reports whether the service URL points at a local emulator
func isLocal(serviceURL string) bool {
	return strings.HasPrefix(serviceURL, "http://")
}

func newDefaultAzureCredential() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}
