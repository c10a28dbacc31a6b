package documentstore

import (
	"bytes"
	"context"
	"mime"
	"path/filepath"
	"sync"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	documentStoreInstance contracts.DocumentStore
	onceDocumentStore     sync.Once
)

type minioDocumentStore struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

func NewMinioDocumentStore(minioClient *minio.Client, cfg config.DocumentStore, logger *zap.Logger) contracts.DocumentStore {
	onceDocumentStore.Do(func() {
		documentStoreInstance = &minioDocumentStore{
			MinioClient: minioClient,
			BucketName:  cfg.BucketName,
			Log:         logger,
		}
	})
	return documentStoreInstance
}

func (m *minioDocumentStore) StoreRenderedDocument(ctx context.Context, filename string, content []byte) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	m.Log.Info("minioDocumentStore.StoreRenderedDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFilenameKey, filename),
	)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		filename,
		bytes.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		m.Log.Error("minioDocumentStore.StoreRenderedDocument error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrStorageUpload(err)
	}

	return filename, nil
}
