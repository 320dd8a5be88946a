package minio

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// DatasetSource serves dataset documents from objects in the client's
// bucket.
type DatasetSource struct {
	client *MinIOClient
}

func NewDatasetSource(client *MinIOClient) *DatasetSource {
	return &DatasetSource{client: client}
}

// Name identifies the source in logs and health output.
func (s *DatasetSource) Name() string {
	return "minio://" + s.client.config.Bucket
}

func (s *DatasetSource) objectKey(p string) string {
	key := strings.TrimPrefix(path.Clean("/"+p), "/")
	if prefix := strings.Trim(s.client.config.Prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

// Fetch reads the whole object stored under p.
func (s *DatasetSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	if s.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	key := s.objectKey(p)

	obj, err := s.client.GetClient().GetObject(ctx, s.client.Bucket(), key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(err, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, classify(err, key)
	}
	return data, nil
}

// Ping checks that the bucket is reachable.
func (s *DatasetSource) Ping(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}

func classify(err error, key string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return errors.Wrap(err, errors.ErrCodeDatasetNotFound, "dataset object not found").WithDetail(key)
	}
	return errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "failed to read dataset object").WithDetail(key)
}

//Personal.AI order the ending
