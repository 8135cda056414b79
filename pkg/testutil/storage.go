package testutil

import (
	"context"
	"errors"

	"github.com/nasalinha/backend/pkg/storage"
)

// MockStorage records uploads instead of pushing them anywhere.
type MockStorage struct {
	Uploaded []*storage.UploadObject
	Err      error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (s *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.Uploaded = append(s.Uploaded, obj)
	return &storage.UploadResponse{
		Url:      "https://storage.example.com/" + obj.Bucket + "/" + obj.FileName,
		FileName: obj.FileName,
	}, nil
}

func (s *MockStorage) BulkUpload(
	ctx context.Context, objs []*storage.UploadObject,
) ([]*storage.UploadResponse, error) {
	if len(objs) == 0 {
		return nil, errors.New("no object to upload")
	}

	resps := make([]*storage.UploadResponse, 0, len(objs))
	for _, obj := range objs {
		resp, err := s.Upload(ctx, obj)
		if err != nil {
			return nil, err
		}

		resps = append(resps, resp)
	}

	return resps, nil
}
