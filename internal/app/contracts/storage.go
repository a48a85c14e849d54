package contracts

import (
	"context"
	"io"
)

type Storage interface {
	UploadFile(ctx context.Context, file io.Reader, objectName string, size int64, contentType string) (string, error)
}
