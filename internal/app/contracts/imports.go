package contracts

import (
	"context"
	"io"
	"strokewatch-service/internal/pkg/dto/responses"
)

type ImportUsecase interface {
	ImportCSV(ctx context.Context, file io.Reader, fileName string) (*responses.ImportResponse, error)
}
