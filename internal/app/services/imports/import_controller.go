package imports

import (
	"net/http"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type ImportController struct {
	Log             *zap.Logger
	ImportUsecase   contracts.ImportUsecase
	MaxUploadSizeMB int
}

func NewImportController(logger *zap.Logger, importUsecase contracts.ImportUsecase, maxUploadSizeMB int) *ImportController {
	return &ImportController{
		Log:             logger,
		ImportUsecase:   importUsecase,
		MaxUploadSizeMB: maxUploadSizeMB,
	}
}

func (ic *ImportController) UploadCSV(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(ic.MaxUploadSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		utils.BuildErrorResponse(ic.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(constvars.UploadFormFileField)
	if err != nil {
		utils.BuildErrorResponse(ic.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	response, err := ic.ImportUsecase.ImportCSV(r.Context(), file, fileHeader.Filename)
	if err != nil {
		utils.BuildErrorResponse(ic.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, response)
}
