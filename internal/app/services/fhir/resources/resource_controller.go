package resources

import (
	"io"
	"net/http"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ResourceController struct {
	Log             *zap.Logger
	ResourceUsecase contracts.ResourceUsecase
}

func NewResourceController(logger *zap.Logger, resourceUsecase contracts.ResourceUsecase) *ResourceController {
	return &ResourceController{
		Log:             logger,
		ResourceUsecase: resourceUsecase,
	}
}

func (rc *ResourceController) CreateResource(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(rc.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	doc, err := rc.ResourceUsecase.Create(r.Context(), resourceType, body)
	if err != nil {
		utils.BuildErrorResponse(rc.Log, w, err)
		return
	}
	utils.BuildFhirResponse(w, constvars.StatusCreated, doc)
}

func (rc *ResourceController) GetResourceByID(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)
	resourceID := chi.URLParam(r, constvars.URLParamResourceID)

	doc, err := rc.ResourceUsecase.FindByID(r.Context(), resourceType, resourceID)
	if err != nil {
		utils.BuildErrorResponse(rc.Log, w, err)
		return
	}
	utils.BuildFhirResponse(w, constvars.StatusOK, doc)
}

func (rc *ResourceController) SearchResources(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)

	bundle, err := rc.ResourceUsecase.Search(r.Context(), resourceType, r.URL.Query())
	if err != nil {
		utils.BuildErrorResponse(rc.Log, w, err)
		return
	}
	utils.BuildFhirResponse(w, constvars.StatusOK, bundle)
}

func (rc *ResourceController) UpdateResource(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)
	resourceID := chi.URLParam(r, constvars.URLParamResourceID)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(rc.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	doc, created, err := rc.ResourceUsecase.Update(r.Context(), resourceType, resourceID, body)
	if err != nil {
		utils.BuildErrorResponse(rc.Log, w, err)
		return
	}

	statusCode := constvars.StatusOK
	if created {
		statusCode = constvars.StatusCreated
	}
	utils.BuildFhirResponse(w, statusCode, doc)
}

func (rc *ResourceController) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)
	resourceID := chi.URLParam(r, constvars.URLParamResourceID)

	err := rc.ResourceUsecase.DeleteByID(r.Context(), resourceType, resourceID)
	if err != nil {
		utils.BuildErrorResponse(rc.Log, w, err)
		return
	}
	w.WriteHeader(constvars.StatusNoContent)
}
