package http

import (
	"net/http"
	"strconv"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/workhours"
	"github.com/workpulse-hq/hrms-backend-go/internal/handler/http/response"
)

type WorkHoursHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type workHoursHandlerImpl struct {
	workHoursService workhours.WorkHoursService
}

func NewWorkHoursHandler(workHoursService workhours.WorkHoursService) WorkHoursHandler {
	return &workHoursHandlerImpl{
		workHoursService: workHoursService,
	}
}

// GetStats implements WorkHoursHandler.
func (h *workHoursHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var year *int
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = &parsed
	}

	result, err := h.workHoursService.GetStats(r.Context(), caller.CompanyID, caller.EmployeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
