package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByCode(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepository employee.Repository
}

func NewEmployeeHandler(employeeRepository employee.Repository) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeRepository: employeeRepository,
	}
}

// List implements EmployeeHandler. An optional ?role= filter narrows the
// result to a single role; without it every role is listed.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	roles := employee.AllRoles
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := employee.ParseRole(raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		roles = []employee.Role{role}
	}

	result, err := h.employeeRepository.List(r.Context(), roles...)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetByCode implements EmployeeHandler.
func (h *employeeHandlerImpl) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !validator.IsValidEmployeeCode(code) {
		response.BadRequest(w, "Employee code must be NNNN-NNNN", nil)
		return
	}

	result, err := h.employeeRepository.GetByCode(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
