package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
)

// fakeDirectory filters strictly by the given roles, like the SQL
// implementation: an empty role set matches nothing.
type fakeDirectory struct {
	employees []employee.Employee
}

func (f *fakeDirectory) List(_ context.Context, roles ...employee.Role) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		for _, r := range roles {
			if e.Role == r && e.Active {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeDirectory) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeCode != nil && *e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func testDirectory() *fakeDirectory {
	code := "1234-5678"
	return &fakeDirectory{employees: []employee.Employee{
		{ID: "emp-1", EmployeeCode: &code, FullName: "Ana One", Role: employee.RoleTeamMember, Active: true},
		{ID: "emp-2", FullName: "Ben Two", Role: employee.RoleManager, Active: true},
	}}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doEmployeeRequest(t *testing.T, handler http.HandlerFunc, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestEmployeeHandler_List_NoFilterReturnsEveryRole(t *testing.T) {
	handler := NewEmployeeHandler(testDirectory())

	rec, env := doEmployeeRequest(t, handler.List, "/employees")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var rows []employee.Employee
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 2)
}

func TestEmployeeHandler_List_RoleFilter(t *testing.T) {
	handler := NewEmployeeHandler(testDirectory())

	rec, env := doEmployeeRequest(t, handler.List, "/employees?role=manager")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []employee.Employee
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-2", rows[0].ID)
}

func TestEmployeeHandler_List_UnknownRole(t *testing.T) {
	handler := NewEmployeeHandler(testDirectory())

	rec, env := doEmployeeRequest(t, handler.List, "/employees?role=owner")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestEmployeeHandler_GetByCode(t *testing.T) {
	handler := NewEmployeeHandler(testDirectory())

	router := chi.NewRouter()
	router.Get("/employees/{code}", handler.GetByCode)

	req := httptest.NewRequest(http.MethodGet, "/employees/1234-5678", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var emp employee.Employee
	require.NoError(t, json.Unmarshal(env.Data, &emp))
	assert.Equal(t, "emp-1", emp.ID)

	req = httptest.NewRequest(http.MethodGet, "/employees/not-a-code", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
