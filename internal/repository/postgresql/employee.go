package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context, roles ...employee.Role) ([]employee.Employee, error) {
	roleStrs := make([]string, 0, len(roles))
	for _, role := range roles {
		roleStrs = append(roleStrs, string(role))
	}

	query := `
		SELECT id, employee_code, full_name, role, active, created_at, updated_at
		FROM employees
		WHERE active AND role = ANY($1)
		ORDER BY full_name
	`

	rows, err := r.db.Query(ctx, query, roleStrs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Role,
			&emp.Active, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `
		SELECT id, employee_code, full_name, role, active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByCode implements employee.Repository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	query := `
		SELECT id, employee_code, full_name, role, active, created_at, updated_at
		FROM employees
		WHERE employee_code = $1
	`
	return r.getOne(ctx, query, code)
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (employee.Employee, error) {
	var emp employee.Employee
	err := r.db.QueryRow(ctx, query, arg).Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName,
		&emp.Role, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}
