package employee

import "context"

// Repository is the read-only directory contract. Employees are owned by the
// external user-management system; this core never creates or updates them.
type Repository interface {
	// List returns active employees whose role is in roles, ordered by name.
	// An empty roles set matches nothing; pass AllRoles for an unfiltered
	// listing.
	List(ctx context.Context, roles ...Role) ([]Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByCode resolves an employee by their display code.
	GetByCode(ctx context.Context, code string) (Employee, error)
}
