package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	BaseTimestamps
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}

func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin
}
