package entity

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountBlocked AccountStatus = "blocked"
)

type User struct {
	ID           string        `json:"id" firestore:"uid"`
	Email        string        `json:"email" firestore:"email"`
	Name         string        `json:"name" firestore:"name"`
	Role         UserRole      `json:"role" firestore:"role"`
	StudentID    string        `json:"studentId" firestore:"studentId"`
	Department   string        `json:"department" firestore:"department"`
	ProfileImage string        `json:"profileImage" firestore:"profileImage"`
	Bio          string        `json:"bio" firestore:"bio"`
	Status       AccountStatus `json:"status" firestore:"status"`
	BlockReason  string        `json:"blockReason" firestore:"blockReason"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsBlocked() bool {
	return u.Status == AccountBlocked
}

// ApplyReadDefaults mirrors the profile defaulting the client applied when a
// stored record was sparse.
func (u *User) ApplyReadDefaults() {
	if u.Name == "" {
		u.Name = "User"
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.Status == "" {
		u.Status = AccountActive
	}
}
