package domain

type Role string

const (
	RoleRenter Role = "renter"
	RoleOwner  Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleRenter || r == RoleOwner
}

// Actor is the authenticated identity held in session state.
type Actor struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Role    Role   `json:"role"`
}

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Role         Role   `json:"role"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

// Actor projects the account into the identity carried by a session.
func (u *User) Actor() *Actor {
	return &Actor{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.PhoneNumber,
		Address: u.Address,
		Role:    u.Role,
	}
}
