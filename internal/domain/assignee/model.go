package assignee

// Role describes what a person may do on the board. It is display-only.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Person is the display record behind an assignee reference.
type Person struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Role  Role   `json:"role,omitempty" yaml:"role,omitempty"`
}
