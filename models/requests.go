package models

// LoginRequest carries the credentials of POST /api/user/session.
// Username holds the account email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha,omitempty"`
}

// RegisterRequest is the body of POST /api/user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nick     string `json:"nick"`
	Captcha  string `json:"captcha,omitempty"`
}

// CreateUserRequest is the body of POST /api/admin/user/create.
type CreateUserRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Nick     string     `json:"nick"`
	GroupID  int64      `json:"group_id"`
	Status   UserStatus `json:"status"`
}

// GroupUpgradeRequest is the body of POST /api/admin/user/{id}/group.
type GroupUpgradeRequest struct {
	GroupID int64  `json:"group_id"`
	Until   string `json:"until"`
}

// SettingUpdateRequest is the body of PATCH /api/admin/settings.
type SettingUpdateRequest struct {
	Settings []Setting `json:"settings"`
}

// Page is a 1-based pagination window.
type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NewPage normalizes page number and size.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() uint64 {
	return uint64((p.Number - 1) * p.Size)
}

// Limit returns the page size as a row limit.
func (p Page) Limit() uint64 {
	return uint64(p.Size)
}
