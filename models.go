package realworld

import (
	"time"

	"github.com/uptrace/bun"
)

// Person is the person model
type Person struct {
	bun.BaseModel `bun:"table:people,alias:ppl"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// FullName is the display name used in logs
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// User is the user model. The password hash never serializes to JSON.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Active        bool       `bun:"active,notnull" json:"active"`
	PersonID      *int64     `bun:"person_id,nullzero" json:"person_id,omitempty"`
	Person        *Person    `bun:"rel:belongs-to,join:person_id=id" json:"person,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// PersonPatch carries the fields a partial update may touch. Nil means
// leave the column alone.
type PersonPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// IsEmpty reports whether the patch would touch no columns.
func (p PersonPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil
}

// UserPatch carries the fields a partial user update may touch.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	PersonID *int64  `json:"person_id,omitempty"`
}

// IsEmpty reports whether the patch would touch no columns.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Active == nil && p.PersonID == nil
}

// PersonFilters narrows person listings with exact matches.
type PersonFilters struct {
	FirstName string
	LastName  string
}

// UserFilters narrows user listings with exact matches.
type UserFilters struct {
	Username string
	Active   *bool
}
