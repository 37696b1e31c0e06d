package staff

import (
	"sync"
	"time"

	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/mundoacuatico/backend/core"
)

type (
	Role   string
	Status string
)

// Roles
const (
	RoleAdmin  Role = "Admin"  // everything
	RoleEditor Role = "Editor" // news only
)

const (
	StatusActive   Status = "Activo"
	StatusInactive Status = "Inactivo"
)

var (
	Roles    = []Role{RoleAdmin, RoleEditor}
	Statuses = []Status{StatusActive, StatusInactive}
)

func ParseRole(s string) (Role, bool) {
	role := Role(core.CleanString(s))
	return role, core.OneOf(role, Roles...)
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"usuario" db:"usuario"`
	Name         string    `json:"nombre" db:"nombre"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	Role         Role      `json:"rol" db:"rol"`
	Status       Status    `json:"estado" db:"estado"`
	LastLogin    null.Time `json:"ultimo_acceso" db:"ultimo_acceso"`
	CreatedAt    time.Time `json:"fecha_creacion" db:"fecha_creacion"`
	UpdatedAt    null.Time `json:"fecha_actualizacion" db:"fecha_actualizacion"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// checkDummyPassword takes as long as CheckPassword, for logins that fail before reaching a user's hash.
func checkDummyPassword(pwd string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("corchera-de-relleno"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(pwd))
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageNews reports whether the user may write, publish and archive news.
func (u User) CanManageNews() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

type QueryFilter struct {
	Status Status
}
