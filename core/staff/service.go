package staff

import (
	"context"
	"errors"
	"time"

	"github.com/mundoacuatico/backend/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("Usuario no encontrado")
	ErrUsernameExists     = core.NewConflictError("El nombre de usuario ya está registrado")
	ErrSelfDeactivation   = core.NewConflictError("No puede desactivar su propia cuenta")
	ErrInvalidCredentials = errors.New("Usuario o contraseña incorrectos")

	transitions = core.Transitions[Status]{
		StatusActive:   {StatusInactive},
		StatusInactive: {StatusActive},
	}
)

type (
	Repository interface {
		// CheckUsernameUniqueness returns ErrUsernameExists if another user (than excludedID) has username.
		CheckUsernameUniqueness(ctx context.Context, username string, excludedID int64, exec ...core.DBExecutor) error
		QueryUsers(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]User, error)
		GetUser(ctx context.Context, id int64, exec ...core.DBExecutor) (User, error)
		GetUserByUsername(ctx context.Context, username string, exec ...core.DBExecutor) (User, error)
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (int64, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) error
		SetLastLogin(ctx context.Context, id int64, at time.Time, exec ...core.DBExecutor) error
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, validator *core.Validator) *Service {
	registerValidators(validator)
	return &Service{repo: repo, validator: validator}
}

// List returns the active staff users.
func (svc *Service) List(ctx context.Context) ([]User, error) {
	return svc.repo.QueryUsers(ctx, QueryFilter{Status: StatusActive})
}

func (svc *Service) Get(ctx context.Context, id int64) (User, error) {
	return svc.repo.GetUser(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	nu.Clean()
	if err := nu.Validate(svc.validator); err != nil {
		return User{}, err
	}
	if err := svc.repo.CheckUsernameUniqueness(ctx, nu.Username, 0); err != nil {
		return User{}, err
	}

	usr := User{
		Username:  nu.Username,
		Name:      nu.Name,
		Role:      nu.Role,
		Status:    StatusActive,
		CreatedAt: core.NowFunc().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	id, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	return svc.repo.GetUser(ctx, id)
}

// CreateOrReactivate creates the user, or reactivates an existing one with the given name, role and password.
// It reports whether the user was created.
func (svc *Service) CreateOrReactivate(ctx context.Context, nu NewUser) (User, bool, error) {
	orig, err := svc.GetByUsername(ctx, nu.Username)
	if err != nil {
		if core.IsNotFound(err) {
			usr, err := svc.Create(ctx, nu)
			return usr, err == nil, err
		}
		return User{}, false, err
	}

	usr, err := svc.Update(ctx, orig.ID, UpdateUser{
		Username: orig.Username,
		Name:     nu.Name,
		Password: nu.Password,
		Role:     nu.Role,
		Status:   StatusActive,
	}, 0)
	return usr, false, err
}

// Update replaces the user. actorID is the staff user making the change: nobody can deactivate themselves.
func (svc *Service) Update(ctx context.Context, id int64, uu UpdateUser, actorID int64) (User, error) {
	orig, err := svc.repo.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}

	uu.Clean(orig)
	if err = uu.Validate(svc.validator); err != nil {
		return User{}, err
	}
	if err = transitions.Check(orig.Status, uu.Status); err != nil {
		return User{}, err
	}
	if uu.Status == StatusInactive && id == actorID {
		return User{}, ErrSelfDeactivation
	}
	if err = svc.repo.CheckUsernameUniqueness(ctx, uu.Username, id); err != nil {
		return User{}, err
	}

	usr := orig
	usr.Username = uu.Username
	usr.Name = uu.Name
	usr.Role = uu.Role
	usr.Status = uu.Status
	if uu.Password != "" {
		if err = usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	return svc.save(ctx, usr)
}

// Delete deactivates the user. actorID is the staff user making the change.
func (svc *Service) Delete(ctx context.Context, id, actorID int64) (User, error) {
	if id == actorID {
		return User{}, ErrSelfDeactivation
	}
	usr, err := svc.repo.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err = transitions.Check(usr.Status, StatusInactive); err != nil {
		return User{}, err
	}
	usr.Status = StatusInactive
	return svc.save(ctx, usr)
}

// ResetPassword sets a new password for the user with the given username.
func (svc *Service) ResetPassword(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.GetByUsername(ctx, uname)
	if err != nil {
		return User{}, err
	}
	if err = validatePasswordReset(svc.validator, usr, pwd); err != nil {
		return User{}, err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.save(ctx, usr)
}

// Login checks the credentials of an active user and records the access.
// Unknown or inactive users fail like a wrong password, after as long a check.
func (svc *Service) Login(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.GetByUsername(ctx, uname)
	if err != nil {
		if core.IsNotFound(err) {
			checkDummyPassword(pwd)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !usr.IsActive() {
		checkDummyPassword(pwd)
		return User{}, ErrInvalidCredentials
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}

	now := core.NowFunc().UTC()
	if err = svc.repo.SetLastLogin(ctx, usr.ID, now); err != nil {
		return User{}, err
	}
	usr.LastLogin.SetValid(now)
	return usr, nil
}

func (svc *Service) save(ctx context.Context, usr User) (User, error) {
	usr.UpdatedAt.SetValid(core.NowFunc().UTC())
	if err := svc.repo.UpdateUser(ctx, usr); err != nil {
		return User{}, err
	}
	return svc.repo.GetUser(ctx, usr.ID)
}
