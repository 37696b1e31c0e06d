package staff

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/mundoacuatico/backend/core"
)

var (
	// custom validation tags & texts
	usernameTag   = "username"
	usernameText  = "{0} solo puede contener letras, números y guiones bajos"
	usernameRegex = regexp.MustCompile(`^\w+$`)

	// password policy
	pwdMinLen     = 6
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = "La contraseña debe tener al menos 6 caracteres"

	pwdBlankTag  = "pwdblank"
	pwdBlankText = "La contraseña no puede estar compuesta solo de espacios"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "La contraseña es demasiado parecida al usuario o al nombre"
)

// NewUser contains information needed to create a new staff User.
type NewUser struct {
	Username string `json:"usuario" validate:"required,min=3,max=50,username"`
	Name     string `json:"nombre" validate:"notblank,max=100"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"rol" validate:"oneof=Admin Editor"`
}

func (nu *NewUser) Clean() {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Role = Role(core.DefaultString(string(nu.Role), string(RoleEditor)))
}

func (nu NewUser) Validate(v *core.Validator) error {
	return v.Struct(nu)
}

// UpdateUser replaces a staff User. Blank rol/estado keep their current values, a blank password is left unchanged.
type UpdateUser struct {
	Username string `json:"usuario" validate:"required,min=3,max=50,username"`
	Name     string `json:"nombre" validate:"notblank,max=100"`
	Password string `json:"password"`
	Role     Role   `json:"rol" validate:"oneof=Admin Editor"`
	Status   Status `json:"estado" validate:"oneof=Activo Inactivo"`
}

func (uu *UpdateUser) Clean(orig User) {
	uu.Username = core.CleanString(uu.Username, true /* lower */)
	uu.Name = core.CleanString(uu.Name)
	uu.Role = Role(core.DefaultString(string(uu.Role), string(orig.Role)))
	uu.Status = Status(core.DefaultString(string(uu.Status), string(orig.Status)))
}

func (uu UpdateUser) Validate(v *core.Validator) error {
	return v.Struct(uu)
}

func registerValidators(v *core.Validator) {
	v.RegisterValidation(usernameTag, usernameValidation, usernameText)

	v.RegisterStructValidation(userStructValidation, NewUser{}, UpdateUser{})
	v.RegisterTranslation(pwdMinLenTag, pwdMinLenText)
	v.RegisterTranslation(pwdBlankTag, pwdBlankText)
	v.RegisterTranslation(pwdAttrSimTag, pwdAttrSimText)
}

// Custom Validators

// usernameValidation only allows alphanumeric characters and underscores.
func usernameValidation(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// userStructValidation does struct level validation on NewUser and UpdateUser structs.
func userStructValidation(sl validator.StructLevel) {
	switch usr := sl.Current().Interface().(type) {
	case NewUser:
		validatePassword(usr.Password, usr.Name, usr.Username, sl)
	case UpdateUser:
		if usr.Password != "" {
			validatePassword(usr.Password, usr.Name, usr.Username, sl)
		}
	}
}

// validatePassword applies the password policy to provided password:
// - minLen: 6
// - not only whitespace
// - no user attrs similarity
func validatePassword(pwd, name, uname string, sl validator.StructLevel) {
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	if pwd == "" {
		return // "required" already failed
	}
	if len([]rune(pwd)) < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}
	if strings.TrimFunc(pwd, unicode.IsSpace) == "" {
		reportErr(pwdBlankTag)
		return
	}

	if isTooSimilar(pwd, name) || isTooSimilar(pwd, uname) {
		reportErr(pwdAttrSimTag)
	}
}

func isTooSimilar(pwd, usrAttr string) bool {
	if usrAttr == "" {
		return false
	}
	pwd, usrAttr = strings.ToLower(pwd), strings.ToLower(usrAttr)
	return difflib.NewMatcher(strings.Split(pwd, ""), strings.Split(usrAttr, "")).QuickRatio() >= pwdMaxSim
}

// validatePasswordReset checks a new password of usr against the policy.
func validatePasswordReset(v *core.Validator, usr User, pwd string) error {
	return v.Struct(UpdateUser{Username: usr.Username, Name: usr.Name, Password: pwd, Role: usr.Role, Status: usr.Status})
}
