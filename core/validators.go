package core

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	ErrInvalidData = errors.New("Datos inválidos")

	// custom validation tags & texts
	notBlankTag  = "notblank"
	emailAtTag   = "email_at"
	emailAtText  = "{0} debe tener un formato válido"
	clockTag     = "clock"
	clockText    = "{0} debe ser una hora válida (HH:MM)"
	clockRegex   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
	pastDateTag  = "pastdate"
	pastDateText = "{0} debe ser anterior a la fecha actual"
	notFutureTag = "notfuture"
	notFuture    = "{0} no puede ser futura"
	minAgeTag    = "minage"
	minAgeText   = "Debe tener al menos {1} años"

	// overridden default texts
	requiredText = "{0} es obligatorio"
	minText      = "{0} debe tener al menos {1} caracteres"
	maxText      = "{0} no puede exceder {1} caracteres"
	gteText      = "{0} debe ser mayor o igual a {1}"
	lteText      = "{0} debe ser menor o igual a {1}"
	oneOfText    = "{0} debe ser uno de: {1}"
	urlText      = "{0} debe ser una URL válida"
)

// Validator validates structs and translates every failed rule to a Spanish message.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() *Validator {
	validate := validator.New()

	_es := es.New()
	uni := ut.New(_es, _es)
	translator, _ := uni.GetTranslator("es")
	_ = es_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// validate nullable values as their underlying value (or as missing)
	validate.RegisterCustomTypeFunc(nullableValue, Date{}, Amount{}, Int{}, null.String{})

	v := &Validator{validate: validate, translator: translator}

	v.RegisterValidation(notBlankTag, notBlankValidation, requiredText)
	v.RegisterValidation(emailAtTag, emailAtValidation, emailAtText)
	v.RegisterValidation(clockTag, clockValidation, clockText)
	v.RegisterValidation(pastDateTag, pastDateValidation, pastDateText)
	v.RegisterValidation(notFutureTag, notFutureValidation, notFuture)
	v.RegisterValidation(minAgeTag, minAgeValidation, minAgeText)

	v.RegisterTranslation("required", requiredText, true)
	v.RegisterTranslation("min", minText, true)
	v.RegisterTranslation("max", maxText, true)
	v.RegisterTranslation("gte", gteText, true)
	v.RegisterTranslation("lte", lteText, true)
	v.RegisterTranslation("oneof", oneOfText, true)
	v.RegisterTranslation("url", urlText, true)
	return v
}

// Struct validates s and returns a *ValidationError listing every violated rule, or nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validating struct")
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(v.translator)})
	}
	return NewValidationError(ErrInvalidData, flds...)
}

// RegisterStructValidation registers a struct level validation func for all given types.
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	v.validate.RegisterStructValidation(fn, types...)
}

// RegisterValidation registers a field level validation tag along with its message.
func (v *Validator) RegisterValidation(tag string, fn validator.Func, text string) {
	_ = v.validate.RegisterValidation(tag, fn)
	v.RegisterTranslation(tag, text)
}

// RegisterTranslation registers a custom translation for the specified validation tag.
// Texts may use {0} for the field name and {1} for the tag parameter.
func (v *Validator) RegisterTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			param := fe.Param()
			if fe.Tag() == "oneof" {
				param = strings.ReplaceAll(param, " ", ", ")
			}
			s, _ := t.T(tag, fe.Field(), param)
			return s
		},
	)
}

func nullableValue(field reflect.Value) interface{} {
	switch val := field.Interface().(type) {
	case Date:
		if val.Valid {
			return val.Time
		}
	case Amount:
		if val.Valid {
			f := val.Float64 // as a pointer, so that "required" accepts 0
			return &f
		}
	case Int:
		if val.Valid {
			return val.Int64
		}
	case null.String:
		if val.Valid {
			return val.String
		}
	}
	return nil
}

// NormalizeClock turns a valid "HH:MM" into "HH:MM:SS". Anything else is returned as is.
func NormalizeClock(s string) string {
	s = CleanString(s)
	if len(s) == 5 && clockRegex.MatchString(s) {
		return s + ":00"
	}
	return s
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// emailAtValidation only requires an "@" with something on both sides.
func emailAtValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1
}

func clockValidation(fl validator.FieldLevel) bool {
	return clockRegex.MatchString(fl.Field().String())
}

func fieldTime(fl validator.FieldLevel) (time.Time, bool) {
	t, ok := fl.Field().Interface().(time.Time)
	return t, ok
}

func pastDateValidation(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)
	return ok && DateOf(t).Before(Today())
}

func notFutureValidation(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)
	return ok && !DateOf(t).After(Today())
}

func minAgeValidation(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)
	if !ok {
		return false
	}
	years, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return DateOf(t).YearsUntil(Today()) >= years
}
