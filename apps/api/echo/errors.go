package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "Autenticación requerida")
	errSessionInvalid       = echo.NewHTTPError(http.StatusUnauthorized, "Sesión inválida o expirada")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "Usuario o contraseña incorrectos")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "Cuenta desactivada")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "La sesión ha expirado, inicie sesión nuevamente")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "No tiene permisos para realizar esta acción")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "Recurso no encontrado")
	errServiceUnavailable   = echo.NewHTTPError(http.StatusServiceUnavailable, "Servicio no disponible, intente nuevamente más tarde")

	errMissingCredentials = errors.New("Usuario y contraseña son obligatorios")
	errMalformedBody      = errors.New("El cuerpo de la solicitud no es un JSON válido")

	internalErrMsg = "Error interno del servidor"
)

type (
	errorResponse struct {
		Error string `json:"error"`
	}

	validationErrorResponse struct {
		Error   string   `json:"error"`
		Details []string `json:"detalles"`
	}
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			switch {
			case origErr == middleware.ErrJWTMissing:
				origErr = errUnauthorized
			case origErr.Code == http.StatusUnauthorized && origErr.Internal != nil: // rejected by the JWT middleware
				origErr = errSessionInvalid
			case origErr.Internal != nil:
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = errorResponse{Error: httpErrorMessage(origErr)}
		case *core.ValidationError:
			code = http.StatusBadRequest
			if len(origErr.Fields) > 0 {
				message = validationErrorResponse{Error: origErr.Error(), Details: origErr.Messages()}
			} else {
				message = errorResponse{Error: origErr.Error()}
			}
		case *core.NotFoundError:
			code = http.StatusNotFound
			message = errorResponse{Error: origErr.Error()}
		case *core.ConflictError:
			code = http.StatusBadRequest
			message = errorResponse{Error: origErr.Error()}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = errorResponse{Error: internalErrMsg}

			args := []interface{}{errors.Wrap(err, internalErrMsg), map[string]interface{}{
				"method": ctx.Request().Method,
				"path":   ctx.Path(),
			}}
			if usr, ok := getContextUser(ctx); ok {
				args = append(args, usr)
			}
			logger.Error(internalErrMsg, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = errorResponse{Error: err.Error()}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func httpErrorMessage(herr *echo.HTTPError) string {
	switch herr.Code {
	case http.StatusNotFound:
		return errHttpNotFound.Message.(string)
	case http.StatusMethodNotAllowed:
		return "Método no permitido"
	}
	if msg, ok := herr.Message.(string); ok {
		return msg
	}
	return http.StatusText(herr.Code)
}

// bind decodes the JSON body into dst.
func bind(ctx echo.Context, dst interface{}) error {
	if err := ctx.Bind(dst); err != nil {
		return core.NewValidationError(errMalformedBody)
	}
	return nil
}

// paramID parses the named path param as an id. Anything but a positive integer is reported as notFound.
func paramID(ctx echo.Context, name string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}
