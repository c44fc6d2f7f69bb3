// Package bind provides query parsing and validation helpers for handlers
package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "groundwatch/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

var (
	vOnce sync.Once
	v     *validator.Validate
)

// Get returns the validator singleton, initializing on first use
func Get() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
	})
	return v
}

// Struct validates dst and maps failures to a project validation error
func Struct(dst any) error {
	if err := Get().Struct(dst); err != nil {
		if inv, ok := err.(*validator.InvalidValidationError); ok {
			return perr.Newf(perr.ErrorCodeValidation, "validator: %v", inv)
		}
		field, msg := firstFieldError(err)
		return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	return nil
}

func firstFieldError(err error) (field, message string) {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			msg := fe.Field() + " failed " + fe.Tag()
			if p := fe.Param(); p != "" {
				msg += "=" + p
			}
			return fe.Field(), msg
		}
	}
	return "", err.Error()
}

// QueryInt reads an int query param with a default and bounds mapping to InvalidArgument
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer", name), name)
	}
	return n, nil
}

// QueryString reads a string query param with a default
func QueryString(r *http.Request, name, def string) string {
	if raw := r.URL.Query().Get(name); raw != "" {
		return raw
	}
	return def
}
