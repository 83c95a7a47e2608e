package validator

import (
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"seatdesk/shared/base64"
	"seatdesk/shared/constant"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

const bytesPerMB = 1 << 20

var validate *val.Validate

// contentTypeOf accepts an uploaded file or a base64 data URL.
func contentTypeOf(field val.FieldLevel) string {
	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return v.Header.Get(constant.RequestHeaderContentType)
	case string:
		return base64.GetContentType(v)
	default:
		return ""
	}
}

func validateMimetypes(field val.FieldLevel) bool {
	contentType := contentTypeOf(field)
	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

func validateFileSize(field val.FieldLevel) bool {
	var size int64

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		size = v.Size
	case string:
		size = int64(len(v))
	}

	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(size) <= maxMB*bytesPerMB
}

// validateTimeOfDay accepts "HH:MM" wall-clock values.
func validateTimeOfDay(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := timezone.ParseClock(str)

	return err == nil
}

// jsonName reports fields by their json key so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	for tag, fn := range map[string]val.Func{
		"mimetypes":   validateMimetypes,
		"maxfilesize": validateFileSize,
		"timeofday":   validateTimeOfDay,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
