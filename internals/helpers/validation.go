package helper

import (
	stderrors "errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	reDigits = regexp.MustCompile(`^[0-9]+$`)
)

const (
	notBlankTag = "notblank"
	dateTag     = "date"
	digitsTag   = "digits"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// nama field di pesan error mengikuti tag json
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return true
	})
	_ = Validate.RegisterValidation(dateTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok || s == "" {
			return true
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})
	_ = Validate.RegisterValidation(digitsTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && reDigits.MatchString(s)
	})

	registerMessages(map[string]string{
		"required":  "{0} wajib diisi",
		notBlankTag: "{0} tidak boleh kosong",
		dateTag:     "{0} harus berformat YYYY-MM-DD",
		digitsTag:   "{0} hanya boleh berisi angka",
		"len":       "{0} harus {1} karakter",
		"min":       "{0} minimal {1} karakter",
		"max":       "{0} maksimal {1} karakter",
		"email":     "{0} harus berupa email yang valid",
		"url":       "{0} harus berupa URL yang valid",
		"oneof":     "{0} harus salah satu dari [{1}]",
		"uuid":      "{0} harus berupa UUID",
		"numeric":   "{0} harus berupa angka",
	})
}

func registerMessages(msgs map[string]string) {
	for tag, text := range msgs {
		tag, text := tag, text
		_ = Validate.RegisterTranslation(tag, Translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(tag, fe.Field(), fe.Param())
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
	}
}

// ValidateStruct menjalankan validator dan mengembalikan *AppError (400) berisi pesan per field.
func ValidateStruct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !stderrors.As(err, &ves) {
		return ValidationError("Data tidak valid", nil)
	}
	return ValidationError("Data tidak valid", FormatValidationErrors(ves))
}

func FormatValidationErrors(ves validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(ves))
	for _, fe := range ves {
		field := fe.Field()
		out[field] = append(out[field], fe.Translate(Translator))
	}
	return out
}
