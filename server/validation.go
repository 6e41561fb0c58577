package server

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
	"github.com/leebenson/conform"

	errs "github.com/techagentng/dutyreport/errors"
)

// structValidator replaces gin's default validator so that request strings
// are conformed before the binding tags are checked, and failures read as
// English sentences keyed by json field names.
type structValidator struct {
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
}

var requestValidator = &structValidator{}

func init() {
	binding.Validator = requestValidator
}

func (v *structValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	v.lazyInit()
	if err := conform.Strings(obj); err != nil {
		return err
	}
	if err := v.validate.Struct(obj); err != nil {
		return err
	}
	return nil
}

func (v *structValidator) Engine() interface{} {
	v.lazyInit()
	return v.validate
}

func (v *structValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName("binding")
		v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		english := en.New()
		v.trans, _ = ut.New(english, english).GetTranslator("en")
		if err := enTranslations.RegisterDefaultTranslations(v.validate, v.trans); err != nil {
			panic(err)
		}
	})
}

// translate renders validation failures as one message.
func (v *structValidator) translate(err validator.ValidationErrors) string {
	v.lazyInit()
	messages := make([]string, 0, len(err))
	for _, fieldErr := range err {
		messages = append(messages, fieldErr.Translate(v.trans))
	}
	return strings.Join(messages, "; ")
}

// decode binds the request body (JSON or form, by content type) into v and
// validates it. Failures are returned as validation errors.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBind(v); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			return errs.Validation(requestValidator.translate(validationErrs))
		}
		return errs.Validation("invalid request body: " + err.Error())
	}
	return nil
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.Validation("id must be a valid id")
	}
	return id, nil
}

// queryID parses an optional id filter from the query string.
func queryID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Validation(key + " must be a valid id")
	}
	return &id, nil
}
