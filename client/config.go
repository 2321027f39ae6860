package client

import (
	"errors"
	"net"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Config locates a Solr core.
type Config struct {
	Protocol string `json:"protocol" validate:"oneof=http https"`
	Host     string `json:"host" validate:"required,solr_host"`
	Port     int    `json:"port" validate:"gte=0,lte=65535"`
	Core     string `json:"core"`
	RootPath string `json:"rootPath" validate:"required"`
	User     string `json:"user" validate:"required_with=Password"`
	Password string `json:"password" validate:"required_with=User"`
}

// DefaultConfig returns the configuration of a local Solr on the
// default root path: http://127.0.0.1/solr.
func DefaultConfig() Config {
	return Config{
		Protocol: "http",
		Host:     "127.0.0.1",
		RootPath: "solr",
	}
}

// withDefaults fills the empty location fields from [DefaultConfig].
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Protocol == "" {
		c.Protocol = def.Protocol
	}
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.RootPath == "" {
		c.RootPath = def.RootPath
	}

	return c
}

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("client: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("solr_host", validateHost); err != nil {
		panic(err)
	}
	err := validate.RegisterTranslation("solr_host", translator,
		func(trans ut.Translator) error {
			return trans.Add("solr_host", "{0} must be a valid host name or IP address", true)
		},
		func(trans ut.Translator, fe validator.FieldError) string {
			msg, _ := trans.T("solr_host", fe.Field())
			return msg
		},
	)
	if err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// hostLabels matches dot separated DNS labels. Underscores are allowed
// since container service names such as solr_1 carry them.
var hostLabels = regexp.MustCompile(`^[a-zA-Z0-9_]([a-zA-Z0-9_-]{0,61}[a-zA-Z0-9_])?(\.[a-zA-Z0-9_]([a-zA-Z0-9_-]{0,61}[a-zA-Z0-9_])?)*\.?$`)

func validateHost(fl validator.FieldLevel) bool {
	host := fl.Field().String()
	return net.ParseIP(host) != nil || hostLabels.MatchString(host)
}

// Validate checks the configuration, returning [FieldErrors] on failure.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrors validator.ValidationErrors
		if !errors.As(err, &verrors) {
			return err
		}

		fields := make(FieldErrors, 0, len(verrors))
		for _, verror := range verrors {
			fields = append(fields, FieldError{
				Field: verror.Field(),
				Err:   verror.Translate(translator),
			})
		}
		return fields
	}

	return nil
}

// FieldError represents a single validation error for a specific field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface, returning a human-readable
// summary of all field errors.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}

// Fields returns the names of the invalid fields.
func (fe FieldErrors) Fields() []string {
	names := make([]string, len(fe))
	for i, f := range fe {
		names[i] = f.Field
	}
	return names
}
