package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"gorm.io/datatypes"
)

// Messages overrides the default message of a failed rule. Keys are either
// "field.tag" for one rule or "field" for every rule of that field. Field
// names are the json names of the struct fields.
type Messages map[string]string

// MenuCategories are the sections every menu description must mention.
var MenuCategories = []string{"Appetizers", "Main Course", "Desserts"}

var (
	engine = newEngine()

	// tagMessages holds default messages for custom tags.
	tagMessages = map[string]string{
		"letters_spaces":  "Name can only contain letters and spaces",
		"menu_categories": `The menu must include each of the categories "Appetizers", "Main Course", "Desserts".`,
	}
)

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.NullDecimal); ok && d.Valid {
			return d.Decimal.InexactFloat64()
		}
		return nil
	}, decimal.NullDecimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(datatypes.Date); ok {
			return time.Time(d)
		}
		return nil
	}, datatypes.Date{})

	mustRegister(v, "decimal", decimalFits)
	mustRegister(v, "letters_spaces", lettersAndSpaces)
	mustRegister(v, "menu_categories", menuCategories)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %s: %v", tag, err))
	}
}

// RegisterRegex registers tag as a rule that requires string fields to match
// pattern. message becomes the tag's default message. It is meant to be
// called from package init functions.
func RegisterRegex(tag, pattern, message string) {
	re := regexp.MustCompile(pattern)
	mustRegister(engine, tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return re.MatchString(fl.Field().String())
	})
	tagMessages[tag] = message
}

// Struct validates v against its `validate` struct tags and returns nil or
// an *Error with one entry per failing field.
func Struct(v any, messages Messages) error {
	err := engine.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	root := reflect.ValueOf(v)
	out := &Error{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe, messages, root))
	}
	return out
}

func message(fe validator.FieldError, messages Messages, root reflect.Value) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := messages[fe.Field()]; ok {
		return m
	}
	if fe.Tag() == "decimal" {
		if m := decimalMessage(fe, root); m != "" {
			return m
		}
	}
	return defaultMessage(fe)
}

func defaultMessage(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field cannot be blank."
	case "min":
		if isText {
			return fmt.Sprintf("Ensure this value has at least %s characters (it has %d).", fe.Param(), runeCount(fe.Value()))
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), runeCount(fe.Value()))
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "lt":
		return fmt.Sprintf("Ensure this value is less than %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Value '%v' is not a valid choice.", fe.Value())
	case "email":
		return "Enter a valid email address."
	case "url", "http_url":
		return "Enter a valid URL."
	}
	if m, ok := tagMessages[fe.Tag()]; ok {
		return m
	}
	return "Enter a valid value."
}

func runeCount(v any) int {
	s, _ := v.(string)
	return utf8.RuneCountInString(s)
}

// decimalOf reads a decimal, nullable decimal, float or integer field.
func decimalOf(field reflect.Value) (decimal.Decimal, bool) {
	for field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return decimal.Decimal{}, false
		}
		field = field.Elem()
	}
	if field.CanInterface() {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			return d, true
		case decimal.NullDecimal:
			return d.Decimal, d.Valid
		}
	}
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(field.Float()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(field.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromUint64(field.Uint()), true
	}
	return decimal.Decimal{}, false
}

// DigitsAndPlaces reports the total digits and decimal places of d, counted
// the way a fixed-precision column counts them. Trailing zeros count.
func DigitsAndPlaces(d decimal.Decimal) (digits, places int) {
	coeff := d.Coefficient()
	coeff.Abs(coeff)
	zero := coeff.Sign() == 0
	n := len(coeff.String())
	exp := int(d.Exponent())
	if exp >= 0 {
		if zero {
			return n, 0
		}
		return n + exp, 0
	}
	places = -exp
	if places > n {
		return places, places
	}
	return n, places
}

// decimalLimits parses the "P:S" parameter of the decimal tag.
func decimalLimits(param string) (maxDigits, maxPlaces int, ok bool) {
	p, s, found := strings.Cut(param, ":")
	if !found {
		return 0, 0, false
	}
	maxDigits, err := strconv.Atoi(p)
	if err != nil {
		return 0, 0, false
	}
	maxPlaces, err = strconv.Atoi(s)
	if err != nil || maxPlaces > maxDigits {
		return 0, 0, false
	}
	return maxDigits, maxPlaces, true
}

// DecimalViolation returns the message for the first limit of a
// decimal(maxDigits, maxPlaces) column that d breaks, or "" when it fits.
func DecimalViolation(d decimal.Decimal, maxDigits, maxPlaces int) string {
	digits, places := DigitsAndPlaces(d)
	maxWhole := maxDigits - maxPlaces
	switch {
	case digits > maxDigits:
		return fmt.Sprintf("Ensure that there are no more than %d %s in total.", maxDigits, plural(maxDigits, "digit", "digits"))
	case places > maxPlaces:
		return fmt.Sprintf("Ensure that there are no more than %d %s.", maxPlaces, plural(maxPlaces, "decimal place", "decimal places"))
	case digits-places > maxWhole:
		return fmt.Sprintf("Ensure that there are no more than %d %s before the decimal point.", maxWhole, plural(maxWhole, "digit", "digits"))
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// rawField returns the struct field behind fl before custom type funcs
// turned it into a float.
func rawField(fl validator.FieldLevel) reflect.Value {
	parent := fl.Parent()
	for parent.Kind() == reflect.Pointer && !parent.IsNil() {
		parent = parent.Elem()
	}
	if parent.Kind() == reflect.Struct {
		if f := parent.FieldByName(fl.StructFieldName()); f.IsValid() {
			return f
		}
	}
	return fl.Field()
}

func decimalFits(fl validator.FieldLevel) bool {
	maxDigits, maxPlaces, ok := decimalLimits(fl.Param())
	if !ok {
		return false
	}
	d, ok := decimalOf(rawField(fl))
	if !ok {
		return false
	}
	return DecimalViolation(d, maxDigits, maxPlaces) == ""
}

// decimalMessage finds the field of fe under root by its struct namespace
// and reports which limit it breaks.
func decimalMessage(fe validator.FieldError, root reflect.Value) string {
	maxDigits, maxPlaces, ok := decimalLimits(fe.Param())
	if !ok {
		return ""
	}
	field := root
	segments := strings.Split(fe.StructNamespace(), ".")
	for _, name := range segments[1:] {
		for field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
		}
		if field.Kind() != reflect.Struct {
			return ""
		}
		field = field.FieldByName(name)
		if !field.IsValid() {
			return ""
		}
	}
	d, ok := decimalOf(field)
	if !ok {
		return ""
	}
	return DecimalViolation(d, maxDigits, maxPlaces)
}

func lettersAndSpaces(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func menuCategories(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return ContainsAllFolded(fl.Field().String(), MenuCategories)
}

// ContainsAllFolded reports whether text contains every one of words,
// ignoring case.
func ContainsAllFolded(text string, words []string) bool {
	folded := Fold(text)
	for _, w := range words {
		if !strings.Contains(folded, Fold(w)) {
			return false
		}
	}
	return true
}

// Fold returns the case-folded form of s. A Caser is stateful, so each
// call builds its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}
