package application

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/domains/users/ports"
	"github.com/dolphin-software/users-service/internal/shared/locale"
)

// Message code prefixes, suffixed with ".user.<field>".
const (
	codeNotBlank = "NotBlank"
	codeSize     = "Size"
	codeEmail    = "Email"
)

type fieldRule struct {
	field  string
	value  func(*domain.User) string
	max    int
	format string
	code   string
}

var userRules = []fieldRule{
	{field: domain.FieldFullName, value: func(u *domain.User) string { return u.FullName }, max: domain.MaxFullNameLength},
	{field: domain.FieldPhone, value: func(u *domain.User) string { return u.Phone }, max: domain.MaxPhoneLength},
	{field: domain.FieldEmail, value: func(u *domain.User) string { return u.Email }, max: domain.MaxEmailLength, format: "email", code: codeEmail},
	{field: domain.FieldPassword, value: func(u *domain.User) string { return u.Password }},
}

// Validator checks a candidate user against the field rules and renders
// violations through the message source.
type Validator struct {
	validate *validator.Validate
	messages ports.MessageSource
}

func NewValidator(messages ports.MessageSource) *Validator {
	return &Validator{validate: validator.New(), messages: messages}
}

// Validate returns nil or a *ValidationError holding the first violation of each field.
func (v *Validator) Validate(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	tag := locale.FromContext(ctx)
	fields := map[string]string{}
	for _, rule := range userRules {
		code, params, ok := v.check(rule, rule.value(user))
		if ok {
			continue
		}
		fields[rule.field] = v.messages.Message(code+".user."+rule.field, params, tag)
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (v *Validator) check(rule fieldRule, value string) (string, []any, bool) {
	if v.validate.Var(strings.TrimSpace(value), "required") != nil {
		return codeNotBlank, nil, false
	}
	if rule.max > 0 && v.validate.Var(value, "max="+strconv.Itoa(rule.max)) != nil {
		return codeSize, []any{rule.max}, false
	}
	if rule.format != "" && v.validate.Var(value, rule.format) != nil {
		return rule.code, nil, false
	}
	return "", nil, true
}
