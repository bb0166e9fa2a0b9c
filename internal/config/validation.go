package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/boardfab/internal/header"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Board.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "board.path",
			Message: "path to the board export is required",
		})
	}

	errors = append(errors, c.validateCorrections()...)

	if len(c.Profiles) == 0 {
		errors = append(errors, ValidationError{
			Field:   "profiles",
			Message: "at least one profile must be defined",
		})
	}
	for _, name := range c.ListProfiles() {
		profile := c.Profiles[name]
		errors = append(errors, validateProfile(name, &profile)...)
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateCorrections() ValidationErrors {
	var errors ValidationErrors

	db := c.Corrections.Database
	if db == nil {
		return nil
	}

	if c.Corrections.File != "" {
		errors = append(errors, ValidationError{
			Field:   "corrections",
			Message: "file and database are mutually exclusive",
		})
	}

	prefix := "corrections.database"
	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}
	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}
	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}
	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}
	if db.Table == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".table",
			Message: "table is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	return errors
}

func validateProfile(name string, p *ProfileConfig) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("profiles.%s", name)

	if p.BOM.Disabled && p.PnP.Disabled {
		errors = append(errors, ValidationError{
			Field:   prefix,
			Message: "bom and pnp are both disabled",
		})
	}

	for i, f := range p.GroupBy {
		if f == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.group_by[%d]", prefix, i),
				Message: "grouping field cannot be empty",
			})
		}
	}

	if !p.BOM.Disabled {
		errors = append(errors, validateHeaders(prefix+".bom.headers", p.BOM.Headers, header.BOM)...)
		errors = append(errors, validateFilter(prefix+".bom.filter", p.BOM.Filter)...)
	}

	if !p.PnP.Disabled {
		errors = append(errors, validateHeaders(prefix+".pnp.headers", p.PnP.Headers, header.PnP)...)
		errors = append(errors, validateFilter(prefix+".pnp.filter", p.PnP.Filter)...)

		columns := map[string]bool{}
		if spec, err := HeaderSpec(p.PnP.Headers); err == nil {
			for _, col := range spec.Columns() {
				columns[col] = true
			}
		}
		for i, f := range p.PnP.Format {
			field := fmt.Sprintf("%s.pnp.format[%d]", prefix, i)
			if !columns[f.Column] {
				errors = append(errors, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("column %q is not an output column", f.Column),
				})
			}
			if !strings.Contains(f.Verb, "%") {
				errors = append(errors, ValidationError{
					Field:   field,
					Message: "verb must contain a % directive",
				})
			}
		}
	}

	return errors
}

func validateHeaders(field string, headers []HeaderConfig, family header.Family) ValidationErrors {
	spec, err := HeaderSpec(headers)
	if err == nil {
		err = spec.Validate(family)
	}
	if err != nil {
		return ValidationErrors{{Field: field, Message: err.Error()}}
	}
	return nil
}

func validateFilter(field string, f *FilterConfig) ValidationErrors {
	if f == nil {
		return nil
	}
	if f.Equals != "" && f.Field == "" {
		return ValidationErrors{{Field: field + ".field", Message: "field is required when equals is set"}}
	}
	return nil
}

// HeaderSpec converts configured headers into an ordered header.Spec.
func HeaderSpec(headers []HeaderConfig) (*header.Spec, error) {
	spec := header.NewSpec()
	for _, h := range headers {
		if err := spec.Add(h.Field, h.Name); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
