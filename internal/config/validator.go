package config

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string            // The field that failed validation
	Message string            // Error message
	Context map[string]string // Additional context information
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// Validator validates configuration files.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConfig validates the entire configuration and returns all errors found.
func (v *Validator) ValidateConfig(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg == nil {
		return []ValidationError{{
			Field:   "config",
			Message: "Configuration is nil",
		}}
	}

	errs = append(errs, v.validateRatios(cfg)...)
	errs = append(errs, v.validateHeights(cfg)...)
	errs = append(errs, v.validatePipeline(cfg)...)

	return errs
}

// validateRatios validates the screen ratio table and the tolerance.
func (v *Validator) validateRatios(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Tolerance != nil && *cfg.Tolerance < 0 {
		errs = append(errs, ValidationError{
			Field:   "tolerance",
			Message: fmt.Sprintf("Tolerance must not be negative (got %g)", *cfg.Tolerance),
		})
	}

	for i, e := range cfg.ScreenRatios {
		if e.Ratio <= 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("screenRatios[%d].ratio", i),
				Message: fmt.Sprintf("Ratio must be positive (got %g)", e.Ratio),
			})
		}

		if e.NotchPercent < 0 || e.NotchPercent > 100 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("screenRatios[%d].notchPercent", i),
				Message: fmt.Sprintf("Notch percentage must be between 0 and 100 (got %g)", e.NotchPercent),
			})
		}
	}

	// Entries within tolerance of an earlier entry can never match (the
	// table is scanned in order, first match wins).
	tol := cfg.GetToleranceOrDefault()
	for i := 1; i < len(cfg.ScreenRatios); i++ {
		for j := 0; j < i; j++ {
			if math.Abs(cfg.ScreenRatios[i].Ratio-cfg.ScreenRatios[j].Ratio) <= tol {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("screenRatios[%d].ratio", i),
					Message: fmt.Sprintf("Ratio %g is within tolerance of earlier entry %g and will never match", cfg.ScreenRatios[i].Ratio, cfg.ScreenRatios[j].Ratio),
					Context: map[string]string{
						"tolerance": fmt.Sprintf("%g", tol),
					},
				})
				break
			}
		}
	}

	return errs
}

// validateHeights validates the height parameters against each other.
func (v *Validator) validateHeights(cfg *Config) []ValidationError {
	var errs []ValidationError

	check := func(field string, value *float64) {
		if value != nil && *value < 1 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least 1 text line (got %g)", field, *value),
			})
		}
	}

	check("fullscreenHeight", cfg.FullscreenHeight)
	check("normalHeight", cfg.NormalHeight)
	check("maxHeight", cfg.MaxHeight)

	max := cfg.GetMaxHeightOrDefault()
	if cfg.GetFullscreenHeightOrDefault() > max {
		errs = append(errs, ValidationError{
			Field:   "fullscreenHeight",
			Message: fmt.Sprintf("fullscreenHeight %g exceeds maxHeight %g", cfg.GetFullscreenHeightOrDefault(), max),
		})
	}
	if cfg.GetNormalHeightOrDefault() > max {
		errs = append(errs, ValidationError{
			Field:   "normalHeight",
			Message: fmt.Sprintf("normalHeight %g exceeds maxHeight %g", cfg.GetNormalHeightOrDefault(), max),
		})
	}

	return errs
}

// validatePipeline validates the tab-strip pipeline entries.
func (v *Validator) validatePipeline(cfg *Config) []ValidationError {
	var errs []ValidationError

	for i, name := range cfg.TabStripPipeline {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("tabStripPipeline[%d]", i),
				Message: "Pipeline entry cannot be empty",
			})
		}
	}

	return errs
}

// FormatValidationErrors formats validation errors into a human-readable string.
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nConfiguration Validation Errors:\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Message))
		if len(err.Context) > 0 {
			for k, v := range err.Context {
				sb.WriteString(fmt.Sprintf("   %s: %s\n", k, v))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
