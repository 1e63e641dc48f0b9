// Package tui builds experiment definitions interactively. Prompts go through
// a PromptDriver so sessions can be scripted.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/selector"
	"github.com/goliatone/go-taguchi/pkg/validation"
)

const autoArray = "auto"

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Builder.
type Option func(*Builder)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(b *Builder) {
		if driver != nil {
			b.driver = driver
		}
	}
}

// WithCatalog restricts the array choice to the given catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(b *Builder) {
		if cat != nil {
			b.catalog = cat
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(b *Builder) {
		b.theme = theme
	}
}

// Builder walks the user through factor entry and array choice.
type Builder struct {
	driver  PromptDriver
	catalog *catalog.Catalog
	theme   Theme
}

// NewBuilder returns a Builder. Without WithPromptDriver it prompts on the
// terminal through survey.
func NewBuilder(options ...Option) *Builder {
	b := &Builder{
		theme: Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	if b.driver == nil {
		b.driver = NewSurveyDriver(nil)
	}
	if b.catalog == nil {
		b.catalog = catalog.Default()
	}
	return b
}

// Build runs the session. Rejected factors are reported and asked again; an
// empty factor name ends entry once at least one factor exists.
func (b *Builder) Build(ctx context.Context) (design.Definition, error) {
	if err := b.info(ctx, "Define the factors of your experiment. Leave the name empty to finish."); err != nil {
		return design.Definition{}, err
	}

	def := design.NewDefinition("")
	for len(def.Factors) < design.MaxFactors {
		name, err := b.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Factor %d name:", len(def.Factors)+1),
			Validator: validName,
		})
		if err != nil {
			return design.Definition{}, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			if len(def.Factors) > 0 {
				break
			}
			more, err := b.driver.Confirm(ctx, ConfirmConfig{Message: "No factors yet. Keep going?", Default: true})
			if err != nil {
				return design.Definition{}, err
			}
			if !more {
				return design.Definition{}, ErrNoFactors
			}
			continue
		}

		raw, err := b.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Levels for %s (comma separated):", name),
			Help:    "At least two distinct levels, e.g. low, high",
		})
		if err != nil {
			return design.Definition{}, err
		}
		if err := def.AddFactor(name, splitLevels(raw)...); err != nil {
			if err := b.reject(ctx, err); err != nil {
				return design.Definition{}, err
			}
			continue
		}
	}

	array, err := b.chooseArray(ctx, *def)
	if err != nil {
		return design.Definition{}, err
	}
	if err := def.SetArray(array); err != nil {
		return design.Definition{}, err
	}

	if err := validation.Definition(*def); err != nil {
		return design.Definition{}, err
	}
	return *def, nil
}

// chooseArray offers auto-selection first, then every catalog array able to
// host the factors, best fit first.
func (b *Builder) chooseArray(ctx context.Context, def design.Definition) (string, error) {
	candidates := selector.Candidates(b.catalog, def.Shape())
	if len(candidates) == 0 {
		if err := b.info(ctx, "No catalog array can host these factors; keeping auto-selection."); err != nil {
			return "", err
		}
		return "", nil
	}

	options := make([]string, 0, len(candidates)+1)
	options = append(options, autoArray)
	for _, d := range candidates {
		options = append(options, fmt.Sprintf("%s (%d runs)", d.Name, d.Runs))
	}

	idx, err := b.driver.Select(ctx, SelectConfig{
		Message:  "Orthogonal array:",
		Options:  options,
		PageSize: 10,
		Help:     "auto picks the smallest array that fits",
	})
	if err != nil {
		return "", err
	}
	if idx <= 0 || idx > len(candidates) {
		return "", nil
	}
	return candidates[idx-1].Name, nil
}

func (b *Builder) reject(ctx context.Context, err error) error {
	msg := err.Error()
	var validationErr *design.ValidationError
	if errors.As(err, &validationErr) {
		msg = validationErr.Message
	}
	return b.driver.Info(ctx, b.theme.ErrorPrefix+msg)
}

func (b *Builder) info(ctx context.Context, msg string) error {
	return b.driver.Info(ctx, b.theme.InfoPrefix+msg)
}

func validName(value string) error {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, ":#") {
		return errors.New("name cannot contain ':' or '#'")
	}
	if len(value) > design.MaxFactorNameLen {
		return fmt.Errorf("name too long (max %d)", design.MaxFactorNameLen)
	}
	return nil
}

func splitLevels(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
