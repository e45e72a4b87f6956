package pipeline

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/ltd/pkg/demand"
	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/topology"
)

var optionsValidate *validator.Validate

func init() {
	optionsValidate = validator.New()
	_ = optionsValidate.RegisterValidation("seed", validateSeed)
}

func validateSeed(fl validator.FieldLevel) bool {
	_, err := demand.ParseSeed(fl.Field().String())
	return err == nil
}

// Validate applies defaults and checks the options before any computation.
//
// Out-of-range counts are INVALID_INPUT, a bad seed is INVALID_SEED, a
// manhattan row length that does not divide the node count is
// DIMENSION_MISMATCH and an unusable output path is INVALID_PATH.
func (o *Options) Validate() error {
	o.SetDefaults()

	if err := optionsValidate.Struct(o); err != nil {
		var fields validator.ValidationErrors
		if !stderrors.As(err, &fields) {
			return errors.Wrap(errors.ErrCodeInternal, err, "validate options")
		}
		return fieldError(o, fields[0])
	}

	if o.Manhattan > 0 {
		if err := topology.CheckGrid(o.Nodes, o.Manhattan); err != nil {
			return err
		}
	}
	if o.OutputFile != "" {
		if err := errors.ValidateOutputPath(o.OutputFile); err != nil {
			return err
		}
	}
	return nil
}

func fieldError(o *Options, fe validator.FieldError) error {
	switch fe.Field() {
	case "Seed":
		_, err := demand.ParseSeed(o.Seed)
		return err
	case "Nodes":
		return errors.New(errors.ErrCodeInvalidInput, "nodes must be at least %s, got %d", fe.Param(), o.Nodes)
	case "Delta":
		return errors.New(errors.ErrCodeInvalidInput, "delta must be at least %s, got %d", fe.Param(), o.Delta)
	case "Manhattan":
		return errors.New(errors.ErrCodeInvalidInput, "manhattan row length must not be negative, got %d", o.Manhattan)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid %s: failed %q", fe.Field(), fe.Tag())
	}
}
