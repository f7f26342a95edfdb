package canvas

import (
	"math"

	"github.com/matzehuels/geoshaper/pkg/errors"
)

// Default mutation ranges.
const (
	DefaultScaleMin = 0.5
	DefaultScaleMax = 2.0
	DefaultMaxAngle = 360.0
)

// MutationOptions bounds the random transforms applied to a candidate.
// Scale factors are drawn from [ScaleMin, ScaleMax) independently per axis
// and only apply to shapes that can scale; the rotation angle is drawn from
// [0, MaxAngle) degrees. A MaxAngle of 0 disables rotation.
type MutationOptions struct {
	ScaleMin float64 `toml:"scale_min"`
	ScaleMax float64 `toml:"scale_max"`
	MaxAngle float64 `toml:"max_angle"`
}

// DefaultMutationOptions returns the default ranges.
func DefaultMutationOptions() MutationOptions {
	return MutationOptions{ScaleMin: DefaultScaleMin, ScaleMax: DefaultScaleMax, MaxAngle: DefaultMaxAngle}
}

// SetDefaults replaces the zero value with [DefaultMutationOptions]. Options
// with any field set are kept as given, so MaxAngle 0 stays 0.
func (o *MutationOptions) SetDefaults() {
	if *o == (MutationOptions{}) {
		*o = DefaultMutationOptions()
	}
}

// Validate checks that the scale range is non-empty with positive factors
// and that MaxAngle is a finite, non-negative number of degrees.
func (o MutationOptions) Validate() error {
	if o.ScaleMin <= 0 {
		return errors.New(errors.ErrCodeConfig, "scale_min must be positive, got %g", o.ScaleMin)
	}
	if err := errors.ValidateRange("scale", o.ScaleMin, o.ScaleMax); err != nil {
		return err
	}
	if !(o.MaxAngle >= 0) || math.IsInf(o.MaxAngle, 1) {
		return errors.New(errors.ErrCodeConfig, "max_angle must be a non-negative number of degrees, got %g", o.MaxAngle)
	}
	return nil
}
