package cable

import (
	"fmt"
	"slices"

	"github.com/tphakala/go-audio-cable/internal/pipeline"
)

// Transform strategy names.
const (
	StrategyIdentity = pipeline.TransformIdentity
	StrategyNearest  = pipeline.TransformNearest
	StrategyLinear   = pipeline.TransformLinear
)

// Strategies lists the accepted strategy names.
var Strategies = []string{StrategyIdentity, StrategyNearest, StrategyLinear}

// IdentityTransform moves samples into the resample stage unchanged.
type IdentityTransform = pipeline.Passthrough

// NearestTransform converts rate with AudioProcessor's nearest/previous
// sample policy.
type NearestTransform struct {
	processor *AudioProcessor
}

// NewNearestTransform creates a nearest-sample transform.
func NewNearestTransform(inputRate, outputRate uint32, channels uint16) (*NearestTransform, error) {
	p, err := NewAudioProcessor(inputRate, outputRate, channels, F32LE)
	if err != nil {
		return nil, err
	}
	return &NearestTransform{processor: p}, nil
}

// Process implements Transform.
func (t *NearestTransform) Process(dst, src []float32) int {
	return t.processor.Process(src, dst)
}

// MaxOutput implements Transform.
func (t *NearestTransform) MaxOutput(n int) int {
	return t.processor.OutputLen(n)
}

// Name implements Transform.
func (t *NearestTransform) Name() string {
	return StrategyNearest
}

// LinearTransform converts rate by linear interpolation.
type LinearTransform struct {
	resampler *Resampler
}

// NewLinearTransform creates a linear-interpolation transform.
func NewLinearTransform(inputRate, outputRate uint32, channels uint16) (*LinearTransform, error) {
	r, err := NewResampler(inputRate, outputRate, channels)
	if err != nil {
		return nil, err
	}
	return &LinearTransform{resampler: r}, nil
}

// Process implements Transform.
func (t *LinearTransform) Process(dst, src []float32) int {
	return t.resampler.ProcessInto(dst, src)
}

// MaxOutput implements Transform.
func (t *LinearTransform) MaxOutput(n int) int {
	return t.resampler.OutputLen(n)
}

// Name implements Transform.
func (t *LinearTransform) Name() string {
	return StrategyLinear
}

// TransformByName resolves a strategy name. An empty name selects identity.
func TransformByName(name string, inputRate, outputRate uint32, channels uint16) (Transform, error) {
	switch name {
	case "", StrategyIdentity:
		return IdentityTransform{}, nil
	case StrategyNearest:
		t, err := NewNearestTransform(inputRate, outputRate, channels)
		if err != nil {
			return nil, err
		}
		return t, nil
	case StrategyLinear:
		t, err := NewLinearTransform(inputRate, outputRate, channels)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q (want one of %v)", ErrInvalidConfig, name, Strategies)
	}
}

func validStrategy(name string) bool {
	return name == "" || slices.Contains(Strategies, name)
}
