package cable

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-cable/internal/logging"
	"github.com/tphakala/go-audio-cable/platform"
)

// Stats is an immutable snapshot of a cable's counters.
type Stats struct {
	Running          bool
	SamplesProcessed uint64
	Underruns        uint64
	Overruns         uint64

	// LatencyMillis is the resample-stage backlog expressed in milliseconds
	// at the configured sample rate.
	LatencyMillis float64

	// CPUUsage is the time spent in ProcessAudio as a percentage of the
	// audio duration it consumed. Zero while stopped.
	CPUUsage float64

	// InputPeak and InputRMS describe the most recent input block.
	InputPeak float32
	InputRMS  float32

	Buffers BufferStats
}

// Option configures a Cable.
type Option func(*Cable)

// WithLogger sets the logger. The cable adds a "cable" field with its id.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Cable) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPlatform sets the host audio service used for device and routing
// operations.
func WithPlatform(s platform.Service) Option {
	return func(c *Cable) {
		c.platform = s
	}
}

// Cable is a virtual audio cable session. It owns a TripleRingBuffer behind
// a mutex, an AudioProcessor and the session statistics.
//
// ProcessAudio may be called from any goroutine; calls are serialized.
type Cable struct {
	id       xid.ID
	cfg      Config
	log      logrus.FieldLogger
	platform platform.Service
	now      func() time.Time

	running atomic.Bool

	mu        sync.Mutex
	buffers   *TripleRingBuffer
	processor *AudioProcessor

	samplesProcessed atomic.Uint64
	underruns        atomic.Uint64
	overruns         atomic.Uint64
	samplesIn        atomic.Uint64
	busyNanos        atomic.Int64
	inputPeak        atomic.Uint32 // float32 bits
	inputRMS         atomic.Uint32 // float32 bits
}

// New creates a stopped cable.
func New(cfg Config, opts ...Option) (*Cable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	processor, err := NewAudioProcessor(cfg.SampleRate, cfg.OutputRate(), cfg.Channels, cfg.Format)
	if err != nil {
		return nil, err
	}

	transform, err := TransformByName(cfg.Strategy, cfg.SampleRate, cfg.OutputRate(), cfg.Channels)
	if err != nil {
		return nil, err
	}

	c := &Cable{
		id:        xid.New(),
		cfg:       cfg,
		log:       logging.GetLogger(),
		now:       time.Now,
		buffers:   NewTripleRingBuffer(cfg.BufferSize, WithTransform(transform)),
		processor: processor,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("cable", c.id.String())

	return c, nil
}

// ID returns the session id.
func (c *Cable) ID() string {
	return c.id.String()
}

// Config returns the configuration the cable was created with.
func (c *Cable) Config() Config {
	return c.cfg
}

// Processor returns the cable's audio processor.
func (c *Cable) Processor() *AudioProcessor {
	return c.processor
}

// Start marks the cable running.
func (c *Cable) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	c.log.WithFields(logrus.Fields{
		"device":      c.cfg.DeviceName,
		"sample_rate": c.cfg.SampleRate,
		"channels":    c.cfg.Channels,
		"buffer_size": c.buffers.Capacity(),
		"format":      c.cfg.Format.String(),
		"strategy":    c.buffers.TransformName(),
	}).Info("virtual audio cable started")
	return nil
}

// Stop marks the cable stopped. Buffered samples are kept.
func (c *Cable) Stop(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}

	c.log.WithField("samples_processed", c.samplesProcessed.Load()).Info("virtual audio cable stopped")
	return nil
}

// IsRunning reports whether the cable is started.
func (c *Cable) IsRunning() bool {
	return c.running.Load()
}

// ProcessAudio pushes input through the triple buffer and fills output with
// whatever the output stage holds. It returns the number of samples written
// to output. An overrun is counted when input could not be staged in full,
// an underrun when output was requested but the output stage ran dry.
func (c *Cable) ProcessAudio(input, output []float32) (int, error) {
	if !c.running.Load() {
		return 0, ErrNotRunning
	}
	start := c.now()
	levels := MeasureLevels(input)

	c.mu.Lock()
	droppedBefore := c.buffers.Dropped()
	n := c.buffers.Process(input, output)
	if c.cfg.ForwardOutput {
		c.buffers.Forward(0)
		if n < len(output) {
			n += c.buffers.Process(nil, output[n:])
		}
	}
	stats := c.buffers.Stats()
	dropped := c.buffers.Dropped() - droppedBefore
	c.mu.Unlock()

	c.samplesProcessed.Add(uint64(n))
	c.samplesIn.Add(uint64(len(input)))
	if len(input) > 0 {
		c.inputPeak.Store(math.Float32bits(levels.Peak))
		c.inputRMS.Store(math.Float32bits(levels.RMS))
	}

	if stats.InputFree == 0 || dropped > 0 {
		if count := c.overruns.Add(1); shouldLog(count) {
			c.log.WithFields(logrus.Fields{"overruns": count, "dropped": dropped}).Debug("input buffer overrun")
		}
	}
	if len(output) > 0 && n < len(output) && stats.OutputAvailable == 0 {
		if count := c.underruns.Add(1); shouldLog(count) {
			c.log.WithField("underruns", count).Debug("output buffer underrun")
		}
	}

	c.busyNanos.Add(int64(c.now().Sub(start)))
	return n, nil
}

// shouldLog limits event logging to the first and every logEvery-th event.
func shouldLog(count uint64) bool {
	return count == 1 || count%logEvery == 0
}

// Forward moves up to limit resample-stage samples (all when limit <= 0)
// into the output stage.
func (c *Cable) Forward(limit int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffers.Forward(limit)
}

// ClearBuffers discards everything buffered in all three stages.
func (c *Cable) ClearBuffers() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffers.ClearAll()
}

// Stats returns a snapshot of the cable counters.
func (c *Cable) Stats() Stats {
	c.mu.Lock()
	buffers := c.buffers.Stats()
	c.mu.Unlock()

	running := c.IsRunning()
	s := Stats{
		Running:          running,
		SamplesProcessed: c.samplesProcessed.Load(),
		Underruns:        c.underruns.Load(),
		Overruns:         c.overruns.Load(),
		LatencyMillis:    float64(buffers.ResampleAvailable) * millisPerSecond / float64(c.cfg.SampleRate),
		InputPeak:        math.Float32frombits(c.inputPeak.Load()),
		InputRMS:         math.Float32frombits(c.inputRMS.Load()),
		Buffers:          buffers,
	}
	if running {
		s.CPUUsage = c.cpuUsage()
	}
	return s
}

func (c *Cable) cpuUsage() float64 {
	frames := float64(c.samplesIn.Load()) / float64(c.cfg.Channels)
	if frames == 0 {
		return 0
	}
	audio := frames / float64(c.cfg.SampleRate) * float64(time.Second)
	return float64(c.busyNanos.Load()) / audio * percent
}

// Monitor calls fn with a fresh snapshot every interval until ctx is done.
// The returned channel is closed when the monitor goroutine exits.
func (c *Cable) Monitor(ctx context.Context, interval time.Duration, fn func(Stats)) <-chan struct{} {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(c.Stats())
			}
		}
	}()
	return done
}

// Close stops the cable if it is running and ends every output duplication
// on the host. Errors from both steps are aggregated.
func (c *Cable) Close(ctx context.Context) error {
	var result *multierror.Error

	if c.IsRunning() {
		if err := c.Stop(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.platform != nil {
		if err := c.StopAllDuplications(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (c *Cable) service() (platform.Service, error) {
	if c.platform == nil {
		return nil, ErrNoPlatform
	}
	return c.platform, nil
}

// ListOutputs lists the host's output devices.
func (c *Cable) ListOutputs(ctx context.Context) ([]platform.Output, error) {
	svc, err := c.service()
	if err != nil {
		return nil, err
	}
	outputs, err := svc.ListOutputs(ctx)
	if err != nil {
		return nil, platformError("list outputs", err)
	}
	return outputs, nil
}

// ListApplications lists the host's audio-producing applications.
func (c *Cable) ListApplications(ctx context.Context) ([]platform.Application, error) {
	svc, err := c.service()
	if err != nil {
		return nil, err
	}
	apps, err := svc.ListApplications(ctx)
	if err != nil {
		return nil, platformError("list applications", err)
	}
	return apps, nil
}

// RouteApplication routes an application's audio into the cable.
func (c *Cable) RouteApplication(ctx context.Context, appID string) error {
	svc, err := c.service()
	if err != nil {
		return err
	}
	if err := svc.RouteApplication(ctx, appID); err != nil {
		return platformError("route application", err)
	}
	c.log.WithField("app", appID).Info("application routed")
	return nil
}

// RouteSystemAudio routes all system audio into the cable.
func (c *Cable) RouteSystemAudio(ctx context.Context) error {
	svc, err := c.service()
	if err != nil {
		return err
	}
	if err := svc.RouteSystemAudio(ctx); err != nil {
		return platformError("route system audio", err)
	}
	c.log.Info("system audio routed")
	return nil
}

// UnrouteApplication restores an application's original output.
func (c *Cable) UnrouteApplication(ctx context.Context, appID string) error {
	svc, err := c.service()
	if err != nil {
		return err
	}
	if err := svc.UnrouteApplication(ctx, appID); err != nil {
		return platformError("unroute application", err)
	}
	c.log.WithField("app", appID).Info("application unrouted")
	return nil
}

// DuplicateOutput mirrors the source output onto the target output.
func (c *Cable) DuplicateOutput(ctx context.Context, source, target string) error {
	svc, err := c.service()
	if err != nil {
		return err
	}
	if err := svc.DuplicateOutput(ctx, source, target); err != nil {
		return platformError("duplicate output", err)
	}
	c.log.WithFields(logrus.Fields{"source": source, "target": target}).Info("output duplicated")
	return nil
}

// StopAllDuplications ends every output duplication.
func (c *Cable) StopAllDuplications(ctx context.Context) error {
	svc, err := c.service()
	if err != nil {
		return err
	}
	if err := svc.StopAllDuplications(ctx); err != nil {
		return platformError("stop duplications", err)
	}
	return nil
}
