// Package scene manages entities attached to anchors: markers for participants
// and short-lived content placed by users.
package scene

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sun-23/go-multiuser/common/types"
)

// Shape of a model.
type Shape uint8

const (
	// Asset is loaded by name from the application bundle.
	Asset Shape = iota
	// Sphere is generated from Radius and Color, used for participant markers.
	Sphere
)

// Model is a renderable entity.
type Model struct {
	Name   string
	Shape  Shape
	Radius float32
	Color  string
}

// Config for Scene.
type Config struct {
	TransientTTL time.Duration `mapstructure:"transient-ttl"`
	MarkerRadius float32       `mapstructure:"marker-radius"`
	MarkerColor  string        `mapstructure:"marker-color"`
}

// DefaultConfig for Scene.
func DefaultConfig() Config {
	return Config{
		TransientTTL: 500 * time.Millisecond,
		MarkerRadius: 0.03,
		MarkerColor:  "red",
	}
}

// Opt is for configuring Scene.
type Opt func(*Scene)

// WithLogger configures logger for Scene.
func WithLogger(logger *zap.Logger) Opt {
	return func(s *Scene) {
		s.logger = logger
	}
}

// WithClock sets clock used to expire transient entities.
func WithClock(clock clockwork.Clock) Opt {
	return func(s *Scene) {
		s.clock = clock
	}
}

// WithConfig sets Config for Scene.
func WithConfig(cfg Config) Opt {
	return func(s *Scene) {
		s.cfg = cfg
	}
}

type entity struct {
	model Model
}

// Scene tracks entities attached through the renderer.
type Scene struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	cfg      Config
	renderer Renderer

	mu       sync.Mutex
	entities map[types.AnchorID]*entity
	wg       sync.WaitGroup
}

// New creates Scene.
func New(renderer Renderer, opts ...Opt) *Scene {
	s := &Scene{
		logger:   zap.NewNop(),
		clock:    clockwork.NewRealClock(),
		cfg:      DefaultConfig(),
		renderer: renderer,
		entities: map[types.AnchorID]*entity{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Marker is the model attached to participant anchors.
func (s *Scene) Marker() Model {
	return Model{Shape: Sphere, Radius: s.cfg.MarkerRadius, Color: s.cfg.MarkerColor}
}

// PlaceParticipant attaches marker to the participant anchor, at most once per anchor.
func (s *Scene) PlaceParticipant(anchor *types.Anchor) bool {
	_, placed := s.attach(anchor.ID, s.Marker())
	if placed {
		s.logger.Debug("participant marker placed", zap.Object("anchor", anchor))
	}
	return placed
}

// PlaceTransient attaches the model named by the anchor and detaches it after the configured ttl.
// Entities of pending transients are detached when ctx is canceled.
func (s *Scene) PlaceTransient(ctx context.Context, anchor *types.Anchor) bool {
	ent, placed := s.attach(anchor.ID, Model{Name: anchor.Name, Shape: Asset})
	if !placed {
		return false
	}
	s.logger.Debug("transient entity placed",
		zap.Object("anchor", anchor),
		zap.Duration("ttl", s.cfg.TransientTTL),
	)
	expired := s.clock.After(s.cfg.TransientTTL)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-ctx.Done():
		case <-expired:
		}
		s.detach(anchor.ID, ent)
	}()
	return true
}

// Detach removes entity attached to the anchor, if any.
func (s *Scene) Detach(id types.AnchorID) {
	s.detach(id, nil)
}

// Len returns number of attached entities.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}

// Wait for pending transients to be detached.
func (s *Scene) Wait() {
	s.wg.Wait()
}

func (s *Scene) attach(id types.AnchorID, model Model) (*entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[id]; exists {
		return nil, false
	}
	ent := &entity{model: model}
	s.entities[id] = ent
	s.renderer.Attach(id, model)
	return ent, true
}

// detach removes entity for id. If expected is not nil the entity is removed only
// if it wasn't replaced in the meantime.
func (s *Scene) detach(id types.AnchorID, expected *entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, exists := s.entities[id]
	if !exists || (expected != nil && ent != expected) {
		return
	}
	delete(s.entities, id)
	s.renderer.Detach(id)
}

// LogRenderer logs entity operations.
type LogRenderer struct {
	Logger *zap.Logger
}

// Attach implements Renderer.
func (r LogRenderer) Attach(id types.AnchorID, model Model) {
	r.Logger.Info("entity attached",
		zap.Stringer("anchor", id),
		zap.String("model", model.Name),
		zap.Uint8("shape", uint8(model.Shape)),
		zap.Float32("radius", model.Radius),
		zap.String("color", model.Color),
	)
}

// Detach implements Renderer.
func (r LogRenderer) Detach(id types.AnchorID) {
	r.Logger.Info("entity detached", zap.Stringer("anchor", id))
}
