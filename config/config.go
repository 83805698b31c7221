// Package config loads and validates room configuration
// Sources, later wins: built-in defaults, YAML file, environment
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/physics"
	"github.com/lixenwraith/escape-room/system"
)

// ErrInvalid marks configuration that parsed but cannot drive a room
var ErrInvalid = errors.New("invalid config")

// Environment overrides
const (
	EnvKeypadCode = "ESCAPE_ROOM_KEYPAD_CODE"
	EnvRoomWidth  = "ESCAPE_ROOM_ROOM_WIDTH"
	EnvRoomDepth  = "ESCAPE_ROOM_ROOM_DEPTH"
	EnvRoomHeight = "ESCAPE_ROOM_ROOM_HEIGHT"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// RoomConfig is the full tunable surface of a room
type RoomConfig struct {
	Room             RoomSection    `yaml:"room"`
	CameraProfile    ProfileSection `yaml:"camera_profile"`
	CharacterProfile ProfileSection `yaml:"character_profile"`
	Follow           FollowSection  `yaml:"follow"`
	Keypad           KeypadSection  `yaml:"keypad"`
	Beam             BeamSection    `yaml:"beam"`
}

type RoomSection struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
}

type ProfileSection struct {
	Speed            float64 `yaml:"speed"`
	BoundsBuffer     float64 `yaml:"bounds_buffer"`
	DeltaTimeCoupled bool    `yaml:"delta_time_coupled"`
	TurnRate         float64 `yaml:"turn_rate"`
}

type FollowSection struct {
	Distance     float64 `yaml:"distance"`
	Height       float64 `yaml:"height"`
	LookAtHeight float64 `yaml:"look_at_height"`
	Smoothing    float64 `yaml:"smoothing"`
}

type KeypadSection struct {
	Code         string `yaml:"code"`
	Capacity     int    `yaml:"capacity"`
	ResetDelayMs int    `yaml:"reset_delay_ms"`
}

type BeamSection struct {
	Samples int `yaml:"samples"`
}

// Default returns the built-in room
func Default() *RoomConfig {
	return &RoomConfig{
		Room: RoomSection{
			Width:  parameter.RoomWidth,
			Depth:  parameter.RoomDepth,
			Height: parameter.RoomHeight,
		},
		CameraProfile:    profileSection(physics.CameraProfile),
		CharacterProfile: profileSection(physics.CharacterProfile),
		Follow: FollowSection{
			Distance:     parameter.CameraFollowDistance,
			Height:       parameter.CameraFollowHeight,
			LookAtHeight: parameter.CameraLookAtHeight,
			Smoothing:    parameter.CameraFollowLerp,
		},
		Keypad: KeypadSection{
			Code:         parameter.KeypadCode,
			Capacity:     parameter.KeypadCapacity,
			ResetDelayMs: int(parameter.KeypadResetDelay / time.Millisecond),
		},
		Beam: BeamSection{Samples: parameter.LaserSamples},
	}
}

func profileSection(p physics.MovementProfile) ProfileSection {
	return ProfileSection{
		Speed:            p.Speed,
		BoundsBuffer:     p.BoundsBuffer,
		DeltaTimeCoupled: p.DeltaTimeCoupled,
		TurnRate:         p.TurnRate,
	}
}

// Load reads path, checks it against the schema, overlays it on Default, and validates
func Load(path string) (*RoomConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load without the file read
func Parse(raw []byte) (*RoomConfig, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("room.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// validateSchema converts YAML to its JSON data model before validation
func validateSchema(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return nil
	}

	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert config: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("convert config: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Validate checks cross-field rules the schema cannot express
func (c *RoomConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Room.Width <= 0 || c.Room.Depth <= 0 || c.Room.Height <= 0 {
		fail("room dimensions must be positive, got %vx%vx%v", c.Room.Width, c.Room.Depth, c.Room.Height)
	}
	profiles := []struct {
		name string
		p    ProfileSection
	}{
		{"camera_profile", c.CameraProfile},
		{"character_profile", c.CharacterProfile},
	}
	for _, pr := range profiles {
		name, p := pr.name, pr.p
		if p.Speed <= 0 {
			fail("%s.speed must be positive, got %v", name, p.Speed)
		}
		if p.BoundsBuffer < 0 || 2*p.BoundsBuffer >= min(c.Room.Width, c.Room.Depth) {
			fail("%s.bounds_buffer %v leaves no walkable area", name, p.BoundsBuffer)
		}
		if p.TurnRate < 0 || p.TurnRate >= 1 {
			fail("%s.turn_rate must be in [0,1), got %v", name, p.TurnRate)
		}
	}
	if c.Follow.Smoothing <= 0 || c.Follow.Smoothing > 1 {
		fail("follow.smoothing must be in (0,1], got %v", c.Follow.Smoothing)
	}
	if c.Keypad.Capacity < 1 {
		fail("keypad.capacity must be positive, got %d", c.Keypad.Capacity)
	}
	if c.Keypad.Code == "" {
		fail("keypad.code must not be empty")
	}
	if len(c.Keypad.Code) > c.Keypad.Capacity {
		fail("keypad.code %q does not fit capacity %d", c.Keypad.Code, c.Keypad.Capacity)
	}
	if strings.IndexFunc(c.Keypad.Code, func(r rune) bool { return !system.IsKeypadRune(r) }) >= 0 {
		fail("keypad.code %q has characters the keypad cannot enter", c.Keypad.Code)
	}
	if c.Keypad.ResetDelayMs < 0 {
		fail("keypad.reset_delay_ms must not be negative, got %d", c.Keypad.ResetDelayMs)
	}
	if c.Beam.Samples < 2 {
		fail("beam.samples must be at least 2, got %d", c.Beam.Samples)
	}
	return errors.Join(errs...)
}

// ApplyEnv overlays environment overrides, malformed values are skipped
func (c *RoomConfig) ApplyEnv() {
	if code, ok := os.LookupEnv(EnvKeypadCode); ok {
		c.Keypad.Code = code
	}
	envFloat(EnvRoomWidth, &c.Room.Width)
	envFloat(EnvRoomDepth, &c.Room.Depth)
	envFloat(EnvRoomHeight, &c.Room.Height)
}

func envFloat(key string, dst *float64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
		*dst = f
	}
}

// Bounds returns the room box centred on the origin
func (c *RoomConfig) Bounds() physics.Bounds {
	return physics.RoomBounds(c.Room.Width, c.Room.Depth, c.Room.Height)
}

// CameraMovement returns the free-camera movement profile
func (c *RoomConfig) CameraMovement() physics.MovementProfile {
	return c.CameraProfile.movement(physics.CameraProfile.Name)
}

// CharacterMovement returns the character movement profile
func (c *RoomConfig) CharacterMovement() physics.MovementProfile {
	return c.CharacterProfile.movement(physics.CharacterProfile.Name)
}

func (p ProfileSection) movement(name string) physics.MovementProfile {
	return physics.MovementProfile{
		Name:             name,
		Speed:            p.Speed,
		BoundsBuffer:     p.BoundsBuffer,
		DeltaTimeCoupled: p.DeltaTimeCoupled,
		TurnRate:         p.TurnRate,
	}
}

// FollowSettings returns the follow camera shape
func (c *RoomConfig) FollowSettings() system.FollowSettings {
	return system.FollowSettings{
		Distance:     c.Follow.Distance,
		Height:       c.Follow.Height,
		LookAtHeight: c.Follow.LookAtHeight,
		Smoothing:    c.Follow.Smoothing,
	}
}

// ResetDelay returns the keypad clear delay
func (c *RoomConfig) ResetDelay() time.Duration {
	return time.Duration(c.Keypad.ResetDelayMs) * time.Millisecond
}
