// Package app wires capture, detection, gesture classification and the
// orbit camera into one tracking session.
package app

import (
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/orbit"
)

// Status is the tracking state surfaced to the UI. The gesture core itself
// never errors; these states exist for the collaborators around it.
type Status string

const (
	StatusInitializing     Status = "initializing"
	StatusReady            Status = "ready"
	StatusTracking         Status = "tracking"
	StatusNoHand           Status = "no_hand"
	StatusPermissionDenied Status = "permission_denied"
	StatusNoCamera         Status = "no_camera"
	StatusError            Status = "error"
)

// Pipeline timing constants.
const (
	// IdleFPS is the vision frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the vision frame rate during active tracking.
	ActiveFPS = 15
	// RenderFPS is the cadence of the camera-mapping tick, independent of
	// the vision rate.
	RenderFPS = 60
	// IdleTimeoutMs is how long without motion before dropping back to the
	// idle frame rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for a Session.
type Config struct {
	CameraID     int
	MotionThresh float64
}

// Snapshot is a point-in-time view of the session for the tracking feed.
type Snapshot struct {
	Hands     []detector.HandLandmarks `json:"hands"`
	Gesture   gesture.Gesture          `json:"gesture"`
	Status    Status                   `json:"status"`
	Azimuth   float64                  `json:"azimuth"`
	Distance  float64                  `json:"distance"`
	Timestamp int64                    `json:"timestamp"`
}

// Session owns the two cooperating loops of the pipeline: the vision loop
// (camera -> landmarks -> gesture, at camera rate) and the render loop
// (latest gesture -> orbit camera, at display rate). They communicate only
// through the single-slot latest-gesture cell.
type Session struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	hands      detector.Detector
	classifier *gesture.Detector
	latest     *gesture.Latest
	orbitCam   *orbit.Controller
	mapper     *orbit.Mapper

	mu        sync.RWMutex
	enabled   bool
	status    Status
	lastHands []detector.HandLandmarks
	stopCh    chan struct{}
}

// New creates a Session with the given configuration. Tracking starts
// disabled; the tray or the settings store flips it on.
func New(config Config) *Session {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	s := &Session{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewDetector(),
		latest:     gesture.NewLatest(),
		orbitCam:   orbit.NewController(),
		status:     StatusInitializing,
	}
	s.mapper = orbit.NewMapper(s.orbitCam)

	// Try MediaPipe first, fall back to the mock detector so the rest of
	// the system stays usable without the Python service.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		s.hands = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		s.hands = detector.NewMockDetector()
	}

	return s
}

// SetEnabled turns gesture tracking on or off. Disabling synchronously
// clears all cross-frame gesture state and forces the held gesture to None,
// so the viewpoint stops immediately and re-enabling starts clean with no
// residual delta.
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled == enabled {
		return
	}
	s.enabled = enabled

	if !enabled {
		s.classifier.Reset()
		s.latest.Store(gesture.None)
		s.lastHands = nil
		if s.status == StatusTracking || s.status == StatusNoHand {
			s.status = StatusReady
		}
	}
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (s *Session) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetDetector sets the hand detector implementation to use.
func (s *Session) SetDetector(d detector.Detector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hands = d
}

// SetCamera sets the capture implementation to use.
func (s *Session) SetCamera(c capture.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = c
}

// Status returns the current tracking status.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// cameraStatus maps a camera open failure onto a tracking status. OpenCV
// wraps most failures opaquely, so permission problems are recognized only
// where the platform lets them through; everything else reads as a missing
// camera.
func cameraStatus(err error) Status {
	if errors.Is(err, os.ErrPermission) ||
		strings.Contains(strings.ToLower(err.Error()), "permission denied") {
		return StatusPermissionDenied
	}
	return StatusNoCamera
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// Orbit returns the orbit controller driven by this session.
func (s *Session) Orbit() *orbit.Controller {
	return s.orbitCam
}

// Camera returns the capture device, for the preview stream.
func (s *Session) Camera() capture.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

// GlideTo eases the viewpoint toward the given azimuth and distance using
// the per-tick damping pass. Used for preset recall.
func (s *Session) GlideTo(azimuth, distance float64) {
	s.orbitCam.GlideTo(azimuth, distance)
}

// Snapshot returns the latest hands, gesture and camera state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	hands := s.lastHands
	status := s.status
	s.mu.RUnlock()

	return Snapshot{
		Hands:     hands,
		Gesture:   s.latest.Load(),
		Status:    status,
		Azimuth:   s.orbitCam.Azimuth(),
		Distance:  s.orbitCam.Distance(),
		Timestamp: time.Now().UnixMilli(),
	}
}

// Start opens the camera and launches the vision and render loops.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh != nil {
		return nil
	}

	if err := s.camera.Open(); err != nil {
		s.status = cameraStatus(err)
		return err
	}

	s.camera.SetFPS(IdleFPS)
	s.status = StatusReady

	s.stopCh = make(chan struct{})
	go s.runVisionLoop(s.stopCh)
	go s.runRenderLoop(s.stopCh)

	log.Println("Tracking session started")
	return nil
}

// Stop halts both loops and releases resources.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}

	if err := s.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	s.motion.Close()

	if s.hands != nil {
		if err := s.hands.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	s.status = StatusInitializing
	log.Println("Tracking session stopped")
}
