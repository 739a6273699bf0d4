package app

import (
	"errors"
	"os"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"gocv.io/x/gocv"
)

func fistHands(x, y float64) []detector.HandLandmarks {
	return []detector.HandLandmarks{detector.FistAt(detector.Point3D{X: x, Y: y})}
}

// failingCamera refuses to open, standing in for a missing or locked device.
type failingCamera struct {
	err error
}

func (c *failingCamera) Open() error                   { return c.err }
func (c *failingCamera) Close() error                  { return nil }
func (c *failingCamera) ReadFrame() (*gocv.Mat, error) { return nil, c.err }
func (c *failingCamera) SetFPS(fps int)                {}
func (c *failingCamera) FPS() int                      { return 0 }
func (c *failingCamera) IsOpen() bool                  { return false }

func TestSession_PublishFrameClassifies(t *testing.T) {
	s := New(Config{})
	s.SetEnabled(true)

	s.publishFrame(fistHands(0.40, 0.50))
	snap := s.Snapshot()
	if snap.Gesture.Kind != gesture.KindFist {
		t.Fatalf("kind = %q, want %q", snap.Gesture.Kind, gesture.KindFist)
	}
	if snap.Gesture.Delta != nil {
		t.Fatal("first fist frame must carry no delta")
	}
	if snap.Status != StatusTracking {
		t.Errorf("status = %q, want %q", snap.Status, StatusTracking)
	}

	s.publishFrame(fistHands(0.42, 0.50))
	snap = s.Snapshot()
	if snap.Gesture.Delta == nil {
		t.Fatal("second fist frame must carry a delta")
	}
}

func TestSession_EmptyFrameDegradesToNone(t *testing.T) {
	s := New(Config{})
	s.SetEnabled(true)

	s.publishFrame(fistHands(0.40, 0.50))
	s.publishFrame(nil)

	snap := s.Snapshot()
	if snap.Gesture.Kind != gesture.KindNone {
		t.Errorf("kind = %q, want %q", snap.Gesture.Kind, gesture.KindNone)
	}
	if snap.Status != StatusNoHand {
		t.Errorf("status = %q, want %q", snap.Status, StatusNoHand)
	}
}

func TestSession_DisableClearsState(t *testing.T) {
	s := New(Config{})
	s.SetEnabled(true)

	// Mid-gesture disable.
	s.publishFrame(fistHands(0.40, 0.50))
	s.publishFrame(fistHands(0.42, 0.50))

	s.SetEnabled(false)

	// The held gesture is forced to None the moment tracking is disabled.
	if g := s.Snapshot().Gesture; g.Kind != gesture.KindNone {
		t.Fatalf("after disable: kind = %q, want %q", g.Kind, gesture.KindNone)
	}

	// Frames arriving while disabled are dropped.
	s.publishFrame(fistHands(0.44, 0.50))
	if g := s.Snapshot().Gesture; g.Kind != gesture.KindNone {
		t.Fatalf("frame while disabled leaked: kind = %q", g.Kind)
	}

	// Re-enabling starts clean: no residual delta from before the toggle.
	s.SetEnabled(true)
	s.publishFrame(fistHands(0.80, 0.20))
	g := s.Snapshot().Gesture
	if g.Kind != gesture.KindFist {
		t.Fatalf("after re-enable: kind = %q, want %q", g.Kind, gesture.KindFist)
	}
	if g.Delta != nil {
		t.Errorf("after re-enable: delta = %+v, want nil", *g.Delta)
	}
}

func TestSession_DisableRacesVisionFrame(t *testing.T) {
	s := New(Config{})

	// A vision frame in flight when the toggle flips must either publish
	// before the disable clears everything or be dropped after it. Run the
	// interleaving many times; the outcome is the same either way.
	for i := 0; i < 100; i++ {
		s.SetEnabled(true)
		s.publishFrame(fistHands(0.40, 0.50))

		done := make(chan struct{})
		go func() {
			s.publishFrame(fistHands(0.42, 0.50))
			close(done)
		}()
		s.SetEnabled(false)
		<-done

		if g := s.latest.Load(); g.Kind != gesture.KindNone {
			t.Fatalf("iteration %d: held gesture = %q after disable, want %q", i, g.Kind, gesture.KindNone)
		}

		// The racing frame must not have re-seeded the grip either: the
		// first fist after re-enabling carries no delta.
		s.SetEnabled(true)
		s.publishFrame(fistHands(0.80, 0.20))
		if g := s.latest.Load(); g.Delta != nil {
			t.Fatalf("iteration %d: residual delta %+v after re-enable", i, *g.Delta)
		}
		s.SetEnabled(false)
	}
}

func TestSession_RenderTickReappliesHeldGesture(t *testing.T) {
	s := New(Config{})
	s.SetEnabled(true)

	s.publishFrame(fistHands(0.40, 0.50))
	s.publishFrame(fistHands(0.42, 0.50))

	// Two render ticks with no fresh vision frame: the held fist delta is
	// applied twice.
	before := s.Orbit().Azimuth()
	s.mapper.Apply(s.latest.Load())
	after1 := s.Orbit().Azimuth()
	s.mapper.Apply(s.latest.Load())
	after2 := s.Orbit().Azimuth()

	if after1 == before {
		t.Fatal("held fist did not move the azimuth")
	}
	if after2 == after1 {
		t.Fatal("held fist must keep moving the azimuth until overwritten")
	}

	// An explicit None stops motion on the next tick.
	s.publishFrame(nil)
	stopped := s.Orbit().Azimuth()
	s.mapper.Apply(s.latest.Load())
	if s.Orbit().Azimuth() != stopped {
		t.Error("None must stop gesture-driven motion")
	}
}

func TestSession_StatusLifecycle(t *testing.T) {
	s := New(Config{})

	if s.Status() != StatusInitializing {
		t.Errorf("initial status = %q, want %q", s.Status(), StatusInitializing)
	}

	s.SetEnabled(true)
	s.publishFrame(fistHands(0.40, 0.50))
	if s.Status() != StatusTracking {
		t.Errorf("status = %q, want %q", s.Status(), StatusTracking)
	}

	s.publishFrame(nil)
	if s.Status() != StatusNoHand {
		t.Errorf("status = %q, want %q", s.Status(), StatusNoHand)
	}

	s.SetEnabled(false)
	if s.Status() != StatusReady {
		t.Errorf("status after disable = %q, want %q", s.Status(), StatusReady)
	}
}

func TestCameraStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"bare permission error", os.ErrPermission, StatusPermissionDenied},
		{"wrapped permission error", &os.PathError{Op: "open", Path: "/dev/video0", Err: os.ErrPermission}, StatusPermissionDenied},
		{"permission message from the driver", errors.New("VIDEOIO ERROR: Permission denied"), StatusPermissionDenied},
		{"missing device", errors.New("device not found"), StatusNoCamera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cameraStatus(tt.err); got != tt.want {
				t.Errorf("cameraStatus(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestSession_StartSurfacesCameraFailure(t *testing.T) {
	t.Run("permission denied", func(t *testing.T) {
		s := New(Config{})
		s.SetCamera(&failingCamera{err: os.ErrPermission})

		if err := s.Start(); err == nil {
			t.Fatal("Start() should fail when the camera cannot open")
		}
		if s.Status() != StatusPermissionDenied {
			t.Errorf("status = %q, want %q", s.Status(), StatusPermissionDenied)
		}
	})

	t.Run("no camera", func(t *testing.T) {
		s := New(Config{})
		s.SetCamera(&failingCamera{err: errors.New("no capture device")})

		if err := s.Start(); err == nil {
			t.Fatal("Start() should fail when the camera cannot open")
		}
		if s.Status() != StatusNoCamera {
			t.Errorf("status = %q, want %q", s.Status(), StatusNoCamera)
		}
	})
}

func TestSession_GlideTo(t *testing.T) {
	s := New(Config{})

	s.GlideTo(1.0, 5.0)

	// The glide only retargets; damping ticks move the viewpoint.
	if s.Orbit().Azimuth() != 0 {
		t.Fatalf("azimuth moved immediately: %f", s.Orbit().Azimuth())
	}

	for i := 0; i < 200; i++ {
		s.Orbit().DampingStep()
	}

	if az := s.Orbit().Azimuth(); az < 0.9 {
		t.Errorf("azimuth = %f, want ~1.0 after damping", az)
	}
	if d := s.Orbit().Distance(); d > 5.3 {
		t.Errorf("distance = %f, want ~5.0 after damping", d)
	}
}
