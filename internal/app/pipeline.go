package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"gocv.io/x/gocv"
)

// runVisionLoop reads camera frames, detects hands and classifies gestures.
// It self-throttles between idle and active frame rates based on motion so
// the detector stays cheap while nobody is in front of the camera.
//
// Loop behavior:
//  1. Start at IdleFPS.
//  2. On motion, switch to ActiveFPS and run hand detection.
//  3. After IdleTimeoutMs without motion, drop back to IdleFPS and publish
//     an empty frame, which clears gesture state and stops the viewpoint.
//  4. Any detection failure degrades to an empty frame; the camera simply
//     stays where it is.
func (s *Session) runVisionLoop(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !s.IsEnabled() {
				continue
			}

			frame, err := s.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				s.publishFrame(nil)
				s.setStatus(StatusError)
				continue
			}

			motionDetected, _ := s.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					s.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
				}
			} else if activeMode && time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				activeMode = false
				s.Camera().SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				// Going idle means tracking is lost: publish an empty frame
				// so the held gesture becomes an explicit stop.
				s.publishFrame(nil)
			}

			if !activeMode {
				frame.Close()
				continue
			}

			hands, err := s.detectHands(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				s.publishFrame(nil)
				s.setStatus(StatusError)
				continue
			}

			s.publishFrame(hands)
		}
	}
}

// detectHands runs the current detector against one frame.
func (s *Session) detectHands(frame *gocv.Mat) ([]detector.HandLandmarks, error) {
	s.mu.RLock()
	d := s.hands
	s.mu.RUnlock()

	if d == nil {
		return nil, nil
	}
	return d.Detect(frame)
}

// publishFrame classifies one frame's hands and makes the result visible to
// the render loop via the latest-gesture cell. A nil or empty hand set is
// the degraded "nothing usable this frame" case and always yields None.
//
// The enabled check, classification and store are one step under the
// session mutex. SetEnabled serializes on the same mutex, so a frame in
// flight either publishes before a disable clears everything or is dropped
// after it; it can never re-seed state or overwrite the forced None.
func (s *Session) publishFrame(hands []detector.HandLandmarks) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}
	s.lastHands = hands
	if len(hands) > 0 {
		s.status = StatusTracking
	} else if s.status == StatusTracking || s.status == StatusReady || s.status == StatusError {
		s.status = StatusNoHand
	}

	s.latest.Store(s.classifier.Feed(hands))
}

// runRenderLoop applies the latest gesture to the orbit camera once per
// render tick. The damping pass runs every tick, gesture or not, so preset
// glides and other eased moves stay smooth even when tracking is disabled.
func (s *Session) runRenderLoop(stopCh <-chan struct{}) {
	ticker := time.NewTicker(time.Second / RenderFPS)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.mapper.Apply(s.latest.Load())
		}
	}
}
