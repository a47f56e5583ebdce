package annotation

import (
	"fmt"
	"image"
	"log/slog"
)

// Session walks the image sequence and turns operator input into committed
// records. All methods run on the UI thread; there is no internal locking.
type Session struct {
	images    []ImageRef
	index     int
	state     State
	current   *ImageState
	base      image.Image
	capture   BoxCapture
	ledger    *Ledger
	source    ImageSource
	sink      Sink
	logger    *slog.Logger
	listeners []StateListener
	loadErr   error
	flushed   bool
	flushErr  error
}

// NewSession builds a session over names, which must already be filtered
// and sorted. Call Start to load the first image.
func NewSession(names []string, source ImageSource, sink Sink, policy RevisitPolicy, logger *slog.Logger) (*Session, error) {
	if len(names) == 0 {
		return nil, ErrNoImages
	}
	if source == nil || sink == nil {
		return nil, fmt.Errorf("session requires an image source and a sink")
	}
	refs := make([]ImageRef, len(names))
	for i, n := range names {
		refs[i] = ImageRef{Name: n, Ordinal: i}
	}
	return &Session{
		images:  refs,
		state:   StateLoading,
		current: NewImageState(refs[0]),
		ledger:  NewLedger(policy),
		source:  source,
		sink:    sink,
		logger:  logger,
	}, nil
}

// AddListener registers l for state transitions.
func (s *Session) AddListener(l StateListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Start loads the image at the cursor.
func (s *Session) Start() error { return s.load() }

func (s *Session) State() State          { return s.state }
func (s *Session) Index() int            { return s.index }
func (s *Session) Len() int              { return len(s.images) }
func (s *Session) Done() bool            { return s.state == StateDone }
func (s *Session) Image() image.Image    { return s.base }
func (s *Session) Class() Classification { return s.current.Class() }
func (s *Session) Boxes() []Rectangle    { return s.current.Boxes() }
func (s *Session) CanUndo() bool         { return s.state == StateCapturing && s.current.CanUndo() }
func (s *Session) Records() []Record     { return s.ledger.Records() }
func (s *Session) Committed() int        { return s.ledger.Groups() }

// Current returns the image under the cursor; ok is false once done.
func (s *Session) Current() (ImageRef, bool) {
	if s.index >= len(s.images) {
		return ImageRef{}, false
	}
	return s.images[s.index], true
}

// Candidate returns the box being dragged, if any.
func (s *Session) Candidate() (Rectangle, bool) { return s.capture.Candidate() }

// Classify locks the class of the current image. Repeated calls are ignored.
func (s *Session) Classify(c Classification) bool {
	if s.state != StateAwaitingClassification {
		s.debug("classify ignored", "class", c.String())
		return false
	}
	if !s.current.Classify(c) {
		return false
	}
	s.capture.Cancel()
	if c == Positive {
		s.transition(StateCapturing)
	} else {
		s.transition(StateClassifiedNegative)
	}
	return true
}

// BeginBox starts a drag. Pointer input is ignored unless the image is Positive.
func (s *Session) BeginBox(p Point) bool {
	if s.state != StateCapturing {
		return false
	}
	s.capture.Begin(p)
	return true
}

// UpdateBox moves the free corner of the active drag.
func (s *Session) UpdateBox(p Point) bool {
	if s.state != StateCapturing || !s.capture.Active() {
		return false
	}
	s.capture.Update(p)
	return true
}

// FinishBox finalizes the drag and stores the box on the current image.
func (s *Session) FinishBox(p Point) (Rectangle, bool) {
	if s.state != StateCapturing {
		return Rectangle{}, false
	}
	r, ok := s.capture.Finalize(p)
	if !ok || !s.current.AddRectangle(r) {
		return Rectangle{}, false
	}
	s.debug("box added", "box", r.String(), "boxes", s.current.Len())
	return r, true
}

// Undo removes the most recent box of the current image.
func (s *Session) Undo() (Rectangle, bool) {
	if s.state != StateCapturing {
		return Rectangle{}, false
	}
	s.capture.Cancel()
	r, ok := s.current.UndoLastRectangle()
	if ok {
		s.debug("box removed", "box", r.String(), "boxes", s.current.Len())
	}
	return r, ok
}

// Advance commits the current image and loads the next one. It fails with
// ErrClassificationRequired, leaving everything untouched, while the image
// is unclassified. Reaching the end of the sequence flushes the sink.
func (s *Session) Advance() error {
	switch s.state {
	case StateDone:
		return ErrSessionDone
	case StateLoading:
		if s.loadErr != nil {
			return s.loadErr
		}
		return ErrClassificationRequired
	}
	if !s.current.Classified() {
		return ErrClassificationRequired
	}
	ref := s.current.Ref()
	boxes := s.current.Boxes()
	if s.current.Class() == Positive {
		if err := s.sink.WriteAnnotatedImage(ref.Name, s.base, boxes); err != nil {
			return fmt.Errorf("write annotated image %s: %w", ref.Name, err)
		}
	}
	replaced := s.ledger.Commit(ref.Name, s.current.Records())
	if s.logger != nil {
		s.logger.Info("image committed", "image", ref.Name, "index", ref.Ordinal,
			"class", s.current.Class().String(), "boxes", len(boxes), "replaced", replaced)
	}
	s.index++
	return s.load()
}

// Retreat moves back one image without committing or retracting anything.
// The revisited image starts unclassified.
func (s *Session) Retreat() error {
	if s.state == StateDone {
		return ErrSessionDone
	}
	if s.index == 0 {
		return nil
	}
	s.index--
	return s.load()
}

// Close ends the session early, flushing what was committed so far.
// It is a no-op once done.
func (s *Session) Close() error {
	if s.state == StateDone {
		return s.flushErr
	}
	return s.finish()
}

func (s *Session) load() error {
	s.capture.Cancel()
	s.base = nil
	s.loadErr = nil
	if s.index >= len(s.images) {
		return s.finish()
	}
	ref := s.images[s.index]
	s.current.ref = ref
	s.current.Reset()
	s.transition(StateLoading)
	img, err := s.source.Load(ref.Name)
	if err != nil {
		s.loadErr = &LoadError{Image: ref.Name, Err: err}
		if s.logger != nil {
			s.logger.Error("image load failed", "image", ref.Name, "index", ref.Ordinal, "error", err)
		}
		return s.loadErr
	}
	s.base = img
	s.transition(StateAwaitingClassification)
	return nil
}

func (s *Session) finish() error {
	s.index = len(s.images)
	s.transition(StateDone)
	if s.flushed {
		return s.flushErr
	}
	s.flushed = true
	if err := s.ledger.Drain(s.sink); err != nil {
		s.flushErr = err
		if s.logger != nil {
			s.logger.Error("annotation flush failed", "error", err)
		}
		return err
	}
	if s.logger != nil {
		s.logger.Info("annotations flushed", "groups", s.ledger.Groups())
	}
	return nil
}

func (s *Session) transition(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	s.debug("session state transition", "from", prev.String(), "to", next.String())
	for _, l := range s.listeners {
		l(prev, next)
	}
}

func (s *Session) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, append(args, "index", s.index)...)
	}
}
