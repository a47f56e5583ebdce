package annotation

// ImageState holds the classification and boxes of the image on screen.
// Negative images never carry boxes; class is locked after the first choice
// until Reset.
type ImageState struct {
	ref   ImageRef
	class Classification
	boxes []Rectangle
}

// NewImageState returns a fresh Unset state for ref.
func NewImageState(ref ImageRef) *ImageState {
	return &ImageState{ref: ref}
}

func (s *ImageState) Ref() ImageRef         { return s.ref }
func (s *ImageState) Class() Classification { return s.class }
func (s *ImageState) Len() int              { return len(s.boxes) }
func (s *ImageState) Classified() bool      { return s.class != Unset }
func (s *ImageState) AcceptsBoxes() bool    { return s.class == Positive }
func (s *ImageState) CanUndo() bool         { return len(s.boxes) > 0 }
func (s *ImageState) Boxes() []Rectangle    { return append([]Rectangle(nil), s.boxes...) }

// Classify sets the class once. It returns false when the image was already
// classified or c is Unset.
func (s *ImageState) Classify(c Classification) bool {
	if s.class != Unset || (c != Positive && c != Negative) {
		return false
	}
	s.class = c
	s.boxes = s.boxes[:0]
	return true
}

// AddRectangle appends r when the image is Positive.
func (s *ImageState) AddRectangle(r Rectangle) bool {
	if s.class != Positive {
		return false
	}
	s.boxes = append(s.boxes, r)
	return true
}

// UndoLastRectangle removes exactly the most recent box.
func (s *ImageState) UndoLastRectangle() (Rectangle, bool) {
	if len(s.boxes) == 0 {
		return Rectangle{}, false
	}
	last := s.boxes[len(s.boxes)-1]
	s.boxes = s.boxes[:len(s.boxes)-1]
	return last, true
}

// Reset returns to Unset with no boxes.
func (s *ImageState) Reset() {
	s.class = Unset
	s.boxes = nil
}

// Records converts the state to its table rows, separator included.
func (s *ImageState) Records() []Record {
	var out []Record
	switch s.class {
	case Negative:
		out = append(out, Record{ImageID: s.ref.Name, Class: Negative})
	case Positive:
		for i := range s.boxes {
			b := s.boxes[i]
			out = append(out, Record{ImageID: s.ref.Name, Class: Positive, Box: &b})
		}
	}
	return append(out, Record{})
}
