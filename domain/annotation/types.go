package annotation

import (
	"errors"
	"fmt"
	"image"
)

// Classification is the operator's decision for one image.
type Classification int

const (
	Unset Classification = iota
	Positive
	Negative
)

func (c Classification) String() string {
	switch c {
	case Unset:
		return "unset"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "unknown"
	}
}

// Point is a pointer position in image pixel space.
type Point struct{ X, Y int }

// Rectangle is a finalized box in image pixel space with X1<=X2 and Y1<=Y2.
type Rectangle struct {
	X1, Y1, X2, Y2 int
}

// NormalizeRect builds a Rectangle from two arbitrary corners.
func NormalizeRect(a, b Point) Rectangle {
	r := Rectangle{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Bounds converts the box to an image.Rectangle. Max is exclusive in image
// terms, so the far edge pixel is included.
func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2+1, r.Y2+1)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// ImageRef identifies an image by file name and its position in the sequence.
type ImageRef struct {
	Name    string
	Ordinal int
}

// Record is one row of the annotation table. A zero Record is the blank
// separator emitted after each image group.
type Record struct {
	ImageID string
	Class   Classification
	Box     *Rectangle
}

// IsSeparator reports whether r is the blank row between image groups.
func (r Record) IsSeparator() bool { return r.ImageID == "" }

var (
	// ErrClassificationRequired is returned by Advance while the current image is unclassified.
	ErrClassificationRequired = errors.New("classification required")
	// ErrSessionDone is returned for any command received after the session finished.
	ErrSessionDone = errors.New("session done")
	// ErrNoImages is returned when the input sequence is empty.
	ErrNoImages = errors.New("no images to annotate")
)

// LoadError reports an image that could not be fetched or decoded.
type LoadError struct {
	Image string
	Err   error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load image %s: %v", e.Image, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ImageSource fetches the pixels for a named image.
type ImageSource interface {
	Load(name string) (image.Image, error)
}

// Sink persists committed annotations.
type Sink interface {
	AppendRecord(rec Record) error
	WriteAnnotatedImage(imageID string, base image.Image, boxes []Rectangle) error
	Flush() error
}

// State enumerates the session controller states.
type State int

const (
	StateLoading State = iota
	StateAwaitingClassification
	StateClassifiedNegative
	StateCapturing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingClassification:
		return "awaiting classification"
	case StateClassifiedNegative:
		return "negative"
	case StateCapturing:
		return "capturing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// StateListener is called on each state transition.
type StateListener func(prev, next State)
