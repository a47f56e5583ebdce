package annotation

import (
	"reflect"
	"testing"
)

func TestImageState_ClassificationLock(t *testing.T) {
	for _, first := range []Classification{Positive, Negative} {
		t.Run(first.String(), func(t *testing.T) {
			s := NewImageState(ImageRef{Name: "a.jpg"})
			if !s.Classify(first) {
				t.Fatalf("first classify should succeed")
			}
			for _, again := range []Classification{Positive, Negative, Unset} {
				if s.Classify(again) {
					t.Fatalf("classify(%v) after %v should be ignored", again, first)
				}
				if s.Class() != first {
					t.Fatalf("class changed to %v", s.Class())
				}
			}
			s.Reset()
			if s.Class() != Unset || s.Len() != 0 {
				t.Fatalf("reset should clear state")
			}
			if !s.Classify(Negative) {
				t.Fatalf("classify after reset should succeed")
			}
		})
	}
}

func TestImageState_ClassifyUnsetRejected(t *testing.T) {
	s := NewImageState(ImageRef{Name: "a.jpg"})
	if s.Classify(Unset) || s.Classified() {
		t.Fatalf("Unset is not a choice")
	}
}

func TestImageState_AddRectangleRequiresPositive(t *testing.T) {
	s := NewImageState(ImageRef{Name: "a.jpg"})
	if s.AddRectangle(Rectangle{1, 1, 2, 2}) {
		t.Fatalf("box accepted while unset")
	}
	s.Classify(Negative)
	if s.AddRectangle(Rectangle{1, 1, 2, 2}) {
		t.Fatalf("box accepted while negative")
	}
	if s.Len() != 0 {
		t.Fatalf("negative image must carry no boxes")
	}
}

func TestImageState_UndoIsInverseOfAdd(t *testing.T) {
	boxes := []Rectangle{{1, 1, 5, 5}, {2, 2, 8, 8}, {0, 3, 4, 9}}
	for n := 1; n <= len(boxes); n++ {
		s := NewImageState(ImageRef{Name: "a.jpg"})
		s.Classify(Positive)
		for _, b := range boxes[:n] {
			s.AddRectangle(b)
		}
		removed, ok := s.UndoLastRectangle()
		if !ok || removed != boxes[n-1] {
			t.Fatalf("n=%d: removed %v ok=%v", n, removed, ok)
		}
		want := append([]Rectangle(nil), boxes[:n-1]...)
		if !reflect.DeepEqual(s.Boxes(), want) {
			t.Fatalf("n=%d: boxes %v want %v", n, s.Boxes(), want)
		}
	}
}

func TestImageState_UndoOnEmptyIsNoop(t *testing.T) {
	s := NewImageState(ImageRef{Name: "a.jpg"})
	s.Classify(Positive)
	if _, ok := s.UndoLastRectangle(); ok {
		t.Fatalf("undo on empty should report nothing removed")
	}
	if s.Class() != Positive {
		t.Fatalf("undo must not touch class")
	}
}

func TestImageState_ResetIdempotent(t *testing.T) {
	s := NewImageState(ImageRef{Name: "a.jpg"})
	s.Classify(Positive)
	s.AddRectangle(Rectangle{1, 1, 2, 2})
	s.Reset()
	once := *s
	s.Reset()
	if !reflect.DeepEqual(once, *s) || s.Class() != Unset || s.Len() != 0 {
		t.Fatalf("second reset changed state")
	}
}

func TestImageState_Records(t *testing.T) {
	neg := NewImageState(ImageRef{Name: "n.jpg"})
	neg.Classify(Negative)
	got := neg.Records()
	want := []Record{{ImageID: "n.jpg", Class: Negative}, {}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("negative records %+v", got)
	}

	pos := NewImageState(ImageRef{Name: "p.jpg"})
	pos.Classify(Positive)
	pos.AddRectangle(Rectangle{1, 1, 5, 5})
	pos.AddRectangle(Rectangle{2, 2, 8, 8})
	got = pos.Records()
	if len(got) != 3 || !got[2].IsSeparator() {
		t.Fatalf("positive records %+v", got)
	}
	if *got[0].Box != (Rectangle{1, 1, 5, 5}) || *got[1].Box != (Rectangle{2, 2, 8, 8}) {
		t.Fatalf("box order not preserved")
	}

	empty := NewImageState(ImageRef{Name: "e.jpg"})
	empty.Classify(Positive)
	if got := empty.Records(); len(got) != 1 || !got[0].IsSeparator() {
		t.Fatalf("empty positive should emit only the separator, got %+v", got)
	}
}
