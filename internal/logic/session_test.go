package logic

import (
	"errors"
	"testing"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from    State
		event   Event
		want    State
		wantErr bool
	}{
		{StateLogin, EventSubmit, StateLoading, false},
		{StateLoading, EventLoaded, StateReport, false},
		{StateLoading, EventNotFound, StateError, false},
		{StateLoading, EventLoadFailed, StateError, false},
		{StateReport, EventBack, StateLogin, false},
		{StateError, EventBack, StateLogin, false},

		{StateLogin, EventLoaded, StateLogin, true},
		{StateLogin, EventBack, StateLogin, true},
		{StateLoading, EventSubmit, StateLoading, true},
		{StateLoading, EventBack, StateLoading, true},
		{StateReport, EventSubmit, StateReport, true},
		{StateError, EventLoaded, StateError, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.event), func(t *testing.T) {
			got, err := Transition(tt.from, tt.event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("error does not wrap ErrInvalidTransition: %v", err)
			}
			if got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSlideCursor(t *testing.T) {
	c := NewSlideCursor(3)
	if !c.AtStart() || c.Pos() != 0 {
		t.Fatalf("new cursor at %d", c.Pos())
	}
	if c.Prev() {
		t.Error("Prev at start should be a no-op")
	}
	if !c.Next() || !c.Next() {
		t.Fatal("expected two successful moves")
	}
	if !c.AtEnd() || c.Pos() != 2 {
		t.Errorf("pos = %d, want 2 at end", c.Pos())
	}
	if c.Next() || c.Pos() != 2 {
		t.Error("Next at end should be a no-op")
	}
	if c.GoTo(3) || c.GoTo(-1) {
		t.Error("GoTo out of range should fail")
	}
	if !c.GoTo(1) || c.Pos() != 1 {
		t.Errorf("GoTo(1) left pos at %d", c.Pos())
	}
	if !c.Prev() || c.Pos() != 0 {
		t.Errorf("Prev from 1 left pos at %d", c.Pos())
	}
}

func TestSlideCursor_Empty(t *testing.T) {
	c := NewSlideCursor(0)
	if c.Next() || c.Prev() || c.GoTo(0) {
		t.Error("empty cursor must not move")
	}
	if !c.AtEnd() {
		t.Error("empty cursor is at end")
	}
}
