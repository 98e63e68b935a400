package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/strideworks/go-pup/pkg/dog"
)

func TestParseAction_KnownNames(t *testing.T) {
	for _, name := range ActionNames() {
		kind, err := ParseAction(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if kind.String() != name {
			t.Errorf("%s: round-tripped to %q", name, kind.String())
		}
	}
}

func TestParseAction_UnknownName(t *testing.T) {
	_, err := ParseAction("moonwalk")
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if !errors.Is(err, dog.ErrUnknownAction) {
		t.Errorf("got %v, want ErrUnknownAction", err)
	}
}

func TestNewActionCommand(t *testing.T) {
	cmd := NewActionCommand("forward", 3, 80)

	if cmd.ID == "" {
		t.Error("command has no ID")
	}
	if cmd.Type != TypeAction {
		t.Errorf("type: got %q, want %q", cmd.Type, TypeAction)
	}
	if cmd.Action != "forward" || cmd.Steps != 3 || cmd.Speed != 80 {
		t.Errorf("fields not carried: %+v", cmd)
	}
}

func TestParseCommand_RoundTrip(t *testing.T) {
	in := NewActionCommand("trot", 2, 90)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	out, err := ParseCommand(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != in.ID || out.Action != in.Action || out.Steps != in.Steps {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestParseCommand_Malformed(t *testing.T) {
	if _, err := ParseCommand([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
