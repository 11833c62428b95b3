package options

import (
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/smartboard/pkg/board"
)

func newSetCommand(o *SetOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "set"}
	AddSetArgs(cmd, o)
	return cmd
}

func TestResolveOnlyChangedFlags(t *testing.T) {
	o := &SetOptions{}
	cmd := newSetCommand(o)
	if err := cmd.ParseFlags([]string{"--x=25", "--duration=4m30s", "--active=false"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := o.Resolve(cmd.Flags())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.X == nil || *c.X != 25 {
		t.Fatalf("expected x=25, got %v", c.X)
	}
	if c.Y != nil || c.Size != nil || c.Text != nil || c.ShowDate != nil {
		t.Fatalf("unset flags leaked into the patch: %+v", c)
	}
	if c.Duration == nil || *c.Duration != 4*time.Minute+30*time.Second {
		t.Fatalf("unexpected duration %v", c.Duration)
	}
	if c.Active == nil || *c.Active {
		t.Fatalf("expected active=false")
	}
}

func TestResolveParsesEnums(t *testing.T) {
	o := &SetOptions{}
	cmd := newSetCommand(o)
	if err := cmd.ParseFlags([]string{"--type=Analog", "--format=short"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := o.Resolve(cmd.Flags())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if *c.ClockType != board.ClockAnalog || *c.DayFormat != board.DayShort {
		t.Fatalf("unexpected enums %v %v", *c.ClockType, *c.DayFormat)
	}
}

func TestResolveRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{{"--type=sundial"}, {"--format=tiny"}, {"--duration=soon"}} {
		o := &SetOptions{}
		cmd := newSetCommand(o)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if _, err := o.Resolve(cmd.Flags()); err == nil {
			t.Fatalf("expected %v to fail", args)
		}
	}
}
