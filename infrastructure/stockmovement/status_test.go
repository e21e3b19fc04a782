package stockmovement

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{raw: "DISPATCHED", want: StatusDispatched, ok: true},
		{raw: " pending_approval ", want: StatusPendingApproval, ok: true},
		{raw: "canceled", want: StatusCanceled, ok: true},
		{raw: "CANCELLED", ok: false},
		{raw: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if !tc.ok {
				if !errors.Is(err, ErrUnknownStatus) {
					t.Fatalf("expected ErrUnknownStatus, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestStatusesIsClosedAndOrdered(t *testing.T) {
	all := Statuses()
	if len(all) != 16 {
		t.Fatalf("expected 16 statuses, got %d", len(all))
	}
	if all[0] != StatusCreated || all[13] != StatusDispatched {
		t.Fatalf("unexpected lifecycle order: %v", all)
	}
	all[0] = "MUTATED"
	if Statuses()[0] != StatusCreated {
		t.Fatalf("Statuses must return a copy")
	}
}

func TestTerminalAndReceivable(t *testing.T) {
	for _, s := range Statuses() {
		wantTerminal := s == StatusCanceled || s == StatusRejected
		if s.Terminal() != wantTerminal {
			t.Fatalf("%s terminal=%v", s, s.Terminal())
		}
		if s.Receivable() != (s == StatusDispatched) {
			t.Fatalf("%s receivable=%v", s, s.Receivable())
		}
	}
	if got := StatusPacked.LabelKey(); got != "stockMovement.status.PACKED" {
		t.Fatalf("unexpected label key %q", got)
	}
}
