package fsm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/naandi/platform/internal/adapter/fsm"
	"github.com/naandi/platform/internal/domain"
)

func TestApply_ValidTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current domain.Status
		event   domain.Event
		want    domain.Status
	}{
		{"approve pending", domain.StatusPending, domain.EventApprove, domain.StatusApproved},
		{"reject pending", domain.StatusPending, domain.EventReject, domain.StatusRejected},
	}

	validator := fsm.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := validator.Apply(context.Background(), tc.current, tc.event)
			if err != nil {
				t.Fatalf("Apply(%q, %q) error: %v", tc.current, tc.event, err)
			}
			if got != tc.want {
				t.Errorf("Apply(%q, %q) = %q, want %q", tc.current, tc.event, got, tc.want)
			}
		})
	}
}

func TestApply_InvalidTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current domain.Status
		event   domain.Event
	}{
		{"approve approved", domain.StatusApproved, domain.EventApprove},
		{"reject approved", domain.StatusApproved, domain.EventReject},
		{"approve rejected", domain.StatusRejected, domain.EventApprove},
		{"reject rejected", domain.StatusRejected, domain.EventReject},
		{"unknown event", domain.StatusPending, domain.Event("promote")},
	}

	validator := fsm.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Apply(context.Background(), tc.current, tc.event)
			if err == nil {
				t.Fatalf("Apply(%q, %q) succeeded, want error", tc.current, tc.event)
			}

			var transitionErr *domain.TransitionError
			if !errors.As(err, &transitionErr) {
				t.Fatalf("error type = %T, want *domain.TransitionError", err)
			}
			if transitionErr.Event != tc.event || transitionErr.Current != tc.current {
				t.Errorf("TransitionError = %+v, want event %q from %q", transitionErr, tc.event, tc.current)
			}
		})
	}
}
