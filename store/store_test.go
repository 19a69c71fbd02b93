package store

import (
	"errors"
	"strings"
	"testing"
)

func TestGatewayError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &GatewayError{Collection: "appointments", Op: "select", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatal("GatewayError should unwrap to its cause")
	}

	msg := err.Error()
	if !strings.Contains(msg, "appointments") || !strings.Contains(msg, "select") {
		t.Fatalf("message missing context: %q", msg)
	}

	var gw *GatewayError
	if !errors.As(error(err), &gw) || gw.Collection != "appointments" {
		t.Fatalf("errors.As failed: %+v", gw)
	}
}
