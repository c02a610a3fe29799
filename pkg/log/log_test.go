package log

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, name string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	return ForService(name), buf
}

func TestPrefixInfo(t *testing.T) {
	SetGlobalDebug(false)

	const name = "prefix_service_test"
	l, buf := newTestLogger(t, name)

	l.Infof("serving %d hooks", 3)
	out := buf.String()

	if !strings.Contains(out, "INFO ["+name+">]") {
		t.Fatalf("expected level and prefix in output, got: %q", out)
	}
	if !strings.Contains(out, "serving 3 hooks") {
		t.Fatalf("expected message in output, got: %q", out)
	}
}

func TestDebugPerService(t *testing.T) {
	SetGlobalDebug(false)

	const name = "debug_service_specific"
	DisableDebugFor(name)
	l, buf := newTestLogger(t, name)

	l.Debugf("should not appear")
	if strings.Contains(buf.String(), "should not appear") {
		t.Fatalf("debug message appeared while debug disabled")
	}

	EnableDebugFor(name)
	defer DisableDebugFor(name)
	l.Debugf("visible now")
	if !strings.Contains(buf.String(), "visible now") {
		t.Fatalf("expected debug message after enabling per-service debug; got: %q", buf.String())
	}
	ForService("other_service").Debugf("other hidden")
	if strings.Contains(buf.String(), "other hidden") {
		t.Fatalf("per-service debug leaked to another service")
	}
}

func TestDebugGlobal(t *testing.T) {
	SetGlobalDebug(false)

	const name = "debug_service_global"
	l, buf := newTestLogger(t, name)

	l.Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug message appeared while global debug disabled")
	}

	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	l.Debugf("global visible")
	if !strings.Contains(buf.String(), "DEBUG ["+name+">] global visible") {
		t.Fatalf("expected debug message after enabling global debug; got: %q", buf.String())
	}
}

func TestSetOutputUpdatesExistingLoggers(t *testing.T) {
	l := ForService("existing_logger")

	buf := &bytes.Buffer{}
	SetOutput(buf)
	l.Warnf("careful")

	if !strings.Contains(buf.String(), "WARN [existing_logger>] careful") {
		t.Fatalf("existing logger did not follow SetOutput: %q", buf.String())
	}
}

func TestStdLogger(t *testing.T) {
	l, buf := newTestLogger(t, "std_bridge")

	l.StdLogger().Printf("http: TLS handshake error")
	out := buf.String()
	if !strings.Contains(out, "ERROR [std_bridge>] http: TLS handshake error\n") {
		t.Fatalf("unexpected bridged output: %q", out)
	}
}
