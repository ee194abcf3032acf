package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket, cleanup, logDir := StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() {
		AssertNoServerCrash(t, logDir)
	})
	WaitForSession(t, socket, ServerSession)
	if got := Tmux(t, socket, "list-sessions", "-F", "#{session_name}"); got != ServerSession {
		t.Fatalf("expected only %q, got %q", ServerSession, got)
	}
}
