package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPIDFileLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i3tracker.pid")
	d := New(path)
	if d.PIDFile() != path {
		t.Errorf("PIDFile() = %q, want %q", d.PIDFile(), path)
	}

	pid, err := d.ReadPID()
	if err != nil || pid != 0 {
		t.Fatalf("ReadPID() on missing file = %d, %v; want 0, nil", pid, err)
	}

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error = %v", err)
	}

	running, pid, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error = %v", err)
	}
	if !running || pid != os.Getpid() {
		t.Errorf("IsRunning() = %v, %d; want true, %d", running, pid, os.Getpid())
	}

	if err := d.RemovePID(); err != nil {
		t.Fatalf("RemovePID() error = %v", err)
	}
	if err := d.RemovePID(); err != nil {
		t.Errorf("second RemovePID() error = %v", err)
	}
}

func TestReadPIDTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i3tracker.pid")
	if err := os.WriteFile(path, []byte("1234\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pid, err := New(path).ReadPID()
	if err != nil || pid != 1234 {
		t.Errorf("ReadPID() = %d, %v; want 1234, nil", pid, err)
	}
}

func TestReadPIDInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i3tracker.pid")
	if err := os.WriteFile(path, []byte("not-a-pid"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(path).ReadPID(); err == nil {
		t.Error("ReadPID() should fail on garbage")
	}
}

func TestStopWhenNotRunning(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "i3tracker.pid"))
	if err := d.Stop(time.Second); err == nil {
		t.Error("Stop() should fail without a PID file")
	}
}

func TestIsChild(t *testing.T) {
	t.Setenv(ChildEnv, "")
	if IsChild() {
		t.Error("IsChild() = true without env")
	}
	t.Setenv(ChildEnv, "1")
	if !IsChild() {
		t.Error("IsChild() = false with env")
	}
}
