package streamerbot

import (
	"testing"
	"time"
)

// TestClient_NewClient verifies that the client is initialized correctly
func TestClient_NewClient(t *testing.T) {
	client := NewClient("", "test_password")

	if client.url != DefaultURL {
		t.Errorf("Expected default URL %s, got %s", DefaultURL, client.url)
	}

	if client.password != "test_password" {
		t.Errorf("Expected password 'test_password', got %s", client.password)
	}

	if client.wakeup == nil {
		t.Error("Expected wakeup channel to be initialized")
	}

	if cap(client.wakeup) != 1 {
		t.Errorf("Expected wakeup channel buffer size 1, got %d", cap(client.wakeup))
	}

	if client.dormant {
		t.Error("Expected dormant to be false initially")
	}
}

// TestClient_DoActionWhenDormant verifies wakeup is triggered when dormant
func TestClient_DoActionWhenDormant(t *testing.T) {
	client := NewClient("ws://localhost:9999/invalid", "")

	client.mu.Lock()
	client.dormant = true
	client.mu.Unlock()

	err := client.DoAction("test_action", map[string]string{"key": "value"})

	if err == nil {
		t.Fatal("Expected error from DoAction when dormant")
	}

	expectedErrMsg := "Streamer.bot is dormant, reconnection triggered"
	if err.Error() != expectedErrMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedErrMsg, err.Error())
	}

	select {
	case <-client.wakeup:
		// Good, wakeup was triggered
	case <-time.After(100 * time.Millisecond):
		t.Error("Expected wakeup signal to be sent")
	}
}

// TestClient_DoActionWhenNotConnected verifies error when not connected but not dormant
func TestClient_DoActionWhenNotConnected(t *testing.T) {
	client := NewClient("ws://localhost:9999/invalid", "")

	err := client.DoAction("test_action", map[string]string{"key": "value"})

	if err == nil {
		t.Fatal("Expected error from DoAction when not connected")
	}

	expectedErrMsg := "not connected to Streamer.bot"
	if err.Error() != expectedErrMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedErrMsg, err.Error())
	}
}

// TestClient_WakeupBuffered verifies multiple wakeup calls don't block
func TestClient_WakeupBuffered(t *testing.T) {
	client := NewClient("", "")

	client.mu.Lock()
	client.dormant = true
	client.mu.Unlock()

	if err := client.DoAction("test1", nil); err == nil {
		t.Fatal("Expected error from first DoAction")
	}

	// Second call should not block (buffered channel default case)
	if err := client.DoAction("test2", nil); err == nil {
		t.Fatal("Expected error from second DoAction")
	}

	select {
	case <-client.wakeup:
		// First signal
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected at least one wakeup signal")
	}

	select {
	case <-client.wakeup:
		t.Error("Should not have multiple wakeup signals")
	case <-time.After(100 * time.Millisecond):
		// Good, no second signal
	}
}

// TestGenerateAuthHash verifies the hash is deterministic and base64 encoded
func TestGenerateAuthHash(t *testing.T) {
	h1 := GenerateAuthHash("password", "salt", "challenge")
	h2 := GenerateAuthHash("password", "salt", "challenge")

	if h1 != h2 {
		t.Error("Expected identical inputs to produce identical hashes")
	}

	if h1 == GenerateAuthHash("password", "salt", "other") {
		t.Error("Expected different challenge to produce a different hash")
	}

	// SHA256 digest is 32 bytes, base64 encodes to 44 characters
	if len(h1) != 44 {
		t.Errorf("Expected 44-character base64 hash, got %d", len(h1))
	}
}
