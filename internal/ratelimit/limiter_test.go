package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheckLogin_LockoutAfterMaxAttempts(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  3,
		Lockout:      10 * time.Minute,
		MaxIPPerHour: 100,
		Clock:        clock,
	})
	defer limiter.Close()

	username := "admin"
	ip := "203.0.113.10"

	for i := 1; i <= 2; i++ {
		if result := limiter.CheckLogin(username, ip); !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got %s", i, result.Reason)
		}
		if limiter.RecordFailure(username, ip) {
			t.Fatalf("attempt %d should not trigger lockout", i)
		}
	}

	if !limiter.RecordFailure(username, ip) {
		t.Fatal("third failure should trigger lockout")
	}

	result := limiter.CheckLogin(username, ip)
	if result.Allowed {
		t.Fatal("login should be blocked during lockout")
	}
	if result.Reason != "lockout" {
		t.Errorf("Expected reason 'lockout', got '%s'", result.Reason)
	}
	if result.RetryAfter != 10*time.Minute {
		t.Errorf("RetryAfter = %v, want 10m", result.RetryAfter)
	}

	clock.Advance(10 * time.Minute)
	if result := limiter.CheckLogin(username, ip); !result.Allowed {
		t.Fatalf("login should be allowed after lockout expires, got %s", result.Reason)
	}

	// The counter starts over once the lockout has expired.
	if limiter.RecordFailure(username, ip) {
		t.Fatal("first failure after lockout should not lock again")
	}
}

func TestCheckLogin_ResetOnSuccess(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  2,
		Lockout:      time.Minute,
		MaxIPPerHour: 100,
		Clock:        clock,
	})
	defer limiter.Close()

	limiter.RecordFailure("admin", "203.0.113.10")
	limiter.Reset("admin")

	if limiter.RecordFailure("admin", "203.0.113.10") {
		t.Fatal("failure after reset should not trigger lockout")
	}
	if result := limiter.CheckLogin("admin", "203.0.113.10"); !result.Allowed {
		t.Fatalf("login should be allowed, got %s", result.Reason)
	}
}

func TestCheckLogin_UsernameNormalization(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  1,
		Lockout:      time.Minute,
		MaxIPPerHour: 100,
		Clock:        clock,
	})
	defer limiter.Close()

	limiter.RecordFailure("Admin", "203.0.113.10")

	result := limiter.CheckLogin("  ADMIN ", "198.51.100.7")
	if result.Allowed {
		t.Fatal("case and whitespace variants should share the lockout")
	}
}

func TestCheckLogin_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  100,
		Lockout:      time.Minute,
		MaxIPPerHour: 3,
		Clock:        clock,
	})
	defer limiter.Close()

	ip := "203.0.113.10"
	for i := 0; i < 3; i++ {
		limiter.RecordFailure(fmt.Sprintf("user%d", i), ip)
	}

	result := limiter.CheckLogin("someone-else", ip)
	if result.Allowed {
		t.Fatal("IP should be blocked after hourly limit")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Errorf("Expected reason 'ip_hourly_limit', got '%s'", result.Reason)
	}

	clock.Advance(time.Hour)
	if result := limiter.CheckLogin("someone-else", ip); !result.Allowed {
		t.Fatalf("IP should be allowed after an hour, got %s", result.Reason)
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50", // Rightmost non-private
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1", // Last one when all private
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100", // Uses RemoteAddr, ignores spoofed XFF
		},
		{
			name:       "TrustProxy=false, ignores X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "No headers, RemoteAddr only",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: true,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetClientIP_SpoofingPrevention(t *testing.T) {
	// Attacker sends fake X-Forwarded-For header
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4") // Attacker-supplied
	r.RemoteAddr = "192.168.1.100:54321"       // Real connection

	// With TrustProxy=false, the fake header is ignored
	got := GetClientIP(r, false)
	if got != "192.168.1.100" {
		t.Errorf("Should ignore X-Forwarded-For when TrustProxy=false, got %q", got)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"JOHN.DOE@EXAMPLE.COM", "jo***@example.com"}, // Normalized to lowercase
		{"ab@example.com", "***@example.com"},
		{"a@example.com", "***@example.com"},
		{"Admin", "ad***"},
		{"ab", "***"},
		{"", "***"},
		{"  User@Example.Com  ", "us***@example.com"}, // Trimmed and lowercased
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeIdentifier(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
	if cfg.Lockout != 15*time.Minute {
		t.Errorf("Lockout = %v, want 15m", cfg.Lockout)
	}
	if cfg.MaxIPPerHour != 30 {
		t.Errorf("MaxIPPerHour = %d, want 30", cfg.MaxIPPerHour)
	}
}

func TestNew_NilConfig(t *testing.T) {
	limiter := New(nil)
	defer limiter.Close()

	if limiter == nil {
		t.Error("New(nil) should return a valid limiter")
	}
	if limiter.config.Lockout != 15*time.Minute {
		t.Error("New(nil) should use default config")
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)

	// Trigger cleanup goroutine
	limiter.CheckLogin("admin", "1.2.3.4")

	// Close should not hang
	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
		// Success
	case <-time.After(1 * time.Second):
		t.Error("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  1000,
		Lockout:      5 * time.Minute,
		MaxIPPerHour: 1000,
		Clock:        clock,
	})
	defer limiter.Close()

	var wg sync.WaitGroup
	numGoroutines := 100
	numOps := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				if result := limiter.CheckLogin("admin", "192.168.1.1"); result.Allowed {
					limiter.RecordFailure("admin", "192.168.1.1")
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				limiter.Reset("admin")
			}
		}()
	}

	wg.Wait()
	// If we get here without race detector complaints, test passes
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		// IPv4 private ranges
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"192.168.255.255", true},
		{"127.0.0.1", true},
		// IPv6 private/reserved
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true}, // Link-local
		// IPv4-mapped IPv6 addresses (must match their IPv4 equivalents)
		{"::ffff:10.0.0.1", true},
		{"::ffff:192.168.1.1", true},
		{"::ffff:172.16.0.1", true},
		{"::ffff:127.0.0.1", true},
		{"::ffff:8.8.8.8", false},   // Public IP in IPv4-mapped format
		{"::ffff:1.1.1.1", false},   // Public IP in IPv4-mapped format
		// Public IPs
		{"203.0.113.50", false},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"2001:4860:4860::8888", false}, // Google DNS IPv6
		// Invalid
		{"invalid", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			got := isPrivateIP(tt.ip)
			if got != tt.expected {
				t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}

func TestCheckAndRecord_SeparateOps(t *testing.T) {
	// Check doesn't consume quota; only RecordFailure does
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  1,
		Lockout:      time.Minute,
		MaxIPPerHour: 100,
		Clock:        clock,
	})
	defer limiter.Close()

	for i := 0; i < 10; i++ {
		if result := limiter.CheckLogin("admin", "192.168.1.1"); !result.Allowed {
			t.Errorf("Check %d should be allowed without prior Record", i+1)
		}
	}

	limiter.RecordFailure("admin", "192.168.1.1")

	if result := limiter.CheckLogin("admin", "192.168.1.1"); result.Allowed {
		t.Error("Check after Record should be blocked")
	}
}
