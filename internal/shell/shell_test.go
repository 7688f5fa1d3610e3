package shell

import (
	"testing"
	"time"
)

func TestOutputTrims(t *testing.T) {
	out, err := Output("echo '  hello  '", time.Second)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if out != "hello" {
		t.Fatalf("out = %q", out)
	}
}

func TestOutputTimeout(t *testing.T) {
	start := time.Now()
	_, err := Output("sleep 10", 100*time.Millisecond)
	if err == nil {
		t.Fatal("timeout did not error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("command outlived its timeout: %v", elapsed)
	}
}

func TestCheck(t *testing.T) {
	if !Check("true", time.Second) {
		t.Fatal("true reported as failure")
	}
	if Check("false", time.Second) {
		t.Fatal("false reported as success")
	}
}

func TestRunCapturesFailure(t *testing.T) {
	if err := Run("exit 7", time.Second); err == nil {
		t.Fatal("nonzero exit not reported")
	}
}
