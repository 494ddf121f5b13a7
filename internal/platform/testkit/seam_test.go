package testkit

import "testing"

var openFn = func(name string) string { return "real:" + name }

func TestSwap_FunctionAndRestore(t *testing.T) {
	t.Run("swap-in-subtest", func(t *testing.T) {
		Swap(t, &openFn, func(name string) string { return "fake:" + name })
		if got := openFn("a"); got != "fake:a" {
			t.Fatalf("swap did not take effect, got %q", got)
		}
	})

	if got := openFn("a"); got != "real:a" {
		t.Fatalf("swap did not restore original, got %q", got)
	}
}
