package core

import "testing"

func TestResolveSeed(t *testing.T) {
	if got := ResolveSeed(SeedOf(0)); got != 0 {
		t.Errorf("ResolveSeed(&0) = %d, expected 0", got)
	}
	if got := ResolveSeed(SeedOf(42)); got != 42 {
		t.Errorf("ResolveSeed(&42) = %d, expected 42", got)
	}
	if got := ResolveSeed(nil); got == 0 {
		t.Error("ResolveSeed(nil) should pick a clock seed")
	}
}

func TestDefaultConfigLeavesSeedUnset(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Seed != nil {
		t.Errorf("DefaultConfig().Seed = %d, expected nil", *cfg.Seed)
	}
	if cfg.TickRate != 10 {
		t.Errorf("DefaultConfig().TickRate = %d, expected 10", cfg.TickRate)
	}
}
