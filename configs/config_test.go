package config

import "testing"

func TestCreateUniqueInstance(t *testing.T) {
	first := CreateUniqueInstance("test")
	if first == "" {
		t.Fatal("expected a non-empty instance id")
	}
	if got := GetInstanceId(); got != first {
		t.Errorf("GetInstanceId() = %q, want %q", got, first)
	}

	second := CreateUniqueInstance("test")
	if second == first {
		t.Errorf("expected a fresh instance id per call, got %q twice", first)
	}
	if got := GetInstanceId(); got != second {
		t.Errorf("GetInstanceId() = %q, want latest id %q", got, second)
	}
}
