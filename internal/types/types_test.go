package types

import (
	"testing"
)

func TestCompatible_ReflexiveForEveryType(t *testing.T) {
	all := []DataType{Unknown, Void, Int, Float, Bool, String, Function}

	for _, dt := range all {
		if !Compatible(dt, dt) {
			t.Fatalf("%s is not compatible with itself", dt)
		}
	}
}

func TestCompatible_IntFloatSymmetric(t *testing.T) {
	if !Compatible(Int, Float) {
		t.Fatal("int should widen to float")
	}
	if !Compatible(Float, Int) {
		t.Fatal("float should narrow to int")
	}
}

func TestCompatible_RejectsUnrelatedPairs(t *testing.T) {
	tests := []struct {
		from DataType
		to   DataType
	}{
		{Bool, String},
		{String, Bool},
		{Int, Bool},
		{Bool, Float},
		{String, Int},
		{Void, Int},
	}

	for _, tt := range tests {
		if Compatible(tt.from, tt.to) {
			t.Fatalf("%s should not be compatible with %s", tt.from, tt.to)
		}
	}
}

func TestCompatible_UnknownMatchesEverything(t *testing.T) {
	all := []DataType{Void, Int, Float, Bool, String}

	for _, dt := range all {
		if !Compatible(Unknown, dt) {
			t.Fatalf("unknown should be compatible with %s", dt)
		}
		if !Compatible(dt, Unknown) {
			t.Fatalf("%s should be compatible with unknown", dt)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !Int.IsNumeric() || !Float.IsNumeric() {
		t.Fatal("int and float are numeric")
	}
	if Bool.IsNumeric() || String.IsNumeric() || Void.IsNumeric() {
		t.Fatal("bool, string and void are not numeric")
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		expected DataType
		ok       bool
	}{
		{"int", Int, true},
		{"float", Float, true},
		{"bool", Bool, true},
		{"string", String, true},
		{"void", Void, true},
		{"banana", Unknown, false},
		{"", Unknown, false},
	}

	for _, tt := range tests {
		got, ok := ByName(tt.name)
		if ok != tt.ok || got != tt.expected {
			t.Fatalf("%q - expected (%s, %v), got (%s, %v)", tt.name, tt.expected, tt.ok, got, ok)
		}
	}
}
