package config

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind    int
		in      string
		want    interface{}
		wantErr bool
	}{
		{configKindBool, "yes", true, false},
		{configKindBool, "Off", false, false},
		{configKindBool, "maybe", false, true},
		{configKindString, "main-1.12.2", "main-1.12.2", false},
		{configKindInt, "12", 12, false},
		{configKindInt, "twelve", 0, true},
		{configKindFloat, "2.5", 2.5, false},
		{42, "x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.kind, tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseValue(%d, %q) expected an error", tt.kind, tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseValue(%d, %q) unexpected error: %v", tt.kind, tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseValue(%d, %q) = %v, want %v", tt.kind, tt.in, got, tt.want)
		}
	}
}

func TestEntriesAreLowercase(t *testing.T) {
	for key := range entries {
		for _, r := range key {
			if r >= 'A' && r <= 'Z' {
				t.Errorf("key %q must be lowercase, viper lowercases all keys", key)
			}
		}
	}
}
