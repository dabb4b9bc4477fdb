package python

import "testing"

func TestEscapeReservedWord(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"lambda", "lambda_"},
		{"from", "from_"},
		{"None", "None_"},
		{"async", "async_"},
		{"points", "points"},
		{"match", "match"},
		{"_private", "_private"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeReservedWord(tt.input)
			if got != tt.want {
				t.Errorf("escapeReservedWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "_"},
		{"scale", "scale"},
		{"2d", "_2d"},
		{"my-func", "my_func"},
		{"a.b", "a_b"},
		{"class", "class_"},
		{"Größe", "Größe"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeIdentifier(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParamName(t *testing.T) {
	tests := []struct {
		i    int
		name string
		want string
	}{
		{0, "", "arg0"},
		{3, "", "arg3"},
		{1, "_", "arg1"},
		{0, "points", "points"},
		{0, "in", "in_"},
	}
	for _, tt := range tests {
		if got := paramName(tt.i, tt.name); got != tt.want {
			t.Errorf("paramName(%d, %q) = %q, want %q", tt.i, tt.name, got, tt.want)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := map[string]bool{
		"geom":      true,
		"_geom2":    true,
		"Größe":     true,
		"":          false,
		"2d":        false,
		"my-module": false,
		"a.b":       false,
		"class":     false,
	}
	for name, want := range tests {
		if got := IsIdentifier(name); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", name, got, want)
		}
	}
}
