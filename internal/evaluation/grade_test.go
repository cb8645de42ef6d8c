package evaluation

import "testing"

func TestGrade(t *testing.T) {
	tests := []struct {
		name    string
		student string
		correct string
		want    bool
	}{
		{"exact match", "B", "B", true},
		{"lowercase student", "b", "B", true},
		{"uppercase correct mismatch", "A", "B", false},
		{"whitespace trimmed", "  B  ", "B", true},
		{"both padded", " b ", " B ", true},
		{"invalid label is just wrong", "F", "B", false},
		{"full option text is wrong", "B) 5", "B", false},
		{"empty student answer", "", "B", false},
		{"empty both", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.student, tt.correct); got != tt.want {
				t.Errorf("Grade(%q, %q) = %v, want %v", tt.student, tt.correct, got, tt.want)
			}
		})
	}
}
