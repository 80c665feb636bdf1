package toolchain

import "testing"

func TestParseCachePath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"bare path", "/home/dev/.npm\n", "/home/dev/.npm", false},
		{"windows path", "D:\\packages\\npm-cache\r\n", "D:\\packages\\npm-cache", false},
		{"key value form", `cache = "/data/npm-cache"` + "\n", "/data/npm-cache", false},
		{"skips warnings", "npm warn config deprecated\n/data/npm-cache\n", "/data/npm-cache", false},
		{"skips comments", "; cli configs\ncache = '/data/npm-cache'\n", "/data/npm-cache", false},
		{"empty output", "\n\n", "", true},
		{"null value", "null\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCachePath(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveCachePathRejectsNonQueryable(t *testing.T) {
	if _, err := EffectiveCachePath(t.Context(), Spec{Name: "pip"}); err == nil {
		t.Fatal("expected error for spec without query command")
	}
}
