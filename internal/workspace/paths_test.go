package workspace

import (
	"path/filepath"
	"testing"
)

func TestTeamDir(t *testing.T) {
	got := TeamDir("/home/claw/.openclaw/workspace", "development-team")
	want := filepath.Join("/home/claw/.openclaw", "workspace-development-team")
	if got != want {
		t.Errorf("TeamDir = %q, want %q", got, want)
	}
}

func TestTeamDirTrailingSlash(t *testing.T) {
	got := TeamDir("/home/claw/.openclaw/workspace/", "t1")
	want := filepath.Join("/home/claw/.openclaw", "workspace-t1")
	if got != want {
		t.Errorf("TeamDir = %q, want %q", got, want)
	}
}

func TestSafeRelativeName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "team.json", "team.json", false},
		{"nested", "notes/plan.md", filepath.Join("notes", "plan.md"), false},
		{"trimmed", "  inbox/item.md ", filepath.Join("inbox", "item.md"), false},
		{"empty", "", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"traversal", "../secrets.yaml", "", true},
		{"nested traversal", "notes/../../x", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeRelativeName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SafeRelativeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
