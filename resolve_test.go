package md2overleaf

import "testing"

func TestExpandVaultPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		vault    string
		want     string
	}{
		{
			name:     "placeholder at start",
			template: "{vault}/markdown_to_tex.sh",
			vault:    "/home/user/notes",
			want:     "/home/user/notes/markdown_to_tex.sh",
		},
		{
			name:     "no placeholder unchanged",
			template: "/usr/local/bin/convert.sh",
			vault:    "/home/user/notes",
			want:     "/usr/local/bin/convert.sh",
		},
		{
			name:     "multiple placeholders",
			template: "{vault}/bin/{vault}.sh",
			vault:    "/v",
			want:     "/v/bin//v.sh",
		},
		{
			name:     "empty template",
			template: "",
			vault:    "/v",
			want:     "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExpandVaultPath(tt.template, tt.vault); got != tt.want {
				t.Errorf("ExpandVaultPath(%q, %q) = %q, want %q", tt.template, tt.vault, got, tt.want)
			}
		})
	}
}
