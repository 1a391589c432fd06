package assistant

import "testing"

func TestExtractDelimitedJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "well formed",
			text: "Sure, here you go:\n#+#\n{\"summary\": \"Sync\"}\n#+#\nAnything else?",
			want: `{"summary": "Sync"}`,
		},
		{
			name: "no surrounding prose",
			text: `#+#{"a":1}#+#`,
			want: `{"a":1}`,
		},
		{
			name:    "missing markers entirely",
			text:    `{"summary": "Sync"}`,
			wantErr: true,
		},
		{
			name:    "only opening marker",
			text:    `#+# {"summary": "Sync"}`,
			wantErr: true,
		},
		{
			name:    "empty block",
			text:    "#+#   #+#",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			text:    "#+# {summary: Sync} #+#",
			wantErr: true,
		},
		{
			name:    "empty input",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDelimitedJSON(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractDelimitedJSON: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
