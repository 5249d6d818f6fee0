package attachment

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		mediaType string
		want      Kind
	}{
		{"text/plain", Textual},
		{"text/csv", Textual},
		{"text/markdown", Textual},
		{"application/json", Textual},
		{"application/xml", Textual},
		{"application/x-yaml", Textual},
		{"application/csv", Textual},
		{"application/javascript", Textual},
		{"application/x-shellscript", Textual},
		{"image/png", Binary},
		{"image/jpeg", Binary},
		{"application/pdf", Binary},
		{"application/octet-stream", Binary},
		{"", Binary},
	}
	for _, tc := range cases {
		if got := Classify(tc.mediaType); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.mediaType, got, tc.want)
		}
	}
}

func TestResolveMediaType(t *testing.T) {
	cases := []struct {
		mediaType string
		name      string
		want      string
	}{
		{"", "report.csv", "text/csv"},
		{"application/octet-stream", "notes.md", "text/markdown"},
		{"application/octet-stream", "ledger.json", "application/json"},
		{"", "statement.pdf", "application/pdf"},
		{"", "homework.txt", "text/plain"},
		{"", "grades.tsv", "text/tab-separated-values"},
		{"", "invoice.xml", "text/xml"},
		{"", "config.yml", "text/yaml"},
		{"", "config.yaml", "text/yaml"},
		{"", "BALANCE.CSV", "text/csv"},
		// Unknown extensions stay generic.
		{"", "archive.zip", "application/octet-stream"},
		{"application/octet-stream", "noextension", "application/octet-stream"},
		// A concrete declared type wins over the extension.
		{"image/png", "diagram.csv", "image/png"},
	}
	for _, tc := range cases {
		if got := ResolveMediaType(tc.mediaType, tc.name); got != tc.want {
			t.Errorf("ResolveMediaType(%q, %q) = %q, want %q", tc.mediaType, tc.name, got, tc.want)
		}
	}
}

func TestResolvedTypesClassify(t *testing.T) {
	// Every entry of the extension table must classify per the textual rule
	// once resolved.
	textual := map[string]bool{
		"text/csv":                  true,
		"text/markdown":             true,
		"application/json":          true,
		"text/plain":                true,
		"text/tab-separated-values": true,
		"text/xml":                  true,
		"text/yaml":                 true,
		"application/pdf":           false,
	}
	for ext, mediaType := range mediaTypeByExt {
		want := Binary
		if textual[mediaType] {
			want = Textual
		}
		if got := Classify(ResolveMediaType("", "file."+ext)); got != want {
			t.Errorf("ext %q resolved to %q classifies %v, want %v", ext, mediaType, got, want)
		}
	}
}

func TestStripDataURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"data:text/csv;base64,YSxi", "YSxi"},
		{"data:image/png;base64,AAAA", "AAAA"},
		{"YSxi", "YSxi"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StripDataURL(tc.in); got != tc.want {
			t.Errorf("StripDataURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
