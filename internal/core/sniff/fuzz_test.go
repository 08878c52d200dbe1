package sniff

import "testing"

func FuzzDetect(f *testing.F) {
	f.Add([]byte{0xFF, 0xD8, 0xFF})
	f.Add([]byte("<!doctype"))
	f.Add([]byte("BM"))
	f.Add([]byte("RIFF0000WEBP"))

	f.Fuzz(func(t *testing.T, data []byte) {
		r := Detect(data)
		if r.MIME == "" || r.Ext == "" {
			t.Fatalf("Detect returned empty result %+v", r)
		}
		if KindOf(r.MIME) != r.Kind {
			t.Fatalf("kind mismatch for %q", r.MIME)
		}
	})
}
