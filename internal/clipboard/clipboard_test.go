package clipboard

import "testing"

func TestExtForMIME(t *testing.T) {
	cases := map[string]string{
		"image/png":       ".png",
		"image/jpeg":      ".jpg",
		"image/gif":       ".gif",
		"image/webp":      ".webp",
		"image/bmp":       ".bmp",
		"image/x-unknown": ".png",
	}
	for mime, want := range cases {
		if got := ExtForMIME(mime); got != want {
			t.Errorf("ExtForMIME(%s) = %s, want %s", mime, got, want)
		}
	}
}

func TestMIMEForExtRoundTrip(t *testing.T) {
	for _, mime := range ImageMIMEs {
		if got := MIMEForExt(ExtForMIME(mime)); got != mime {
			t.Errorf("MIMEForExt(ExtForMIME(%s)) = %s", mime, got)
		}
	}
	if got := MIMEForExt(".weird"); got != "image/png" {
		t.Errorf("MIMEForExt(.weird) = %s, want image/png", got)
	}
}

func TestImageMIMEProbeOrder(t *testing.T) {
	// PNG is the most faithful representation and must be probed first.
	if ImageMIMEs[0] != "image/png" {
		t.Errorf("first probed MIME = %s, want image/png", ImageMIMEs[0])
	}
}
