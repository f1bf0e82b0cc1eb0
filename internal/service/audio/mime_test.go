package audio

import (
	"strconv"
	"testing"
)

func TestParseMimeParams(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		wantBits int
		wantRate int
	}{
		{"typical gemini output", "audio/L16;rate=24000", 16, 24000},
		{"other depth and rate", "audio/L24;rate=48000", 24, 48000},
		{"rate case insensitive", "audio/L16;RATE=16000", 16, 16000},
		{"spaces around params", "audio/L16; rate=22050", 16, 22050},
		{"missing rate", "audio/L16", 16, 24000},
		{"missing bits", "audio/pcm;rate=8000", 16, 8000},
		{"empty string", "", 16, 24000},
		{"non-numeric rate", "audio/L16;rate=abc", 16, 24000},
		{"empty rate", "audio/L16;rate=", 16, 24000},
		{"non-numeric bits", "audio/Lxx;rate=24000", 16, 24000},
		{"negative rate kept at default", "audio/L16;rate=-1", 16, 24000},
		{"bits not multiple of 8 kept at default", "audio/L7;rate=24000", 16, 24000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMimeParams(tt.mime)
			if got.BitsPerSample != tt.wantBits || got.Rate != tt.wantRate {
				t.Errorf("ParseMimeParams(%q) = {%d %d}, want {%d %d}",
					tt.mime, got.BitsPerSample, got.Rate, tt.wantBits, tt.wantRate)
			}
		})
	}
}

func TestParseMimeParamsRoundTrip(t *testing.T) {
	for _, bits := range []int{8, 16, 24, 32} {
		for _, rate := range []int{8000, 16000, 24000, 44100, 48000} {
			mime := "audio/L" + strconv.Itoa(bits) + ";rate=" + strconv.Itoa(rate)
			got := ParseMimeParams(mime)
			if got.BitsPerSample != bits || got.Rate != rate {
				t.Errorf("round trip %q = {%d %d}", mime, got.BitsPerSample, got.Rate)
			}
		}
	}
}
