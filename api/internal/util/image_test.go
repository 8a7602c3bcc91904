package util

import (
	"encoding/base64"
	"testing"
)

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	b64 := base64.StdEncoding.EncodeToString(raw)

	b, mime, err := DecodeBase64MaybeDataURL(b64)
	if err != nil || mime != "" || len(b) != len(raw) {
		t.Errorf("plain base64: b=%v mime=%q err=%v", b, mime, err)
	}

	b, mime, err = DecodeBase64MaybeDataURL("data:image/jpeg;base64," + b64)
	if err != nil || mime != "image/jpeg" || len(b) != len(raw) {
		t.Errorf("data URL: mime=%q err=%v", mime, err)
	}

	if _, _, err := DecodeBase64MaybeDataURL("%%not-base64%%"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestPickMIME(t *testing.T) {
	if got := PickMIME("image/png", "image/jpeg", nil); got != "image/png" {
		t.Errorf("explicit wins: %q", got)
	}
	if got := PickMIME("", "image/webp", nil); got != "image/webp" {
		t.Errorf("hint wins: %q", got)
	}
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0, 0, 0, 0, 0}
	if got := PickMIME("", "", jpeg); got != "image/jpeg" {
		t.Errorf("sniffed: %q", got)
	}
}

func TestStripCodeFences(t *testing.T) {
	in := "```json\n{\"species\":\"Pomfret\"}\n```"
	if got := StripCodeFences(in); got != `{"species":"Pomfret"}` {
		t.Errorf("StripCodeFences = %q", got)
	}
}
