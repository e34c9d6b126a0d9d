package main

import "testing"

func TestInferKind(t *testing.T) {
	cases := map[string]string{
		"model.gltf": "model",
		"model.glb":  "model",
		"font.ttf":   "ttf",
		"font.otf":   "ttf",
		"font.fnt":   "bmfont",
		"sound.wav":  "audio",
		"sound.mp3":  "audio",
		"sound.ogg":  "audio",
		"image.png":  "texture",
		"image.jpg":  "texture",
	}
	for path, want := range cases {
		if got := inferKind(path); got != want {
			t.Errorf("inferKind(%q) = %q, want %q", path, got, want)
		}
	}
}
