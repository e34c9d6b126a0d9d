package importers

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// ImportAudio decodes a .wav, .mp3, or .ogg file to interleaved 16-bit PCM
// and produces an NBRAudio. All three decoders normalize to AudioFormatI16
// so downstream mixing never branches on source format.
func ImportAudio(path string) (*nbr.Audio, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return importWAV(path)
	case ".mp3":
		return importMP3(path)
	case ".ogg":
		return importOGG(path)
	default:
		return nil, fmt.Errorf("%w: audio importer cannot decode %q", core.ErrUnsupportedFeature, path)
	}
}

func importWAV(path string) (*nbr.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %q is not a valid wav file", core.ErrUnsupportedFeature, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: wav decode: %v", core.ErrUnsupportedFeature, err)
	}

	// buf.Data is already scaled to the bit depth reported by dec.BitDepth;
	// non-16-bit source files are rescaled to fit AudioFormatI16's range.
	scale := 1 << (uint(dec.BitDepth) - 1)
	samples := make([]byte, len(buf.Data)*2)
	for i, s := range buf.Data {
		v := int64(s) * (1 << 15) / int64(scale)
		binary.LittleEndian.PutUint16(samples[i*2:], uint16(int16(v)))
	}

	return &nbr.Audio{
		Format:     nbr.AudioFormatI16,
		SampleRate: uint32(buf.Format.SampleRate),
		Channels:   uint8(buf.Format.NumChannels),
		Size:       uint32(len(samples)),
		Samples:    samples,
	}, nil
}

func importMP3(path string) (*nbr.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3 decode: %v", core.ErrUnsupportedFeature, err)
	}

	var samples bytes.Buffer
	if _, err := io.Copy(&samples, dec); err != nil {
		return nil, fmt.Errorf("%w: mp3 pcm read: %v", core.ErrUnsupportedFeature, err)
	}

	// go-mp3 always decodes to signed 16-bit little-endian stereo.
	return &nbr.Audio{
		Format:     nbr.AudioFormatI16,
		SampleRate: uint32(dec.SampleRate()),
		Channels:   2,
		Size:       uint32(samples.Len()),
		Samples:    samples.Bytes(),
	}, nil
}

func importOGG(path string) (*nbr.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}
	defer f.Close()

	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: ogg decode: %v", core.ErrUnsupportedFeature, err)
	}

	floats := make([]float32, 4096)
	var samples []byte
	for {
		n, err := reader.Read(floats)
		for i := 0; i < n; i++ {
			v := floats[i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			i16 := int16(v * 32767)
			samples = append(samples, byte(i16), byte(i16>>8))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: ogg pcm read: %v", core.ErrUnsupportedFeature, err)
		}
	}

	return &nbr.Audio{
		Format:     nbr.AudioFormatI16,
		SampleRate: uint32(reader.SampleRate()),
		Channels:   uint8(reader.Channels()),
		Size:       uint32(len(samples)),
		Samples:    samples,
	}, nil
}
