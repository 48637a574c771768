package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Encode writes the transcript to the provided writer in TOML format.
func Encode(w io.Writer, transcript *Transcript) error {
	if transcript == nil {
		return fmt.Errorf("history: transcript is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(transcript)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(transcript *Transcript) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, transcript); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Decode parses a TOML transcript.
func Decode(data []byte) (*Transcript, error) {
	var transcript Transcript
	if err := toml.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &transcript, nil
}
