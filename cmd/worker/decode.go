package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"

	audioimpl "github.com/foxseedlab/mojiokoshin-worker/external/audio"
	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
	"github.com/spf13/cobra"
)

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <input> <output.raw>",
		Short: "Decode a media file to raw 16 kHz mono float32",
		Long: `Decode a media file with the same pipeline the transcriber uses and
write the samples as little-endian float32.

Play the result with:
  ffplay -f f32le -ar 16000 -ch_layout mono output.raw`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decodeFile(audioimpl.NewDecoder(), args[0], args[1])
		},
	}
}

func decodeFile(decoder audio.Decoder, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	samples, err := decoder.DecodePCM(data)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	slog.Info("decoded media", "input", inPath, "output", outPath, "samples", len(samples),
		"seconds", float64(len(samples))/audio.SampleRate)
	return nil
}
