package tts

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecPlayer plays audio through an installed system player binary. It prefers
// ffplay (reads both formats from stdin), then aplay for raw PCM and afplay
// for mp3.
type ExecPlayer struct{}

func (ExecPlayer) Play(ctx context.Context, audio io.Reader, format string) error {
	if p, err := exec.LookPath("ffplay"); err == nil {
		args := []string{"-loglevel", "quiet", "-autoexit", "-nodisp"}
		if format == FormatPCM48K {
			args = append(args, "-f", "s16le", "-ar", "48000", "-ac", "1")
		}
		args = append(args, "-i", "-")
		cmd := exec.CommandContext(ctx, p, args...)
		cmd.Stdin = audio
		return cmd.Run()
	}
	if format == FormatPCM48K {
		if p, err := exec.LookPath("aplay"); err == nil {
			cmd := exec.CommandContext(ctx, p, "-q", "-f", "S16_LE", "-r", "48000", "-c", "1")
			cmd.Stdin = audio
			return cmd.Run()
		}
		return ErrNoPlayer
	}
	if p, err := exec.LookPath("afplay"); err == nil {
		// afplay cannot read stdin; spool to a temp file first.
		f, err := os.CreateTemp("", "tts-*.mp3")
		if err != nil {
			return err
		}
		path := f.Name()
		defer os.Remove(path)
		if _, err := io.Copy(f, audio); err != nil {
			f.Close()
			return err
		}
		f.Close()
		return exec.CommandContext(ctx, p, path).Run()
	}
	return ErrNoPlayer
}
