// Package player plays focus music during a session, either from a local
// audio file or by opening a web player
package player

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/osutil"
)

// Player starts and stops focus music.
type Player struct {
	// OpenURL opens a web player. Defaults to the system browser.
	OpenURL func(url string) error
	log     *slog.Logger
	stream  beep.StreamSeekCloser
	rate    beep.SampleRate
	mu      sync.Mutex
	playing bool
}

// New returns a Player that logs to log.
func New(log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}

	return &Player{
		OpenURL: osutil.OpenURL,
		log:     log,
	}
}

// Play begins playback of the configured music. It returns once playback
// has started; the audio itself plays in the background until Stop is
// called.
func (p *Player) Play(ctx context.Context, music config.Music) error {
	switch music.Mode {
	case config.MusicOff, "":
		return nil
	case config.MusicNoisli:
		return p.openWebPlayer(ctx, music.URL)
	case config.MusicLocal:
		return p.playLocal(ctx, music)
	}

	return ErrPlaybackUnavailable.Wrap(errors.New("unknown music type " + string(music.Mode)))
}

func (p *Player) openWebPlayer(ctx context.Context, url string) error {
	if url == "" {
		url = config.DefaultNoisliURL
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.OpenURL(url); err != nil {
		return ErrPlaybackUnavailable.Wrap(err)
	}

	p.log.InfoContext(ctx, "opened web player", slog.String("url", url))

	return nil
}

func (p *Player) playLocal(ctx context.Context, music config.Music) error {
	stream, format, err := decode(music.LocalPath)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// the session may have ended while the file was being decoded
	if err := ctx.Err(); err != nil {
		_ = stream.Close()
		return err
	}

	if err := p.stopLocked(); err != nil {
		p.log.Warn("unable to stop previous track", slog.Any("error", err))
	}

	if err := p.initSpeaker(format.SampleRate); err != nil {
		_ = stream.Close()
		return err
	}

	var s beep.Streamer = stream
	if music.Loop {
		s = beep.Loop(-1, stream)
	}

	if format.SampleRate != p.rate {
		s = beep.Resample(4, format.SampleRate, p.rate, s)
	}

	p.stream = stream
	p.playing = true

	speaker.Play(s)

	p.log.InfoContext(ctx, "playing focus music", slog.String("path", music.LocalPath))

	return nil
}

// initSpeaker initialises the speaker once; later streams are resampled to
// the first sample rate.
func (p *Player) initSpeaker(rate beep.SampleRate) error {
	if p.rate != 0 {
		return nil
	}

	bufferSize := 10

	err := speaker.Init(rate, rate.N(time.Duration(int(time.Second)/bufferSize)))
	if err != nil {
		return ErrPlaybackUnavailable.Wrap(err)
	}

	p.rate = rate

	return nil
}

// Stop ends local playback. It is a no-op when nothing is playing. A web
// player opened in the browser is left to the user.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stopLocked()
}

func (p *Player) stopLocked() error {
	if !p.playing {
		return nil
	}

	speaker.Clear()

	p.playing = false

	err := p.stream.Close()
	p.stream = nil

	return err
}

// decode opens the audio file at path and returns a seekable stream.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, format, ErrFileNotFound.Fmt(path)
		}

		return nil, format, ErrPlaybackUnavailable.Wrap(err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, format, errInvalidSoundFormat.Fmt(path)
	}

	if err != nil {
		_ = f.Close()
		return nil, format, ErrPlaybackUnavailable.Wrap(err)
	}

	return stream, format, nil
}
