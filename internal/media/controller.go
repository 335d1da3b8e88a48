package media

import (
	"context"
	"log/slog"
	"os/exec"
	"time"

	"github.com/pharloom/echoes/internal/domain"
)

// playRetrySchedule is the bounded retry policy for play commands: one
// immediate attempt, then two delayed ones. A play request that fails all
// three stays failed until the next explicit command; nothing waits on it.
var playRetrySchedule = []time.Duration{0, 200 * time.Millisecond, 600 * time.Millisecond}

// ChimeRunner plays a one-shot notification sound.
type ChimeRunner interface {
	Play(ctx context.Context, path string) error
}

// ExecChimeRunner shells out to mpv for each chime.
type ExecChimeRunner struct {
	Binary string
}

func (r *ExecChimeRunner) Play(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, r.Binary, "--no-terminal", "--no-video", path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Controller owns the single audio and single video resource. No other
// component touches them directly.
type Controller struct {
	audio  *Player
	video  *Player
	chimes ChimeRunner
	logger *slog.Logger

	// sleep is replaced in tests so retry and fade timing is deterministic.
	sleep func(time.Duration)
}

// NewController builds a controller over mpv-backed players. onState
// receives every audio/video state change.
func NewController(mpvBinary string, logger *slog.Logger, onState func(string, State)) *Controller {
	audio := NewPlayer("audio", NewMpvBackend(mpvBinary, "audio", "--no-video", "--loop=inf"), logger, onState)
	video := NewPlayer("video", NewMpvBackend(mpvBinary, "video", "--no-audio", "--loop=inf", "--force-window=yes"), logger, onState)
	return NewControllerWith(audio, video, &ExecChimeRunner{Binary: mpvBinary}, logger)
}

// NewControllerWith wires a controller from existing parts.
func NewControllerWith(audio, video *Player, chimes ChimeRunner, logger *slog.Logger) *Controller {
	return &Controller{
		audio:  audio,
		video:  video,
		chimes: chimes,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// Start launches both playback backends. A backend that fails to start
// leaves its player in an errored state; the controller stays usable.
func (c *Controller) Start(ctx context.Context) {
	if err := c.audio.Start(ctx); err != nil {
		c.logger.Warn("audio backend unavailable", "error", err)
	}
	if err := c.video.Start(ctx); err != nil {
		c.logger.Warn("video backend unavailable", "error", err)
	}
}

// Audio returns the audio player's state.
func (c *Controller) Audio() State { return c.audio.State() }

// Video returns the video player's state.
func (c *Controller) Video() State { return c.video.State() }

// LoadArea loads both media for the area, paused and rewound.
func (c *Controller) LoadArea(area domain.Area) {
	if err := c.audio.Load(area.AudioPath); err != nil {
		c.logger.Warn("audio load failed", "area", area.ID, "error", err)
	}
	if err := c.video.Load(area.VideoPath); err != nil {
		c.logger.Warn("video load failed", "area", area.ID, "error", err)
	}
}

// Play starts both media, retrying each per the bounded schedule in the
// background. Failures downgrade to player error state.
func (c *Controller) Play() {
	go c.playWithRetry(c.audio)
	go c.playWithRetry(c.video)
}

func (c *Controller) playWithRetry(p *Player) {
	var last error
	for _, wait := range playRetrySchedule {
		if wait > 0 {
			c.sleep(wait)
		}
		if last = p.Play(); last == nil {
			return
		}
	}
	c.logger.Warn("play failed after retries", "medium", p.medium, "error", last)
}

// Pause stops both media.
func (c *Controller) Pause() {
	if err := c.audio.Pause(); err != nil {
		c.logger.Warn("audio pause failed", "error", err)
	}
	if err := c.video.Pause(); err != nil {
		c.logger.Warn("video pause failed", "error", err)
	}
}

// Reset rewinds both media to the start, paused.
func (c *Controller) Reset() {
	if err := c.audio.Reset(); err != nil {
		c.logger.Warn("audio reset failed", "error", err)
	}
	if err := c.video.Reset(); err != nil {
		c.logger.Warn("video reset failed", "error", err)
	}
}

// SetVolume sets the audio volume (video players run muted).
func (c *Controller) SetVolume(v float64) {
	if err := c.audio.SetVolume(v); err != nil {
		c.logger.Warn("volume change failed", "error", err)
	}
}

// Volume returns the current audio volume.
func (c *Controller) Volume() float64 { return c.audio.Volume() }

// LoadAndPlayArea composes load and play: both media load and then start
// with the retry schedule. Used when a break ends or a session starts on a
// freshly selected area.
func (c *Controller) LoadAndPlayArea(area domain.Area) {
	c.LoadArea(area)
	c.Play()
}

const (
	crossfadeSteps   = 8
	minFadeHalf      = 150 * time.Millisecond
	defaultCrossfade = 800 * time.Millisecond
)

// CrossfadeTo fades the audio out, switches both media to the new area, and
// fades the audio back in. Used on segment switches with no intervening
// break. Runs in the background; a play failure mid-fade surfaces as player
// error state like any other.
func (c *Controller) CrossfadeTo(area domain.Area, total time.Duration) {
	if total <= 0 {
		total = defaultCrossfade
	}
	go func() {
		startVol := c.audio.Volume()
		fadeOut := total / 2
		if fadeOut < minFadeHalf {
			fadeOut = minFadeHalf
		}
		fadeIn := total - fadeOut
		if fadeIn < minFadeHalf {
			fadeIn = minFadeHalf
		}

		c.fadeVolume(startVol, 0, fadeOut)
		c.LoadArea(area)
		c.playWithRetry(c.audio)
		c.playWithRetry(c.video)
		c.fadeVolume(0, startVol, fadeIn)
	}()
}

func (c *Controller) fadeVolume(from, to float64, d time.Duration) {
	step := d / crossfadeSteps
	for i := 1; i <= crossfadeSteps; i++ {
		v := from + (to-from)*float64(i)/crossfadeSteps
		if err := c.audio.SetVolume(v); err != nil {
			return
		}
		c.sleep(step)
	}
}

// Chime plays a one-shot notification sound. Best effort.
func (c *Controller) Chime(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := c.chimes.Play(ctx, path); err != nil {
		c.logger.Warn("chime failed", "path", path, "error", err)
	}
}

// Stop shuts both backends down.
func (c *Controller) Stop() {
	_ = c.audio.Stop()
	_ = c.video.Stop()
}
