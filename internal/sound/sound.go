//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const soundDir = "assets/sounds"

// cueNames 客户端用到的全部音效，按名字在 assets/sounds 下
// 找同名的 .wav 或 .mp3 文件
var cueNames = []string{
	"login",   // 连接成功
	"join",    // 有玩家加入房间
	"deal",    // 发牌
	"draw",    // 摸牌
	"meld",    // 放牌 / 接牌
	"discard", // 弃牌
	"turn",    // 轮到自己
	"win",     // 赢下本轮 / 夺冠
	"lose",    // 落败
}

type SoundManager struct {
	buffers map[string]*beep.Buffer
	enabled bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		buffers: make(map[string]*beep.Buffer),
	}
}

// Init initializes the speaker and preloads every known cue.
// Missing files are fine, those cues just stay silent.
func (sm *SoundManager) Init() error {
	sampleRate := beep.SampleRate(44100)
	// Smaller speaker buffer keeps cue latency low
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.enabled = true

	for _, name := range cueNames {
		if buf, err := loadCue(name, sampleRate); err == nil {
			sm.buffers[name] = buf
		}
	}
	return nil
}

// loadCue decodes one cue file, preferring wav over mp3
func loadCue(name string, sampleRate beep.SampleRate) (*beep.Buffer, error) {
	for _, ext := range []string{".wav", ".mp3"} {
		path := filepath.Join(soundDir, name+ext)
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			continue
		}

		var streamer beep.StreamSeekCloser
		var format beep.Format
		switch ext {
		case ".wav":
			streamer, format, err = wav.Decode(f)
		case ".mp3":
			streamer, format, err = mp3.Decode(f)
		}
		if err != nil {
			_ = f.Close()
			continue
		}

		var resampled beep.Streamer = streamer
		if format.SampleRate != sampleRate {
			resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
		}

		buffer := beep.NewBuffer(beep.Format{
			SampleRate:  sampleRate,
			NumChannels: 2,
			Precision:   4,
		})
		buffer.Append(resampled)

		_ = streamer.Close()
		_ = f.Close()
		return buffer, nil
	}
	return nil, fmt.Errorf("no sound file for cue %q", name)
}

// Play plays a preloaded cue, silently ignoring unknown names
func (sm *SoundManager) Play(name string) {
	if !sm.enabled {
		return
	}
	buffer, ok := sm.buffers[name]
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.enabled = false
}
