package mpvipc

import (
	"context"
	"encoding/json"
)

// Track is one entry of mpv's track-list property, reduced to the
// fields the downmix engine cares about.
type Track struct {
	ID            int64  `json:"id"`
	Type          string `json:"type"`
	Selected      bool   `json:"selected"`
	Title         string `json:"title"`
	Codec         string `json:"codec"`
	DemuxChannels string `json:"demux-channels"`
	DemuxBitrate  int64  `json:"demux-bitrate"`
}

// AudioParams mirrors mpv's audio-params property, the format
// negotiated by the audio chain.
type AudioParams struct {
	SampleRate   int64  `json:"samplerate"`
	ChannelCount int64  `json:"channel-count"`
	Channels     string `json:"channels"`
	HrChannels   string `json:"hr-channels"`
	Format       string `json:"format"`
}

// TrackList reads the track-list property.
func (c *Client) TrackList(ctx context.Context) ([]Track, error) {
	var tracks []Track
	if err := c.GetProperty(ctx, "track-list", &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// SelectedAudioTrack returns the selected audio track, if any.
func (c *Client) SelectedAudioTrack(ctx context.Context) (Track, bool, error) {
	tracks, err := c.TrackList(ctx)
	if err != nil {
		return Track{}, false, err
	}
	for _, t := range tracks {
		if t.Type == "audio" && t.Selected {
			return t, true, nil
		}
	}
	return Track{}, false, nil
}

// AudioParams reads the audio-params property.
func (c *Client) AudioParams(ctx context.Context) (AudioParams, error) {
	var p AudioParams
	err := c.GetProperty(ctx, "audio-params", &p)
	return p, err
}

// ObserveAudioTrack watches current-tracks/audio. The callback
// receives the track and ok=true, or ok=false when no audio track is
// active. It runs on the reader goroutine.
func (c *Client) ObserveAudioTrack(ctx context.Context, fn func(t Track, ok bool)) (int64, error) {
	return c.ObserveProperty(ctx, "current-tracks/audio", func(data json.RawMessage) {
		if len(data) == 0 || string(data) == "null" {
			fn(Track{}, false)
			return
		}
		var t Track
		if err := json.Unmarshal(data, &t); err != nil {
			fn(Track{}, false)
			return
		}
		fn(t, true)
	})
}
