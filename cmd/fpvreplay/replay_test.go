package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dynfpv/extension/internal/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTicker activates on the first tick and queues one call per tick.
type countingTicker struct {
	h     *bridge.Host
	ticks int
}

func (c *countingTicker) Tick() {
	c.ticks++
	if c.ticks == 1 {
		c.h.CreateCamera()
	}
	c.h.SetFOV(1, c.h.FrameTime()*1000)
}

func (c *countingTicker) Active() bool { return c.ticks > 0 }

func TestReplay(t *testing.T) {
	frames := strings.Join([]string{
		`# recorded on the highway`,
		`{"dt": 0.016, "player": {"ped": 1}}`,
		``,
		`{"dt": 0.033, "player": {"ped": 1}}`,
	}, "\n")

	b := bridge.New(0)
	tk := &countingTicker{h: b.Host()}
	var out bytes.Buffer

	sum, err := Replay(strings.NewReader(frames), &out, b, tk)
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 4, Frames: 2, Skipped: 2, Commands: 3}, sum)
	assert.Equal(t, 2, tk.ticks)

	var replies []bridge.Response
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r bridge.Response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		replies = append(replies, r)
	}
	require.Len(t, replies, 2)
	assert.Len(t, replies[0].Commands, 2)
	assert.Equal(t, bridge.OpCreateCamera, replies[0].Commands[0].Op)
	assert.InDelta(t, 33, replies[1].Commands[0].Value, 0.01)
}

func TestReplay_BadFrame(t *testing.T) {
	b := bridge.New(0)
	tk := &countingTicker{h: b.Host()}

	sum, err := Replay(strings.NewReader("{\"player\":{}}\nnot json\n"), &bytes.Buffer{}, b, tk)
	require.Error(t, err)
	assert.ErrorIs(t, err, bridge.ErrBadFrame)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1, sum.Frames)
}
