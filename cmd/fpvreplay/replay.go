package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dynfpv/extension/internal/bridge"
)

const maxFrameLine = 1 << 20

// Summary counts what Replay processed.
type Summary struct {
	Lines    int
	Frames   int
	Skipped  int
	Commands int
}

// Replay steps t once per frame line of r and writes each response to w as
// one JSON line. Blank lines and lines starting with # are skipped.
func Replay(r io.Reader, w io.Writer, b *bridge.Bridge, t bridge.Ticker) (Summary, error) {
	var sum Summary
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxFrameLine)
	enc := json.NewEncoder(w)

	for sc.Scan() {
		sum.Lines++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			sum.Skipped++
			continue
		}
		frame, err := bridge.ParseFrame(string(line))
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", sum.Lines, err)
		}
		resp := b.Step(frame, t)
		sum.Frames++
		sum.Commands += len(resp.Commands)
		if err := enc.Encode(resp); err != nil {
			return sum, fmt.Errorf("write line %d: %w", sum.Lines, err)
		}
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("read frames: %w", err)
	}
	return sum, nil
}
