// Command fpvreplay runs the camera over a recorded frame stream and prints
// the camera commands of every frame as JSON lines.
//
//	fpvreplay [-configs dir] [-shake file] [-seed n] [-quiet] frames.jsonl
//
// Use "-" to read frames from stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dynfpv/extension/internal/bridge"
	"github.com/dynfpv/extension/internal/cache"
	"github.com/dynfpv/extension/internal/camera"
	"github.com/dynfpv/extension/internal/logging"
	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/shake"
	"github.com/dynfpv/extension/internal/storage"
)

func main() {
	configsDir := flag.String("configs", "", "directory of vehicle config YAML files")
	shakeFile := flag.String("shake", "", "shake reaction table YAML file")
	seed := flag.Int64("seed", 1, "shake noise seed")
	quiet := flag.Bool("quiet", false, "print only the summary")
	level := flag.String("log", "warn", "log level")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: fpvreplay [flags] frames.jsonl")
		flag.PrintDefaults()
		os.Exit(2)
	}

	lm := logging.NewSlogManager()
	lm.Setup(nil, *level, nil)
	log := lm.Logger()

	var configs []model.VehicleConfig
	names := cache.NewModelNameCache()
	if *configsDir != "" {
		store, err := storage.NewYAMLStore(*configsDir, log)
		if err != nil {
			log.Error("Failed to open configs", "error", err)
			os.Exit(1)
		}
		configs, err = storage.Load(context.Background(), store, names, log)
		if err != nil {
			log.Error("Failed to load configs", "error", err)
			os.Exit(1)
		}
	}

	table := shake.DefaultTable()
	if *shakeFile != "" {
		t, err := shake.LoadTable(*shakeFile)
		if err != nil {
			log.Error("Failed to load shake table", "error", err)
			os.Exit(1)
		}
		table = t
	}

	b := bridge.New(0)
	script, err := camera.New(camera.Dependencies{
		Host:       b.Host(),
		Compat:     b.Host(),
		Settings:   model.DefaultScriptSettings(),
		Configs:    configs,
		ShakeTable: table,
		ModelNames: names,
		Logger:     log,
		Seed:       *seed,
	})
	if err != nil {
		log.Error("Failed to create camera", "error", err)
		os.Exit(1)
	}

	in := io.Reader(os.Stdin)
	if path := flag.Arg(0); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			log.Error("Failed to open frames", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if *quiet {
		out = io.Discard
	}

	sum, err := Replay(in, out, b, script)
	if err != nil {
		log.Error("Replay failed", "error", err, "line", sum.Lines)
		os.Exit(1)
	}

	st := script.Stats()
	fmt.Fprintf(os.Stderr, "frames=%d active=%d activations=%d cancels=%d commands=%d skipped=%d\n",
		st.Frames, st.ActiveFrames, st.Activations, st.Cancels, sum.Commands, sum.Skipped)
}
