package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/frameui/cmd/frameui/internal/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Run a scene and print each frame",
		Long: `Run a scene script frame by frame and print what the engine resolved.

Each frame line shows the hovered and focused keys, the layer order from
bottom to top, and element and hover candidate counts.

Flags:
  --ops          Also print each frame's draw calls
  --trace FILE   Write the frame trace timeline to FILE as YAML
  --serve ADDR   After the last frame, serve the debug inspector on ADDR
                 until interrupted
  --watch        Replay again whenever the scene or config file changes`,
		Usage: "frameui replay [--ops] [--trace FILE] [--serve ADDR | --watch] <scene.yaml>",
		Run:   runReplay,
	})
}

type replayOptions struct {
	ops   bool
	watch bool
	trace string
	serve string
	path  string
}

func parseReplayArgs(args []string) (replayOptions, error) {
	var opts replayOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--ops":
			opts.ops = true
		case arg == "--watch":
			opts.watch = true
		case arg == "--trace" || arg == "--serve":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--trace" {
				opts.trace = args[i+1]
			} else {
				opts.serve = args[i+1]
			}
			i++
		case strings.HasPrefix(arg, "--trace="):
			opts.trace = strings.TrimPrefix(arg, "--trace=")
		case strings.HasPrefix(arg, "--serve="):
			opts.serve = strings.TrimPrefix(arg, "--serve=")
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown flag %s", arg)
		default:
			if opts.path != "" {
				return opts, fmt.Errorf("replay takes one scene file")
			}
			opts.path = arg
		}
	}
	if opts.path == "" {
		return opts, fmt.Errorf("replay requires a scene file")
	}
	if opts.watch && opts.serve != "" {
		return opts, fmt.Errorf("--serve and --watch cannot be combined")
	}
	return opts, nil
}

func runReplay(args []string) error {
	opts, err := parseReplayArgs(args)
	if err != nil {
		return err
	}

	if opts.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watchReplay(ctx, opts)
	}

	sess, err := replayOnce(opts)
	if err != nil {
		return err
	}
	if opts.serve == "" {
		return nil
	}

	srv, err := sess.runner.Engine().StartDebugServer(opts.serve)
	if err != nil {
		return err
	}
	defer srv.Close()
	fmt.Fprintf(stdout, "debug inspector on http://%s (Ctrl+C to stop)\n", srv.Addr())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-ctx.Done()
	return nil
}

// replayOnce loads the scene, prints every frame and writes the trace.
func replayOnce(opts replayOptions) (*session, error) {
	sess, err := openScene(opts.path)
	if err != nil {
		return nil, err
	}
	if opts.serve != "" {
		sess.runner.Engine().EnableInspection()
	}

	if sess.scene.Name != "" {
		fmt.Fprintf(stdout, "scene %s (%d frames)\n", sess.scene.Name, sess.scene.FrameCount())
	}
	p := newPrinter()
	err = sess.runner.Run(sess.scene, func(rep scene.Report) {
		p.report(rep, opts.ops)
	})
	if err != nil {
		return nil, err
	}

	printTraceSummary(sess)
	if opts.trace != "" {
		if err := writeTrace(sess, opts.trace); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func printTraceSummary(sess *session) {
	trace := sess.runner.Engine().Trace()
	if trace == nil {
		return
	}
	tl := trace.Snapshot()
	fmt.Fprintf(stdout, "trace: %d frames, %d over %.3gms", len(tl.Samples), tl.DroppedFrames, tl.ThresholdMs)
	if slowest := trace.Slowest(1); len(slowest) == 1 {
		fmt.Fprintf(stdout, ", slowest frame %d (%.3fms)", slowest[0].Frame, slowest[0].FrameMs)
	}
	fmt.Fprintln(stdout)
}

func writeTrace(sess *session, path string) error {
	trace := sess.runner.Engine().Trace()
	if trace == nil {
		return fmt.Errorf("frame trace is disabled (trace.capacity is 0)")
	}
	data, err := yaml.Marshal(trace.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}
