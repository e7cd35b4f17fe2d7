package cmd

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/frameui/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Report the first contract fault in each scene",
		Long: `Run scene scripts without printing frames and report the first
contract fault in each, such as focus on a non-focusable element. Scenes run concurrently, each against
its own engine; results print in argument order.

Exits non-zero when any scene has a fault.`,
		Usage: "frameui check <scene.yaml>...",
		Run:   runCheck,
	})
}

// checkResult is the outcome of running one scene.
type checkResult struct {
	path   string
	frames int
	err    error
}

func runCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("check requires at least one scene file")
	}

	sessions := make([]*session, len(args))
	for i, path := range args {
		sess, err := openScene(path)
		if err != nil {
			return err
		}
		sessions[i] = sess
	}
	// The summary below covers each fault; don't print them twice.
	errors.SetHandler(errors.DiscardHandler{})
	defer errors.SetHandler(nil)

	results := make([]checkResult, len(args))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sess := range sessions {
		i, sess := i, sess
		g.Go(func() error {
			results[i] = checkResult{
				path:   args[i],
				frames: sess.scene.FrameCount(),
				err:    sess.runner.Run(sess.scene, nil),
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, res := range results {
		if res.err == nil {
			fmt.Fprintf(stdout, "ok   %s (%d frames)\n", res.path, res.frames)
			continue
		}
		failed++
		fmt.Fprintf(stdout, "FAIL %s\n", res.path)
		fmt.Fprintf(stdout, "  %s\n", res.err)
		if fe, ok := errors.AsFrameError(res.err); ok {
			fmt.Fprintf(stdout, "  kind: %s\n", fe.Kind)
			if fe.Key != "" {
				fmt.Fprintf(stdout, "  key:  %s\n", fe.Key)
			}
			if sessions[i].cfg.VerboseErrors && fe.StackTrace != "" {
				fmt.Fprintf(stdout, "  stack:\n%s", fe.StackTrace)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenes failed", failed, len(results))
	}
	return nil
}
