// Command doggyctl summons, dismisses or checks the doggy of a running
// webdoggy host.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"webdoggy/internal/control"
)

func main() {
	addr := flag.String("addr", "ws://127.0.0.1:7878/ws", "control endpoint of the running host")
	timeout := flag.Duration("timeout", 5*time.Second, "how long to wait for the host")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: doggyctl [flags] summon|dismiss|status\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, os.Stdout, *addr, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "doggyctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, addr, action string) error {
	a, ok := control.Normalize(action)
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}

	c, err := control.Dial(ctx, addr)
	if err != nil {
		return err
	}
	defer c.Close()

	resp, err := c.Do(ctx, string(a))
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s failed: %s", a, resp.Error)
	}

	switch a {
	case control.ActionSummon:
		fmt.Fprintln(out, "🐕 Doggy is here!")
	case control.ActionDismiss:
		fmt.Fprintln(out, "👋 Doggy went home")
	case control.ActionStatus:
		if resp.IsActive() {
			fmt.Fprintln(out, "Ready to play!")
		} else {
			fmt.Fprintln(out, "Doggy is out")
		}
	}
	return nil
}
