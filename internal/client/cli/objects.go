package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

func (a *App) Put(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errUsage
	}

	localPath := args[0]
	name := filepath.Base(localPath)
	if len(args) == 2 {
		name = args[1]
	}

	abs, err := filepath.Abs(localPath)
	if err != nil {
		return err
	}
	if err := a.objectService.QueueUpload(ctx, name, abs); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Queued upload of %s as %q.\n", localPath, name)
	return nil
}

func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errUsage
	}

	dest := ""
	if len(args) == 2 {
		abs, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}
		dest = abs
	}
	if err := a.objectService.QueueDownload(ctx, args[0], dest); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Queued download of %q.\n", args[0])
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.objectService.Remove(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Removed %q.\n", args[0])
	return nil
}

// List prints the objects stored on the server.
func (a *App) List(ctx context.Context) error {
	objects, err := a.objectService.List(ctx)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		fmt.Fprintln(a.out, "No objects.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tVERSION\tUPDATED")
	for _, o := range objects {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", o.Name, humanize.IBytes(uint64(o.Size)), o.Version, humanize.RelTime(o.UpdatedAt, a.now(), "ago", "from now"))
	}
	return tw.Flush()
}

// Queue prints the pending transfers.
func (a *App) Queue(ctx context.Context) error {
	ops, err := a.objectService.Pending(ctx)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Fprintln(a.out, "Nothing queued.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DIRECTION\tNAME\tATTEMPTS\tLAST ERROR")
	for _, op := range ops {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", op.Direction, op.Name, op.Attempts, op.LastError)
	}
	return tw.Flush()
}
