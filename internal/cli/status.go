package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
)

// ShowStatus prints a stored session, or lists stored sessions when id is empty.
func ShowStatus(ctx context.Context, w io.Writer, s config.Settings, id string, plain bool) error {
	persistence, err := OpenPersistence(ctx, s, logging.NewNop())
	if err != nil {
		return err
	}
	defer persistence.Close()

	if id == "" {
		ids, err := persistence.Store.List(ctx)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(ids) == 0 {
			printSystemMessage(w, "No stored sessions.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(w, id)
		}
		return nil
	}

	p, err := persistence.Store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load session %s: %w", id, err)
	}
	md := tui.ProgressMarkdown(*p)
	if plain {
		fmt.Fprint(w, md)
		return nil
	}
	out, err := tui.NewRenderer()(md)
	if err != nil {
		out = md
	}
	fmt.Fprint(w, out)
	return nil
}

// ResetSession clears the stored progress of id.
func ResetSession(ctx context.Context, s config.Settings, id string) error {
	persistence, err := OpenPersistence(ctx, s, logging.NewNop())
	if err != nil {
		return err
	}
	defer persistence.Close()
	return persistence.Store.Delete(ctx, id)
}
