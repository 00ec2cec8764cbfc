package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/adapters/console"
	httpadapter "github.com/aretw0/wayfinder/pkg/adapters/http"
	"github.com/aretw0/wayfinder/pkg/automaton"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/aretw0/wayfinder/pkg/persistence/middleware"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// RunOptions contains the I/O and lifecycle switches of the run command.
type RunOptions struct {
	Settings config.Settings
	// Fresh deletes stored progress before starting; Resume continues it.
	Fresh  bool
	Resume bool
	Quiet  bool
	// JSON reads events and writes lifecycle records as JSON lines on
	// Stdin/Stdout. Robot narration goes to Stderr.
	JSON bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunSession plans the route and guides the user until quit or interruption.
func RunSession(opts RunOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	err := runSession(sigCtx, opts)
	return handleExecutionError(err)
}

func runSession(sigCtx *SignalContext, opts RunOptions) error {
	s := opts.Settings
	stdin, stdout := opts.Stdin, opts.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if isTerminal(stdin) {
		stdout = crlfWriter{w: stdout}
	}
	robotOut := stdout
	var jsonl *console.JSONLines
	if opts.JSON {
		opts.Quiet = true
		robotOut = opts.Stderr
		if robotOut == nil {
			robotOut = os.Stderr
		}
	}

	logger, err := createLogger(s)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		tui.PrintBanner(stdout)
	}

	site, err := LoadSite(sigCtx, s)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	plan, err := wayfinder.PlanRoute(site, s.Origin, s.Destination, routing.Level(s.Level))
	metrics.RecordRoute(err, plan.Route.Cost, plan.Route.Len())
	if err != nil {
		return err
	}
	if !opts.Quiet {
		render := tui.NewRenderer()
		out, rerr := render(tui.RouteMarkdown(plan.Route, plan.Waypoints, plan.Level))
		if rerr != nil {
			out = tui.RouteMarkdown(plan.Route, plan.Waypoints, plan.Level)
		}
		fmt.Fprint(stdout, out)
	}

	table, err := LoadLanguage(sigCtx, s, logger)
	if err != nil {
		return err
	}

	persistence, err := OpenPersistence(sigCtx, s, logger)
	if err != nil {
		return err
	}
	defer persistence.Close()
	store := middleware.Chain(persistence.Store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewMetricsMiddleware(metrics.Registry()),
	)

	if opts.Fresh {
		if err := store.Delete(sigCtx, s.SessionID); err != nil {
			logger.Warn("failed to reset session", "session_id", s.SessionID, "error", err)
		}
	}

	start := plan.Waypoints[0]
	if opts.Resume {
		start = resumePosition(sigCtx, store, s.SessionID, plan)
	}
	robot := console.NewRobot(robotOut, table,
		console.WithSpeed(s.MoveSpeed),
		console.WithStart(start),
	)

	streams := httpadapter.NewStreamManager()
	guideOpts := []wayfinder.Option{
		wayfinder.WithSessionID(s.SessionID),
		wayfinder.WithLogger(logger),
		wayfinder.WithLifecycleHooks(observability.LoggingHooks(logger)),
		wayfinder.WithLifecycleHooks(metrics.Hooks()),
		wayfinder.WithLifecycleHooks(streams.Hooks()),
		wayfinder.WithStore(store),
		wayfinder.WithLocker(persistence.Locker, 0),
		wayfinder.WithResume(opts.Resume),
		wayfinder.WithWait(s.Wait),
		wayfinder.WithMaxRetries(s.MaxNavigationRetries),
		wayfinder.WithRetryDelay(s.RetryDelay),
	}
	if opts.JSON {
		jsonl = console.NewJSONLines(stdin, stdout, logger)
		guideOpts = append(guideOpts, wayfinder.WithLifecycleHooks(jsonl.Hooks()))
	}
	if s.SimulateResponses {
		guideOpts = append(guideOpts, wayfinder.WithResponder(console.NewRandomResponder(uint64(time.Now().UnixNano()))))
	}

	guide, err := wayfinder.New(plan, robot, guideOpts...)
	if err != nil {
		return err
	}

	if s.MetricsAddr != "" {
		srv := httpadapter.NewServer(guide,
			httpadapter.WithLogger(logger),
			httpadapter.WithMetrics(metrics.Registry()),
			httpadapter.WithVersion(wayfinder.Version),
		)
		srv.Streams = streams
		go func() {
			if err := srv.ListenAndServe(sigCtx, s.MetricsAddr); err != nil {
				logger.Error("operator server stopped", "error", err)
			}
		}()
	}

	if err := guide.Start(sigCtx); err != nil {
		return fmt.Errorf("failed to start guide: %w", err)
	}
	if !opts.Quiet {
		printSystemMessage(stdout, "Session '%s' active. Keys: [t]ouch [r]elease [y]es [n]o [q]uit", guide.SessionID())
	}

	var source ports.EventSource = console.NewKeyboard(stdin, logger)
	if jsonl != nil {
		source = jsonl
	}
	keys, err := source.Events(sigCtx)
	if err != nil {
		guide.Stop()
		return err
	}

	runErr := pump(sigCtx, guide, keys)
	guide.Stop()

	p := guide.Snapshot(context.WithoutCancel(sigCtx))
	if jsonl != nil {
		jsonl.Write("finished", p)
	}
	if !opts.Quiet {
		logCompletion(stdout, p, sigCtx.Signal())
	}
	return runErr
}

// resumePosition is where a resumed walk stands: the stored position when the
// guide will resume it, the route origin otherwise.
func resumePosition(ctx context.Context, store ports.ProgressStore, sessionID string, plan wayfinder.Plan) domain.Coordinates {
	p, err := store.Load(ctx, sessionID)
	if err != nil || p.Arrived || p.Failed || !slices.Equal(p.Route, plan.Route.Nodes) {
		return plan.Waypoints[0]
	}
	return p.Position
}

// pump forwards keyboard events until the guide is done, the keyboard closes
// or ctx is cancelled.
func pump(ctx context.Context, guide *wayfinder.Guide, keys <-chan domain.Event) error {
	for {
		select {
		case <-guide.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-keys:
			if !ok {
				return context.Canceled
			}
			if err := guide.Dispatch(ctx, ev); err != nil && !errors.Is(err, automaton.ErrStopped) {
				return err
			}
		}
	}
}
