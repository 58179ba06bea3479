package updater

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moffa90/go-swupdate/protocol"
)

// inFlight serializes sessions across every Updater in the process. The
// engine's callbacks carry no context, so only one session can be bound.
var inFlight sync.Mutex

// Updater applies update images through an Engine, one blocking session at
// a time.
//
// Updater is safe for concurrent use; concurrent sessions are rejected with
// ErrSessionInFlight rather than queued.
type Updater struct {
	engine Engine
	config Config
}

// New creates a new Updater driving engine.
//
// Example:
//
//	u := updater.New(libswupdate.New(),
//	    updater.WithLogger(logger),
//	    updater.WithSoftwareSet("stable", "copy2"),
//	)
func New(engine Engine, opts ...Option) *Updater {
	if engine == nil {
		panic("engine cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Updater{
		engine: engine,
		config: cfg,
	}
}

// Apply streams the image at path to the engine and blocks until the engine
// signals completion:
//  1. Open the image (fail fast, the engine is not contacted on error)
//  2. Build the request: engine defaults first, then source, run type and metadata
//  3. Start the session and wait for the completion callback
//  4. Close the image
//
// onStatus is called once per status message, in order, before Apply
// returns. It may be nil, in which case lines are dropped and logged.
// The context is only checked before the session starts; a running session
// cannot be cancelled.
//
// The engine's final state does not make Apply fail; use Run to inspect it.
//
// Example:
//
//	err := u.Apply(ctx, "/tmp/update.swu", true, func(line string) {
//	    log.Println(line)
//	})
func (u *Updater) Apply(ctx context.Context, path string, dryRun bool, onStatus StatusFunc) error {
	_, err := u.Run(ctx, path, dryRun, onStatus)
	return err
}

// Run is Apply returning a Report of the finished session.
func (u *Updater) Run(ctx context.Context, path string, dryRun bool, onStatus StatusFunc) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("apply %s: %w", path, err)
	}

	if !inFlight.TryLock() {
		return nil, ErrSessionInFlight
	}
	defer inFlight.Unlock()

	id := uuid.New()
	log := u.config.Logger.With(
		zap.String("session_id", id.String()),
		zap.String("path", path),
		zap.Bool("dry_run", dryRun),
	)

	src, err := u.config.Opener(path)
	if err != nil {
		log.Error("cannot open image", zap.Error(err))
		return nil, &SourceOpenError{Path: path, Err: err}
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn("closing image failed", zap.Error(err))
		}
	}()

	var req protocol.Request
	if err := u.buildRequest(&req, dryRun); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	s := newSession(id, src, onStatus, u.config.Events, log)

	log.Info("starting update session", zap.Stringer("run_type", req.DryRun))
	started := time.Now()

	s.mu.Lock()
	rc := u.engine.Start(&req, protocol.RequestSize, s)
	if rc < 0 {
		s.mu.Unlock()
		log.Error("engine refused to start", zap.Int("code", rc))
		return nil, &StartError{Code: rc}
	}
	result := s.wait()
	s.mu.Unlock()

	report := &Report{
		SessionID:   id,
		Path:        path,
		DryRun:      dryRun,
		BytesSent:   s.bytes.Load(),
		Chunks:      s.chunks.Load(),
		StatusLines: s.lines.Load(),
		Result:      result,
		ReadErr:     src.Err(),
		Elapsed:     time.Since(started),
	}

	log.Info("update session finished",
		zap.Stringer("result", result),
		zap.Int64("bytes_sent", report.BytesSent),
		zap.Int64("status_lines", report.StatusLines),
		zap.Duration("elapsed", report.Elapsed),
	)

	return report, nil
}

// buildRequest applies the engine defaults, then this session's fields.
// Preparing afterwards would reset them.
func (u *Updater) buildRequest(req *protocol.Request, dryRun bool) error {
	u.engine.PrepareRequest(req)

	req.Source = protocol.SourceLocal
	if dryRun {
		req.DryRun = protocol.RunDryRun
	} else {
		req.DryRun = protocol.RunDefault
	}
	req.DisableStoreSWU = u.config.DisableStore

	if err := req.SetInfo(u.config.Info); err != nil {
		return err
	}
	if err := req.SetSoftwareSet(u.config.SoftwareSet); err != nil {
		return err
	}
	return req.SetRunningMode(u.config.RunningMode)
}
