// Command cabinet is a line-oriented shell over the medicine cabinet: each
// stdin line is handled as a chat message from one user in one group and the
// reply is written to stdout.
//
// Besides free-form messages ("+Napa 10", "took napa", "?all") it accepts
// /stats, /alerts, /history <name> and /delete <name>.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/medicabinet-backend/internal/app"
	"github.com/heartmarshall/medicabinet-backend/internal/config"
	"github.com/heartmarshall/medicabinet-backend/internal/domain"
	"github.com/heartmarshall/medicabinet-backend/internal/service/cabinet"
	"github.com/heartmarshall/medicabinet-backend/pkg/ctxutil"
)

func main() {
	groupFlag := flag.Int64("group", -1, "chat group id")
	userIDFlag := flag.Int64("user-id", 1, "chat user id")
	userNameFlag := flag.String("user-name", "cli", "chat user display name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("init", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	sh := &shell{
		log:     logger,
		svc:     a.Cabinet,
		groupID: *groupFlag,
		actor:   domain.Actor{ID: *userIDFlag, Name: *userNameFlag},
		out:     os.Stdout,
	}
	if err := sh.run(ctx, os.Stdin); err != nil {
		logger.Error("read input", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}
}

type shell struct {
	log     *slog.Logger
	svc     *cabinet.Service
	groupID int64
	actor   domain.Actor
	out     io.Writer
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		reqCtx := ctxutil.WithNewRequestID(ctx)
		reqCtx = ctxutil.WithUserID(reqCtx, s.actor.ID)

		fmt.Fprintln(s.out, s.handle(reqCtx, line))
	}
	return sc.Err()
}

func (s *shell) handle(ctx context.Context, line string) string {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/stats":
		stats, err := s.svc.Stats(ctx, s.groupID)
		if err != nil {
			return presentError(ctx, s.log, err)
		}
		return renderStats(stats)
	case "/alerts":
		res, err := s.svc.Alerts(ctx, s.groupID)
		if err != nil {
			return presentError(ctx, s.log, err)
		}
		return renderAlerts(res)
	case "/history":
		res, err := s.svc.History(ctx, s.groupID, arg)
		if err != nil {
			return presentError(ctx, s.log, err)
		}
		return renderHistory(arg, res)
	case "/delete":
		res, err := s.svc.Delete(ctx, cabinet.DeleteInput{GroupID: s.groupID, Actor: s.actor, Name: arg})
		if err != nil {
			return presentError(ctx, s.log, err)
		}
		return renderDelete(arg, res)
	}

	res, err := s.svc.Execute(ctx, cabinet.Command{GroupID: s.groupID, Actor: s.actor, Text: line})
	if err != nil {
		return presentError(ctx, s.log, err)
	}
	return renderCommand(res)
}
