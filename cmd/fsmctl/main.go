// Command fsmctl loads a state machine definition and drives it interactively.
//
// Usage:
//
//	FSMCTL_DEFINITION=machine.yaml fsmctl          # interactive session on stdin
//	FSMCTL_DEFINITION=machine.yaml fsmctl dot      # print Graphviz DOT and exit
//	FSMCTL_DEFINITION=machine.yaml fsmctl mermaid  # print Mermaid diagram and exit
//	FSMCTL_DEFINITION=machine.json fsmctl export   # print normalized YAML and exit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fsmkit/internal/console"
	"github.com/dmitrymomot/fsmkit/pkg/config"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
	"github.com/dmitrymomot/fsmkit/pkg/fsmdef"
	"github.com/dmitrymomot/fsmkit/pkg/fsmviz"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
)

type appConfig struct {
	Definition string     `env:"FSMCTL_DEFINITION,required"`
	Strict     bool       `env:"FSMCTL_STRICT" envDefault:"false"`
	AppEnv     string     `env:"APP_ENV" envDefault:"development"`
	LogLevel   slog.Level `env:"FSMCTL_LOG_LEVEL" envDefault:"WARN"`
	LogFormat  string     `env:"FSMCTL_LOG_FORMAT"`
	Prompt     string     `env:"FSMCTL_PROMPT" envDefault:"fsm> "`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "fsmctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)
	cliLog := log.With(logger.Component("fsmctl"))

	def, err := fsmdef.LoadFile(ctx, cfg.Definition)
	if err != nil {
		return err
	}

	machineOpts := []fsm.Option{
		fsm.WithLogger(log),
		fsm.WithID(uuid.NewString()),
	}
	if cfg.Strict {
		machineOpts = append(machineOpts, fsm.WithStrictValidation())
	} else if verr := def.Validate(); verr != nil {
		cliLog.WarnContext(ctx, "definition has dangling targets", logger.Error(verr))
	}

	m, err := fsm.New(def, machineOpts...)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return render(stdout, args, m)
	}

	started := time.Now()
	ctx = console.WithSessionID(ctx, uuid.NewString())
	cliLog.InfoContext(ctx, "session started",
		logger.MachineID(m.ID()),
		slog.String("definition", cfg.Definition),
		logger.State(m.State()),
	)

	session := console.NewSession(m,
		console.WithLogger(log),
		console.WithPrompt(cfg.Prompt),
	)
	if err := session.Run(ctx, stdin, stdout); err != nil {
		return err
	}

	cliLog.InfoContext(ctx, "session ended",
		logger.State(m.State()),
		logger.Duration(time.Since(started)),
	)
	return nil
}

// newLogger builds the process logger. An unknown FSMCTL_LOG_FORMAT is an error, not a panic.
func newLogger(cfg appConfig, w io.Writer) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, "fsmctl"),
		logger.WithLevel(cfg.LogLevel),
		logger.WithOutput(w),
		logger.WithContextExtractors(console.LoggerExtractor()),
	}
	if cfg.LogFormat != "" {
		f, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(f))
	}
	return logger.New(opts...), nil
}

func render(w io.Writer, args []string, m *fsm.Machine) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected one of dot, mermaid, export", console.ErrTooManyArgs)
	}

	switch args[0] {
	case "dot":
		_, err := io.WriteString(w, fsmviz.DOT(m.Config(), m.State()))
		return err
	case "mermaid":
		_, err := io.WriteString(w, fsmviz.Mermaid(m.Config()))
		return err
	case "export":
		out, err := fsmdef.Encode(m.Config())
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("%w: %s", console.ErrUnknownCommand, args[0])
}
