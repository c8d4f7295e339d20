package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/terrascribe/terrascribe/internal/build_info"
	"github.com/terrascribe/terrascribe/internal/cli/generate"
	"github.com/terrascribe/terrascribe/internal/cli/publish"
	"github.com/terrascribe/terrascribe/internal/cli/serve"
	"github.com/terrascribe/terrascribe/internal/cli/update"
	"github.com/terrascribe/terrascribe/internal/cli/validate"
	"github.com/terrascribe/terrascribe/internal/cli/version"
)

var RootCmd = &cobra.Command{
	Use:   "terrascribe",
	Short: "A CLI tool for turning natural language instructions into Terraform configurations",
	Long:  "Generate Terraform configuration bundles from natural language instructions and publish them as pull requests for review.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s %s %s\n",
			color.CyanString("Executing terrascribe with build"),
			color.GreenString("version=%s", build_info.Version),
			color.YellowString("commit=%s", build_info.Commit),
			color.BlueString("date=%s", build_info.Date))
	},
}

func init() {
	cobra.EnableTraverseRunHooks = true

	lumberjackLogger := &lumberjack.Logger{
		Filename: "terrascribe.log",
		MaxSize:  25,
		Compress: true,
	}
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}
	handler := NewPrettyHandler(io.MultiWriter(lumberjackLogger, os.Stdout), opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)

	RootCmd.AddCommand(
		generate.NewGenerateCmd(),
		validate.NewValidateCmd(),
		serve.NewServeCmd(),
		publish.NewPublishCmd(),
		version.NewVersionCmd(),
		update.NewUpdateCmd(),
	)
}

type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

type PrettyHandler struct {
	slog.Handler
	l *log.Logger
}

func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	time := r.Time.Format("2006/01/02 15:04:05")
	level := r.Level.String()
	message := r.Message

	values := []string{}
	r.Attrs(func(a slog.Attr) bool {
		values = append(values, fmt.Sprintf("%s=%v", a.Key, a.Value.Any()))
		return true
	})

	h.l.Printf("%s %s %s %s", time, level, message, strings.Join(values, " "))

	return nil
}

func NewPrettyHandler(
	out io.Writer,
	opts PrettyHandlerOptions,
) *PrettyHandler {
	h := &PrettyHandler{
		Handler: slog.NewTextHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}

	return h
}
