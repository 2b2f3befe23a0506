package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/adapters/notify"
	"github.com/emiliopalmerini/worktime/internal/app"
	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
	"github.com/emiliopalmerini/worktime/internal/transfer"
)

// withApp runs fn with a freshly opened AppContext, reporting notifications
// on stderr.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *AppContext) error) error {
	return withAppNotifier(cmd, notify.NewTerminal(cmd.ErrOrStderr()), fn)
}

func withAppNotifier(cmd *cobra.Command, notifier ports.Notifier, fn func(ctx context.Context, a *AppContext) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := app.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a, err := NewAppContext(ctx, cfg, notifier)
	if err != nil {
		return err
	}

	runErr := fn(ctx, a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// friendly rewrites the errors users can act on.
func friendly(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "Not possible right now: " + err.Error() + " (see `worktime status`)"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "No such history entry (see `worktime history list`)"
	case errors.Is(err, domain.ErrProtectedCategory):
		return "The default category cannot be deleted"
	case errors.Is(err, transfer.ErrInvalidDocument):
		return "Import failed: " + err.Error()
	case errors.Is(err, transfer.ErrNothingSelected):
		return "Nothing to export: select entries with --select or use --all"
	}
	return "Error: " + err.Error()
}

// parseEntryNumber converts a 1-based entry number, as shown by
// `history list`, to a history index.
func parseEntryNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid entry number %q", s)
	}
	return n - 1, nil
}

// parseEntryList parses "1,3,5" or "2-4" style entry numbers into history
// indices.
func parseEntryList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if from, to, ok := strings.Cut(part, "-"); ok {
			lo, err := parseEntryNumber(from)
			if err != nil {
				return nil, err
			}
			hi, err := parseEntryNumber(to)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			for i := lo; i <= hi; i++ {
				out = append(out, i)
			}
			continue
		}
		i, err := parseEntryNumber(part)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

// parseBreak parses "HH:MM-HH:MM".
func parseBreak(s string) (domain.BreakEdit, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return domain.BreakEdit{}, fmt.Errorf("invalid break %q (use HH:MM-HH:MM)", s)
	}
	start, err := domain.ParseClockTime(from)
	if err != nil {
		return domain.BreakEdit{}, err
	}
	end, err := domain.ParseClockTime(to)
	if err != nil {
		return domain.BreakEdit{}, err
	}
	return domain.BreakEdit{Start: start, End: end}, nil
}
