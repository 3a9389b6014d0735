package app

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/pathutil"
	"github.com/ayoisaiah/detox/internal/timeutil"
	"github.com/ayoisaiah/detox/report"
	"github.com/ayoisaiah/detox/store"
)

const defaultHistoryDays = 7

var errInvalidDateRange = errors.New(
	"the start date must be earlier than the end date",
)

// historyRange returns the time range selected by --since and --until.
func historyRange(since, until string, now time.Time) (start, end time.Time, err error) {
	start = timeutil.RoundToStart(now.AddDate(0, 0, -(defaultHistoryDays - 1)))
	end = now

	if since != "" {
		start, err = timeutil.ParseDate(since)
		if err != nil {
			return
		}
	}

	if until != "" {
		end, err = timeutil.ParseDate(until)
		if err != nil {
			return
		}
	}

	if end.Before(start) {
		err = errInvalidDateRange
	}

	return
}

// historyAction lists or deletes recorded sessions.
func historyAction(ctx *cli.Context) error {
	start, end, err := historyRange(
		ctx.String("since"),
		ctx.String("until"),
		time.Now(),
	)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	sessions, err := db.GetSessions(start, end)
	if err != nil {
		return err
	}

	if ctx.Bool("delete") {
		return delSessions(db, sessions)
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(sessions)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	report.Sessions(os.Stdout, sessions)

	return nil
}

// delSessions deletes all the specified sessions. It requests for confirmation
// before proceeding with the operation.
func delSessions(db store.DB, sessions []*models.Session) error {
	if len(sessions) == 0 {
		pterm.Info.Println("No sessions found for the specified time range")
		return nil
	}

	report.Sessions(os.Stdout, sessions)

	warning := pterm.Warning.Sprint(
		"The above sessions will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(os.Stdout, warning)

	reader := bufio.NewReader(os.Stdin)

	_, _ = reader.ReadString('\n')

	return db.DeleteSessions(sessions)
}
