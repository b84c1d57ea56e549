package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gymlog/models"

	"github.com/fatih/color"
)

var (
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	fail    = color.New(color.FgRed, color.Bold)
	title   = color.New(color.FgCyan, color.Bold)
)

func printLogs(w io.Writer, logs []models.LogEntry) {
	if len(logs) == 0 {
		warn.Fprintln(w, "No logs yet")
		return
	}
	for _, e := range logs {
		fmt.Fprint(w, e.String())
	}
}

func printUsers(w io.Writer, users []models.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tADMIN")
	for _, u := range users {
		admin := ""
		if u.IsAdmin {
			admin = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Username, admin)
	}
	tw.Flush()
}
