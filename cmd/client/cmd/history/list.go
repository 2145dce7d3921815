// cmd/client/cmd/history/list.go
package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scanpass/cmd/client/cmd/types"
	"scanpass/internal/domain/history"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список сканирований",
	Long: `Просмотр журнала сканирований текущего пользователя, от новых к старым.

Записи других пользователей не показываются.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		entries, err := app.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка чтения журнала: %w", err)
		}

		return printEntries(os.Stdout, entries, listFormat)
	},
}

func printEntries(w io.Writer, entries []history.Entry, format string) error {
	switch format {
	case "json":
		return printEntriesJSON(w, entries)
	case "table":
		return printEntriesTable(w, entries)
	case "simple", "":
		return printEntriesSimple(w, entries)
	default:
		return fmt.Errorf("неизвестный формат вывода %q", format)
	}
}

func printEntriesSimple(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Сканирований пока нет")
		return nil
	}

	fmt.Fprintf(w, "Найдено сканирований: %d\n\n", len(entries))

	for i, e := range entries {
		fmt.Fprintf(w, "%d. [%s] %s <%s>\n", i+1, e.Initials(), e.Name, e.Email)
		fmt.Fprintf(w, "   Account ID: %s | Время: %s\n", color.CyanString(e.AccountID), e.Timestamp)
		fmt.Fprintln(w)
	}

	return nil
}

func printEntriesTable(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Сканирований пока нет")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Account ID\tИмя\tEmail\tВремя\tСканировал\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t---\t\n")

	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			e.AccountID,
			truncate(e.Name, 30),
			truncate(e.Email, 30),
			e.Timestamp,
			e.ScannedByName,
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nВсего сканирований: %d\n", len(entries))
	return nil
}

func printEntriesJSON(w io.Writer, entries []history.Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")
}
