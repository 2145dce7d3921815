// cmd/client/cmd/history/clear.go
package history

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scanpass/cmd/client/cmd/types"
)

var assumeYes bool

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Очистить журнал",
	Long: `Удаляет все сканирования текущего пользователя.

Записи других пользователей не затрагиваются.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if !assumeYes {
			fmt.Print("Удалить все ваши сканирования? [y/N]: ")
			var answer string
			_, _ = fmt.Scanln(&answer)
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("Отменено")
				return nil
			}
		}

		removed, err := app.ClearHistory(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка очистки журнала: %w", err)
		}
		color.Green("✓ Удалено сканирований: %d", removed)
		return nil
	},
}

func init() {
	ClearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "не запрашивать подтверждение")
}
