// cmd/client/cmd/auth/whoami.go
package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scanpass/cmd/client/cmd/types"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		id, ok := app.CurrentUser()
		if !ok {
			fmt.Println("Вы не вошли в систему. Выполните: scanpass auth login")
			return nil
		}

		fmt.Printf("Пользователь: %s (%s)\n", id.Name, id.Username)
		fmt.Printf("Email:        %s\n", id.Email)

		balance := fmt.Sprintf("%d кредитов", id.Balance)
		switch {
		case id.Balance == 0:
			balance = color.RedString("%s", balance)
		case id.Balance <= app.Config().LowBalanceThreshold:
			balance = color.YellowString("%s", balance)
		default:
			balance = color.GreenString("%s", balance)
		}
		fmt.Printf("Баланс:       %s\n", balance)
		return nil
	},
}
